package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Galdes/pdv-sorv-sub000/models"
	"github.com/Galdes/pdv-sorv-sub000/utils"
)

type ProdutoController struct {
	DB *gorm.DB
}

func NewProdutoController(db *gorm.DB) *ProdutoController {
	return &ProdutoController{DB: db}
}

// GetAllProdutos -> cardapio; ?ativos=true filtra para o cliente
func (pc *ProdutoController) GetAllProdutos(c *gin.Context) {
	query := pc.DB.Preload("Categoria").Order("nome asc")
	if c.Query("ativos") == "true" {
		query = query.Where("ativo = ?", true)
	}
	if catID := c.Query("categoria_id"); catID != "" {
		query = query.Where("categoria_id = ?", catID)
	}

	var produtos []models.Produto
	if err := query.Find(&produtos).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Lista de produtos", produtos)
}

func (pc *ProdutoController) GetProdutoByID(c *gin.Context) {
	var produto models.Produto
	if err := pc.DB.Preload("Categoria").First(&produto, c.Param("produto_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Detalhe do produto", produto)
}

func (pc *ProdutoController) CreateProduto(c *gin.Context) {
	var req struct {
		CategoriaID uint            `json:"categoria_id" binding:"required"`
		Nome        string          `json:"nome" binding:"required"`
		Preco       decimal.Decimal `json:"preco" binding:"required"`
		Descricao   string          `json:"descricao"`
		ImagemUrl   *string         `json:"imagem_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	produto := models.Produto{
		CategoriaID: req.CategoriaID,
		Nome:        req.Nome,
		Preco:       req.Preco,
		Descricao:   req.Descricao,
		ImagemUrl:   req.ImagemUrl,
		Ativo:       true,
	}
	if err := pc.DB.Create(&produto).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Produto cadastrado: %s (%s)", produto.Nome, utils.FormatCurrencyBRL(produto.Preco))
	utils.RespondJSON(c, http.StatusCreated, "Produto cadastrado", produto)
}

// UpdateProduto: alterar o preco aqui NAO reprecifica pedidos ja feitos —
// cada pedido congelou o preco na insercao.
func (pc *ProdutoController) UpdateProduto(c *gin.Context) {
	var produto models.Produto
	if err := pc.DB.First(&produto, c.Param("produto_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req struct {
		CategoriaID *uint            `json:"categoria_id"`
		Nome        *string          `json:"nome"`
		Preco       *decimal.Decimal `json:"preco"`
		Descricao   *string          `json:"descricao"`
		ImagemUrl   *string          `json:"imagem_url"`
		Ativo       *bool            `json:"ativo"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.CategoriaID != nil {
		produto.CategoriaID = *req.CategoriaID
	}
	if req.Nome != nil {
		produto.Nome = *req.Nome
	}
	if req.Preco != nil {
		produto.Preco = *req.Preco
	}
	if req.Descricao != nil {
		produto.Descricao = *req.Descricao
	}
	if req.ImagemUrl != nil {
		produto.ImagemUrl = req.ImagemUrl
	}
	if req.Ativo != nil {
		produto.Ativo = *req.Ativo
	}

	if err := pc.DB.Save(&produto).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Produto atualizado", produto)
}

// DeleteProduto desativa em vez de apagar: pedidos antigos referenciam o
// produto.
func (pc *ProdutoController) DeleteProduto(c *gin.Context) {
	var produto models.Produto
	if err := pc.DB.First(&produto, c.Param("produto_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	produto.Ativo = false
	if err := pc.DB.Save(&produto).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Produto desativado", gin.H{"produto_id": produto.ID})
}
