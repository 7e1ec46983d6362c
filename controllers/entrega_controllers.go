package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Galdes/pdv-sorv-sub000/models"
	"github.com/Galdes/pdv-sorv-sub000/realtime"
	"github.com/Galdes/pdv-sorv-sub000/services"
	"github.com/Galdes/pdv-sorv-sub000/utils"
)

type EntregaController struct {
	DB       *gorm.DB
	Entregas *services.EntregaService
}

func NewEntregaController(db *gorm.DB) *EntregaController {
	return &EntregaController{DB: db, Entregas: services.NewEntregaService(db)}
}

// Checkout -> endpoint publico do carrinho de delivery
func (ec *EntregaController) Checkout(c *gin.Context) {
	var dados services.DadosCheckout
	if err := c.ShouldBindJSON(&dados); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	pedido, err := ec.Entregas.Checkout(dados)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrProdutoInativo),
			errors.Is(err, services.ErrSaborInativo),
			errors.Is(err, services.ErrQuantidadeInvalida):
			utils.RespondError(c, http.StatusUnprocessableEntity, err)
		default:
			utils.RespondError(c, http.StatusBadRequest, err)
		}
		return
	}

	realtime.BroadcastEntregaUpdate(*pedido)
	utils.InfoLogger.Printf("Entrega %d criada (rastreio %s, total %s)",
		pedido.ID, pedido.CodigoRastreio, utils.FormatCurrencyBRL(pedido.Total))

	utils.RespondJSON(c, http.StatusCreated, "Pedido de entrega criado", gin.H{
		"pedido":          pedido,
		"codigo_rastreio": pedido.CodigoRastreio,
	})
}

// Rastrear -> consulta publica por codigo de rastreio (sem login)
func (ec *EntregaController) Rastrear(c *gin.Context) {
	var pedido models.PedidoEntrega
	err := ec.DB.
		Preload("Itens").
		Preload("Itens.Produto").
		Preload("Itens.Sabor").
		Where("codigo_rastreio = ?", c.Param("codigo")).
		First(&pedido).Error
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("pedido nao encontrado"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Situacao da entrega", gin.H{
		"status": pedido.Status,
		"total":  pedido.Total,
		"itens":  pedido.Itens,
	})
}

// GetAllEntregas -> painel do staff, com filtro por status
func (ec *EntregaController) GetAllEntregas(c *gin.Context) {
	query := ec.DB.
		Preload("Cliente").
		Preload("Itens").
		Preload("Itens.Produto").
		Order("created_at desc")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var pedidos []models.PedidoEntrega
	if err := query.Find(&pedidos).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Lista de entregas", pedidos)
}

func (ec *EntregaController) GetEntregaByID(c *gin.Context) {
	var pedido models.PedidoEntrega
	err := ec.DB.
		Preload("Cliente").
		Preload("Itens").
		Preload("Itens.Produto").
		Preload("Itens.Sabor").
		First(&pedido, c.Param("entrega_id")).Error
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Detalhe da entrega", pedido)
}

// AtualizarStatus segue o fluxo de entrega; transicao fora do fluxo -> 422.
func (ec *EntregaController) AtualizarStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var existente models.PedidoEntrega
	if err := ec.DB.First(&existente, c.Param("entrega_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	pedido, err := ec.Entregas.AtualizarStatus(existente.ID, req.Status)
	if err != nil {
		if errors.Is(err, services.ErrTransicaoInvalida) {
			utils.RespondError(c, http.StatusUnprocessableEntity, err)
		} else {
			utils.RespondError(c, http.StatusNotFound, err)
		}
		return
	}

	realtime.BroadcastEntregaUpdate(*pedido)
	utils.RespondJSON(c, http.StatusOK, "Status da entrega atualizado", pedido)
}
