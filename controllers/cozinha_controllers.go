package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Galdes/pdv-sorv-sub000/models"
	"github.com/Galdes/pdv-sorv-sub000/utils"
)

// CozinhaController alimenta o painel da cozinha. Os GETs sao a fonte de
// verdade (polling de 30s no front); o websocket so antecipa o refresh.
type CozinhaController struct {
	DB *gorm.DB
}

func NewCozinhaController(db *gorm.DB) *CozinhaController {
	return &CozinhaController{DB: db}
}

// GetPedidosPendentes -> fila de producao: pendentes e em preparo, do
// mais antigo para o mais novo (salao e delivery).
func (cz *CozinhaController) GetPedidosPendentes(c *gin.Context) {
	var pedidos []models.Pedido
	err := cz.DB.
		Preload("Produto").
		Preload("Sabor").
		Preload("Comanda").
		Preload("Comanda.Mesa").
		Where("status IN ?", []string{models.PedidoPendente, models.PedidoPreparando}).
		Order("created_at asc").
		Find(&pedidos).Error
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var entregas []models.PedidoEntrega
	err = cz.DB.
		Preload("Itens").
		Preload("Itens.Produto").
		Preload("Itens.Sabor").
		Preload("Cliente").
		Where("status IN ?", []string{models.EntregaPendente, models.EntregaPreparando}).
		Order("created_at asc").
		Find(&entregas).Error
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Fila da cozinha", gin.H{
		"pedidos_salao": pedidos,
		"entregas":      entregas,
	})
}

// GetPainelCozinha agrupa a fila por status para as colunas do painel.
func (cz *CozinhaController) GetPainelCozinha(c *gin.Context) {
	painel := make(map[string][]models.Pedido)
	for _, status := range []string{models.PedidoPendente, models.PedidoPreparando} {
		var pedidos []models.Pedido
		err := cz.DB.
			Preload("Produto").
			Preload("Sabor").
			Preload("Comanda.Mesa").
			Where("status = ?", status).
			Order("created_at asc").
			Find(&pedidos).Error
		if err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		painel[status] = pedidos
	}

	var contagem struct {
		Pendentes  int64 `json:"pendentes"`
		Preparando int64 `json:"preparando"`
	}
	cz.DB.Model(&models.Pedido{}).Where("status = ?", models.PedidoPendente).Count(&contagem.Pendentes)
	cz.DB.Model(&models.Pedido{}).Where("status = ?", models.PedidoPreparando).Count(&contagem.Preparando)

	utils.RespondJSON(c, http.StatusOK, "Painel da cozinha", gin.H{
		"colunas":  painel,
		"contagem": contagem,
	})
}
