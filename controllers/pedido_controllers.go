package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Galdes/pdv-sorv-sub000/models"
	"github.com/Galdes/pdv-sorv-sub000/realtime"
	"github.com/Galdes/pdv-sorv-sub000/services"
	"github.com/Galdes/pdv-sorv-sub000/utils"
)

type PedidoController struct {
	DB      *gorm.DB
	Pedidos *services.PedidoService
}

func NewPedidoController(db *gorm.DB) *PedidoController {
	return &PedidoController{DB: db, Pedidos: services.NewPedidoService(db)}
}

// AdicionarPedido -> cliente ou staff inclui um item na comanda
func (pc *PedidoController) AdicionarPedido(c *gin.Context) {
	var req struct {
		ProdutoID   uint   `json:"produto_id" binding:"required"`
		SaborID     *uint  `json:"sabor_id,omitempty"`
		Quantidade  int    `json:"quantidade" binding:"required"`
		Observacoes string `json:"observacoes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var comanda models.Comanda
	if err := pc.DB.First(&comanda, c.Param("comanda_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	pedido, err := pc.Pedidos.AdicionarPedido(comanda.ID, req.ProdutoID, req.SaborID, req.Quantidade, req.Observacoes)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrQuantidadeInvalida),
			errors.Is(err, services.ErrProdutoInativo),
			errors.Is(err, services.ErrSaborInativo),
			errors.Is(err, services.ErrComandaFechada):
			utils.RespondError(c, http.StatusBadRequest, err)
		default:
			utils.RespondError(c, http.StatusInternalServerError, err)
		}
		return
	}

	realtime.BroadcastPedidoUpdate(*pedido)
	realtime.BroadcastNotificacaoStaff(fmt.Sprintf("Novo pedido #%d na mesa da comanda %d", pedido.ID, comanda.ID))
	utils.RespondJSON(c, http.StatusCreated, "Pedido adicionado", pedido)
}

// GetPedidoByID
func (pc *PedidoController) GetPedidoByID(c *gin.Context) {
	var pedido models.Pedido
	if err := pc.DB.Preload("Produto").Preload("Sabor").
		First(&pedido, c.Param("pedido_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Detalhe do pedido", pedido)
}

// atualizarStatus aplica a transicao e devolve o pedido atualizado.
func (pc *PedidoController) atualizarStatus(c *gin.Context, novoStatus string) {
	idStr := c.Param("pedido_id")

	var pedido models.Pedido
	if err := pc.DB.First(&pedido, idStr).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	atualizado, err := pc.Pedidos.AtualizarStatus(pedido.ID, novoStatus)
	if err != nil {
		if errors.Is(err, services.ErrTransicaoInvalida) {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	realtime.BroadcastPedidoUpdate(*atualizado)
	utils.RespondJSON(c, http.StatusOK, "Status do pedido atualizado", atualizado)
}

// IniciarPreparo -> cozinha pega o pedido (pendente => preparando)
func (pc *PedidoController) IniciarPreparo(c *gin.Context) {
	pc.atualizarStatus(c, models.PedidoPreparando)
}

// MarcarEntregue -> pedido chegou a mesa (preparando => entregue)
func (pc *PedidoController) MarcarEntregue(c *gin.Context) {
	pc.atualizarStatus(c, models.PedidoEntregue)
}

// CancelarPedido -> staff cancela antes da entrega. Cancelamento e status,
// nunca delete: pedido pago permanece no historico.
func (pc *PedidoController) CancelarPedido(c *gin.Context) {
	pc.atualizarStatus(c, models.PedidoCancelado)
}
