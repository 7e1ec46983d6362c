package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Galdes/pdv-sorv-sub000/models"
	"github.com/Galdes/pdv-sorv-sub000/realtime"
	"github.com/Galdes/pdv-sorv-sub000/services"
	"github.com/Galdes/pdv-sorv-sub000/utils"
)

type PagamentoController struct {
	DB         *gorm.DB
	Pagamentos *services.PagamentoService
	Pedidos    *services.PedidoService
}

func NewPagamentoController(db *gorm.DB) *PagamentoController {
	return &PagamentoController{
		DB:         db,
		Pagamentos: services.NewPagamentoService(db),
		Pedidos:    services.NewPedidoService(db),
	}
}

// GetConta mostra a conta da mesa antes do acerto: pedidos em aberto de
// todas as comandas e o total devido.
func (pc *PagamentoController) GetConta(c *gin.Context) {
	mesa, ok := pc.buscarMesa(c)
	if !ok {
		return
	}

	pedidos, err := pc.Pedidos.PedidosEmAberto(mesa.ID)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	total := decimal.Zero
	for _, p := range pedidos {
		total = total.Add(p.ValorRestante)
	}

	utils.RespondJSON(c, http.StatusOK, "Conta da mesa", gin.H{
		"mesa_id":          mesa.ID,
		"numero":           mesa.Numero,
		"total":            total,
		"total_formatado":  utils.FormatCurrencyBRL(total),
		"pedidos_em_aberto": pedidos,
	})
}

// PagarTotal -> quita a mesa inteira
func (pc *PagamentoController) PagarTotal(c *gin.Context) {
	mesa, ok := pc.buscarMesa(c)
	if !ok {
		return
	}

	var req struct {
		Observacoes string `json:"observacoes"`
	}
	// corpo opcional
	_ = c.ShouldBindJSON(&req)

	pagamento, err := pc.Pagamentos.PagarTotal(mesa.ID, pc.usuarioID(c), req.Observacoes)
	if err != nil {
		pc.responderErroPagamento(c, err)
		return
	}

	pc.notificar(mesa, pagamento)
	utils.RespondJSON(c, http.StatusCreated, "Pagamento total registrado", pagamento)
}

// PagarParcial -> valor arbitrario alocado FIFO
func (pc *PagamentoController) PagarParcial(c *gin.Context) {
	mesa, ok := pc.buscarMesa(c)
	if !ok {
		return
	}

	var req struct {
		Valor       decimal.Decimal `json:"valor" binding:"required"`
		Observacoes string          `json:"observacoes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	pagamento, err := pc.Pagamentos.PagarParcial(mesa.ID, pc.usuarioID(c), req.Valor, req.Observacoes)
	if err != nil {
		pc.responderErroPagamento(c, err)
		return
	}

	pc.notificar(mesa, pagamento)
	utils.RespondJSON(c, http.StatusCreated, "Pagamento parcial registrado", pagamento)
}

// PagarSeletivo -> quita integralmente os pedidos escolhidos
func (pc *PagamentoController) PagarSeletivo(c *gin.Context) {
	mesa, ok := pc.buscarMesa(c)
	if !ok {
		return
	}

	var req struct {
		PedidoIDs   []uint `json:"pedido_ids" binding:"required"`
		Observacoes string `json:"observacoes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	pagamento, err := pc.Pagamentos.PagarSeletivo(mesa.ID, pc.usuarioID(c), req.PedidoIDs, req.Observacoes)
	if err != nil {
		pc.responderErroPagamento(c, err)
		return
	}

	pc.notificar(mesa, pagamento)
	utils.RespondJSON(c, http.StatusCreated, "Pagamento seletivo registrado", pagamento)
}

// ListarPagamentos -> historico append-only da mesa
func (pc *PagamentoController) ListarPagamentos(c *gin.Context) {
	mesa, ok := pc.buscarMesa(c)
	if !ok {
		return
	}

	pagamentos, err := pc.Pagamentos.ListarPagamentos(mesa.ID)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Pagamentos da mesa", pagamentos)
}

func (pc *PagamentoController) buscarMesa(c *gin.Context) (*models.Mesa, bool) {
	var mesa models.Mesa
	if err := pc.DB.First(&mesa, c.Param("mesa_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("mesa nao encontrada"))
		return nil, false
	}
	return &mesa, true
}

func (pc *PagamentoController) usuarioID(c *gin.Context) uint {
	if v, exists := c.Get("user_id"); exists {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

// responderErroPagamento mapeia os erros tipados do motor para HTTP.
// A mensagem vai integral para o caller; nao ha retry automatico.
func (pc *PagamentoController) responderErroPagamento(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNadaAPagar),
		errors.Is(err, services.ErrValorInvalido),
		errors.Is(err, services.ErrValorExcedeTotal),
		errors.Is(err, services.ErrSelecaoVazia),
		errors.Is(err, services.ErrPedidoNaoEntregue):
		utils.RespondError(c, http.StatusUnprocessableEntity, err)
	case errors.Is(err, services.ErrPedidoDeOutraMesa):
		utils.RespondError(c, http.StatusConflict, err)
	default:
		utils.RespondError(c, http.StatusInternalServerError, err)
	}
}

func (pc *PagamentoController) notificar(mesa *models.Mesa, pagamento *models.PagamentoMesa) {
	realtime.BroadcastPagamentoUpdate(*pagamento)
	realtime.BroadcastNotificacaoStaff(fmt.Sprintf(
		"Mesa %d: pagamento %s de %s (restante %s)",
		mesa.Numero, pagamento.TipoPagamento,
		utils.FormatCurrencyBRL(pagamento.ValorPago),
		utils.FormatCurrencyBRL(pagamento.ValorRestante)))
}
