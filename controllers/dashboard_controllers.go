package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Galdes/pdv-sorv-sub000/models"
	"github.com/Galdes/pdv-sorv-sub000/utils"
)

type DashboardController struct {
	DB *gorm.DB
}

func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{DB: db}
}

// GetDashboardStats resume o dia para o painel do admin: contagens por
// status, faturamento e ocupacao das mesas. Faturamento = soma dos
// valores efetivamente pagos (pagamentos_mesa.valor_pago), nao dos totais
// das comandas.
func (dc *DashboardController) GetDashboardStats(c *gin.Context) {
	inicioDoDia := time.Now().Truncate(24 * time.Hour)

	var stats struct {
		PedidosHoje   int64 `json:"pedidos_hoje"`
		PedidosTotal  int64 `json:"pedidos_total"`
		EntregasHoje  int64 `json:"entregas_hoje"`
		PedidoStats   struct {
			Pendentes  int64 `json:"pendentes"`
			Preparando int64 `json:"preparando"`
			Entregues  int64 `json:"entregues"`
			Pagos      int64 `json:"pagos"`
			Cancelados int64 `json:"cancelados"`
		} `json:"pedido_stats"`
		MesaStats struct {
			Livres    int64 `json:"livres"`
			Ocupadas  int64 `json:"ocupadas"`
			Inativas  int64 `json:"inativas"`
		} `json:"mesa_stats"`
		ConversasNaoLidas int64 `json:"conversas_nao_lidas"`
	}

	dc.DB.Model(&models.Pedido{}).Count(&stats.PedidosTotal)
	dc.DB.Model(&models.Pedido{}).Where("created_at >= ?", inicioDoDia).Count(&stats.PedidosHoje)
	dc.DB.Model(&models.PedidoEntrega{}).Where("created_at >= ?", inicioDoDia).Count(&stats.EntregasHoje)

	type par struct {
		status string
		dest   *int64
	}
	for _, p := range []par{
		{models.PedidoPendente, &stats.PedidoStats.Pendentes},
		{models.PedidoPreparando, &stats.PedidoStats.Preparando},
		{models.PedidoEntregue, &stats.PedidoStats.Entregues},
		{models.PedidoPago, &stats.PedidoStats.Pagos},
		{models.PedidoCancelado, &stats.PedidoStats.Cancelados},
	} {
		dc.DB.Model(&models.Pedido{}).Where("status = ?", p.status).Count(p.dest)
	}

	// Mesas: ocupada = existe comanda aberta
	var totalAtivas int64
	dc.DB.Model(&models.Mesa{}).Where("ativa = ?", true).Count(&totalAtivas)
	dc.DB.Model(&models.Mesa{}).Where("ativa = ?", false).Count(&stats.MesaStats.Inativas)
	dc.DB.Model(&models.Comanda{}).
		Where("status = ?", models.ComandaAberta).
		Distinct("mesa_id").
		Count(&stats.MesaStats.Ocupadas)
	stats.MesaStats.Livres = totalAtivas - stats.MesaStats.Ocupadas

	dc.DB.Model(&models.ConversaWhatsapp{}).Where("nao_lidas > 0").Count(&stats.ConversasNaoLidas)

	// Faturamento via historico de pagamentos (salao) + entregas concluidas
	faturamentoHoje := somaDecimal(dc.DB.Model(&models.PagamentoMesa{}).
		Where("created_at >= ?", inicioDoDia), "valor_pago")
	faturamentoTotal := somaDecimal(dc.DB.Model(&models.PagamentoMesa{}), "valor_pago")
	entregasHoje := somaDecimal(dc.DB.Model(&models.PedidoEntrega{}).
		Where("status = ? AND created_at >= ?", models.EntregaEntregue, inicioDoDia), "total")

	utils.RespondJSON(c, http.StatusOK, "Estatisticas do dia", gin.H{
		"stats":                       stats,
		"faturamento_hoje":            faturamentoHoje.Add(entregasHoje),
		"faturamento_hoje_formatado":  utils.FormatCurrencyBRL(faturamentoHoje.Add(entregasHoje)),
		"faturamento_total":           faturamentoTotal,
		"faturamento_total_formatado": utils.FormatCurrencyBRL(faturamentoTotal),
	})
}

// somaDecimal agrega a coluna como texto e reconverte: evita passar o
// valor monetario por float64 no caminho.
func somaDecimal(query *gorm.DB, coluna string) decimal.Decimal {
	var bruto *string
	query.Select("CAST(SUM(" + coluna + ") AS CHAR)").Scan(&bruto)
	if bruto == nil {
		return decimal.Zero
	}
	valor, err := decimal.NewFromString(*bruto)
	if err != nil {
		return decimal.Zero
	}
	return valor
}
