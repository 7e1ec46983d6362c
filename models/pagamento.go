package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de pagamento de mesa
const (
	PagamentoTotal    = "total"
	PagamentoParcial  = "parcial"
	PagamentoSeletivo = "seletivo"
)

// PagamentoMesa registra um evento de acerto de conta contra uma mesa.
// Registro imutavel (append-only): nao existem rotas de update/delete.
type PagamentoMesa struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	MesaID         uint            `gorm:"not null;index" json:"mesa_id"`
	Mesa           Mesa            `gorm:"foreignKey:MesaID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	UsuarioID      uint            `gorm:"not null" json:"usuario_id"`
	Usuario        Usuario         `gorm:"foreignKey:UsuarioID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	TipoPagamento  string          `gorm:"type:varchar(20);not null" json:"tipo_pagamento"`
	// Snapshot do total devido da mesa no momento do pagamento
	ValorTotalMesa decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"valor_total_mesa"`
	ValorPago      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"valor_pago"`
	ValorRestante  decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"valor_restante"`
	Observacoes    string          `gorm:"type:text" json:"observacoes"`
	Pedidos        []PagamentoPedido `gorm:"foreignKey:PagamentoMesaID" json:"pedidos,omitempty"`
	CreatedAt      time.Time       `gorm:"not null" json:"created_at"`
}

// PagamentoPedido registra quanto de um pedido especifico aquele pagamento
// cobriu, e o saldo que restou no pedido.
type PagamentoPedido struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	PagamentoMesaID uint            `gorm:"not null;index" json:"pagamento_mesa_id"`
	PedidoID        uint            `gorm:"not null;index" json:"pedido_id"`
	Pedido          Pedido          `gorm:"foreignKey:PedidoID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	ValorPagoPedido decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"valor_pago_pedido"`
	ValorRestantePedido decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"valor_restante_pedido"`
	CreatedAt       time.Time       `gorm:"not null" json:"created_at"`
}
