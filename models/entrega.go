package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status possiveis de um pedido de entrega
const (
	EntregaPendente   = "pendente"
	EntregaPreparando = "preparando"
	EntregaSaiu       = "saiu_para_entrega"
	EntregaEntregue   = "entregue"
	EntregaCancelado  = "cancelado"
)

// PedidoEntrega e o checkout do carrinho de delivery: um envio unico com
// todos os itens, preco congelado por item.
type PedidoEntrega struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	ClienteID      uint            `gorm:"not null;index" json:"cliente_id"`
	Cliente        ClienteEntrega  `gorm:"foreignKey:ClienteID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"cliente"`
	CodigoRastreio string          `gorm:"type:varchar(36);uniqueIndex" json:"codigo_rastreio"`
	Status         string          `gorm:"type:varchar(30);not null;default:'pendente';index" json:"status"`
	Total          decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total"`
	TaxaEntrega    decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"taxa_entrega"`
	FormaPagamento string          `gorm:"type:varchar(30);not null" json:"forma_pagamento"`
	Observacoes    string          `gorm:"type:text" json:"observacoes"`
	Itens          []ItemEntrega   `gorm:"foreignKey:PedidoEntregaID" json:"itens"`
	CreatedAt      time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"not null" json:"updated_at"`
}

type ItemEntrega struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	PedidoEntregaID uint            `gorm:"not null;index" json:"pedido_entrega_id"`
	ProdutoID       uint            `gorm:"not null" json:"produto_id"`
	Produto         Produto         `gorm:"foreignKey:ProdutoID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"produto"`
	SaborID         *uint           `json:"sabor_id,omitempty"`
	Sabor           *Sabor          `gorm:"foreignKey:SaborID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"sabor,omitempty"`
	Quantidade      int             `gorm:"not null" json:"quantidade"`
	PrecoUnitario   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"preco_unitario"`
	Subtotal        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"subtotal"`
	Observacoes     string          `gorm:"type:text" json:"observacoes"`
	CreatedAt       time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"not null" json:"updated_at"`
}
