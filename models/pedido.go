package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status possiveis de um pedido
const (
	PedidoPendente   = "pendente"
	PedidoPreparando = "preparando"
	PedidoEntregue   = "entregue"
	PedidoPago       = "pago"
	PedidoCancelado  = "cancelado"
)

// Pedido e um item de linha dentro de uma comanda. O preco e congelado no
// momento da insercao (edicoes de cardapio nunca reprecificam pedidos).
// Invariante: 0 <= valor_restante <= subtotal; status 'pago' exatamente
// quando valor_restante = 0.
type Pedido struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	ComandaID     uint            `gorm:"not null;index" json:"comanda_id"`
	Comanda       Comanda         `gorm:"foreignKey:ComandaID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"comanda,omitempty"`
	ProdutoID     uint            `gorm:"not null" json:"produto_id"`
	Produto       Produto         `gorm:"foreignKey:ProdutoID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"produto"`
	SaborID       *uint           `gorm:"index" json:"sabor_id,omitempty"`
	Sabor         *Sabor          `gorm:"foreignKey:SaborID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"sabor,omitempty"`
	Quantidade    int             `gorm:"not null" json:"quantidade"`
	PrecoUnitario decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"preco_unitario"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"subtotal"`
	ValorPago     decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"valor_pago"`
	ValorRestante decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"valor_restante"`
	Status        string          `gorm:"type:varchar(20);not null;default:'pendente';index" json:"status"`
	Observacoes   string          `gorm:"type:text" json:"observacoes"`
	CreatedAt     time.Time       `gorm:"not null;index" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"not null" json:"updated_at"`
}
