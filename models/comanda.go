package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status possiveis de uma comanda
const (
	ComandaAberta  = "aberta"
	ComandaFechada = "fechada"
	ComandaPaga    = "paga"
)

// Comanda representa uma visita de um cliente a uma mesa.
// Invariante: no maximo UMA comanda aberta por mesa (ver services.ComandaService).
type Comanda struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	MesaID    uint            `gorm:"not null;index" json:"mesa_id"`
	Mesa      Mesa            `gorm:"foreignKey:MesaID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"mesa"`
	ClienteID uint            `gorm:"not null;index" json:"cliente_id"`
	Cliente   Cliente         `gorm:"foreignKey:ClienteID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"cliente"`
	Status    string          `gorm:"type:varchar(20);not null;default:'aberta';index" json:"status"`
	// Total informativo, recalculado a partir dos pedidos
	Total     decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"total"`
	Pedidos   []Pedido        `gorm:"foreignKey:ComandaID" json:"pedidos,omitempty"`
	CreatedAt time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time       `gorm:"not null" json:"updated_at"`
}
