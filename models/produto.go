package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Produto struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	CategoriaID uint            `gorm:"not null" json:"categoria_id"`
	Categoria   Categoria       `gorm:"foreignKey:CategoriaID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"categoria"`
	Nome        string          `gorm:"type:varchar(255);not null" json:"nome"`
	Preco       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"preco"`
	Descricao   string          `gorm:"type:text" json:"descricao"`
	ImagemUrl   *string         `gorm:"type:varchar(255)" json:"imagem_url,omitempty"`
	Ativo       bool            `gorm:"not null;default:true" json:"ativo"`
	CreatedAt   time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"not null" json:"updated_at"`
}
