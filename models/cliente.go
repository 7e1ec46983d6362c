package models

import "time"

// Cliente de salao: identificado pelo telefone, criado no scan do QR.
type Cliente struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Telefone  string    `gorm:"type:varchar(20);not null;uniqueIndex" json:"telefone"`
	Nome      string    `gorm:"type:varchar(255)" json:"nome"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// ClienteEntrega e o modelo paralelo do delivery, que carrega endereco.
// Unificado com Cliente apenas em relatorios, nunca no fluxo de salao.
type ClienteEntrega struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Telefone    string    `gorm:"type:varchar(20);not null;index" json:"telefone"`
	Nome        string    `gorm:"type:varchar(255);not null" json:"nome"`
	Endereco    string    `gorm:"type:varchar(255);not null" json:"endereco"`
	Bairro      string    `gorm:"type:varchar(100)" json:"bairro"`
	Complemento string    `gorm:"type:varchar(255)" json:"complemento"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}
