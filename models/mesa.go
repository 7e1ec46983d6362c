package models

import "time"

type Mesa struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Numero    int       `gorm:"not null;uniqueIndex" json:"numero"`
	Capacidade int      `gorm:"not null;default:4" json:"capacidade"`
	Ativa     bool      `gorm:"not null;default:true" json:"ativa"`
	Descricao string    `gorm:"type:text" json:"descricao"`
	QRToken   string    `gorm:"type:varchar(36);uniqueIndex" json:"qr_token"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
