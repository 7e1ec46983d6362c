package models

import "time"

type Usuario struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Nome      string `gorm:"type:varchar(255);not null" json:"nome"`
	Email     string `gorm:"type:varchar(255);unique;not null" json:"email"`
	Senha     string `gorm:"type:varchar(255);not null" json:"-"`
	Role      string `gorm:"type:varchar(255);not null" json:"role"` // admin, atendente, cozinha
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
