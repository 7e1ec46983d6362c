package models

import "time"

type Categoria struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Nome      string    `gorm:"type:varchar(100);unique" json:"nome"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
