package models

import "time"

// Direcao de uma mensagem de WhatsApp
const (
	MensagemEntrada = "entrada"
	MensagemSaida   = "saida"
)

type ConversaWhatsapp struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Telefone       string    `gorm:"type:varchar(20);not null;uniqueIndex" json:"telefone"`
	Nome           string    `gorm:"type:varchar(255)" json:"nome"`
	UltimaMensagem string    `gorm:"type:text" json:"ultima_mensagem"`
	NaoLidas       int       `gorm:"not null;default:0" json:"nao_lidas"`
	Mensagens      []MensagemWhatsapp `gorm:"foreignKey:ConversaID" json:"mensagens,omitempty"`
	CreatedAt      time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time `gorm:"not null;index" json:"updated_at"`
}

type MensagemWhatsapp struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ConversaID uint      `gorm:"not null;index" json:"conversa_id"`
	Conversa   ConversaWhatsapp `gorm:"foreignKey:ConversaID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Direcao    string    `gorm:"type:varchar(10);not null" json:"direcao"`
	Conteudo   string    `gorm:"type:text;not null" json:"conteudo"`
	UsuarioID  *uint     `json:"usuario_id,omitempty"`
	CreatedAt  time.Time `gorm:"not null;index" json:"created_at"`
}
