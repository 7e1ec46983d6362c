package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"gorm.io/gorm"

	"github.com/Galdes/pdv-sorv-sub000/models"
	"github.com/Galdes/pdv-sorv-sub000/utils"
)

// GatewayWhatsapp e o relay externo de mensagens. Especificado apenas na
// interface: o envio real acontece fora do sistema.
type GatewayWhatsapp interface {
	EnviarMensagem(telefone, conteudo string) error
}

// HTTPGateway envia via POST para o relay configurado por ambiente.
type HTTPGateway struct {
	URL    string
	Token  string
	Client *http.Client
}

func NewHTTPGateway() *HTTPGateway {
	return &HTTPGateway{
		URL:    os.Getenv("WHATSAPP_GATEWAY_URL"),
		Token:  os.Getenv("WHATSAPP_GATEWAY_TOKEN"),
		Client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (g *HTTPGateway) EnviarMensagem(telefone, conteudo string) error {
	if g.URL == "" {
		// Sem gateway configurado: registra e segue (ambiente de dev)
		if utils.InfoLogger != nil {
			utils.InfoLogger.Printf("WhatsApp gateway nao configurado; mensagem para %s nao enviada", telefone)
		}
		return nil
	}

	payload, err := json.Marshal(map[string]string{
		"telefone": telefone,
		"mensagem": conteudo,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, g.URL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if g.Token != "" {
		req.Header.Set("Authorization", "Bearer "+g.Token)
	}

	resp, err := g.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("gateway respondeu %d", resp.StatusCode)
	}
	return nil
}

// WhatsappService mantem a caixa de conversas e delega o envio ao gateway.
type WhatsappService struct {
	db      *gorm.DB
	gateway GatewayWhatsapp
}

func NewWhatsappService(db *gorm.DB, gateway GatewayWhatsapp) *WhatsappService {
	return &WhatsappService{db: db, gateway: gateway}
}

// ReceberMensagem processa o webhook de entrada: localiza/cria a conversa
// pelo telefone e anexa a mensagem.
func (s *WhatsappService) ReceberMensagem(telefone, nome, conteudo string) (*models.ConversaWhatsapp, *models.MensagemWhatsapp, error) {
	if telefone == "" || conteudo == "" {
		return nil, nil, fmt.Errorf("telefone e mensagem sao obrigatorios")
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, nil, tx.Error
	}

	agora := time.Now()

	var conversa models.ConversaWhatsapp
	err := tx.Where("telefone = ?", telefone).First(&conversa).Error
	if err == gorm.ErrRecordNotFound {
		conversa = models.ConversaWhatsapp{
			Telefone:  telefone,
			Nome:      nome,
			CreatedAt: agora,
		}
		if err := tx.Create(&conversa).Error; err != nil {
			tx.Rollback()
			return nil, nil, err
		}
	} else if err != nil {
		tx.Rollback()
		return nil, nil, err
	}

	mensagem := models.MensagemWhatsapp{
		ConversaID: conversa.ID,
		Direcao:    models.MensagemEntrada,
		Conteudo:   conteudo,
		CreatedAt:  agora,
	}
	if err := tx.Create(&mensagem).Error; err != nil {
		tx.Rollback()
		return nil, nil, err
	}

	conversa.UltimaMensagem = conteudo
	conversa.NaoLidas++
	if nome != "" {
		conversa.Nome = nome
	}
	conversa.UpdatedAt = agora
	if err := tx.Save(&conversa).Error; err != nil {
		tx.Rollback()
		return nil, nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, nil, err
	}
	return &conversa, &mensagem, nil
}

// ResponderConversa grava a resposta do staff e repassa ao gateway.
// O registro local vem antes do envio: a caixa reflete o que o atendente
// escreveu mesmo se o relay estiver fora.
func (s *WhatsappService) ResponderConversa(conversaID, usuarioID uint, conteudo string) (*models.MensagemWhatsapp, error) {
	if conteudo == "" {
		return nil, fmt.Errorf("mensagem vazia")
	}

	var conversa models.ConversaWhatsapp
	if err := s.db.First(&conversa, conversaID).Error; err != nil {
		return nil, fmt.Errorf("conversa %d nao encontrada", conversaID)
	}

	agora := time.Now()
	mensagem := models.MensagemWhatsapp{
		ConversaID: conversa.ID,
		Direcao:    models.MensagemSaida,
		Conteudo:   conteudo,
		UsuarioID:  &usuarioID,
		CreatedAt:  agora,
	}
	if err := s.db.Create(&mensagem).Error; err != nil {
		return nil, err
	}

	conversa.UltimaMensagem = conteudo
	conversa.NaoLidas = 0
	conversa.UpdatedAt = agora
	if err := s.db.Save(&conversa).Error; err != nil {
		return nil, err
	}

	if err := s.gateway.EnviarMensagem(conversa.Telefone, conteudo); err != nil {
		if utils.ErrorLogger != nil {
			utils.ErrorLogger.Printf("Falha ao enviar mensagem pelo gateway: %v", err)
		}
	}
	return &mensagem, nil
}

// MarcarComoLida zera o contador da conversa.
func (s *WhatsappService) MarcarComoLida(conversaID uint) error {
	return s.db.Model(&models.ConversaWhatsapp{}).
		Where("id = ?", conversaID).
		Update("nao_lidas", 0).Error
}
