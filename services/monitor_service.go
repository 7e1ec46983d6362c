package services

import (
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/Galdes/pdv-sorv-sub000/models"
	"github.com/Galdes/pdv-sorv-sub000/realtime"
)

// RefreshMonitor mantem o contrato de atualizacao periodica dos paineis:
// a cozinha tolera ate 30s de atraso, a caixa de WhatsApp ate 10s. Clientes
// com websocket recebem os snapshots sem precisar fazer polling HTTP.
type RefreshMonitor struct {
	DB       *gorm.DB
	StopChan chan struct{}

	IntervaloCozinha   time.Duration
	IntervaloConversas time.Duration
}

func NewRefreshMonitor(db *gorm.DB) *RefreshMonitor {
	return &RefreshMonitor{
		DB:                 db,
		StopChan:           make(chan struct{}),
		IntervaloCozinha:   30 * time.Second,
		IntervaloConversas: 10 * time.Second,
	}
}

func (m *RefreshMonitor) Start() {
	go func() {
		cozinha := time.NewTicker(m.IntervaloCozinha)
		conversas := time.NewTicker(m.IntervaloConversas)
		defer cozinha.Stop()
		defer conversas.Stop()

		for {
			select {
			case <-cozinha.C:
				m.publicarCozinha()
			case <-conversas.C:
				m.publicarConversas()
			case <-m.StopChan:
				return
			}
		}
	}()
}

func (m *RefreshMonitor) Stop() {
	close(m.StopChan)
}

func (m *RefreshMonitor) publicarCozinha() {
	var pedidos []models.Pedido
	err := m.DB.Preload("Produto").Preload("Sabor").
		Where("status IN ?", []string{models.PedidoPendente, models.PedidoPreparando}).
		Order("created_at asc").
		Find(&pedidos).Error
	if err != nil {
		log.Printf("monitor: erro ao carregar painel da cozinha: %v", err)
		return
	}
	realtime.BroadcastCozinhaUpdate(pedidos)
}

func (m *RefreshMonitor) publicarConversas() {
	var conversas []models.ConversaWhatsapp
	err := m.DB.
		Order("updated_at desc").
		Limit(100).
		Find(&conversas).Error
	if err != nil {
		log.Printf("monitor: erro ao carregar conversas: %v", err)
		return
	}
	realtime.BroadcastMessage(realtime.Message{
		Event: realtime.EventConversaUpdate,
		Data:  conversas,
	})
}
