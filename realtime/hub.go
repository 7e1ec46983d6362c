package realtime

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/Galdes/pdv-sorv-sub000/models"
)

// Eventos emitidos pelo hub
const (
	EventPedidoUpdate    = "pedido_update"
	EventCozinhaUpdate   = "cozinha_update"
	EventPagamentoUpdate = "pagamento_update"
	EventComandaUpdate   = "comanda_update"
	EventMesaUpdate      = "mesa_update"
	EventConversaUpdate  = "conversa_update"
	EventEntregaUpdate   = "entrega_update"
	EventNotificacao     = "notificacao_staff"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub guarda as conexoes de painel (cozinha, atendente, admin) e distribui
// os eventos. O contrato de atualizacao continua sendo o dos GETs de
// polling; o socket so encurta a espera.
type Hub struct {
	clients map[*websocket.Conn]string // conn -> role
	mutex   sync.Mutex
}

var hub = Hub{
	clients: make(map[*websocket.Conn]string),
}

func RegisterClient(conn *websocket.Conn, role string) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.clients[conn] = role
}

func UnregisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.clients, conn)
	conn.Close()
}

// BroadcastMessage envia para todos os clientes conectados.
func BroadcastMessage(msg Message) {
	payload, err := json.Marshal(msg)
	if err != nil {
		log.Printf("erro ao serializar evento %s: %v", msg.Event, err)
		return
	}

	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	for conn := range hub.clients {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			delete(hub.clients, conn)
			conn.Close()
		}
	}
}

// broadcastPara envia apenas para os roles informados.
func broadcastPara(msg Message, roles ...string) {
	payload, err := json.Marshal(msg)
	if err != nil {
		log.Printf("erro ao serializar evento %s: %v", msg.Event, err)
		return
	}

	permitido := make(map[string]bool, len(roles))
	for _, r := range roles {
		permitido[r] = true
	}

	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	for conn, role := range hub.clients {
		if !permitido[role] {
			continue
		}
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			delete(hub.clients, conn)
			conn.Close()
		}
	}
}

func BroadcastPedidoUpdate(pedido models.Pedido) {
	BroadcastMessage(Message{Event: EventPedidoUpdate, Data: pedido})
}

func BroadcastCozinhaUpdate(data interface{}) {
	broadcastPara(Message{Event: EventCozinhaUpdate, Data: data}, "cozinha", "atendente", "admin")
}

func BroadcastPagamentoUpdate(pagamento models.PagamentoMesa) {
	broadcastPara(Message{Event: EventPagamentoUpdate, Data: pagamento}, "atendente", "admin")
}

func BroadcastComandaUpdate(comanda models.Comanda) {
	broadcastPara(Message{Event: EventComandaUpdate, Data: comanda}, "atendente", "admin")
}

func BroadcastMesaUpdate(data interface{}) {
	broadcastPara(Message{Event: EventMesaUpdate, Data: data}, "atendente", "admin")
}

func BroadcastConversaUpdate(conversa models.ConversaWhatsapp) {
	broadcastPara(Message{Event: EventConversaUpdate, Data: conversa}, "atendente", "admin")
}

func BroadcastEntregaUpdate(pedido models.PedidoEntrega) {
	broadcastPara(Message{Event: EventEntregaUpdate, Data: pedido}, "cozinha", "atendente", "admin")
}

func BroadcastNotificacaoStaff(texto string) {
	broadcastPara(Message{Event: EventNotificacao, Data: map[string]string{"mensagem": texto}}, "atendente", "admin")
}
