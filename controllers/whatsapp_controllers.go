package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Galdes/pdv-sorv-sub000/models"
	"github.com/Galdes/pdv-sorv-sub000/realtime"
	"github.com/Galdes/pdv-sorv-sub000/services"
	"github.com/Galdes/pdv-sorv-sub000/utils"
)

type WhatsappController struct {
	DB       *gorm.DB
	Whatsapp *services.WhatsappService
}

func NewWhatsappController(db *gorm.DB) *WhatsappController {
	return &WhatsappController{
		DB:       db,
		Whatsapp: services.NewWhatsappService(db, services.NewHTTPGateway()),
	}
}

// Webhook -> entrada de mensagens do relay (endpoint publico)
func (wc *WhatsappController) Webhook(c *gin.Context) {
	var req struct {
		Telefone string `json:"telefone" binding:"required"`
		Nome     string `json:"nome"`
		Mensagem string `json:"mensagem" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	conversa, mensagem, err := wc.Whatsapp.ReceberMensagem(req.Telefone, req.Nome, req.Mensagem)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	realtime.BroadcastConversaUpdate(*conversa)
	utils.RespondJSON(c, http.StatusOK, "Mensagem recebida", gin.H{
		"conversa_id": conversa.ID,
		"mensagem_id": mensagem.ID,
	})
}

// GetAllConversas -> caixa de entrada, mais recentes primeiro.
// O front repete este GET a cada 10s; e ele que define o que esta na tela.
func (wc *WhatsappController) GetAllConversas(c *gin.Context) {
	var conversas []models.ConversaWhatsapp
	if err := wc.DB.Order("updated_at desc").Limit(100).Find(&conversas).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Caixa de conversas", conversas)
}

func (wc *WhatsappController) GetConversaByID(c *gin.Context) {
	var conversa models.ConversaWhatsapp
	err := wc.DB.
		Preload("Mensagens", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at asc")
		}).
		First(&conversa, c.Param("conversa_id")).Error
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Detalhe da conversa", conversa)
}

// Responder -> atendente envia uma resposta pela conversa
func (wc *WhatsappController) Responder(c *gin.Context) {
	var req struct {
		Mensagem string `json:"mensagem" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var conversa models.ConversaWhatsapp
	if err := wc.DB.First(&conversa, c.Param("conversa_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	mensagem, err := wc.Whatsapp.ResponderConversa(conversa.ID, usuarioDoContexto(c), req.Mensagem)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	realtime.BroadcastConversaUpdate(conversa)
	utils.RespondJSON(c, http.StatusCreated, "Resposta enviada", mensagem)
}

// MarcarComoLida zera o contador de nao lidas da conversa.
func (wc *WhatsappController) MarcarComoLida(c *gin.Context) {
	var conversa models.ConversaWhatsapp
	if err := wc.DB.First(&conversa, c.Param("conversa_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if err := wc.Whatsapp.MarcarComoLida(conversa.ID); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Conversa marcada como lida", gin.H{"conversa_id": conversa.ID})
}

func usuarioDoContexto(c *gin.Context) uint {
	if v, exists := c.Get("user_id"); exists {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}
