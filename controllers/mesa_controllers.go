package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Galdes/pdv-sorv-sub000/models"
	"github.com/Galdes/pdv-sorv-sub000/realtime"
	"github.com/Galdes/pdv-sorv-sub000/services"
	"github.com/Galdes/pdv-sorv-sub000/utils"
)

type MesaController struct {
	DB       *gorm.DB
	Comandas *services.ComandaService
}

func NewMesaController(db *gorm.DB) *MesaController {
	return &MesaController{DB: db, Comandas: services.NewComandaService(db)}
}

// CreateMesa -> cadastra uma mesa nova com token de QR
func (mc *MesaController) CreateMesa(c *gin.Context) {
	var req struct {
		Numero     int    `json:"numero" binding:"required"`
		Capacidade int    `json:"capacidade"`
		Descricao  string `json:"descricao"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	mesa := models.Mesa{
		Numero:     req.Numero,
		Capacidade: req.Capacidade,
		Ativa:      true,
		Descricao:  req.Descricao,
		QRToken:    uuid.NewString(),
	}
	if mesa.Capacidade == 0 {
		mesa.Capacidade = 4
	}

	if err := mc.DB.Create(&mesa).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	realtime.BroadcastMesaUpdate(mesa)
	utils.InfoLogger.Printf("Mesa %d cadastrada (id=%d)", mesa.Numero, mesa.ID)
	utils.RespondJSON(c, http.StatusCreated, "Mesa cadastrada", mesa)
}

// GetAllMesas lista as mesas com a situacao de ocupacao derivada das
// comandas abertas.
func (mc *MesaController) GetAllMesas(c *gin.Context) {
	var mesas []models.Mesa
	if err := mc.DB.Order("numero asc").Find(&mesas).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	type mesaComStatus struct {
		models.Mesa
		Ocupada bool `json:"ocupada"`
	}

	resposta := make([]mesaComStatus, 0, len(mesas))
	for _, mesa := range mesas {
		livre, err := mc.Comandas.PodeAbrirComanda(mesa.ID)
		if err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		resposta = append(resposta, mesaComStatus{Mesa: mesa, Ocupada: !livre})
	}

	utils.RespondJSON(c, http.StatusOK, "Lista de mesas", resposta)
}

// GetMesaByID -> detalhe de uma mesa
func (mc *MesaController) GetMesaByID(c *gin.Context) {
	mesaID := c.Param("mesa_id")
	var mesa models.Mesa
	if err := mc.DB.First(&mesa, mesaID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Detalhe da mesa", mesa)
}

// GetMesaQR devolve o link profundo do QR; a renderizacao da imagem e
// responsabilidade do front/impressao.
func (mc *MesaController) GetMesaQR(c *gin.Context) {
	mesaID := c.Param("mesa_id")
	var mesa models.Mesa
	if err := mc.DB.First(&mesa, mesaID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "QR da mesa", gin.H{
		"mesa_id":  mesa.ID,
		"numero":   mesa.Numero,
		"qr_token": mesa.QRToken,
		"link":     fmt.Sprintf("/mesas/%s/abrir-comanda", mesa.QRToken),
	})
}

// UpdateMesa -> edicao pelo admin
func (mc *MesaController) UpdateMesa(c *gin.Context) {
	mesaID := c.Param("mesa_id")

	var mesa models.Mesa
	if err := mc.DB.First(&mesa, mesaID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req struct {
		Numero     *int    `json:"numero"`
		Capacidade *int    `json:"capacidade"`
		Ativa      *bool   `json:"ativa"`
		Descricao  *string `json:"descricao"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Numero != nil {
		mesa.Numero = *req.Numero
	}
	if req.Capacidade != nil {
		mesa.Capacidade = *req.Capacidade
	}
	if req.Ativa != nil {
		mesa.Ativa = *req.Ativa
	}
	if req.Descricao != nil {
		mesa.Descricao = *req.Descricao
	}

	if err := mc.DB.Save(&mesa).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	realtime.BroadcastMesaUpdate(mesa)
	utils.RespondJSON(c, http.StatusOK, "Mesa atualizada", mesa)
}

// DeleteMesa: mesa com historico de pagamento nunca e apagada de verdade —
// apenas desativada, preservando a trilha de auditoria. Exclusao fisica so
// com historico zerado.
func (mc *MesaController) DeleteMesa(c *gin.Context) {
	mesaID := c.Param("mesa_id")

	var mesa models.Mesa
	if err := mc.DB.First(&mesa, mesaID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var pagamentos int64
	if err := mc.DB.Model(&models.PagamentoMesa{}).
		Where("mesa_id = ?", mesa.ID).
		Count(&pagamentos).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if pagamentos > 0 {
		mesa.Ativa = false
		if err := mc.DB.Save(&mesa).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		realtime.BroadcastMesaUpdate(mesa)
		utils.InfoLogger.Printf("Mesa %d desativada (possui %d pagamentos registrados)", mesa.ID, pagamentos)
		utils.RespondJSON(c, http.StatusOK, "Mesa desativada (historico de pagamentos preservado)", mesa)
		return
	}

	if err := mc.DB.Delete(&mesa).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	realtime.BroadcastMesaUpdate(gin.H{"mesa_id": mesa.ID, "removida": true})
	utils.InfoLogger.Printf("Mesa %d removida", mesa.ID)
	utils.RespondJSON(c, http.StatusOK, "Mesa removida", gin.H{"mesa_id": mesa.ID})
}
