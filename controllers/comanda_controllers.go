package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Galdes/pdv-sorv-sub000/models"
	"github.com/Galdes/pdv-sorv-sub000/realtime"
	"github.com/Galdes/pdv-sorv-sub000/services"
	"github.com/Galdes/pdv-sorv-sub000/utils"
)

type ComandaController struct {
	DB       *gorm.DB
	Comandas *services.ComandaService
}

func NewComandaController(db *gorm.DB) *ComandaController {
	return &ComandaController{DB: db, Comandas: services.NewComandaService(db)}
}

// VerificarMesa e a checagem usada pela tela do QR antes de pedir telefone:
// mostra "mesa ocupada" sem abrir nada.
func (cc *ComandaController) VerificarMesa(c *gin.Context) {
	var mesa models.Mesa
	if err := cc.DB.Where("qr_token = ?", c.Param("qr_token")).First(&mesa).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("mesa nao encontrada"))
		return
	}

	livre, err := cc.Comandas.PodeAbrirComanda(mesa.ID)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Situacao da mesa", gin.H{
		"mesa_id": mesa.ID,
		"numero":  mesa.Numero,
		"ativa":   mesa.Ativa,
		"livre":   livre,
	})
}

// AbrirComanda: o servico recheca a disponibilidade dentro da transacao.
// Perder a corrida vira 409 e o front redireciona para escolher outra mesa.
func (cc *ComandaController) AbrirComanda(c *gin.Context) {
	var mesa models.Mesa
	if err := cc.DB.Where("qr_token = ?", c.Param("qr_token")).First(&mesa).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("mesa nao encontrada"))
		return
	}

	var req struct {
		Telefone string `json:"telefone" binding:"required"`
		Nome     string `json:"nome"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	comanda, err := cc.Comandas.AbrirComanda(mesa.ID, req.Telefone, req.Nome)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMesaOcupada):
			c.JSON(http.StatusConflict, gin.H{
				"status":      false,
				"message":     err.Error(),
				"redirecionar": "/mesas", // a mesa acabou de ser ocupada; escolha outra
			})
		case errors.Is(err, services.ErrMesaInativa):
			utils.RespondError(c, http.StatusConflict, err)
		default:
			utils.RespondError(c, http.StatusInternalServerError, err)
		}
		return
	}

	realtime.BroadcastComandaUpdate(*comanda)
	utils.InfoLogger.Printf("Comanda %d aberta na mesa %d (cliente %d)", comanda.ID, mesa.ID, comanda.ClienteID)
	utils.RespondJSON(c, http.StatusCreated, "Comanda aberta", comanda)
}

// GetComandaByID -> comanda com pedidos
func (cc *ComandaController) GetComandaByID(c *gin.Context) {
	var comanda models.Comanda
	if err := cc.DB.Preload("Pedidos").Preload("Pedidos.Produto").Preload("Cliente").Preload("Mesa").
		First(&comanda, c.Param("comanda_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Detalhe da comanda", comanda)
}

// ListarComandas -> filtro opcional por mesa e status
func (cc *ComandaController) ListarComandas(c *gin.Context) {
	query := cc.DB.Preload("Cliente").Preload("Mesa").Order("created_at desc")

	if mesaID := c.Query("mesa_id"); mesaID != "" {
		query = query.Where("mesa_id = ?", mesaID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var comandas []models.Comanda
	if err := query.Find(&comandas).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Lista de comandas", comandas)
}

// FecharComanda -> staff encerra a visita; saldo restante continua devido
// pela mesa.
func (cc *ComandaController) FecharComanda(c *gin.Context) {
	idStr := c.Param("comanda_id")

	var comanda models.Comanda
	if err := cc.DB.First(&comanda, idStr).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	fechada, err := cc.Comandas.FecharComanda(comanda.ID)
	if err != nil {
		if errors.Is(err, services.ErrComandaFechada) {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	realtime.BroadcastComandaUpdate(*fechada)
	utils.RespondJSON(c, http.StatusOK, "Comanda fechada", fechada)
}
