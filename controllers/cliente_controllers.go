package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Galdes/pdv-sorv-sub000/models"
	"github.com/Galdes/pdv-sorv-sub000/services"
	"github.com/Galdes/pdv-sorv-sub000/utils"
)

type ClienteController struct {
	DB       *gorm.DB
	Comandas *services.ComandaService
}

func NewClienteController(db *gorm.DB) *ClienteController {
	return &ClienteController{DB: db, Comandas: services.NewComandaService(db)}
}

// GetAllClientes -> clientes de salao
func (cc *ClienteController) GetAllClientes(c *gin.Context) {
	var clientes []models.Cliente
	if err := cc.DB.Order("created_at desc").Find(&clientes).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Lista de clientes", clientes)
}

func (cc *ClienteController) GetClienteByID(c *gin.Context) {
	var cliente models.Cliente
	if err := cc.DB.First(&cliente, c.Param("cliente_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Detalhe do cliente", cliente)
}

// CreateCliente -> cadastro manual pelo staff (o fluxo normal e o
// find-or-create na abertura da comanda)
func (cc *ClienteController) CreateCliente(c *gin.Context) {
	var req struct {
		Telefone string `json:"telefone" binding:"required"`
		Nome     string `json:"nome"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	cliente, err := cc.Comandas.FindOrCreateCliente(req.Telefone, req.Nome)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Cliente cadastrado", cliente)
}

// GetAllClientesEntrega -> cadastros do delivery (modelo paralelo, com
// endereco)
func (cc *ClienteController) GetAllClientesEntrega(c *gin.Context) {
	var clientes []models.ClienteEntrega
	if err := cc.DB.Order("created_at desc").Find(&clientes).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Lista de clientes de entrega", clientes)
}
