package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Galdes/pdv-sorv-sub000/models"
	"github.com/Galdes/pdv-sorv-sub000/utils"
)

type SaborController struct {
	DB *gorm.DB
}

func NewSaborController(db *gorm.DB) *SaborController {
	return &SaborController{DB: db}
}

func (sc *SaborController) GetAllSabores(c *gin.Context) {
	query := sc.DB.Order("nome asc")
	if c.Query("ativos") == "true" {
		query = query.Where("ativo = ?", true)
	}

	var sabores []models.Sabor
	if err := query.Find(&sabores).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Lista de sabores", sabores)
}

func (sc *SaborController) CreateSabor(c *gin.Context) {
	var req struct {
		Nome string `json:"nome" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	sabor := models.Sabor{Nome: req.Nome, Ativo: true}
	if err := sc.DB.Create(&sabor).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Sabor cadastrado", sabor)
}

func (sc *SaborController) UpdateSabor(c *gin.Context) {
	var sabor models.Sabor
	if err := sc.DB.First(&sabor, c.Param("sabor_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req struct {
		Nome  *string `json:"nome"`
		Ativo *bool   `json:"ativo"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Nome != nil {
		sabor.Nome = *req.Nome
	}
	if req.Ativo != nil {
		sabor.Ativo = *req.Ativo
	}

	if err := sc.DB.Save(&sabor).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Sabor atualizado", sabor)
}

// DeleteSabor desativa; pedidos antigos continuam apontando para ele.
func (sc *SaborController) DeleteSabor(c *gin.Context) {
	var sabor models.Sabor
	if err := sc.DB.First(&sabor, c.Param("sabor_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	sabor.Ativo = false
	if err := sc.DB.Save(&sabor).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Sabor desativado", gin.H{"sabor_id": sabor.ID})
}
