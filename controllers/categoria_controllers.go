package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Galdes/pdv-sorv-sub000/models"
	"github.com/Galdes/pdv-sorv-sub000/utils"
)

type CategoriaController struct {
	DB *gorm.DB
}

func NewCategoriaController(db *gorm.DB) *CategoriaController {
	return &CategoriaController{DB: db}
}

func (cc *CategoriaController) GetAllCategorias(c *gin.Context) {
	var categorias []models.Categoria
	if err := cc.DB.Order("nome asc").Find(&categorias).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Lista de categorias", categorias)
}

func (cc *CategoriaController) CreateCategoria(c *gin.Context) {
	var req struct {
		Nome string `json:"nome" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	categoria := models.Categoria{Nome: req.Nome}
	if err := cc.DB.Create(&categoria).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Categoria cadastrada", categoria)
}

func (cc *CategoriaController) UpdateCategoria(c *gin.Context) {
	var categoria models.Categoria
	if err := cc.DB.First(&categoria, c.Param("categoria_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req struct {
		Nome string `json:"nome" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	categoria.Nome = req.Nome
	if err := cc.DB.Save(&categoria).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Categoria atualizada", categoria)
}

// DeleteCategoria bloqueia exclusao com produtos vinculados.
func (cc *CategoriaController) DeleteCategoria(c *gin.Context) {
	var categoria models.Categoria
	if err := cc.DB.First(&categoria, c.Param("categoria_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var produtos int64
	cc.DB.Model(&models.Produto{}).Where("categoria_id = ?", categoria.ID).Count(&produtos)
	if produtos > 0 {
		utils.RespondError(c, http.StatusConflict,
			fmt.Errorf("categoria possui %d produtos vinculados", produtos))
		return
	}

	if err := cc.DB.Delete(&categoria).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Categoria removida", gin.H{"categoria_id": categoria.ID})
}
