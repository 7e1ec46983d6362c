package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Galdes/pdv-sorv-sub000/models"
	"github.com/Galdes/pdv-sorv-sub000/utils"
)

type UsuarioController struct {
	DB *gorm.DB
}

func NewUsuarioController(db *gorm.DB) *UsuarioController {
	return &UsuarioController{DB: db}
}

// Register cria um usuario do back-office
func (uc *UsuarioController) Register(c *gin.Context) {
	type request struct {
		Nome  string `json:"nome" binding:"required"`
		Email string `json:"email" binding:"required,email"`
		Senha string `json:"senha" binding:"required"`
		Role  string `json:"role" binding:"required"` // admin, atendente, cozinha
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Senha), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	usuario := models.Usuario{
		Nome:  req.Nome,
		Email: req.Email,
		Senha: string(hashed),
		Role:  req.Role,
	}

	if err := uc.DB.Create(&usuario).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Novo usuario registrado: %s (role=%s)", usuario.Email, usuario.Role)

	utils.RespondJSON(c, http.StatusCreated, "Usuario registrado", gin.H{
		"usuario_id": usuario.ID,
	})
}

// Login -> devolve JWT
func (uc *UsuarioController) Login(c *gin.Context) {
	var input struct {
		Email string `json:"email" binding:"required"`
		Senha string `json:"senha" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var usuario models.Usuario
	if err := uc.DB.Where("email = ?", input.Email).First(&usuario).Error; err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("credenciais invalidas"))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(usuario.Senha), []byte(input.Senha)); err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("credenciais invalidas"))
		return
	}

	token, err := utils.GenerateToken(usuario.ID, usuario.Role)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Login realizado", gin.H{
		"token": token,
		"role":  strings.ToLower(usuario.Role),
	})
}

// Logout coloca o token atual na blacklist
func (uc *UsuarioController) Logout(c *gin.Context) {
	token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	if token != "" {
		utils.BlacklistToken(token)
	}
	utils.RespondJSON(c, http.StatusOK, "Logout realizado", nil)
}

// GetProfile -> dados do usuario autenticado
func (uc *UsuarioController) GetProfile(c *gin.Context) {
	userIDInterface, exists := c.Get("user_id")
	if !exists {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("usuario nao encontrado no contexto"))
		return
	}

	userID, ok := userIDInterface.(uint)
	if !ok {
		utils.RespondError(c, http.StatusInternalServerError, errors.New("user_id com tipo invalido"))
		return
	}

	var usuario models.Usuario
	if err := uc.DB.First(&usuario, userID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Perfil carregado", gin.H{
		"id":    usuario.ID,
		"nome":  usuario.Nome,
		"email": usuario.Email,
		"role":  usuario.Role,
	})
}

// GetAllUsuarios -> somente admin
func (uc *UsuarioController) GetAllUsuarios(c *gin.Context) {
	roleInterface, _ := c.Get("role")
	if roleInterface != "admin" {
		utils.RespondError(c, http.StatusForbidden, ErrSemPermissao)
		return
	}

	var usuarios []models.Usuario
	if err := uc.DB.Find(&usuarios).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Lista de usuarios", usuarios)
}

var ErrSemPermissao = &CustomError{"Voce nao tem permissao para esta operacao"}

type CustomError struct {
	Message string
}

func (e *CustomError) Error() string {
	return e.Message
}
