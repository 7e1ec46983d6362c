package Controllers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Galdes/pdv-sorv-sub000/controllers"
	"github.com/Galdes/pdv-sorv-sub000/models"
)

func setupTestDBForEntregas(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("falha ao abrir banco de teste: %v", err)
	}
	err = db.AutoMigrate(
		&models.Categoria{}, &models.Produto{}, &models.Sabor{},
		&models.ClienteEntrega{}, &models.PedidoEntrega{}, &models.ItemEntrega{},
	)
	if err != nil {
		t.Fatalf("falha no AutoMigrate: %v", err)
	}

	db.Create(&models.Categoria{Nome: "Potes"})
	db.Create(&models.Produto{CategoriaID: 1, Nome: "Pote 500ml", Preco: decimal.RequireFromString("22.50"), Ativo: true})
	return db
}

func setupEntregaRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	entregaCtrl := controllers.NewEntregaController(db)
	router.POST("/entregas", entregaCtrl.Checkout)
	router.GET("/entregas/rastreio/:codigo", entregaCtrl.Rastrear)
	router.GET("/admin/entregas", entregaCtrl.GetAllEntregas)
	router.PATCH("/admin/entregas/:entrega_id/status", entregaCtrl.AtualizarStatus)
	return router
}

func checkoutPayload() map[string]interface{} {
	return map[string]interface{}{
		"telefone":        "11966660000",
		"nome":            "Diego",
		"endereco":        "Rua das Palmeiras, 100",
		"forma_pagamento": "pix",
		"itens": []map[string]interface{}{
			{"produto_id": 1, "quantidade": 2},
		},
	}
}

func TestCheckoutEPublicoERetornaRastreio(t *testing.T) {
	db := setupTestDBForEntregas(t)
	router := setupEntregaRouter(db)

	w := doJSON(t, router, "POST", "/entregas", checkoutPayload())
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	codigo, ok := data["codigo_rastreio"].(string)
	assert.True(t, ok)
	assert.NotEmpty(t, codigo)

	// O cliente acompanha sem login
	w = doJSON(t, router, "GET", "/entregas/rastreio/"+codigo, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	rastreio := resp["data"].(map[string]interface{})
	assert.Equal(t, "pendente", rastreio["status"])
}

func TestCheckoutComCarrinhoVazio(t *testing.T) {
	db := setupTestDBForEntregas(t)
	router := setupEntregaRouter(db)

	payload := checkoutPayload()
	delete(payload, "itens")
	w := doJSON(t, router, "POST", "/entregas", payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAtualizarStatusDaEntregaViaHTTP(t *testing.T) {
	db := setupTestDBForEntregas(t)
	router := setupEntregaRouter(db)

	w := doJSON(t, router, "POST", "/entregas", checkoutPayload())
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, "PATCH", "/admin/entregas/1/status", map[string]string{"status": "preparando"})
	assert.Equal(t, http.StatusOK, w.Code)

	// Pular direto para entregue fere o fluxo -> 422
	w = doJSON(t, router, "PATCH", "/admin/entregas/1/status", map[string]string{"status": "entregue"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestListaDeEntregasFiltraPorStatus(t *testing.T) {
	db := setupTestDBForEntregas(t)
	router := setupEntregaRouter(db)

	doJSON(t, router, "POST", "/entregas", checkoutPayload())
	doJSON(t, router, "POST", "/entregas", checkoutPayload())
	doJSON(t, router, "PATCH", "/admin/entregas/1/status", map[string]string{"status": "preparando"})

	w := doJSON(t, router, "GET", "/admin/entregas?status=pendente", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp["data"], 1)
}
