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

func setupTestDBForMesas(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("falha ao abrir banco de teste: %v", err)
	}
	err = db.AutoMigrate(
		&models.Usuario{}, &models.Mesa{}, &models.Cliente{}, &models.Comanda{},
		&models.Pedido{}, &models.PagamentoMesa{}, &models.PagamentoPedido{},
	)
	if err != nil {
		t.Fatalf("falha no AutoMigrate: %v", err)
	}
	return db
}

func setupMesaRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	mesaCtrl := controllers.NewMesaController(db)
	router.GET("/admin/mesas", mesaCtrl.GetAllMesas)
	router.POST("/admin/mesas", mesaCtrl.CreateMesa)
	router.GET("/admin/mesas/:mesa_id/qr", mesaCtrl.GetMesaQR)
	router.PATCH("/admin/mesas/:mesa_id", mesaCtrl.UpdateMesa)
	router.DELETE("/admin/mesas/:mesa_id", mesaCtrl.DeleteMesa)
	return router
}

func TestCreateMesaGeraQRToken(t *testing.T) {
	db := setupTestDBForMesas(t)
	router := setupMesaRouter(db)

	w := doJSON(t, router, "POST", "/admin/mesas", map[string]interface{}{"numero": 7})
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.NotEmpty(t, data["qr_token"])
	assert.EqualValues(t, 4, data["capacidade"]) // default

	// O link do QR aponta para a abertura de comanda
	w = doJSON(t, router, "GET", "/admin/mesas/1/qr", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	qr := resp["data"].(map[string]interface{})
	assert.Contains(t, qr["link"], "/abrir-comanda")
}

func TestGetAllMesasDerivaOcupacao(t *testing.T) {
	db := setupTestDBForMesas(t)
	router := setupMesaRouter(db)

	db.Create(&models.Mesa{Numero: 1, Ativa: true, QRToken: "qr-a"})
	db.Create(&models.Mesa{Numero: 2, Ativa: true, QRToken: "qr-b"})
	db.Create(&models.Cliente{Telefone: "11900000000"})
	db.Create(&models.Comanda{MesaID: 1, ClienteID: 1, Status: models.ComandaAberta})

	w := doJSON(t, router, "GET", "/admin/mesas", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	mesas := resp["data"].([]interface{})
	assert.Len(t, mesas, 2)
	assert.Equal(t, true, mesas[0].(map[string]interface{})["ocupada"])
	assert.Equal(t, false, mesas[1].(map[string]interface{})["ocupada"])
}

func TestDeleteMesaPreservaHistoricoDePagamentos(t *testing.T) {
	db := setupTestDBForMesas(t)
	router := setupMesaRouter(db)

	db.Create(&models.Usuario{Nome: "Caixa", Email: "c@pdv.test", Senha: "x", Role: "atendente"})
	db.Create(&models.Mesa{Numero: 1, Ativa: true, QRToken: "qr-a"})
	db.Create(&models.PagamentoMesa{
		MesaID: 1, UsuarioID: 1, TipoPagamento: models.PagamentoTotal,
		ValorTotalMesa: decimal.NewFromInt(10),
		ValorPago:      decimal.NewFromInt(10),
		ValorRestante:  decimal.Zero,
	})

	// Com historico: soft delete
	w := doJSON(t, router, "DELETE", "/admin/mesas/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var mesa models.Mesa
	assert.NoError(t, db.First(&mesa, 1).Error)
	assert.False(t, mesa.Ativa)

	var pagamentos int64
	db.Model(&models.PagamentoMesa{}).Count(&pagamentos)
	assert.EqualValues(t, 1, pagamentos)
}

func TestDeleteMesaSemHistoricoRemoveDeVerdade(t *testing.T) {
	db := setupTestDBForMesas(t)
	router := setupMesaRouter(db)

	db.Create(&models.Mesa{Numero: 3, Ativa: true, QRToken: "qr-c"})

	w := doJSON(t, router, "DELETE", "/admin/mesas/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var mesas int64
	db.Model(&models.Mesa{}).Count(&mesas)
	assert.Zero(t, mesas)
}

func TestUpdateMesaParcial(t *testing.T) {
	db := setupTestDBForMesas(t)
	router := setupMesaRouter(db)

	db.Create(&models.Mesa{Numero: 1, Capacidade: 4, Ativa: true, QRToken: "qr-a", Descricao: "varanda"})

	w := doJSON(t, router, "PATCH", "/admin/mesas/1", map[string]interface{}{"capacidade": 6})
	assert.Equal(t, http.StatusOK, w.Code)

	var mesa models.Mesa
	db.First(&mesa, 1)
	assert.Equal(t, 6, mesa.Capacidade)
	assert.Equal(t, "varanda", mesa.Descricao) // campos omitidos ficam intactos
}
