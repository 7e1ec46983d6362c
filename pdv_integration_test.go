package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Galdes/pdv-sorv-sub000/models"
	"github.com/Galdes/pdv-sorv-sub000/router"
	"github.com/Galdes/pdv-sorv-sub000/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// TestFluxoCompletoDoSalao percorre o caminho feliz inteiro:
// 1. Login do admin -> token
// 2. Admin cadastra mesa e cardapio
// 3. Cliente escaneia o QR e abre a comanda
// 4. Cliente lanca dois pedidos
// 5. Cozinha prepara e entrega
// 6. Caixa acerta parcial e depois quita a mesa
func TestFluxoCompletoDoSalao(t *testing.T) {
	db := setupIntegrationDB(t)
	r := router.SetupRouter(db)

	token := loginAdmin(t, r)

	qrToken := criarMesa(t, r, token)
	produtoID := montarCardapio(t, r, token)

	comandaID := abrirComandaViaQR(t, r, qrToken)

	pedido1 := lancarPedido(t, r, comandaID, produtoID, 1) // R$ 12,00
	pedido2 := lancarPedido(t, r, comandaID, produtoID, 2) // R$ 24,00

	prepararEEntregar(t, r, token, pedido1)
	prepararEEntregar(t, r, token, pedido2)

	// Conta da mesa antes do acerto
	data := getJSON(t, r, "/admin/mesas/1/conta", token)
	assert.Equal(t, "R$ 36,00", data["total_formatado"])

	// Acerto parcial de R$ 20,00: pedido mais antigo quitado, o outro fica
	// com saldo
	w := request(t, r, "POST", "/admin/mesas/1/pagamentos/parcial",
		map[string]interface{}{"valor": "20.00"}, token)
	assert.Equal(t, http.StatusCreated, w.Code)

	data = getJSON(t, r, "/admin/mesas/1/conta", token)
	assert.Equal(t, "R$ 16,00", data["total_formatado"])

	// Quitacao final
	w = request(t, r, "POST", "/admin/mesas/1/pagamentos/total", nil, token)
	assert.Equal(t, http.StatusCreated, w.Code)

	data = getJSON(t, r, "/admin/mesas/1/conta", token)
	assert.Equal(t, "R$ 0,00", data["total_formatado"])

	// Historico append-only com os dois acertos
	w = request(t, r, "GET", "/admin/mesas/1/pagamentos", nil, token)
	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp["data"], 2)

	// Mesa liberada para a proxima visita
	w = request(t, r, "GET", "/mesas/"+qrToken+"/verificar", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["data"].(map[string]interface{})["livre"])
}

func setupIntegrationDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("falha ao abrir banco de teste: %v", err)
	}
	err = db.AutoMigrate(
		&models.Usuario{}, &models.Mesa{}, &models.Cliente{},
		&models.Categoria{}, &models.Produto{}, &models.Sabor{},
		&models.Comanda{}, &models.Pedido{},
		&models.PagamentoMesa{}, &models.PagamentoPedido{},
		&models.ClienteEntrega{}, &models.PedidoEntrega{}, &models.ItemEntrega{},
		&models.ConversaWhatsapp{}, &models.MensagemWhatsapp{},
	)
	if err != nil {
		t.Fatalf("falha no AutoMigrate: %v", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("senha123"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("falha no bcrypt: %v", err)
	}
	db.Create(&models.Usuario{Nome: "Admin", Email: "admin@pdv.test", Senha: string(hashed), Role: "admin"})
	return db
}

func request(t *testing.T, r *gin.Engine, method, url string, payload interface{}, token string) *httptest.ResponseRecorder {
	body := bytes.NewBuffer(nil)
	if payload != nil {
		raw, err := json.Marshal(payload)
		assert.NoError(t, err)
		body = bytes.NewBuffer(raw)
	}
	req, err := http.NewRequest(method, url, body)
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func getJSON(t *testing.T, r *gin.Engine, url, token string) map[string]interface{} {
	w := request(t, r, "GET", url, nil, token)
	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp["data"].(map[string]interface{})
}

func loginAdmin(t *testing.T, r *gin.Engine) string {
	w := request(t, r, "POST", "/login",
		map[string]string{"email": "admin@pdv.test", "senha": "senha123"}, "")
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	token := resp["data"].(map[string]interface{})["token"].(string)
	assert.NotEmpty(t, token)
	return token
}

func criarMesa(t *testing.T, r *gin.Engine, token string) string {
	w := request(t, r, "POST", "/admin/mesas", map[string]interface{}{"numero": 1}, token)
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp["data"].(map[string]interface{})["qr_token"].(string)
}

func montarCardapio(t *testing.T, r *gin.Engine, token string) int {
	w := request(t, r, "POST", "/admin/categorias", map[string]string{"nome": "Tacas"}, token)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = request(t, r, "POST", "/admin/produtos", map[string]interface{}{
		"categoria_id": 1,
		"nome":         "Taca Brigadeiro",
		"preco":        "12.00",
	}, token)
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return int(resp["data"].(map[string]interface{})["id"].(float64))
}

func abrirComandaViaQR(t *testing.T, r *gin.Engine, qrToken string) int {
	w := request(t, r, "POST", "/mesas/"+qrToken+"/abrir-comanda",
		map[string]string{"telefone": "11999998888", "nome": "Ana"}, "")
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return int(resp["data"].(map[string]interface{})["id"].(float64))
}

func lancarPedido(t *testing.T, r *gin.Engine, comandaID, produtoID, quantidade int) int {
	w := request(t, r, "POST", "/comandas/"+strconv.Itoa(comandaID)+"/pedidos", map[string]interface{}{
		"produto_id": produtoID,
		"quantidade": quantidade,
	}, "")
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return int(resp["data"].(map[string]interface{})["id"].(float64))
}

func prepararEEntregar(t *testing.T, r *gin.Engine, token string, pedidoID int) {
	w := request(t, r, "POST", "/admin/pedidos/"+strconv.Itoa(pedidoID)+"/iniciar-preparo", nil, token)
	assert.Equal(t, http.StatusOK, w.Code)
	w = request(t, r, "POST", "/admin/pedidos/"+strconv.Itoa(pedidoID)+"/entregar", nil, token)
	assert.Equal(t, http.StatusOK, w.Code)
}

