package services_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Galdes/pdv-sorv-sub000/models"
	"github.com/Galdes/pdv-sorv-sub000/services"
)

func setupEntregaDB(t *testing.T) *gorm.DB {
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
	db.Create(&models.Produto{CategoriaID: 1, Nome: "Pote 1L", Preco: decimal.NewFromInt(40), Ativo: true})
	db.Create(&models.Sabor{Nome: "Chocolate", Ativo: true})
	return db
}

func carrinhoBase(itens []services.ItemCarrinho) services.DadosCheckout {
	return services.DadosCheckout{
		Telefone:       "11966660001",
		Nome:           "Diego",
		Endereco:       "Rua das Palmeiras, 100",
		Bairro:         "Centro",
		FormaPagamento: "pix",
		Itens:          itens,
	}
}

func TestCheckoutGravaPedidoCompleto(t *testing.T) {
	db := setupEntregaDB(t)
	svc := services.NewEntregaService(db)

	saborID := uint(1)
	pedido, err := svc.Checkout(carrinhoBase([]services.ItemCarrinho{
		{ProdutoID: 1, SaborID: &saborID, Quantidade: 2},
		{ProdutoID: 2, Quantidade: 1, Observacoes: "bem gelado"},
	}))
	assert.NoError(t, err)

	assert.NotEmpty(t, pedido.CodigoRastreio)
	assert.Equal(t, models.EntregaPendente, pedido.Status)
	assert.Len(t, pedido.Itens, 2)
	// 2 x 22,50 + 40,00
	assert.True(t, pedido.Total.Equal(decimal.RequireFromString("85.00")), "total: %s", pedido.Total)

	assert.Equal(t, "Diego", pedido.Cliente.Nome)
	assert.Equal(t, "Rua das Palmeiras, 100", pedido.Cliente.Endereco)

	// Preco congelado por item
	assert.True(t, pedido.Itens[0].PrecoUnitario.Equal(decimal.RequireFromString("22.50")))
	assert.True(t, pedido.Itens[0].Subtotal.Equal(decimal.RequireFromString("45.00")))
}

func TestCheckoutRejeitaCarrinhoInvalido(t *testing.T) {
	db := setupEntregaDB(t)
	svc := services.NewEntregaService(db)

	_, err := svc.Checkout(carrinhoBase(nil))
	assert.Error(t, err)

	_, err = svc.Checkout(carrinhoBase([]services.ItemCarrinho{{ProdutoID: 1, Quantidade: 0}}))
	assert.ErrorIs(t, err, services.ErrQuantidadeInvalida)
}

func TestCheckoutComProdutoInativoNaoGravaNada(t *testing.T) {
	db := setupEntregaDB(t)
	db.Model(&models.Produto{}).Where("id = ?", 2).Update("ativo", false)

	svc := services.NewEntregaService(db)
	_, err := svc.Checkout(carrinhoBase([]services.ItemCarrinho{
		{ProdutoID: 1, Quantidade: 1},
		{ProdutoID: 2, Quantidade: 1},
	}))
	assert.ErrorIs(t, err, services.ErrProdutoInativo)

	// O item valido do mesmo carrinho tambem nao entra
	var pedidos, clientes int64
	db.Model(&models.PedidoEntrega{}).Count(&pedidos)
	db.Model(&models.ClienteEntrega{}).Count(&clientes)
	assert.Zero(t, pedidos)
	assert.Zero(t, clientes)
}

func TestFluxoDeStatusDaEntrega(t *testing.T) {
	db := setupEntregaDB(t)
	svc := services.NewEntregaService(db)

	pedido, err := svc.Checkout(carrinhoBase([]services.ItemCarrinho{{ProdutoID: 1, Quantidade: 1}}))
	assert.NoError(t, err)

	for _, status := range []string{models.EntregaPreparando, models.EntregaSaiu, models.EntregaEntregue} {
		pedido, err = svc.AtualizarStatus(pedido.ID, status)
		assert.NoError(t, err)
		assert.Equal(t, status, pedido.Status)
	}

	// Entregue e terminal
	_, err = svc.AtualizarStatus(pedido.ID, models.EntregaCancelado)
	assert.ErrorIs(t, err, services.ErrTransicaoInvalida)
}

func TestEntregaNaoCancelaDepoisQueSaiu(t *testing.T) {
	db := setupEntregaDB(t)
	svc := services.NewEntregaService(db)

	pedido, err := svc.Checkout(carrinhoBase([]services.ItemCarrinho{{ProdutoID: 1, Quantidade: 1}}))
	assert.NoError(t, err)

	_, err = svc.AtualizarStatus(pedido.ID, models.EntregaPreparando)
	assert.NoError(t, err)
	_, err = svc.AtualizarStatus(pedido.ID, models.EntregaSaiu)
	assert.NoError(t, err)

	_, err = svc.AtualizarStatus(pedido.ID, models.EntregaCancelado)
	assert.ErrorIs(t, err, services.ErrTransicaoInvalida)
}
