package services_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/Galdes/pdv-sorv-sub000/models"
	"github.com/Galdes/pdv-sorv-sub000/services"
)

func TestAdicionarPedidoCongelaOPreco(t *testing.T) {
	db := setupPagamentoDB(t)
	comanda, _ := abrirComandaComPedidos(t, db, "11977770001", 0)

	pedidos := services.NewPedidoService(db)
	pedido, err := pedidos.AdicionarPedido(comanda.ID, 1, nil, 3, "sem calda")
	assert.NoError(t, err)

	assert.True(t, pedido.PrecoUnitario.Equal(decimal.NewFromInt(10)))
	assert.True(t, pedido.Subtotal.Equal(decimal.NewFromInt(30)))
	assert.True(t, pedido.ValorRestante.Equal(pedido.Subtotal))
	assert.True(t, pedido.ValorPago.IsZero())
	assert.Equal(t, models.PedidoPendente, pedido.Status)

	// Reajuste do cardapio nao mexe no pedido ja lancado
	db.Model(&models.Produto{}).Where("id = ?", 1).
		Update("preco", decimal.NewFromInt(99))

	var relido models.Pedido
	db.First(&relido, pedido.ID)
	assert.True(t, relido.PrecoUnitario.Equal(decimal.NewFromInt(10)))
	assert.True(t, relido.Subtotal.Equal(decimal.NewFromInt(30)))

	// Total informativo da comanda acompanha o lancamento
	var atual models.Comanda
	db.First(&atual, comanda.ID)
	assert.True(t, atual.Total.Equal(decimal.NewFromInt(30)))
}

func TestAdicionarPedidoValidaEntrada(t *testing.T) {
	db := setupPagamentoDB(t)
	comanda, _ := abrirComandaComPedidos(t, db, "11977770002", 0)

	pedidos := services.NewPedidoService(db)

	_, err := pedidos.AdicionarPedido(comanda.ID, 1, nil, 0, "")
	assert.ErrorIs(t, err, services.ErrQuantidadeInvalida)

	// Produto desativado
	db.Model(&models.Produto{}).Where("id = ?", 1).Update("ativo", false)
	_, err = pedidos.AdicionarPedido(comanda.ID, 1, nil, 1, "")
	assert.ErrorIs(t, err, services.ErrProdutoInativo)
	db.Model(&models.Produto{}).Where("id = ?", 1).Update("ativo", true)

	// Sabor desativado
	db.Create(&models.Sabor{Nome: "Pistache", Ativo: false})
	var sabor models.Sabor
	db.Where("nome = ?", "Pistache").First(&sabor)
	_, err = pedidos.AdicionarPedido(comanda.ID, 1, &sabor.ID, 1, "")
	assert.ErrorIs(t, err, services.ErrSaborInativo)
}

func TestAdicionarPedidoEmComandaFechada(t *testing.T) {
	db := setupPagamentoDB(t)
	comanda, _ := abrirComandaComPedidos(t, db, "11977770003", 1)

	comandas := services.NewComandaService(db)
	_, err := comandas.FecharComanda(comanda.ID)
	assert.NoError(t, err)

	pedidos := services.NewPedidoService(db)
	_, err = pedidos.AdicionarPedido(comanda.ID, 1, nil, 1, "")
	assert.ErrorIs(t, err, services.ErrComandaFechada)
}

func TestFluxoDeStatusDoPedido(t *testing.T) {
	db := setupPagamentoDB(t)
	_, ids := abrirComandaComPedidos(t, db, "11977770004", 1)

	pedidos := services.NewPedidoService(db)

	// pendente -> preparando -> entregue
	pedido, err := pedidos.AtualizarStatus(ids[0], models.PedidoPreparando)
	assert.NoError(t, err)
	assert.Equal(t, models.PedidoPreparando, pedido.Status)

	pedido, err = pedidos.AtualizarStatus(ids[0], models.PedidoEntregue)
	assert.NoError(t, err)
	assert.Equal(t, models.PedidoEntregue, pedido.Status)

	// entregue so sai por pagamento, nunca pela UI
	_, err = pedidos.AtualizarStatus(ids[0], models.PedidoPreparando)
	assert.ErrorIs(t, err, services.ErrTransicaoInvalida)
	_, err = pedidos.AtualizarStatus(ids[0], models.PedidoPago)
	assert.ErrorIs(t, err, services.ErrTransicaoInvalida)
	_, err = pedidos.AtualizarStatus(ids[0], models.PedidoCancelado)
	assert.ErrorIs(t, err, services.ErrTransicaoInvalida)
}

func TestPularEtapaDePreparoNaoEPermitido(t *testing.T) {
	db := setupPagamentoDB(t)
	_, ids := abrirComandaComPedidos(t, db, "11977770005", 1)

	pedidos := services.NewPedidoService(db)
	_, err := pedidos.AtualizarStatus(ids[0], models.PedidoEntregue)
	assert.ErrorIs(t, err, services.ErrTransicaoInvalida)
}

func TestCancelamentoAntesDaEntrega(t *testing.T) {
	db := setupPagamentoDB(t)
	_, ids := abrirComandaComPedidos(t, db, "11977770006", 2)

	pedidos := services.NewPedidoService(db)

	// Cancela direto do pendente
	pedido, err := pedidos.AtualizarStatus(ids[0], models.PedidoCancelado)
	assert.NoError(t, err)
	assert.Equal(t, models.PedidoCancelado, pedido.Status)

	// Cancela durante o preparo
	_, err = pedidos.AtualizarStatus(ids[1], models.PedidoPreparando)
	assert.NoError(t, err)
	_, err = pedidos.AtualizarStatus(ids[1], models.PedidoCancelado)
	assert.NoError(t, err)

	// Cancelado e terminal
	_, err = pedidos.AtualizarStatus(ids[0], models.PedidoPendente)
	assert.ErrorIs(t, err, services.ErrTransicaoInvalida)
}
