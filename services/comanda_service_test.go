package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Galdes/pdv-sorv-sub000/models"
	"github.com/Galdes/pdv-sorv-sub000/services"
)

func TestAbrirComandaEmMesaLivre(t *testing.T) {
	db := setupPagamentoDB(t)
	svc := services.NewComandaService(db)

	livre, err := svc.PodeAbrirComanda(1)
	assert.NoError(t, err)
	assert.True(t, livre)

	comanda, err := svc.AbrirComanda(1, "11988880001", "Ana")
	assert.NoError(t, err)
	assert.Equal(t, models.ComandaAberta, comanda.Status)
	assert.Equal(t, "Ana", comanda.Cliente.Nome)

	livre, err = svc.PodeAbrirComanda(1)
	assert.NoError(t, err)
	assert.False(t, livre)
}

func TestAbrirComandaEmMesaOcupada(t *testing.T) {
	db := setupPagamentoDB(t)
	svc := services.NewComandaService(db)

	_, err := svc.AbrirComanda(1, "11988880002", "Primeiro")
	assert.NoError(t, err)

	// Segundo scan na mesma mesa: recusado sem efeito colateral
	_, err = svc.AbrirComanda(1, "11988880003", "Segundo")
	assert.ErrorIs(t, err, services.ErrMesaOcupada)

	var comandas int64
	db.Model(&models.Comanda{}).Count(&comandas)
	assert.EqualValues(t, 1, comandas)

	// O cliente perdedor nao deve ter sido criado dentro da transacao
	var clientes int64
	db.Model(&models.Cliente{}).Where("telefone = ?", "11988880003").Count(&clientes)
	assert.Zero(t, clientes)
}

func TestAbrirComandaEmMesaInativa(t *testing.T) {
	db := setupPagamentoDB(t)
	db.Create(&models.Mesa{Numero: 9, Ativa: false, QRToken: "qr-mesa-9"})

	svc := services.NewComandaService(db)
	var mesa models.Mesa
	db.Where("numero = ?", 9).First(&mesa)

	_, err := svc.AbrirComanda(mesa.ID, "11988880004", "")
	assert.ErrorIs(t, err, services.ErrMesaInativa)
}

func TestAbrirComandaSemTelefone(t *testing.T) {
	db := setupPagamentoDB(t)
	svc := services.NewComandaService(db)

	_, err := svc.AbrirComanda(1, "", "Sem Telefone")
	assert.Error(t, err)
}

func TestMesaLiberadaAposFechamento(t *testing.T) {
	db := setupPagamentoDB(t)
	svc := services.NewComandaService(db)

	comanda, err := svc.AbrirComanda(1, "11988880005", "Ana")
	assert.NoError(t, err)

	_, err = svc.FecharComanda(comanda.ID)
	assert.NoError(t, err)

	// Fechar duas vezes nao e permitido
	_, err = svc.FecharComanda(comanda.ID)
	assert.ErrorIs(t, err, services.ErrComandaFechada)

	// Mesa volta a aceitar nova comanda
	_, err = svc.AbrirComanda(1, "11988880006", "Bruno")
	assert.NoError(t, err)
}

func TestFindOrCreateClienteReutilizaTelefone(t *testing.T) {
	db := setupPagamentoDB(t)
	svc := services.NewComandaService(db)

	primeiro, err := svc.FindOrCreateCliente("11988880007", "Carla")
	assert.NoError(t, err)

	// Mesmo telefone devolve o mesmo cadastro, atualizando o nome
	segundo, err := svc.FindOrCreateCliente("11988880007", "Carla Souza")
	assert.NoError(t, err)
	assert.Equal(t, primeiro.ID, segundo.ID)
	assert.Equal(t, "Carla Souza", segundo.Nome)

	var clientes int64
	db.Model(&models.Cliente{}).Count(&clientes)
	assert.EqualValues(t, 1, clientes)
}
