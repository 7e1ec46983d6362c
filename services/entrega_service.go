package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Galdes/pdv-sorv-sub000/models"
)

// EntregaService processa o checkout do carrinho de delivery: um envio
// unico com cliente (com endereco) e itens, precos congelados por item.
type EntregaService struct {
	db *gorm.DB
}

func NewEntregaService(db *gorm.DB) *EntregaService {
	return &EntregaService{db: db}
}

type ItemCarrinho struct {
	ProdutoID   uint   `json:"produto_id" binding:"required"`
	SaborID     *uint  `json:"sabor_id,omitempty"`
	Quantidade  int    `json:"quantidade" binding:"required"`
	Observacoes string `json:"observacoes"`
}

type DadosCheckout struct {
	Telefone       string         `json:"telefone" binding:"required"`
	Nome           string         `json:"nome" binding:"required"`
	Endereco       string         `json:"endereco" binding:"required"`
	Bairro         string         `json:"bairro"`
	Complemento    string         `json:"complemento"`
	FormaPagamento string         `json:"forma_pagamento" binding:"required"`
	Observacoes    string         `json:"observacoes"`
	Itens          []ItemCarrinho `json:"itens" binding:"required"`
}

var transicoesEntrega = map[string][]string{
	models.EntregaPendente:   {models.EntregaPreparando, models.EntregaCancelado},
	models.EntregaPreparando: {models.EntregaSaiu, models.EntregaCancelado},
	models.EntregaSaiu:       {models.EntregaEntregue},
	models.EntregaEntregue:   {},
	models.EntregaCancelado:  {},
}

// Checkout valida o carrinho e grava cliente + pedido + itens em uma
// transacao. Carrinho vazio ou produto inativo rejeitam o envio inteiro.
func (s *EntregaService) Checkout(dados DadosCheckout) (*models.PedidoEntrega, error) {
	if len(dados.Itens) == 0 {
		return nil, fmt.Errorf("o carrinho esta vazio")
	}
	for _, item := range dados.Itens {
		if item.Quantidade < 1 {
			return nil, ErrQuantidadeInvalida
		}
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	agora := time.Now()

	// Cliente de entrega e um cadastro paralelo ao de salao: mesmo telefone
	// pode ter enderecos diferentes em envios diferentes.
	cliente := models.ClienteEntrega{
		Telefone:    dados.Telefone,
		Nome:        dados.Nome,
		Endereco:    dados.Endereco,
		Bairro:      dados.Bairro,
		Complemento: dados.Complemento,
		CreatedAt:   agora,
		UpdatedAt:   agora,
	}
	if err := tx.Create(&cliente).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	pedido := models.PedidoEntrega{
		ClienteID:      cliente.ID,
		CodigoRastreio: uuid.NewString(),
		Status:         models.EntregaPendente,
		Total:          decimal.Zero,
		FormaPagamento: dados.FormaPagamento,
		Observacoes:    dados.Observacoes,
		CreatedAt:      agora,
		UpdatedAt:      agora,
	}
	if err := tx.Create(&pedido).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	total := decimal.Zero
	for _, item := range dados.Itens {
		var produto models.Produto
		if err := tx.First(&produto, item.ProdutoID).Error; err != nil || !produto.Ativo {
			tx.Rollback()
			return nil, ErrProdutoInativo
		}
		if item.SaborID != nil {
			var sabor models.Sabor
			if err := tx.First(&sabor, *item.SaborID).Error; err != nil || !sabor.Ativo {
				tx.Rollback()
				return nil, ErrSaborInativo
			}
		}

		subtotal := produto.Preco.Mul(decimal.NewFromInt(int64(item.Quantidade)))
		linha := models.ItemEntrega{
			PedidoEntregaID: pedido.ID,
			ProdutoID:       produto.ID,
			SaborID:         item.SaborID,
			Quantidade:      item.Quantidade,
			PrecoUnitario:   produto.Preco,
			Subtotal:        subtotal,
			Observacoes:     item.Observacoes,
			CreatedAt:       agora,
			UpdatedAt:       agora,
		}
		if err := tx.Create(&linha).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
		total = total.Add(subtotal)
		pedido.Itens = append(pedido.Itens, linha)
	}

	pedido.Total = total
	if err := tx.Save(&pedido).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	pedido.Cliente = cliente
	return &pedido, nil
}

// AtualizarStatus segue o fluxo pendente -> preparando -> saiu_para_entrega
// -> entregue, com cancelamento antes da saida.
func (s *EntregaService) AtualizarStatus(pedidoID uint, novoStatus string) (*models.PedidoEntrega, error) {
	var pedido models.PedidoEntrega
	if err := s.db.Preload("Itens").First(&pedido, pedidoID).Error; err != nil {
		return nil, fmt.Errorf("pedido de entrega %d nao encontrado", pedidoID)
	}

	permitidos, ok := transicoesEntrega[pedido.Status]
	if !ok {
		return nil, ErrTransicaoInvalida
	}
	valido := false
	for _, st := range permitidos {
		if st == novoStatus {
			valido = true
			break
		}
	}
	if !valido {
		return nil, ErrTransicaoInvalida
	}

	pedido.Status = novoStatus
	pedido.UpdatedAt = time.Now()
	if err := s.db.Save(&pedido).Error; err != nil {
		return nil, err
	}
	return &pedido, nil
}
