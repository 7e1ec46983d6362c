package services

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Galdes/pdv-sorv-sub000/models"
)

// PedidoService e o livro de pedidos: insercao com preco congelado e
// transicoes de status da cozinha. A transicao entregue->pago pertence
// exclusivamente ao PagamentoService.
type PedidoService struct {
	db *gorm.DB
}

func NewPedidoService(db *gorm.DB) *PedidoService {
	return &PedidoService{db: db}
}

// Transicoes permitidas pela UI de staff/cozinha. 'pago' nunca aparece como
// destino aqui: so o motor de pagamento quita pedidos.
var transicoesPermitidas = map[string][]string{
	models.PedidoPendente:   {models.PedidoPreparando, models.PedidoCancelado},
	models.PedidoPreparando: {models.PedidoEntregue, models.PedidoCancelado},
	models.PedidoEntregue:   {},
	models.PedidoPago:       {},
	models.PedidoCancelado:  {},
}

// AdicionarPedido cria um item de linha na comanda. O preco e lido do
// cardapio NESTE momento e congelado no pedido.
func (s *PedidoService) AdicionarPedido(comandaID, produtoID uint, saborID *uint, quantidade int, observacoes string) (*models.Pedido, error) {
	if quantidade < 1 {
		return nil, ErrQuantidadeInvalida
	}

	var comanda models.Comanda
	if err := s.db.First(&comanda, comandaID).Error; err != nil {
		return nil, fmt.Errorf("comanda %d nao encontrada", comandaID)
	}
	if comanda.Status != models.ComandaAberta {
		return nil, ErrComandaFechada
	}

	var produto models.Produto
	if err := s.db.First(&produto, produtoID).Error; err != nil || !produto.Ativo {
		return nil, ErrProdutoInativo
	}

	if saborID != nil {
		var sabor models.Sabor
		if err := s.db.First(&sabor, *saborID).Error; err != nil || !sabor.Ativo {
			return nil, ErrSaborInativo
		}
	}

	subtotal := produto.Preco.Mul(decimal.NewFromInt(int64(quantidade)))

	pedido := models.Pedido{
		ComandaID:     comandaID,
		ProdutoID:     produtoID,
		SaborID:       saborID,
		Quantidade:    quantidade,
		PrecoUnitario: produto.Preco,
		Subtotal:      subtotal,
		ValorPago:     decimal.Zero,
		ValorRestante: subtotal,
		Status:        models.PedidoPendente,
		Observacoes:   observacoes,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	tx := s.db.Begin()
	if err := tx.Create(&pedido).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	// Total informativo da comanda
	comanda.Total = comanda.Total.Add(subtotal)
	if err := tx.Save(&comanda).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return &pedido, nil
}

// AtualizarStatus aplica uma transicao da cozinha/staff.
func (s *PedidoService) AtualizarStatus(pedidoID uint, novoStatus string) (*models.Pedido, error) {
	var pedido models.Pedido
	if err := s.db.First(&pedido, pedidoID).Error; err != nil {
		return nil, fmt.Errorf("pedido %d nao encontrado", pedidoID)
	}

	permitidos, ok := transicoesPermitidas[pedido.Status]
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

// PedidosEmAberto devolve o universo de acerto da mesa: pedidos de TODAS as
// comandas da mesa (abertas ou nao), exceto cancelados, com saldo restante,
// do mais antigo para o mais novo.
func (s *PedidoService) PedidosEmAberto(mesaID uint) ([]models.Pedido, error) {
	return pedidosEmAberto(s.db, mesaID)
}

// TotalDaMesa soma o valor_restante do universo de acerto.
func (s *PedidoService) TotalDaMesa(mesaID uint) (decimal.Decimal, error) {
	pedidos, err := s.PedidosEmAberto(mesaID)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, p := range pedidos {
		total = total.Add(p.ValorRestante)
	}
	return total, nil
}

// pedidosEmAberto roda tanto na conexao normal quanto dentro da transacao
// de pagamento (que acrescenta o lock de linha).
func pedidosEmAberto(tx *gorm.DB, mesaID uint) ([]models.Pedido, error) {
	var pedidos []models.Pedido
	err := tx.
		Joins("JOIN comandas ON comandas.id = pedidos.comanda_id").
		Where("comandas.mesa_id = ?", mesaID).
		Where("pedidos.status != ?", models.PedidoCancelado).
		Where("pedidos.valor_restante > 0").
		Order("pedidos.created_at asc, pedidos.id asc").
		Find(&pedidos).Error
	if err != nil {
		return nil, err
	}
	return pedidos, nil
}
