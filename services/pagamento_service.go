package services

import (
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Galdes/pdv-sorv-sub000/models"
	"github.com/Galdes/pdv-sorv-sub000/utils"
)

// PagamentoService e o motor de acerto de contas da mesa. Cada estrategia
// (total, parcial, seletivo) roda em UMA transacao, com lock FOR UPDATE na
// mesa e nos pedidos em aberto: duas tentativas simultaneas de "pagar tudo"
// na mesma mesa sao serializadas e a segunda enxerga o saldo ja zerado.
type PagamentoService struct {
	db *gorm.DB

	// PermitePagarAntesDaEntrega controla se pedidos ainda nao entregues
	// podem ser quitados. Default true: o caixa precisa conseguir fechar a
	// mesa mesmo com a ultima taca ainda na copa.
	PermitePagarAntesDaEntrega bool
}

func NewPagamentoService(db *gorm.DB) *PagamentoService {
	permite := true
	if os.Getenv("PERMITIR_PAGAMENTO_ANTES_ENTREGA") == "false" {
		permite = false
	}
	return &PagamentoService{db: db, PermitePagarAntesDaEntrega: permite}
}

// alocacao e quanto deste pagamento cobre de um pedido especifico.
type alocacao struct {
	pedido *models.Pedido
	valor  decimal.Decimal
}

// PagarTotal quita todo o saldo em aberto da mesa.
func (s *PagamentoService) PagarTotal(mesaID, usuarioID uint, observacoes string) (*models.PagamentoMesa, error) {
	return s.executar(mesaID, usuarioID, models.PagamentoTotal, observacoes,
		func(pedidos []models.Pedido) ([]alocacao, error) {
			alocacoes := make([]alocacao, 0, len(pedidos))
			for i := range pedidos {
				alocacoes = append(alocacoes, alocacao{
					pedido: &pedidos[i],
					valor:  pedidos[i].ValorRestante,
				})
			}
			return alocacoes, nil
		})
}

// PagarParcial aloca um valor arbitrario sobre os pedidos em aberto, do
// mais antigo para o mais novo (FIFO). O ultimo pedido alcancado pode ficar
// com saldo parcial. A ordem e fixa para que o resultado seja reproduzivel
// em auditoria: "quais pedidos constam como pagos" nunca depende de sorte.
func (s *PagamentoService) PagarParcial(mesaID, usuarioID uint, valor decimal.Decimal, observacoes string) (*models.PagamentoMesa, error) {
	if valor.Cmp(decimal.Zero) <= 0 {
		return nil, ErrValorInvalido
	}
	return s.executar(mesaID, usuarioID, models.PagamentoParcial, observacoes,
		func(pedidos []models.Pedido) ([]alocacao, error) {
			total := decimal.Zero
			for _, p := range pedidos {
				total = total.Add(p.ValorRestante)
			}
			if valor.Cmp(total) > 0 {
				return nil, ErrValorExcedeTotal
			}

			restante := valor
			var alocacoes []alocacao
			for i := range pedidos {
				if restante.Cmp(decimal.Zero) <= 0 {
					break
				}
				fatia := pedidos[i].ValorRestante
				if fatia.Cmp(restante) > 0 {
					fatia = restante
				}
				alocacoes = append(alocacoes, alocacao{pedido: &pedidos[i], valor: fatia})
				restante = restante.Sub(fatia)
			}
			return alocacoes, nil
		})
}

// PagarSeletivo quita integralmente os pedidos escolhidos. Pagamento
// seletivo e tudo-ou-nada por pedido: nao existe quitacao parcial de um
// pedido selecionado.
func (s *PagamentoService) PagarSeletivo(mesaID, usuarioID uint, pedidoIDs []uint, observacoes string) (*models.PagamentoMesa, error) {
	if len(pedidoIDs) == 0 {
		return nil, ErrSelecaoVazia
	}
	return s.executar(mesaID, usuarioID, models.PagamentoSeletivo, observacoes,
		func(pedidos []models.Pedido) ([]alocacao, error) {
			porID := make(map[uint]*models.Pedido, len(pedidos))
			for i := range pedidos {
				porID[pedidos[i].ID] = &pedidos[i]
			}

			alocacoes := make([]alocacao, 0, len(pedidoIDs))
			vistos := make(map[uint]bool, len(pedidoIDs))
			for _, id := range pedidoIDs {
				if vistos[id] {
					continue
				}
				vistos[id] = true
				pedido, ok := porID[id]
				if !ok {
					// ID de outra mesa, cancelado ou ja sem saldo
					return nil, ErrPedidoDeOutraMesa
				}
				alocacoes = append(alocacoes, alocacao{pedido: pedido, valor: pedido.ValorRestante})
			}
			return alocacoes, nil
		})
}

// executar carrega o universo de acerto sob lock, delega a estrategia e
// aplica as alocacoes. Qualquer erro desfaz a transacao inteira: rejeicao
// nunca deixa efeito parcial.
func (s *PagamentoService) executar(mesaID, usuarioID uint, tipo, observacoes string, alocar func([]models.Pedido) ([]alocacao, error)) (*models.PagamentoMesa, error) {
	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	// Lock da mesa serializa acertos concorrentes na mesma mesa
	var mesa models.Mesa
	if err := comLock(tx).First(&mesa, mesaID).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("mesa %d nao encontrada", mesaID)
	}

	pedidos, err := pedidosEmAbertoComLock(tx, mesaID)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	totalAntes := decimal.Zero
	for _, p := range pedidos {
		totalAntes = totalAntes.Add(p.ValorRestante)
	}
	if totalAntes.Cmp(decimal.Zero) <= 0 {
		tx.Rollback()
		return nil, ErrNadaAPagar
	}

	alocacoes, err := alocar(pedidos)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	agora := time.Now()
	valorPago := decimal.Zero

	for _, a := range alocacoes {
		if !s.PermitePagarAntesDaEntrega && a.pedido.Status != models.PedidoEntregue {
			tx.Rollback()
			return nil, ErrPedidoNaoEntregue
		}

		a.pedido.ValorPago = a.pedido.ValorPago.Add(a.valor)
		a.pedido.ValorRestante = a.pedido.ValorRestante.Sub(a.valor)
		if a.pedido.ValorRestante.Cmp(decimal.Zero) < 0 {
			// Nunca deveria acontecer; aborta em vez de gravar saldo negativo
			tx.Rollback()
			return nil, fmt.Errorf("alocacao excede o saldo do pedido %d", a.pedido.ID)
		}
		if a.pedido.ValorRestante.IsZero() {
			a.pedido.Status = models.PedidoPago
		}
		a.pedido.UpdatedAt = agora
		if err := tx.Save(a.pedido).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
		valorPago = valorPago.Add(a.valor)
	}

	pagamento := models.PagamentoMesa{
		MesaID:         mesaID,
		UsuarioID:      usuarioID,
		TipoPagamento:  tipo,
		ValorTotalMesa: totalAntes,
		ValorPago:      valorPago,
		ValorRestante:  totalAntes.Sub(valorPago),
		Observacoes:    observacoes,
		CreatedAt:      agora,
	}
	if err := tx.Create(&pagamento).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	for _, a := range alocacoes {
		link := models.PagamentoPedido{
			PagamentoMesaID:     pagamento.ID,
			PedidoID:            a.pedido.ID,
			ValorPagoPedido:     a.valor,
			ValorRestantePedido: a.pedido.ValorRestante,
			CreatedAt:           agora,
		}
		if err := tx.Create(&link).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
		pagamento.Pedidos = append(pagamento.Pedidos, link)
	}

	if err := fecharComandasQuitadas(tx, mesaID, agora); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	if utils.InfoLogger != nil {
		utils.InfoLogger.Printf("Pagamento %s registrado para mesa %d: pago=%s restante=%s",
			tipo, mesaID, pagamento.ValorPago.StringFixed(2), pagamento.ValorRestante.StringFixed(2))
	}
	return &pagamento, nil
}

// pedidosEmAbertoComLock e a versao FOR UPDATE usada dentro da transacao.
func pedidosEmAbertoComLock(tx *gorm.DB, mesaID uint) ([]models.Pedido, error) {
	var pedidos []models.Pedido
	err := comLock(tx).
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

// fecharComandasQuitadas marca como paga toda comanda da mesa cujos pedidos
// nao-cancelados ficaram sem saldo.
func fecharComandasQuitadas(tx *gorm.DB, mesaID uint, agora time.Time) error {
	var comandas []models.Comanda
	if err := tx.Where("mesa_id = ? AND status != ?", mesaID, models.ComandaPaga).
		Find(&comandas).Error; err != nil {
		return err
	}

	for i := range comandas {
		var pendentes int64
		if err := tx.Model(&models.Pedido{}).
			Where("comanda_id = ?", comandas[i].ID).
			Where("status != ?", models.PedidoCancelado).
			Where("valor_restante > 0").
			Count(&pendentes).Error; err != nil {
			return err
		}
		var totalPedidos int64
		if err := tx.Model(&models.Pedido{}).
			Where("comanda_id = ?", comandas[i].ID).
			Where("status != ?", models.PedidoCancelado).
			Count(&totalPedidos).Error; err != nil {
			return err
		}
		if pendentes == 0 && totalPedidos > 0 {
			comandas[i].Status = models.ComandaPaga
			comandas[i].UpdatedAt = agora
			if err := tx.Save(&comandas[i]).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

// ListarPagamentos devolve o historico append-only da mesa.
func (s *PagamentoService) ListarPagamentos(mesaID uint) ([]models.PagamentoMesa, error) {
	var pagamentos []models.PagamentoMesa
	err := s.db.Preload("Pedidos").
		Where("mesa_id = ?", mesaID).
		Order("created_at desc").
		Find(&pagamentos).Error
	return pagamentos, err
}
