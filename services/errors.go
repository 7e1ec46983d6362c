package services

import "errors"

// Erros de precondicao do acerto de contas. Sao devolvidos ao chamador sem
// retraducao; o controller mapeia cada um para o status HTTP adequado.
var (
	ErrNadaAPagar        = errors.New("a mesa nao possui valores em aberto")
	ErrValorInvalido     = errors.New("o valor do pagamento deve ser maior que zero")
	ErrValorExcedeTotal  = errors.New("o valor informado excede o total em aberto da mesa")
	ErrSelecaoVazia      = errors.New("nenhum pedido foi selecionado para pagamento")
	ErrPedidoDeOutraMesa = errors.New("pedido selecionado nao pertence a esta mesa ou ja foi quitado")
	ErrPedidoNaoEntregue = errors.New("existem pedidos ainda nao entregues; pagamento antes da entrega esta desabilitado")
)

// Erros da comanda / porta de admissao
var (
	ErrMesaOcupada    = errors.New("a mesa ja possui uma comanda aberta")
	ErrMesaInativa    = errors.New("mesa desativada")
	ErrComandaFechada = errors.New("a comanda nao esta aberta")
)

// Erros do livro de pedidos
var (
	ErrQuantidadeInvalida = errors.New("quantidade deve ser no minimo 1")
	ErrProdutoInativo     = errors.New("produto inativo ou inexistente")
	ErrSaborInativo       = errors.New("sabor inativo ou inexistente")
	ErrTransicaoInvalida  = errors.New("transicao de status invalida")
)
