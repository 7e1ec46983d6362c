package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Galdes/pdv-sorv-sub000/controllers"
	"github.com/Galdes/pdv-sorv-sub000/middlewares"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	// Inicializacao dos controllers
	usuarioCtrl := controllers.NewUsuarioController(db)
	mesaCtrl := controllers.NewMesaController(db)
	comandaCtrl := controllers.NewComandaController(db)
	pedidoCtrl := controllers.NewPedidoController(db)
	pagamentoCtrl := controllers.NewPagamentoController(db)
	produtoCtrl := controllers.NewProdutoController(db)
	categoriaCtrl := controllers.NewCategoriaController(db)
	saborCtrl := controllers.NewSaborController(db)
	clienteCtrl := controllers.NewClienteController(db)
	cozinhaCtrl := controllers.NewCozinhaController(db)
	entregaCtrl := controllers.NewEntregaController(db)
	whatsappCtrl := controllers.NewWhatsappController(db)
	dashboardCtrl := controllers.NewDashboardController(db)

	// ----------------------------------------------------------------
	//                      ROTAS PUBLICAS
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Rate limiter agressivo para login/register
	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", usuarioCtrl.Register)
		public.POST("/login", usuarioCtrl.Login)
	}

	// -- CLIENTE NA MESA (sem login, via QR) --
	r.GET("/cardapio/categorias", categoriaCtrl.GetAllCategorias)
	r.GET("/cardapio/produtos", produtoCtrl.GetAllProdutos)
	r.GET("/cardapio/produtos/:produto_id", produtoCtrl.GetProdutoByID)
	r.GET("/cardapio/sabores", saborCtrl.GetAllSabores)

	r.GET("/mesas/:qr_token/verificar", comandaCtrl.VerificarMesa)
	r.POST("/mesas/:qr_token/abrir-comanda", comandaCtrl.AbrirComanda)

	r.GET("/comandas/:comanda_id", comandaCtrl.GetComandaByID)
	r.POST("/comandas/:comanda_id/pedidos", pedidoCtrl.AdicionarPedido)
	r.GET("/pedidos/:pedido_id", pedidoCtrl.GetPedidoByID)

	// -- DELIVERY (sem login) --
	r.POST("/entregas", entregaCtrl.Checkout)
	r.GET("/entregas/rastreio/:codigo", entregaCtrl.Rastrear)

	// -- WHATSAPP (relay externo) --
	r.POST("/whatsapp/webhook", whatsappCtrl.Webhook)

	// WebSocket dos paineis; token via query string
	wsGroup := r.Group("/ws")
	wsGroup.Use(middlewares.WebSocketAuthMiddleware())
	{
		wsGroup.GET("/painel", controllers.PainelHandler)
	}

	// ----------------------------------------------------------------
	//                      ROTAS AUTENTICADAS
	// ----------------------------------------------------------------
	auth := r.Group("/admin")
	auth.Use(middlewares.AuthMiddleware())

	auth.GET("/profile", usuarioCtrl.GetProfile)
	auth.POST("/logout", usuarioCtrl.Logout)
	auth.GET("/usuarios", middlewares.RequireRole("admin"), usuarioCtrl.GetAllUsuarios)

	// MESAS
	auth.GET("/mesas", mesaCtrl.GetAllMesas)
	auth.POST("/mesas", middlewares.RequireRole("admin"), mesaCtrl.CreateMesa)
	auth.GET("/mesas/:mesa_id", mesaCtrl.GetMesaByID)
	auth.GET("/mesas/:mesa_id/qr", mesaCtrl.GetMesaQR)
	auth.PATCH("/mesas/:mesa_id", middlewares.RequireRole("admin"), mesaCtrl.UpdateMesa)
	auth.DELETE("/mesas/:mesa_id", middlewares.RequireRole("admin"), mesaCtrl.DeleteMesa)

	// CARDAPIO (admin)
	auth.POST("/categorias", middlewares.RequireRole("admin"), categoriaCtrl.CreateCategoria)
	auth.PATCH("/categorias/:categoria_id", middlewares.RequireRole("admin"), categoriaCtrl.UpdateCategoria)
	auth.DELETE("/categorias/:categoria_id", middlewares.RequireRole("admin"), categoriaCtrl.DeleteCategoria)

	auth.POST("/produtos", middlewares.RequireRole("admin"), produtoCtrl.CreateProduto)
	auth.PATCH("/produtos/:produto_id", middlewares.RequireRole("admin"), produtoCtrl.UpdateProduto)
	auth.DELETE("/produtos/:produto_id", middlewares.RequireRole("admin"), produtoCtrl.DeleteProduto)

	auth.POST("/sabores", middlewares.RequireRole("admin"), saborCtrl.CreateSabor)
	auth.PATCH("/sabores/:sabor_id", middlewares.RequireRole("admin"), saborCtrl.UpdateSabor)
	auth.DELETE("/sabores/:sabor_id", middlewares.RequireRole("admin"), saborCtrl.DeleteSabor)

	// CLIENTES (atendente/admin)
	auth.GET("/clientes", clienteCtrl.GetAllClientes)
	auth.POST("/clientes", clienteCtrl.CreateCliente)
	auth.GET("/clientes/:cliente_id", clienteCtrl.GetClienteByID)
	auth.GET("/clientes-entrega", clienteCtrl.GetAllClientesEntrega)

	// COMANDAS (atendente/admin)
	auth.GET("/comandas", comandaCtrl.ListarComandas)
	auth.GET("/comandas/:comanda_id", comandaCtrl.GetComandaByID)
	auth.POST("/comandas/:comanda_id/fechar", comandaCtrl.FecharComanda)
	auth.POST("/comandas/:comanda_id/pedidos", pedidoCtrl.AdicionarPedido)

	// PEDIDOS: transicoes de status
	auth.GET("/pedidos/:pedido_id", pedidoCtrl.GetPedidoByID)
	auth.POST("/pedidos/:pedido_id/iniciar-preparo", middlewares.RequireRole("cozinha", "atendente"), pedidoCtrl.IniciarPreparo)
	auth.POST("/pedidos/:pedido_id/entregar", middlewares.RequireRole("cozinha", "atendente"), pedidoCtrl.MarcarEntregue)
	auth.POST("/pedidos/:pedido_id/cancelar", middlewares.RequireRole("atendente"), pedidoCtrl.CancelarPedido)

	// COZINHA: os GETs de polling sao o contrato de atualizacao do painel
	auth.GET("/cozinha/pendentes", middlewares.RequireRole("cozinha", "atendente"), cozinhaCtrl.GetPedidosPendentes)
	auth.GET("/cozinha/painel", middlewares.RequireRole("cozinha", "atendente"), cozinhaCtrl.GetPainelCozinha)

	// PAGAMENTOS: grupo com trilha de auditoria e rate limit proprio
	pagamentos := auth.Group("/mesas/:mesa_id")
	pagamentos.Use(middlewares.PagamentoLoggerMiddleware(), middlewares.PagamentoRateLimiter())
	{
		pagamentos.GET("/conta", pagamentoCtrl.GetConta)
		pagamentos.GET("/pagamentos", pagamentoCtrl.ListarPagamentos)
		pagamentos.POST("/pagamentos/total", pagamentoCtrl.PagarTotal)
		pagamentos.POST("/pagamentos/parcial", pagamentoCtrl.PagarParcial)
		pagamentos.POST("/pagamentos/seletivo", pagamentoCtrl.PagarSeletivo)
	}

	// ENTREGAS (staff)
	auth.GET("/entregas", entregaCtrl.GetAllEntregas)
	auth.GET("/entregas/:entrega_id", entregaCtrl.GetEntregaByID)
	auth.PATCH("/entregas/:entrega_id/status", entregaCtrl.AtualizarStatus)

	// CONVERSAS DE WHATSAPP (atendente/admin)
	auth.GET("/conversas", middlewares.RequireRole("atendente"), whatsappCtrl.GetAllConversas)
	auth.GET("/conversas/:conversa_id", middlewares.RequireRole("atendente"), whatsappCtrl.GetConversaByID)
	auth.POST("/conversas/:conversa_id/responder", middlewares.RequireRole("atendente"), whatsappCtrl.Responder)
	auth.POST("/conversas/:conversa_id/lida", middlewares.RequireRole("atendente"), whatsappCtrl.MarcarComoLida)

	// DASHBOARD (admin)
	auth.GET("/dashboard/stats", middlewares.RequireRole("admin"), dashboardCtrl.GetDashboardStats)

	return r
}
