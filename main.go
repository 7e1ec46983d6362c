package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/Galdes/pdv-sorv-sub000/config"
	"github.com/Galdes/pdv-sorv-sub000/middlewares"
	"github.com/Galdes/pdv-sorv-sub000/models"
	"github.com/Galdes/pdv-sorv-sub000/router"
	"github.com/Galdes/pdv-sorv-sub000/services"
	"github.com/Galdes/pdv-sorv-sub000/utils"
)

func init() {
	// Carrega o .env antes de qualquer outra inicializacao
	if err := godotenv.Load(); err != nil {
		log.Printf("Aviso: .env nao encontrado: %v", err)
	}

	utils.InitLogger()
}

func main() {
	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Falha ao conectar no banco: %v", err)
	}

	// Guarda a conexao para uso nos controllers
	utils.InitDB(db)

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	autoMigrate(db)

	// Monitor de refresh dos paineis (cozinha 30s, conversas 10s)
	monitor := services.NewRefreshMonitor(db)
	monitor.Start()
	defer monitor.Stop()

	// Rate limiter global por IP
	rateLimiter := middlewares.NewRateLimiter(50, 1)

	r := router.SetupRouter(db)
	r.Use(rateLimiter.RateLimit())

	r.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	utils.InfoLogger.Printf("Servidor ouvindo na porta %s", port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

func autoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.Usuario{},
		&models.Mesa{},
		&models.Cliente{},
		&models.Categoria{},
		&models.Produto{},
		&models.Sabor{},
		&models.Comanda{},
		&models.Pedido{},
		&models.PagamentoMesa{},
		&models.PagamentoPedido{},
		&models.ClienteEntrega{},
		&models.PedidoEntrega{},
		&models.ItemEntrega{},
		&models.ConversaWhatsapp{},
		&models.MensagemWhatsapp{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("Falha no AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate concluido.")
}
