// @title PDV Backend API
// @version 1.0
// @description Point-of-sale backend: catalog, clients with store credit, POS checkout sessions, orders, financial ledger.
// @BasePath /
package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/rmacedo/pdv-backend/docs"
	"github.com/rmacedo/pdv-backend/internal/catalog"
	"github.com/rmacedo/pdv-backend/internal/client"
	"github.com/rmacedo/pdv-backend/internal/config"
	"github.com/rmacedo/pdv-backend/internal/finance"
	"github.com/rmacedo/pdv-backend/internal/httpx"
	"github.com/rmacedo/pdv-backend/internal/order"
	"github.com/rmacedo/pdv-backend/internal/pos"
	"github.com/rmacedo/pdv-backend/internal/settings"
	"github.com/rmacedo/pdv-backend/internal/stats"
	"github.com/rmacedo/pdv-backend/internal/user"
)

func main() {
	cfg := config.Load()

	if err := runMigrations(cfg.PostgresDSN, cfg.MigrationsDir); err != nil {
		log.Fatalf("[migrate] %v", err)
	}

	pool, err := pgxpool.New(context.Background(), cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("[db] connect: %v", err)
	}
	defer pool.Close()

	deps := &deps{
		cfg:      cfg,
		users:    user.NewPGRepo(pool),
		products: catalog.NewPGRepo(pool),
		clients:  client.NewPGRepo(pool),
		orders:   order.NewPGRepo(pool),
		finance:  finance.NewPGRepo(pool),
		settings: settings.NewPGRepo(pool),
		stats:    stats.NewPGRepo(pool),
		sessions: pos.NewStore(),
	}

	r := gin.New()
	r.Use(httpx.RequestID(), httpx.Logger(), gin.Recovery())
	registerRoutes(r, deps)

	log.Printf("pos-service listening on %s", cfg.HTTPAddr)
	log.Fatal(r.Run(cfg.HTTPAddr))
}

type deps struct {
	cfg      config.Config
	users    user.Repository
	products catalog.Repository
	clients  client.Repository
	orders   order.Repository
	finance  finance.Repository
	settings settings.Repository
	stats    stats.Repository
	sessions *pos.Store
}

func registerRoutes(r *gin.Engine, d *deps) {
	r.GET("/healthz", func(c *gin.Context) { c.String(200, "ok") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.POST("/auth/login", loginHandler(d.users, d.cfg))

	secret := []byte(d.cfg.JWTSecret)
	api := r.Group("/", httpx.RequireAuth(secret))

	sales := api.Group("/", httpx.RequireRole(user.RoleSales))
	{
		sales.GET("/products", listProductsHandler(d.products))
		sales.GET("/products/:id", getProductHandler(d.products))

		sales.GET("/clients", listClientsHandler(d.clients))
		sales.GET("/clients/:id", getClientHandler(d.clients))

		sales.POST("/pos/sessions", createSessionHandler(d.sessions))
		sales.GET("/pos/sessions/:id", getSessionHandler(d.sessions))
		sales.DELETE("/pos/sessions/:id", closeSessionHandler(d.sessions))
		sales.POST("/pos/sessions/:id/items", addItemHandler(d.sessions, d.products))
		sales.PATCH("/pos/sessions/:id/items/:productId", changeQuantityHandler(d.sessions))
		sales.DELETE("/pos/sessions/:id/items/:productId", removeItemHandler(d.sessions))
		sales.PUT("/pos/sessions/:id/client", attachClientHandler(d.sessions, d.clients))
		sales.DELETE("/pos/sessions/:id/client", detachClientHandler(d.sessions))
		sales.POST("/pos/sessions/:id/checkout", beginCheckoutHandler(d.sessions))
		sales.DELETE("/pos/sessions/:id/checkout", cancelCheckoutHandler(d.sessions))
		sales.POST("/pos/sessions/:id/checkout/parts", addPartHandler(d.sessions))
		sales.DELETE("/pos/sessions/:id/checkout/parts/:index", removePartHandler(d.sessions))
		sales.POST("/pos/sessions/:id/checkout/confirm", confirmHandler(d.sessions, d.orders))

		sales.GET("/orders", listOrdersHandler(d.orders))
		sales.GET("/orders/:id", getOrderHandler(d.orders))

		sales.GET("/settings", getSettingsHandler(d.settings))
	}

	admin := api.Group("/", httpx.RequireRole())
	{
		admin.POST("/products", createProductHandler(d.products))
		admin.PUT("/products/:id", updateProductHandler(d.products))
		admin.DELETE("/products/:id", deleteProductHandler(d.products))

		admin.POST("/clients", createClientHandler(d.clients))
		admin.PUT("/clients/:id", updateClientHandler(d.clients))
		admin.DELETE("/clients/:id", deleteClientHandler(d.clients))

		admin.POST("/users", createUserHandler(d.users))
		admin.GET("/users", listUsersHandler(d.users))
		admin.DELETE("/users/:id", deleteUserHandler(d.users))

		admin.PUT("/settings", saveSettingsHandler(d.settings))
	}

	finrole := api.Group("/", httpx.RequireRole(user.RoleFinance))
	{
		finrole.POST("/clients/:id/payments", clientPaymentHandler(d.clients))
		finrole.PUT("/orders/:id/status", updateOrderStatusHandler(d.orders))

		finrole.GET("/finance/transactions", listTransactionsHandler(d.finance))
		finrole.POST("/finance/transactions", createTransactionHandler(d.finance))
		finrole.PUT("/finance/transactions/:id", updateTransactionHandler(d.finance))
		finrole.DELETE("/finance/transactions/:id", deleteTransactionHandler(d.finance))
		finrole.GET("/finance/categories", listCategoriesHandler(d.finance))
		finrole.POST("/finance/categories", createCategoryHandler(d.finance))
	}

	api.GET("/stats/dashboard", dashboardHandler(d.stats))
}
