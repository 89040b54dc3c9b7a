package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"storefront/internal/auth"
	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/handlers"
	"storefront/internal/middleware"
	"storefront/internal/repository"
	"storefront/internal/service"
)

type Handlers struct {
	Products *handlers.ProductHandler
	Users    *handlers.UserHandler
	Orders   *handlers.OrderHandler
}

// NewHandlers wires repositories and services over db.
func NewHandlers(db *mongo.Database, hasher *auth.PasswordHasher) Handlers {
	products := repository.NewProductRepository(db.Collection(database.ProductsCollection))
	users := repository.NewUserRepository(db.Collection(database.UsersCollection))
	orders := repository.NewOrderRepository(db.Collection(database.OrdersCollection))

	return Handlers{
		Products: handlers.NewProductHandler(service.NewProductService(products)),
		Users:    handlers.NewUserHandler(service.NewUserService(users, hasher)),
		Orders:   handlers.NewOrderHandler(service.NewOrderService(orders, products)),
	}
}

// NewRouter builds the engine with the shared middleware chain and every route registered.
func NewRouter(cfg *config.Config, h Handlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.Timeout(cfg.RequestTimeout))
	router.Use(cors.New(corsConfig(cfg.CORSOrigins)))

	RegisterRoutes(router, h)
	return router
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}

	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
	}
	return c
}

func RegisterRoutes(router *gin.Engine, h Handlers) {
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		api.GET("/products", h.Products.ListProducts)
		api.GET("/products/categories", h.Products.ListCategories)
		api.GET("/products/:id", h.Products.GetProduct)

		api.POST("/users/register", h.Users.Register)
		api.POST("/users/login", h.Users.Login)

		api.POST("/orders", h.Orders.PlaceOrder)
	}

	// admin routes are guarded client-side only
	admin := api.Group("/admin")
	{
		admin.GET("/products", h.Products.ListProducts)
		admin.POST("/products", h.Products.CreateProduct)
		admin.PUT("/products/:id", h.Products.UpdateProduct)
		admin.DELETE("/products/:id", h.Products.DeleteProduct)

		admin.GET("/customers", h.Users.ListCustomers)
		admin.GET("/customers/:id", h.Users.GetCustomer)
		admin.PUT("/customers/:id", h.Users.UpdateCustomer)
		admin.DELETE("/customers/:id", h.Users.DeleteCustomer)
		admin.PATCH("/customers/:id/block", h.Users.ToggleBlock)

		admin.GET("/orders", h.Orders.ListOrders)
		admin.PATCH("/orders/:id/status", h.Orders.UpdateStatus)
		admin.DELETE("/orders/:id", h.Orders.DeleteOrder)
	}
}
