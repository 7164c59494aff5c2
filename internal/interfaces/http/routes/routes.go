// internal/interfaces/http/routes/routes.go
package routes

import (
	"fmt"

	"github.com/arianshop/backend/internal/config"
	"github.com/arianshop/backend/internal/domain/cart"
	"github.com/arianshop/backend/internal/domain/order"
	"github.com/arianshop/backend/internal/domain/payment"
	"github.com/arianshop/backend/internal/domain/product"
	"github.com/arianshop/backend/internal/domain/subscriber"
	"github.com/arianshop/backend/internal/domain/upload"
	"github.com/arianshop/backend/internal/domain/user"
	"github.com/arianshop/backend/internal/interfaces/http/handlers"
	"github.com/arianshop/backend/internal/interfaces/http/middleware"
	"github.com/arianshop/backend/internal/pkg/email"
	"github.com/arianshop/backend/internal/pkg/pdf"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SetupRoutes wires every service and handler onto the API group
func SetupRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config, log *logrus.Logger) error {
	emailService, err := email.NewService(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize email service: %w", err)
	}

	uploadService := upload.NewService(cfg)
	userService := user.NewService(db, cfg, uploadService)
	productService := product.NewService(db, cfg, uploadService)
	cartService := cart.NewService(db, redisClient, cfg)
	orderService := order.NewService(db, cfg, cartService, uploadService, log)
	subscriberService := subscriber.NewService(db, cfg, emailService, log)
	stripeService := payment.NewStripeService(cfg)
	pdfService := pdf.NewService(cfg)

	userHandler := handlers.NewUserHandler(userService, cartService, cfg, log)
	productHandler := handlers.NewProductHandler(productService, subscriberService, log)
	cartHandler := handlers.NewCartHandler(cartService, productService)
	orderHandler := handlers.NewOrderHandler(orderService, stripeService, pdfService, log)
	subscriberHandler := handlers.NewSubscriberHandler(subscriberService)

	setupUserRoutes(rg, userHandler, cfg)
	setupProductRoutes(rg, productHandler, cfg)
	setupCartRoutes(rg, cartHandler, cfg)
	setupOrderRoutes(rg, orderHandler, cfg)
	setupSubscriberRoutes(rg, subscriberHandler, cfg)

	return nil
}

func setupUserRoutes(rg *gin.RouterGroup, h *handlers.UserHandler, cfg *config.Config) {
	users := rg.Group("/user")
	{
		users.POST("/register", h.Register)
		users.POST("/login", h.Login)
		users.POST("/login-google", h.GoogleLogin)
		users.POST("/admin", h.AdminLogin)

		protected := users.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			protected.GET("/me", h.Me)
			protected.PUT("/update", h.UpdateProfile)
			protected.GET("/wishlist", h.GetWishlist)
			protected.POST("/wishlist/toggle", h.ToggleWishlist)
			protected.POST("/wishlist/remove", h.RemoveFromWishlist)
		}
	}
}

func setupProductRoutes(rg *gin.RouterGroup, h *handlers.ProductHandler, cfg *config.Config) {
	products := rg.Group("/product")
	{
		products.GET("/list", h.List)
		products.POST("/single", h.Single)

		admin := products.Group("")
		admin.Use(middleware.AuthMiddleware(cfg), middleware.AdminMiddleware())
		{
			admin.POST("/add", h.Add)
			admin.POST("/remove", h.Remove)
		}
	}
}

func setupCartRoutes(rg *gin.RouterGroup, h *handlers.CartHandler, cfg *config.Config) {
	carts := rg.Group("/cart")
	carts.Use(middleware.OptionalAuthMiddleware(cfg))
	{
		carts.POST("/add", h.Add)
		carts.POST("/update", h.Update)
		carts.POST("/get", h.Get)
		carts.POST("/clear", h.Clear)
	}

	merge := rg.Group("/cart")
	merge.Use(middleware.AuthMiddleware(cfg))
	{
		merge.POST("/merge", h.Merge)
	}
}

func setupOrderRoutes(rg *gin.RouterGroup, h *handlers.OrderHandler, cfg *config.Config) {
	orders := rg.Group("/order")
	orders.Use(middleware.AuthMiddleware(cfg))
	{
		orders.POST("/place", h.Place)
		orders.POST("/stripe", h.PlaceStripe)
		orders.POST("/update-payment", h.VerifyPayment)
		orders.POST("/userorders", h.UserOrders)

		admin := orders.Group("")
		admin.Use(middleware.AdminMiddleware())
		{
			admin.POST("/list", h.ListAll)
			admin.POST("/status", h.UpdateStatus)
			admin.POST("/delete", h.Delete)
			admin.GET("/invoice/:id", h.Invoice)
		}
	}
}

func setupSubscriberRoutes(rg *gin.RouterGroup, h *handlers.SubscriberHandler, cfg *config.Config) {
	subs := rg.Group("/subscribers")
	{
		subs.POST("", h.Subscribe)
		subs.PUT("/unsubscribe", h.Unsubscribe)

		admin := subs.Group("")
		admin.Use(middleware.AuthMiddleware(cfg), middleware.AdminMiddleware())
		{
			admin.GET("", h.List)
			admin.POST("/notify", h.Notify)
			admin.POST("/notify-new-product", h.NotifyNewProduct)
		}
	}
}
