package main

import (
	"context"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/YxshR/ecommerce-perfume-website-sub000/internal/auth"
	"github.com/YxshR/ecommerce-perfume-website-sub000/internal/cart"
	"github.com/YxshR/ecommerce-perfume-website-sub000/internal/config"
	"github.com/YxshR/ecommerce-perfume-website-sub000/internal/db"
	"github.com/YxshR/ecommerce-perfume-website-sub000/internal/logging"
	"github.com/YxshR/ecommerce-perfume-website-sub000/internal/session"
	"github.com/YxshR/ecommerce-perfume-website-sub000/internal/token"
	"github.com/YxshR/ecommerce-perfume-website-sub000/internal/wishlist"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.New("dev").Error("config load failed", "error", err)
		os.Exit(1)
	}
	log := logging.New(cfg.AppEnv)

	ctx := context.Background()
	if err := db.Migrate(ctx, cfg.DatabaseURL); err != nil {
		log.Error("migrations failed", "error", err)
		os.Exit(1)
	}
	pool, err := db.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("database connect failed", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	tokens := token.NewService(cfg.SessionSecret, cfg.SessionTTL, log)
	cookies := session.NewWriter(tokens.TTL(), cfg.IsProd(), log)

	guard := auth.NewGuard(tokens, []auth.Rule{
		{Prefix: "/account", Access: auth.AccessIdentity},
		{Prefix: "/checkout", Access: auth.AccessIdentity},
		{Prefix: "/admin", Access: auth.AccessAdmin},
	})

	authHandler := auth.NewHandler(auth.Dependencies{
		Users:   auth.NewUserRepo(pool),
		Tokens:  tokens,
		Cookies: cookies,
		Log:     log,
	})
	cartHandler := cart.NewHandler(cart.NewRepo(pool), log)
	wishHandler := wishlist.NewHandler(wishlist.NewRepo(pool), log)

	if cfg.IsProd() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	// The guard runs site-wide, including for paths with no handler, so
	// protected page prefixes redirect before any 404.
	r.Use(guard.Pages())

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/signup", authHandler.Signup)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/logout", authHandler.Logout)
		authGroup.GET("/me", authHandler.Me)
	}

	protected := api.Group("/", auth.RequireIdentity())
	{
		protected.GET("/cart", cartHandler.Get)
		protected.POST("/cart/items", cartHandler.QuickAdd)
		protected.PATCH("/cart/items", cartHandler.SetQuantity)
		protected.DELETE("/cart/items", cartHandler.Remove)

		protected.GET("/wishlist", wishHandler.Get)
		protected.POST("/wishlist/items", wishHandler.Add)
		protected.DELETE("/wishlist/items", wishHandler.Remove)
	}

	adminOnly := api.Group("/admin", auth.RequireAdmin())
	adminOnly.GET("/dashboard", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "admin access granted"})
	})

	log.Info("listening", "addr", cfg.HTTPAddr, "env", cfg.AppEnv)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
