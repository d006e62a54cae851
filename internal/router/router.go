package router

import (
	"time"

	"github.com/Pili-73/Libreria-Pier/internal/config"
	"github.com/Pili-73/Libreria-Pier/internal/handler"
	"github.com/Pili-73/Libreria-Pier/internal/middleware"
	"github.com/Pili-73/Libreria-Pier/internal/model"
	"github.com/Pili-73/Libreria-Pier/internal/repository"
	"github.com/Pili-73/Libreria-Pier/internal/service"
	"github.com/Pili-73/Libreria-Pier/internal/session"
	"github.com/Pili-73/Libreria-Pier/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Infrastructure ───────────────────────────────────────────────────────
	sesiones := session.NewRedisStore(rdb, time.Duration(cfg.JWTExpirationHours)*time.Hour)
	dispatcher := worker.NewDispatcher(rdb)

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	credencialRepo := repository.NewCredencialRepository(db)
	libroRepo := repository.NewLibroRepository(db)
	carritoRepo := repository.NewCarritoRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, credencialRepo, sesiones, dispatcher, cfg)
	catalogoSvc := service.NewCatalogoService(libroRepo, rdb)
	carritoSvc := service.NewCarritoService(carritoRepo, libroRepo, dispatcher)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	librosH := handler.NewLibrosHandler(catalogoSvc)
	carritoH := handler.NewCarritoHandler(carritoSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/register", authH.Registro)
	}

	// Catalog reads — no auth required (storefront browsing)
	r.GET("/v1/libros", librosH.Listar)
	r.GET("/v1/libros/:id", librosH.ObtenerPorID)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret, sesiones)
	v1 := r.Group("/v1", jwtMW)
	{
		v1.POST("/auth/logout", authH.Logout)
		v1.GET("/auth/me", authH.Me)

		// Catalog writes — admin only (role flag, no further admin tooling)
		libros := v1.Group("/libros", middleware.RequireRole(model.RolAdmin))
		{
			libros.PUT("/:id", librosH.Actualizar)
			libros.DELETE("/:id", librosH.Eliminar)
		}

		carrito := v1.Group("/carrito")
		{
			carrito.GET("", carritoH.Obtener)
			carrito.POST("/items", carritoH.Agregar)
			carrito.PATCH("/items/:id", carritoH.ActualizarCantidad)
			carrito.DELETE("/items/:id", carritoH.Quitar)
			carrito.DELETE("", carritoH.Vaciar)
			carrito.POST("/checkout", carritoH.Checkout)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
