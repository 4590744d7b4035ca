package handler

import (
	"net/http"

	"ski-stays/internal/domain/user"
	"ski-stays/internal/handler/api"
	"ski-stays/internal/handler/middleware"
	"ski-stays/internal/pkg/config"
	"ski-stays/internal/pkg/obs"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
}

type RouterParams struct {
	fx.In

	Engine         *gin.Engine
	Config         config.Config
	Logger         *middleware.Logger
	Metrics        *obs.Metrics
	AuthMiddleware *middleware.AuthMiddleware
	Hotels         *api.HotelHandler
	Bookings       *api.BookingHandler
	Auth           *api.AuthHandler
	Admin          *api.AdminHandler
}

func NewRouter(p RouterParams) {
	setupMiddleware(p.Engine, p.Config, p.Logger, p.Metrics)
	setupRoutes(p)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *middleware.Logger, m *obs.Metrics) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(logger))
	engine.Use(middleware.Metrics(m))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(p RouterParams) {
	engine := p.Engine
	authMiddleware := p.AuthMiddleware

	engine.GET("/health", healthCheck)
	engine.GET("/metrics", gin.WrapH(p.Metrics.Handler()))

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		hotels := apiGroup.Group("/hotels")
		addRoutes(hotels, []route{
			{Method: http.MethodGet, Path: "/search", Handler: p.Hotels.Search},
			{Method: http.MethodGet, Path: "/rates", Handler: p.Hotels.Rates},
			{Method: http.MethodPost, Path: "/rates/stream", Handler: p.Hotels.StreamRates},
			{Method: http.MethodGet, Path: "/details", Handler: p.Hotels.Details},
			{Method: http.MethodGet, Path: "/reviews", Handler: p.Hotels.Reviews},
		})

		booking := apiGroup.Group("/booking")
		{
			addRoutes(booking, []route{
				{Method: http.MethodPost, Path: "/prebook", Handler: p.Bookings.Prebook},
				{Method: http.MethodPost, Path: "/lookup", Handler: p.Bookings.Lookup},
				{Method: http.MethodPost, Path: "/manage", Handler: p.Bookings.Manage},
			})

			// guests may book without an account; a valid session links the booking
			withUser := booking.Group("")
			withUser.Use(authMiddleware.OptionalAuth())
			addRoutes(withUser, []route{
				{Method: http.MethodPost, Path: "/confirm", Handler: p.Bookings.Confirm},
			})
		}

		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/login", Handler: p.Auth.Login},
			})

			authRequired := auth.Group("")
			authRequired.Use(authMiddleware.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodPost, Path: "/logout", Handler: p.Auth.Logout},
				{Method: http.MethodGet, Path: "/me", Handler: p.Auth.Me},
			})
		}

		admin := apiGroup.Group("/admin")
		admin.Use(authMiddleware.RequireAuth(), authMiddleware.RequireRole(user.RoleAdmin))
		addRoutes(admin, []route{
			{Method: http.MethodGet, Path: "/stats", Handler: p.Admin.Stats},
			{Method: http.MethodGet, Path: "/bookings", Handler: p.Admin.Bookings},
		})
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, r.Handler)
		case http.MethodPost:
			g.POST(r.Path, r.Handler)
		default:
			g.Handle(r.Method, r.Path, r.Handler)
		}
	}
}
