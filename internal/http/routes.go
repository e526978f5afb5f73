package http

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	applog "github.com/tazhibayda/markpad/internal/log"
	"github.com/tazhibayda/markpad/internal/metrics"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

func templates() *template.Template {
	return template.Must(template.New("").ParseFS(templatesFS, "templates/*.tmpl"))
}

func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	if err := r.SetTrustedProxies(h.TrustedProxies); err != nil {
		applog.L().Warn("invalid trusted proxies, trusting none", zap.Error(err))
		_ = r.SetTrustedProxies(nil)
	}
	r.Use(gin.Recovery())
	if h.TraceService != "" {
		r.Use(Tracing(h.TraceService))
	}
	r.Use(RequestID(), AccessLog(), metrics.Middleware())
	r.SetHTMLTemplate(templates())

	r.GET("/healthz", h.Healthz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	web := r.Group("/", h.LoadSession())
	{
		web.GET("/", h.Landing)
		web.GET("/home", RequireAuth(), h.Home)
		web.GET("/admin", RequireAuth(), h.RequireAdmin(), h.AdminPage)

		web.GET("/auth/"+h.Provider.Name()+"/login", h.Login)
		web.GET("/auth/"+h.Provider.Name()+"/callback", h.Callback)
		web.POST("/auth/logout", h.Logout)
	}

	api := r.Group("/api", h.LoadSession(), RequireAuth())
	{
		api.GET("/me", h.Me)
		api.POST("/preview", h.RateLimit(), h.Preview)
		api.GET("/preview/examples", h.PreviewExamples)

		admin := api.Group("/admin", h.RequireAdmin())
		admin.GET("/users", h.ListUsers)
		admin.GET("/users/:id", h.GetUser)
	}

	r.NoRoute(func(c *gin.Context) { c.JSON(http.StatusNotFound, gin.H{"error": "not found"}) })
	return r
}
