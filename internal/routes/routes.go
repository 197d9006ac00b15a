package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/saloes-online/internal/audit"
	"github.com/BruksfildServices01/saloes-online/internal/auth"
	"github.com/BruksfildServices01/saloes-online/internal/catalog"
	"github.com/BruksfildServices01/saloes-online/internal/config"
	"github.com/BruksfildServices01/saloes-online/internal/handlers"
	"github.com/BruksfildServices01/saloes-online/internal/middleware"
	"github.com/BruksfildServices01/saloes-online/internal/usecase/migration"
	"github.com/BruksfildServices01/saloes-online/web"
)

// Deps reúne o que main monta na subida. Logos, Clients e AuditLogs ficam
// nil quando o serviço correspondente não está configurado.
type Deps struct {
	Config    *config.Config
	Log       *zap.Logger
	Store     *catalog.Store
	Auth      *auth.Service
	Leads     handlers.LeadSubmitter
	Migrator  *migration.Migrator
	Logos     handlers.LogoStore
	Clients   handlers.ClientRepository
	Audit     audit.Recorder
	AuditLogs handlers.AuditLogReader
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware(d.Config.CORSOrigins))
	r.Use(middleware.Sessions(d.Config.SessionSecret, d.Config.SecureCookies))

	r.SetHTMLTemplate(web.Templates())

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(d.Auth)
	salonHandler := handlers.NewSalonHandler(d.Store, d.Logos, d.Audit, d.Log)
	clientHandler := handlers.NewClientHandler(d.Clients, d.Audit)
	leadHandler := handlers.NewLeadHandler(d.Leads)
	migrationHandler := handlers.NewMigrationHandler(
		d.Migrator,
		d.Store,
		d.Config.MigrationBackupDir,
		d.Config.MigrationRefreshWait,
	)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.AuditLogs)
	webHandler := handlers.NewWebHandler(d.Store, d.Leads, d.Auth, d.Audit)

	r.GET("/health", func(c *gin.Context) {
		st := d.Store.State()
		c.JSON(http.StatusOK, gin.H{
			"status":            "ok",
			"remote_configured": st.RemoteConfigured,
			"source":            st.Source,
		})
	})

	// ======================================================
	// ROTAS WEB (HTML)
	// ======================================================
	r.GET("/", func(c *gin.Context) { c.Redirect(http.StatusFound, "/web") })

	webGroup := r.Group("/web")
	{
		webGroup.GET("", webHandler.Home)
		webGroup.GET("/contato", webHandler.ContactPage)
		webGroup.POST("/contato", webHandler.ContactSubmit)

		webGroup.GET("/admin/login", webHandler.LoginPage)
		webGroup.POST("/admin/login", webHandler.LoginSubmit)
		webGroup.GET("/admin/logout", webHandler.Logout)

		webAdmin := webGroup.Group("/admin")
		webAdmin.Use(middleware.SessionAuth("/web/admin/login"))
		{
			webAdmin.GET("/dashboard", webHandler.Dashboard)
			webAdmin.POST("/saloes", webHandler.CreateSalon)
			webAdmin.GET("/saloes/:id/edit", webHandler.EditSalonPage)
			webAdmin.POST("/saloes/:id/edit", webHandler.UpdateSalon)
			webAdmin.POST("/saloes/:id/toggle", webHandler.ToggleSalon)
			webAdmin.POST("/saloes/:id/delete", webHandler.DeleteSalon)
		}
	}

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// API PÚBLICA
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/saloes", salonHandler.PublicList)
			publicAPI.GET("/saloes/:id", salonHandler.PublicGet)
			publicAPI.POST("/contato", leadHandler.Submit)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// API DO PAINEL
		// ------------------------------
		admin := api.Group("/admin")
		admin.Use(middleware.AuthMiddleware(d.Auth))
		{
			admin.GET("/me", authHandler.Me)

			admin.GET("/saloes", salonHandler.List)
			admin.POST("/saloes", salonHandler.Create)
			admin.GET("/saloes/state", salonHandler.State)
			admin.POST("/saloes/refresh", salonHandler.Refresh)
			admin.PATCH("/saloes/:id", salonHandler.Update)
			admin.DELETE("/saloes/:id", salonHandler.Delete)
			admin.PATCH("/saloes/:id/toggle", salonHandler.Toggle)
			admin.POST("/saloes/:id/logo", salonHandler.UploadLogo)

			admin.GET("/clientes", clientHandler.List)
			admin.POST("/clientes", clientHandler.Create)
			admin.DELETE("/clientes/:id", clientHandler.Delete)

			admin.GET("/migration/status", migrationHandler.Status)
			admin.POST("/migration", migrationHandler.Run)

			admin.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
