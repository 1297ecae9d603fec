package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/IvanREAL05/control-actividades-sub000/config"
	"github.com/IvanREAL05/control-actividades-sub000/internal/api/handler"
	"github.com/IvanREAL05/control-actividades-sub000/internal/api/middleware"
	"github.com/IvanREAL05/control-actividades-sub000/pkg/redis"
)

// Setup builds and returns the Gin engine with all routes wired.
func Setup(cfg *config.Config, h *handler.Handler, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(1 << 20))

	// ── health check ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API ──
	// Scan ingest takes bursts from scanner stations; the limit only guards
	// against runaway clients.
	limiteScan := middleware.RateLimit(rdb, 120, time.Minute)

	api := r.Group("/api")
	{
		asistencias := api.Group("/asistencias")
		{
			asistencias.POST("", limiteScan, h.Asistencia.Registrar)
			asistencias.PUT("/estado", h.Asistencia.ActualizarEstado)
			asistencias.POST("/actualizar-estado-estudiante", h.Asistencia.ActualizarEstado)
		}

		actividades := api.Group("/actividades")
		{
			actividades.POST("/entrega", limiteScan, h.Actividad.Entregar)
			actividades.POST("/validar-entrega", h.Actividad.Validar)
		}

		clases := api.Group("/clases")
		{
			clases.POST("/:id/asistencias/inicializar", h.Asistencia.InicializarHoy)
			clases.GET("/:id/horario.ics", h.Clase.ExportarHorario)
		}

		// schedule feed by registration code; kept outside /clases so the
		// :id segment stays numeric
		api.GET("/horarios/:nrc", h.Clase.ExportarHorarioPorNRC)

		justificantes := api.Group("/justificantes")
		{
			justificantes.POST("", h.Justificante.Crear)
			justificantes.GET("/:matricula", h.Justificante.Listar)
		}

		estudiantes := api.Group("/estudiantes")
		{
			estudiantes.GET("/:id/qr", h.Estudiante.BadgeQR)
			estudiantes.GET("/:id/asistencias", h.Estudiante.Historial)
		}
	}

	// ── live table ──
	r.GET("/ws/tabla/:id_clase", h.WS.Tabla)

	return r
}
