package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/IvanREAL05/control-actividades-sub000/internal/dto"
	"github.com/IvanREAL05/control-actividades-sub000/internal/service"
	"github.com/IvanREAL05/control-actividades-sub000/pkg/response"
)

// AsistenciaHandler exposes the attendance ingest endpoints.
type AsistenciaHandler struct {
	asistenciaSvc service.AsistenciaService
	logger        *zap.Logger
}

// NewAsistenciaHandler builds the AsistenciaHandler.
func NewAsistenciaHandler(asistenciaSvc service.AsistenciaService, logger *zap.Logger) *AsistenciaHandler {
	return &AsistenciaHandler{asistenciaSvc: asistenciaSvc, logger: logger}
}

// Registrar processes a QR attendance scan.
// POST /api/asistencias
func (h *AsistenciaHandler) Registrar(c *gin.Context) {
	var req dto.RegistrarAsistenciaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "parametros_invalidos", "cuerpo de la petición inválido")
		return
	}

	res, err := h.asistenciaSvc.RegistrarScan(c.Request.Context(), &req)
	if err != nil {
		manejarError(c, err)
		return
	}

	extra := gin.H{
		"nuevo":       res.Nuevo,
		"actualizado": res.Actualizado,
		"duplicado":   res.Duplicado,
	}
	if res.Estudiante != nil {
		extra["estudiante"] = res.Estudiante.NombreCompleto()
	}
	response.OK(c, res.Mensaje, extra)
}

// ActualizarEstado applies an operator-driven state change.
// PUT /api/asistencias/estado
// POST /api/asistencias/actualizar-estado-estudiante
func (h *AsistenciaHandler) ActualizarEstado(c *gin.Context) {
	var req dto.ActualizarEstadoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "parametros_invalidos", "cuerpo de la petición inválido")
		return
	}
	if req.IDEstudiante == 0 && req.Matricula == "" {
		response.BadRequest(c, "parametros_invalidos", "se requiere id_estudiante o matricula")
		return
	}

	res, err := h.asistenciaSvc.ActualizarEstado(c.Request.Context(), &req)
	if err != nil {
		manejarError(c, err)
		return
	}

	response.OK(c, res.Mensaje, gin.H{"actualizado": res.Actualizado, "nuevo": res.Nuevo})
}

// InicializarHoy materializes today's attendance rows for a class.
// POST /api/clases/:id/asistencias/inicializar
func (h *AsistenciaHandler) InicializarHoy(c *gin.Context) {
	idClase, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || idClase == 0 {
		response.BadRequest(c, "parametros_invalidos", "id de clase inválido")
		return
	}

	creados, err := h.asistenciaSvc.InicializarHoy(c.Request.Context(), uint(idClase))
	if err != nil {
		manejarError(c, err)
		return
	}

	h.logger.Info("asistencias inicializadas",
		zap.Uint("id_clase", uint(idClase)),
		zap.Int64("creados", creados))
	response.OK(c, "asistencias inicializadas", gin.H{"creados": creados})
}
