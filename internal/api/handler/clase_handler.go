package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/IvanREAL05/control-actividades-sub000/internal/service"
	"github.com/IvanREAL05/control-actividades-sub000/pkg/response"
)

// ClaseHandler exposes class schedule endpoints.
type ClaseHandler struct {
	horarioSvc service.HorarioService
}

// NewClaseHandler builds the ClaseHandler.
func NewClaseHandler(horarioSvc service.HorarioService) *ClaseHandler {
	return &ClaseHandler{horarioSvc: horarioSvc}
}

// ExportarHorario serves the weekly schedule of a class as an iCalendar feed.
// GET /api/clases/:id/horario.ics
func (h *ClaseHandler) ExportarHorario(c *gin.Context) {
	idClase, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || idClase == 0 {
		response.BadRequest(c, "parametros_invalidos", "id de clase inválido")
		return
	}

	ics, err := h.horarioSvc.ExportarICS(c.Request.Context(), uint(idClase))
	if err != nil {
		manejarError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="horario.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(ics))
}

// ExportarHorarioPorNRC is the same feed keyed by registration code.
// GET /api/horarios/:nrc
func (h *ClaseHandler) ExportarHorarioPorNRC(c *gin.Context) {
	nrc := c.Param("nrc")
	if nrc == "" {
		response.BadRequest(c, "parametros_invalidos", "nrc requerido")
		return
	}

	ics, err := h.horarioSvc.ExportarICSPorNRC(c.Request.Context(), nrc)
	if err != nil {
		manejarError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="horario.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(ics))
}
