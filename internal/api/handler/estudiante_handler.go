package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/IvanREAL05/control-actividades-sub000/internal/service"
	"github.com/IvanREAL05/control-actividades-sub000/pkg/response"
)

// EstudianteHandler exposes student-facing endpoints.
type EstudianteHandler struct {
	estudianteSvc service.EstudianteService
}

// NewEstudianteHandler builds the EstudianteHandler.
func NewEstudianteHandler(estudianteSvc service.EstudianteService) *EstudianteHandler {
	return &EstudianteHandler{estudianteSvc: estudianteSvc}
}

// BadgeQR serves the printable QR badge of a student as PNG.
// GET /api/estudiantes/:id/qr
func (h *EstudianteHandler) BadgeQR(c *gin.Context) {
	idEstudiante, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || idEstudiante == 0 {
		response.BadRequest(c, "parametros_invalidos", "id de estudiante inválido")
		return
	}

	png, err := h.estudianteSvc.BadgeQR(c.Request.Context(), uint(idEstudiante))
	if err != nil {
		manejarError(c, err)
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}

// Historial lists the attendance records of a student over a date range.
// GET /api/estudiantes/:id/asistencias?inicio=YYYY-MM-DD&fin=YYYY-MM-DD
func (h *EstudianteHandler) Historial(c *gin.Context) {
	idEstudiante, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || idEstudiante == 0 {
		response.BadRequest(c, "parametros_invalidos", "id de estudiante inválido")
		return
	}

	registros, err := h.estudianteSvc.HistorialAsistencia(
		c.Request.Context(), uint(idEstudiante), c.Query("inicio"), c.Query("fin"))
	if err != nil {
		manejarError(c, err)
		return
	}

	response.Data(c, registros)
}
