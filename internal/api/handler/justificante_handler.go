package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/IvanREAL05/control-actividades-sub000/internal/dto"
	"github.com/IvanREAL05/control-actividades-sub000/internal/service"
	"github.com/IvanREAL05/control-actividades-sub000/pkg/response"
)

// JustificanteHandler exposes the absence justification endpoint.
type JustificanteHandler struct {
	justificanteSvc service.JustificanteService
}

// NewJustificanteHandler builds the JustificanteHandler.
func NewJustificanteHandler(justificanteSvc service.JustificanteService) *JustificanteHandler {
	return &JustificanteHandler{justificanteSvc: justificanteSvc}
}

// Crear registers a justification and applies it over its date range.
// POST /api/justificantes
func (h *JustificanteHandler) Crear(c *gin.Context) {
	var req dto.CrearJustificanteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "parametros_invalidos", "cuerpo de la petición inválido")
		return
	}

	res, err := h.justificanteSvc.Crear(c.Request.Context(), &req)
	if err != nil {
		manejarError(c, err)
		return
	}

	response.Data(c, res)
}

// Listar returns the justifications of a student, newest first.
// GET /api/justificantes/:matricula
func (h *JustificanteHandler) Listar(c *gin.Context) {
	matricula := c.Param("matricula")
	if matricula == "" {
		response.BadRequest(c, "parametros_invalidos", "matrícula requerida")
		return
	}

	justificantes, err := h.justificanteSvc.ListarPorMatricula(c.Request.Context(), matricula)
	if err != nil {
		manejarError(c, err)
		return
	}

	response.Data(c, justificantes)
}
