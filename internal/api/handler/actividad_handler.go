package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/IvanREAL05/control-actividades-sub000/internal/dto"
	"github.com/IvanREAL05/control-actividades-sub000/internal/service"
	"github.com/IvanREAL05/control-actividades-sub000/pkg/response"
)

// ActividadHandler exposes the activity delivery endpoints.
type ActividadHandler struct {
	entregaSvc service.EntregaService
}

// NewActividadHandler builds the ActividadHandler.
func NewActividadHandler(entregaSvc service.EntregaService) *ActividadHandler {
	return &ActividadHandler{entregaSvc: entregaSvc}
}

// Entregar processes a QR delivery scan.
// POST /api/actividades/entrega
func (h *ActividadHandler) Entregar(c *gin.Context) {
	var req dto.EntregarActividadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "parametros_invalidos", "cuerpo de la petición inválido")
		return
	}

	res, err := h.entregaSvc.RegistrarScan(c.Request.Context(), &req)
	if err != nil {
		manejarError(c, err)
		return
	}

	response.OK(c, res.Mensaje, gin.H{
		"entregada":       res.Entregada,
		"ya_entregada":    res.YaEntregada,
		"requiere_manual": res.RequiereManual,
		"tarde":           res.Tarde,
	})
}

// Validar runs the delivery checks without writing anything, so the
// operator can confirm before committing a manual grade.
// POST /api/actividades/validar-entrega
func (h *ActividadHandler) Validar(c *gin.Context) {
	var req dto.EntregarActividadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "parametros_invalidos", "cuerpo de la petición inválido")
		return
	}

	res, err := h.entregaSvc.Validar(c.Request.Context(), &req)
	if err != nil {
		manejarError(c, err)
		return
	}

	response.Data(c, res)
}
