package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/IvanREAL05/control-actividades-sub000/internal/repository"
	"github.com/IvanREAL05/control-actividades-sub000/internal/service"
	"github.com/IvanREAL05/control-actividades-sub000/pkg/qr"
	"github.com/IvanREAL05/control-actividades-sub000/pkg/response"
)

// manejarError maps domain errors to the HTTP envelope. Every ingest
// handler funnels its service errors through here so the error kinds
// stay consistent across endpoints.
func manejarError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, qr.ErrTokenInvalido):
		response.BadRequest(c, "token_invalido", "token QR inválido")
	case errors.Is(err, service.ErrEstadoInvalido):
		response.BadRequest(c, "estado_invalido", "estado de asistencia inválido")
	case errors.Is(err, service.ErrGrupoNoCoincide):
		response.BadRequest(c, "grupo_no_coincide", "el grupo del token no coincide con el del estudiante")
	case errors.Is(err, service.ErrClaseAjena):
		response.BadRequest(c, "clase_ajena", "la clase no pertenece al grupo del estudiante")
	case errors.Is(err, service.ErrRangoFechasInvalido):
		response.BadRequest(c, "rango_invalido", "rango de fechas inválido")
	case errors.Is(err, service.ErrEstudianteNoEncontrado):
		response.NotFound(c, "estudiante_no_encontrado", "estudiante no encontrado")
	case errors.Is(err, service.ErrClaseNoEncontrada):
		response.NotFound(c, "clase_no_encontrada", "clase no encontrada")
	case errors.Is(err, service.ErrClaseNoActiva):
		response.NotFound(c, "clase_no_activa", "la clase no tiene sesión activa")
	case errors.Is(err, service.ErrActividadNoEncontrada):
		response.NotFound(c, "actividad_no_encontrada", "actividad no encontrada")
	case errors.Is(err, repository.ErrAlmacenNoDisponible):
		response.StorageUnavailable(c)
	default:
		response.InternalError(c)
	}
}
