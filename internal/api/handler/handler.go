package handler

import (
	"go.uber.org/zap"

	"github.com/IvanREAL05/control-actividades-sub000/internal/live"
	"github.com/IvanREAL05/control-actividades-sub000/internal/service"
)

// Handler is the aggregate entry point for all HTTP handlers.
type Handler struct {
	Asistencia   *AsistenciaHandler
	Actividad    *ActividadHandler
	Justificante *JustificanteHandler
	Clase        *ClaseHandler
	Estudiante   *EstudianteHandler
	WS           *WSHandler
}

// NewHandler builds the Handler aggregate.
func NewHandler(svc *service.Service, hub *live.Hub, logger *zap.Logger) *Handler {
	return &Handler{
		Asistencia:   NewAsistenciaHandler(svc.Asistencia, logger),
		Actividad:    NewActividadHandler(svc.Entrega),
		Justificante: NewJustificanteHandler(svc.Justificante),
		Clase:        NewClaseHandler(svc.Horario),
		Estudiante:   NewEstudianteHandler(svc.Estudiante),
		WS:           NewWSHandler(hub, svc.Snapshot, logger),
	}
}
