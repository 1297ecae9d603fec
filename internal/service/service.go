package service

import (
	"go.uber.org/zap"

	"github.com/IvanREAL05/control-actividades-sub000/internal/repository"
	"github.com/IvanREAL05/control-actividades-sub000/pkg/clock"
	"github.com/IvanREAL05/control-actividades-sub000/pkg/qr"
)

// Service is the aggregate entry point for the business layer.
type Service struct {
	Asistencia   AsistenciaService
	Entrega      EntregaService
	Snapshot     SnapshotService
	Justificante JustificanteService
	Horario      HorarioService
	Estudiante   EstudianteService
}

// Deps carries the collaborators the services share. Cache and Store may be
// nil when Redis is absent.
type Deps struct {
	Repo    *repository.Repository
	Codec   *qr.Codec
	Reloj   clock.Clock
	Pub     Publisher
	Cache   SnapshotCache
	Store   SnapshotStore
	QRNonce string
	Logger  *zap.Logger
}

// NewService wires the business layer. The Recorder is shared so every
// write path publishes through the same component.
func NewService(d Deps) *Service {
	recorder := NewRecorder(d.Repo, d.Pub, d.Cache, d.Logger)

	return &Service{
		Asistencia:   NewAsistenciaService(d.Repo, d.Codec, d.Reloj, recorder, d.Logger),
		Entrega:      NewEntregaService(d.Repo, d.Codec, d.Reloj, recorder, d.Logger),
		Snapshot:     NewSnapshotService(d.Repo, d.Reloj, d.Store, d.Logger),
		Justificante: NewJustificanteService(d.Repo, d.Reloj, d.Logger),
		Horario:      NewHorarioService(d.Repo, d.Reloj),
		Estudiante:   NewEstudianteService(d.Repo, d.Codec, d.QRNonce),
	}
}
