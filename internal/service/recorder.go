package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/IvanREAL05/control-actividades-sub000/internal/dto"
	"github.com/IvanREAL05/control-actividades-sub000/internal/model"
	"github.com/IvanREAL05/control-actividades-sub000/internal/repository"
)

// Publisher pushes events to the class channel. Satisfied by live.Hub.
type Publisher interface {
	Publish(idClase uint, evento *dto.EventoClase)
}

// SnapshotCache invalidates cached class snapshots after a write.
// Satisfied by the Redis client; may be nil when Redis is absent.
type SnapshotCache interface {
	InvalidateSnapshot(ctx context.Context, idClase uint) error
}

// Recorder is the single write path for attendance and delivery records.
// It performs the upsert derived by the validator and emits exactly one
// event per created or updated row. No other component publishes.
type Recorder struct {
	repo   *repository.Repository
	pub    Publisher
	cache  SnapshotCache
	logger *zap.Logger
}

// NewRecorder builds the Recorder.
func NewRecorder(repo *repository.Repository, pub Publisher, cache SnapshotCache, logger *zap.Logger) *Recorder {
	return &Recorder{repo: repo, pub: pub, cache: cache, logger: logger}
}

// GrabarAsistencia persists the derived attendance row and publishes the
// corresponding event. The caller passes the preloaded student and class so
// the event carries names without extra reads.
func (r *Recorder) GrabarAsistencia(
	ctx context.Context,
	decision DecisionAsistencia,
	estudiante *model.Estudiante,
	clase *model.Clase,
) error {
	if decision.Registro == nil {
		return nil // duplicates and rejections write nothing
	}

	if err := r.repo.Asistencia.Upsert(ctx, decision.Registro); err != nil {
		return err
	}

	evento := dto.EventoNuevaAsistencia
	if decision.Veredicto == AsistenciaActualizada {
		evento = dto.EventoAsistenciaActualizada
	}
	r.publicar(ctx, clase, &dto.EventoClase{
		Evento:       evento,
		IDEstudiante: estudiante.ID,
		Nombre:       estudiante.Nombre,
		Apellido:     estudiante.Apellido,
		IDClase:      clase.ID,
		Estado:       string(decision.Registro.Estado),
		Hora:         derefStr(decision.Registro.HoraEntrada),
		Fecha:        decision.Registro.Fecha,
	})
	return nil
}

// GrabarEntrega persists the derived delivery row and publishes the
// corresponding event on the activity's class channel.
func (r *Recorder) GrabarEntrega(
	ctx context.Context,
	decision DecisionEntrega,
	estudiante *model.Estudiante,
	actividad *model.Actividad,
	esNueva bool,
) error {
	if decision.Registro == nil {
		return nil
	}

	if err := r.repo.Entrega.Upsert(ctx, decision.Registro); err != nil {
		return err
	}

	evento := dto.EventoNuevaEntrega
	if !esNueva {
		evento = dto.EventoEntregaActualizada
	}
	hora := ""
	fecha := ""
	if decision.Registro.FechaEntregaReal != nil {
		hora = decision.Registro.FechaEntregaReal.Format("15:04:05")
		fecha = decision.Registro.FechaEntregaReal.Format("2006-01-02")
	}
	r.publicar(ctx, actividad.Clase, &dto.EventoClase{
		Evento:       evento,
		IDEstudiante: estudiante.ID,
		Nombre:       estudiante.Nombre,
		Apellido:     estudiante.Apellido,
		IDClase:      actividad.IDClase,
		Estado:       string(decision.Registro.Estado),
		Hora:         hora,
		Fecha:        fecha,
	})
	return nil
}

// publicar fills the class metadata, invalidates the snapshot cache and
// pushes the event. Cache failures are logged, never propagated.
func (r *Recorder) publicar(ctx context.Context, clase *model.Clase, evento *dto.EventoClase) {
	if clase != nil {
		if clase.Grupo != nil {
			evento.NombreGrupo = clase.Grupo.Nombre
		}
		if clase.Materia != nil {
			evento.NombreMateria = clase.Materia.Nombre
		}
	}

	if r.cache != nil {
		if err := r.cache.InvalidateSnapshot(ctx, evento.IDClase); err != nil {
			r.logger.Warn("invalidar snapshot en caché", zap.Uint("id_clase", evento.IDClase), zap.Error(err))
		}
	}

	r.pub.Publish(evento.IDClase, evento)
}

func derefStr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
