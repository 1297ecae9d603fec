package service

import (
	"context"
	"errors"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/IvanREAL05/control-actividades-sub000/internal/dto"
	"github.com/IvanREAL05/control-actividades-sub000/internal/model"
	"github.com/IvanREAL05/control-actividades-sub000/internal/repository"
	"github.com/IvanREAL05/control-actividades-sub000/pkg/clock"
)

// estadoPendiente is the attendance state reported for roster rows whose
// class-day has not been materialized yet.
const estadoPendiente = "pending"

// SnapshotStore caches serialized snapshots. Satisfied by the Redis client;
// may be nil, in which case every read goes to the database.
type SnapshotStore interface {
	GetSnapshot(ctx context.Context, idClase uint) (string, error)
	SetSnapshot(ctx context.Context, idClase uint, data string) error
}

// SnapshotService builds the full projection a new subscriber receives:
// class meta, today's activities, and the roster with per-student attendance
// and delivery states.
type SnapshotService interface {
	Snapshot(ctx context.Context, idClase uint) (*dto.DatosIniciales, error)
	SnapshotJSON(ctx context.Context, idClase uint) ([]byte, error)
}

type snapshotService struct {
	repo   *repository.Repository
	reloj  clock.Clock
	cache  SnapshotStore
	logger *zap.Logger
}

// NewSnapshotService builds the SnapshotService.
func NewSnapshotService(repo *repository.Repository, reloj clock.Clock, cache SnapshotStore, logger *zap.Logger) SnapshotService {
	return &snapshotService{repo: repo, reloj: reloj, cache: cache, logger: logger}
}

// SnapshotJSON returns the serialized snapshot, from cache when fresh.
// Cache failures fall back to the database silently.
func (s *snapshotService) SnapshotJSON(ctx context.Context, idClase uint) ([]byte, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetSnapshot(ctx, idClase); err == nil && cached != "" {
			return []byte(cached), nil
		}
	}

	snapshot, err := s.Snapshot(ctx, idClase)
	if err != nil {
		return nil, err
	}
	frame, err := json.Marshal(snapshot)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetSnapshot(ctx, idClase, string(frame)); err != nil {
			s.logger.Warn("guardar snapshot en caché", zap.Uint("id_clase", idClase), zap.Error(err))
		}
	}
	return frame, nil
}

func (s *snapshotService) Snapshot(ctx context.Context, idClase uint) (*dto.DatosIniciales, error) {
	clase, err := s.repo.Clase.GetByID(ctx, idClase)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClaseNoEncontrada
		}
		return nil, err
	}

	hoy := clock.Fecha(s.reloj.Now())

	actividades, err := s.repo.Actividad.ListDeHoy(ctx, clase.ID, hoy)
	if err != nil {
		return nil, err
	}

	estudiantes, err := s.repo.Estudiante.ListByGrupo(ctx, clase.IDGrupo)
	if err != nil {
		return nil, err
	}

	asistencias, err := s.repo.Asistencia.ListPorClaseFecha(ctx, clase.ID, hoy)
	if err != nil {
		return nil, err
	}
	porEstudiante := make(map[uint]*model.Asistencia, len(asistencias))
	for i := range asistencias {
		porEstudiante[asistencias[i].IDEstudiante] = &asistencias[i]
	}

	idActividades := make([]uint, len(actividades))
	resumen := make([]dto.ActividadResumen, len(actividades))
	for i, a := range actividades {
		idActividades[i] = a.ID
		resumen[i] = dto.ActividadResumen{
			IDActividad:  a.ID,
			Titulo:       a.Titulo,
			Tipo:         string(a.Tipo),
			FechaEntrega: a.FechaEntrega.Format("2006-01-02 15:04"),
			ValorMaximo:  a.ValorMaximo,
		}
	}

	entregas, err := s.repo.Entrega.ListPorActividades(ctx, idActividades)
	if err != nil {
		return nil, err
	}
	entregaDe := make(map[uint]map[uint]string) // id_estudiante → id_actividad → estado
	for _, e := range entregas {
		if entregaDe[e.IDEstudiante] == nil {
			entregaDe[e.IDEstudiante] = make(map[uint]string)
		}
		entregaDe[e.IDEstudiante][e.IDActividad] = string(e.Estado)
	}

	filas := make([]dto.EstudianteTabla, len(estudiantes))
	for i, e := range estudiantes {
		fila := dto.EstudianteTabla{
			IDEstudiante: e.ID,
			Matricula:    e.Matricula,
			Nombre:       e.Nombre,
			Apellido:     e.Apellido,
			NoLista:      e.NoLista,
			Estado:       estadoPendiente,
			Entregas:     make(map[uint]string, len(actividades)),
		}
		if reg, ok := porEstudiante[e.ID]; ok {
			fila.Estado = string(reg.Estado)
			fila.HoraEntrada = reg.HoraEntrada
		}
		for _, id := range idActividades {
			estado := string(model.EntregaPendiente)
			if m, ok := entregaDe[e.ID]; ok {
				if v, ok := m[id]; ok {
					estado = v
				}
			}
			fila.Entregas[id] = estado
		}
		filas[i] = fila
	}

	meta := dto.ClaseMeta{IDClase: clase.ID, NombreClase: clase.NombreClase}
	if clase.Materia != nil {
		meta.NombreMateria = clase.Materia.Nombre
	}
	if clase.Grupo != nil {
		meta.NombreGrupo = clase.Grupo.Nombre
	}

	return &dto.DatosIniciales{
		Tipo:        dto.TipoDatosIniciales,
		Clase:       meta,
		Actividades: resumen,
		Estudiantes: filas,
	}, nil
}
