package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/IvanREAL05/control-actividades-sub000/internal/dto"
	"github.com/IvanREAL05/control-actividades-sub000/internal/model"
	"github.com/IvanREAL05/control-actividades-sub000/internal/repository"
	"github.com/IvanREAL05/control-actividades-sub000/pkg/clock"
	"github.com/IvanREAL05/control-actividades-sub000/pkg/qr"
)

// ResultadoAsistencia reports the write outcome to the ingest surface.
// Exactly one of Nuevo, Actualizado, Duplicado is set.
type ResultadoAsistencia struct {
	Nuevo       bool
	Actualizado bool
	Duplicado   bool
	Mensaje     string
	Estudiante  *model.Estudiante
}

// AsistenciaService is the attendance ingest pipeline:
// decode → validate → record → publish.
type AsistenciaService interface {
	RegistrarScan(ctx context.Context, req *dto.RegistrarAsistenciaRequest) (*ResultadoAsistencia, error)
	ActualizarEstado(ctx context.Context, req *dto.ActualizarEstadoRequest) (*ResultadoAsistencia, error)
	InicializarHoy(ctx context.Context, idClase uint) (int64, error)
}

type asistenciaService struct {
	repo     *repository.Repository
	codec    *qr.Codec
	reloj    clock.Clock
	recorder *Recorder
	logger   *zap.Logger
}

// NewAsistenciaService builds the AsistenciaService.
func NewAsistenciaService(repo *repository.Repository, codec *qr.Codec, reloj clock.Clock, recorder *Recorder, logger *zap.Logger) AsistenciaService {
	return &asistenciaService{repo: repo, codec: codec, reloj: reloj, recorder: recorder, logger: logger}
}

func (s *asistenciaService) RegistrarScan(ctx context.Context, req *dto.RegistrarAsistenciaRequest) (*ResultadoAsistencia, error) {
	token, err := s.codec.Decode(req.QR)
	if err != nil {
		return nil, err // qr.ErrTokenInvalido
	}

	estudiante, clase, err := s.buscarContexto(ctx, token.Matricula, req.IDClase)
	if err != nil {
		return nil, err
	}

	// Scans only count while the class is in session; operator updates via
	// ActualizarEstado bypass the window so corrections can land later.
	ahora := s.reloj.Now()
	if !HorarioEnCurso(clase.Horarios, clock.DiaSemana(ahora), clock.Hora(ahora)) {
		return nil, ErrClaseNoActiva
	}

	existente, err := s.registroExistente(ctx, estudiante, clase, clock.Fecha(ahora))
	if err != nil {
		return nil, err
	}

	decision := ValidarAsistencia(token, estudiante, clase, existente, model.EstadoAsistencia(req.Estado), ahora)
	return s.aplicar(ctx, decision, estudiante, clase)
}

func (s *asistenciaService) ActualizarEstado(ctx context.Context, req *dto.ActualizarEstadoRequest) (*ResultadoAsistencia, error) {
	var estudiante *model.Estudiante
	var err error
	switch {
	case req.IDEstudiante != 0:
		estudiante, err = s.repo.Estudiante.GetByID(ctx, req.IDEstudiante)
	case req.Matricula != "":
		estudiante, err = s.repo.Estudiante.GetByMatricula(ctx, req.Matricula)
	default:
		return nil, ErrEstudianteNoEncontrado
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEstudianteNoEncontrado
		}
		return nil, err
	}

	clase, err := s.repo.Clase.GetByID(ctx, req.IDClase)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClaseNoEncontrada
		}
		return nil, err
	}

	ahora := s.reloj.Now()
	existente, err := s.registroExistente(ctx, estudiante, clase, clock.Fecha(ahora))
	if err != nil {
		return nil, err
	}

	// An operator update follows the same decision table as a scan; the
	// token row is synthesized from the registered data so the group checks
	// always pass.
	token := qr.Payload{Matricula: estudiante.Matricula}
	if estudiante.Grupo != nil {
		token.Grupo = estudiante.Grupo.Nombre
	}
	decision := ValidarAsistencia(token, estudiante, clase, existente, model.EstadoAsistencia(req.Estado), ahora)
	return s.aplicar(ctx, decision, estudiante, clase)
}

func (s *asistenciaService) InicializarHoy(ctx context.Context, idClase uint) (int64, error) {
	clase, err := s.repo.Clase.GetByID(ctx, idClase)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrClaseNoEncontrada
		}
		return 0, err
	}

	hoy := clock.Fecha(s.reloj.Now())
	creadas, err := s.repo.Asistencia.InitializeToday(ctx, clase.ID, clase.IDGrupo, hoy)
	if err != nil {
		return 0, err
	}

	s.logger.Info("asistencias del día materializadas",
		zap.Uint("id_clase", clase.ID),
		zap.String("fecha", hoy),
		zap.Int64("creadas", creadas),
	)
	return creadas, nil
}

// ── helpers ──

func (s *asistenciaService) buscarContexto(ctx context.Context, matricula string, idClase uint) (*model.Estudiante, *model.Clase, error) {
	estudiante, err := s.repo.Estudiante.GetByMatricula(ctx, matricula)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrEstudianteNoEncontrado
		}
		return nil, nil, err
	}

	clase, err := s.repo.Clase.GetByID(ctx, idClase)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrClaseNoEncontrada
		}
		return nil, nil, err
	}
	return estudiante, clase, nil
}

func (s *asistenciaService) registroExistente(ctx context.Context, estudiante *model.Estudiante, clase *model.Clase, fecha string) (*model.Asistencia, error) {
	existente, err := s.repo.Asistencia.For(ctx, estudiante.ID, clase.ID, fecha)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return existente, nil
}

func (s *asistenciaService) aplicar(ctx context.Context, decision DecisionAsistencia, estudiante *model.Estudiante, clase *model.Clase) (*ResultadoAsistencia, error) {
	switch decision.Veredicto {
	case AsistenciaRechazada:
		return nil, decision.Motivo

	case AsistenciaDuplicada:
		// Repeat scans are safe: reported as a successful no-op.
		return &ResultadoAsistencia{Duplicado: true, Mensaje: "asistencia ya registrada", Estudiante: estudiante}, nil

	case AsistenciaActualizada:
		if err := s.recorder.GrabarAsistencia(ctx, decision, estudiante, clase); err != nil {
			return nil, err
		}
		return &ResultadoAsistencia{Actualizado: true, Mensaje: "asistencia actualizada", Estudiante: estudiante}, nil

	case AsistenciaCreada:
		if err := s.recorder.GrabarAsistencia(ctx, decision, estudiante, clase); err != nil {
			return nil, err
		}
		return &ResultadoAsistencia{Nuevo: true, Mensaje: "asistencia registrada", Estudiante: estudiante}, nil

	default:
		return nil, ErrInvarianteViolada
	}
}
