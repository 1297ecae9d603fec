package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/IvanREAL05/control-actividades-sub000/internal/dto"
	"github.com/IvanREAL05/control-actividades-sub000/internal/model"
	"github.com/IvanREAL05/control-actividades-sub000/internal/repository"
	"github.com/IvanREAL05/control-actividades-sub000/pkg/clock"
	"github.com/IvanREAL05/control-actividades-sub000/pkg/qr"
)

// ResultadoEntrega reports a delivery scan outcome to the ingest surface.
type ResultadoEntrega struct {
	Mensaje        string
	TipoActividad  model.TipoActividad
	Entregada      bool
	YaEntregada    bool
	RequiereManual bool
	Tarde          bool
}

// EntregaService is the delivery ingest pipeline. RegistrarScan writes;
// Validar applies identical decoding and validation without writing so the
// operator can confirm before committing a manual grade.
type EntregaService interface {
	RegistrarScan(ctx context.Context, req *dto.EntregarActividadRequest) (*ResultadoEntrega, error)
	Validar(ctx context.Context, req *dto.EntregarActividadRequest) (*dto.ValidarEntregaResponse, error)
}

type entregaService struct {
	repo     *repository.Repository
	codec    *qr.Codec
	reloj    clock.Clock
	recorder *Recorder
	logger   *zap.Logger
}

// NewEntregaService builds the EntregaService.
func NewEntregaService(repo *repository.Repository, codec *qr.Codec, reloj clock.Clock, recorder *Recorder, logger *zap.Logger) EntregaService {
	return &entregaService{repo: repo, codec: codec, reloj: reloj, recorder: recorder, logger: logger}
}

func (s *entregaService) RegistrarScan(ctx context.Context, req *dto.EntregarActividadRequest) (*ResultadoEntrega, error) {
	token, estudiante, actividad, existente, err := s.contexto(ctx, req)
	if err != nil {
		return nil, err
	}

	decision := ValidarEntrega(token, estudiante, actividad, existente, s.reloj.Now())
	switch decision.Veredicto {
	case EntregaRechazada:
		return nil, decision.Motivo

	case EntregaYaRegistrada:
		return &ResultadoEntrega{
			Mensaje:       fmt.Sprintf("la %s ya fue entregada", nombreTipo(actividad.Tipo)),
			TipoActividad: actividad.Tipo,
			YaEntregada:   true,
		}, nil

	case EntregaRequiereManual:
		// Deferred: no row is written until the operator commits a grade.
		return &ResultadoEntrega{
			Mensaje:        fmt.Sprintf("la %s requiere calificación manual", nombreTipo(actividad.Tipo)),
			TipoActividad:  actividad.Tipo,
			RequiereManual: true,
			Tarde:          decision.Tarde,
		}, nil

	case EntregaAutomatica:
		if err := s.recorder.GrabarEntrega(ctx, decision, estudiante, actividad, existente == nil); err != nil {
			return nil, err
		}
		return &ResultadoEntrega{
			Mensaje:       fmt.Sprintf("%s entregada con calificación %.1f", nombreTipo(actividad.Tipo), actividad.ValorMaximo),
			TipoActividad: actividad.Tipo,
			Entregada:     true,
		}, nil

	default:
		return nil, ErrInvarianteViolada
	}
}

func (s *entregaService) Validar(ctx context.Context, req *dto.EntregarActividadRequest) (*dto.ValidarEntregaResponse, error) {
	token, estudiante, actividad, existente, err := s.contexto(ctx, req)
	if err != nil {
		return nil, err
	}

	decision := ValidarEntrega(token, estudiante, actividad, existente, s.reloj.Now())
	switch decision.Veredicto {
	case EntregaRechazada:
		return nil, decision.Motivo

	case EntregaYaRegistrada:
		return &dto.ValidarEntregaResponse{
			IDEstudiante: estudiante.ID,
			Nombre:       estudiante.NombreCompleto(),
			Calificacion: existente.Calificacion,
			Mensaje:      "entrega ya registrada",
		}, nil

	case EntregaRequiereManual:
		return &dto.ValidarEntregaResponse{
			Tarde:        decision.Tarde,
			IDEstudiante: estudiante.ID,
			Nombre:       estudiante.NombreCompleto(),
			Mensaje:      "requiere calificación manual",
		}, nil

	default: // EntregaAutomatica: report the score that a commit would assign
		return &dto.ValidarEntregaResponse{
			IDEstudiante: estudiante.ID,
			Nombre:       estudiante.NombreCompleto(),
			Calificacion: &actividad.ValorMaximo,
			Mensaje:      "entrega a tiempo",
		}, nil
	}
}

// contexto decodes the token and loads the rows the validator needs.
func (s *entregaService) contexto(ctx context.Context, req *dto.EntregarActividadRequest) (qr.Payload, *model.Estudiante, *model.Actividad, *model.ActividadEstudiante, error) {
	token, err := s.codec.Decode(req.QR)
	if err != nil {
		return qr.Payload{}, nil, nil, nil, err
	}

	estudiante, err := s.repo.Estudiante.GetByMatricula(ctx, token.Matricula)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return qr.Payload{}, nil, nil, nil, ErrEstudianteNoEncontrado
		}
		return qr.Payload{}, nil, nil, nil, err
	}

	actividad, err := s.repo.Actividad.GetByID(ctx, req.IDActividad)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return qr.Payload{}, nil, nil, nil, ErrActividadNoEncontrada
		}
		return qr.Payload{}, nil, nil, nil, err
	}

	existente, err := s.repo.Entrega.For(ctx, estudiante.ID, actividad.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			existente = nil
		} else {
			return qr.Payload{}, nil, nil, nil, err
		}
	}

	return token, estudiante, actividad, existente, nil
}

// nombreTipo translates the stored activity kind for user-facing messages.
func nombreTipo(t model.TipoActividad) string {
	switch t {
	case model.ActividadTarea:
		return "tarea"
	case model.ActividadProyecto:
		return "proyecto"
	case model.ActividadPractica:
		return "práctica"
	case model.ActividadExamen:
		return "examen"
	default:
		return "actividad"
	}
}
