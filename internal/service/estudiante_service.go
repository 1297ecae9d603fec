package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/IvanREAL05/control-actividades-sub000/internal/model"
	"github.com/IvanREAL05/control-actividades-sub000/internal/repository"
	"github.com/IvanREAL05/control-actividades-sub000/pkg/qr"
)

// EstudianteService serves student-facing artifacts: the printable QR badge
// and the attendance history consulted by tutors.
type EstudianteService interface {
	BadgeQR(ctx context.Context, idEstudiante uint) ([]byte, error)
	// HistorialAsistencia lists the student's records inside [inicio, fin],
	// both dates in YYYY-MM-DD.
	HistorialAsistencia(ctx context.Context, idEstudiante uint, inicio, fin string) ([]model.Asistencia, error)
}

type estudianteService struct {
	repo  *repository.Repository
	codec *qr.Codec
	nonce string
}

// NewEstudianteService builds the EstudianteService. The nonce is the
// per-installation static fourth component of every issued QR.
func NewEstudianteService(repo *repository.Repository, codec *qr.Codec, nonce string) EstudianteService {
	return &estudianteService{repo: repo, codec: codec, nonce: nonce}
}

func (s *estudianteService) BadgeQR(ctx context.Context, idEstudiante uint) ([]byte, error) {
	estudiante, err := s.repo.Estudiante.GetByID(ctx, idEstudiante)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEstudianteNoEncontrado
		}
		return nil, err
	}

	payload := qr.Payload{
		Nombre:    estudiante.NombreCompleto(),
		Matricula: estudiante.Matricula,
		Nonce:     s.nonce,
	}
	if estudiante.Grupo != nil {
		payload.Grupo = estudiante.Grupo.Nombre
	} else {
		// the association may not be loaded; the badge still needs the label
		grupo, err := s.repo.Grupo.GetByID(ctx, estudiante.IDGrupo)
		if err != nil {
			return nil, err
		}
		payload.Grupo = grupo.Nombre
	}
	return s.codec.BadgePNG(payload)
}

func (s *estudianteService) HistorialAsistencia(ctx context.Context, idEstudiante uint, inicio, fin string) ([]model.Asistencia, error) {
	desde, err := time.Parse(formatoFecha, inicio)
	if err != nil {
		return nil, ErrRangoFechasInvalido
	}
	hasta, err := time.Parse(formatoFecha, fin)
	if err != nil {
		return nil, ErrRangoFechasInvalido
	}
	if hasta.Before(desde) {
		return nil, ErrRangoFechasInvalido
	}

	if _, err := s.repo.Estudiante.GetByID(ctx, idEstudiante); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEstudianteNoEncontrado
		}
		return nil, err
	}
	return s.repo.Asistencia.ListPorEstudianteRango(ctx, idEstudiante, inicio, fin)
}
