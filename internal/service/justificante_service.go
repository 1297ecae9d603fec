package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/IvanREAL05/control-actividades-sub000/internal/dto"
	"github.com/IvanREAL05/control-actividades-sub000/internal/model"
	"github.com/IvanREAL05/control-actividades-sub000/internal/repository"
	"github.com/IvanREAL05/control-actividades-sub000/pkg/clock"
)

var ErrRangoFechasInvalido = errors.New("rango de fechas inválido")

const formatoFecha = "2006-01-02"

// JustificanteService registers accepted justifications and applies their
// derived effect: every attendance record of the student inside the covered
// range, on days the student's group has class, is forced to justified.
// Missing records are created; the operation is idempotent.
type JustificanteService interface {
	Crear(ctx context.Context, req *dto.CrearJustificanteRequest) (*dto.JustificanteAplicadoResponse, error)
	// ListarPorMatricula returns the student's justifications, newest first.
	ListarPorMatricula(ctx context.Context, matricula string) ([]model.Justificante, error)
}

type justificanteService struct {
	repo   *repository.Repository
	reloj  clock.Clock
	logger *zap.Logger
}

// NewJustificanteService builds the JustificanteService.
func NewJustificanteService(repo *repository.Repository, reloj clock.Clock, logger *zap.Logger) JustificanteService {
	return &justificanteService{repo: repo, reloj: reloj, logger: logger}
}

func (s *justificanteService) Crear(ctx context.Context, req *dto.CrearJustificanteRequest) (*dto.JustificanteAplicadoResponse, error) {
	inicio, err := time.Parse(formatoFecha, req.FechaInicio)
	if err != nil {
		return nil, ErrRangoFechasInvalido
	}
	fin, err := time.Parse(formatoFecha, req.FechaFin)
	if err != nil {
		return nil, ErrRangoFechasInvalido
	}
	if fin.Before(inicio) {
		return nil, ErrRangoFechasInvalido
	}

	estudiante, err := s.repo.Estudiante.GetByMatricula(ctx, req.Matricula)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEstudianteNoEncontrado
		}
		return nil, err
	}

	justificante := &model.Justificante{
		Fecha:       clock.Fecha(s.reloj.Now()),
		Matricula:   req.Matricula,
		Nombre:      req.Nombre,
		FechaInicio: req.FechaInicio,
		FechaFin:    req.FechaFin,
		Motivo:      req.Motivo,
		Folio:       req.Folio,
		Archivos:    req.Archivos,
	}
	if err := s.repo.Justificante.Create(ctx, justificante); err != nil {
		return nil, err
	}

	clases, err := s.repo.Clase.ListByGrupo(ctx, estudiante.IDGrupo)
	if err != nil {
		return nil, err
	}

	dias := 0
	tocados := 0
	for d := inicio; !d.After(fin); d = d.AddDate(0, 0, 1) {
		dias++
		diaSemana := clock.DiaSemana(d)
		fecha := clock.Fecha(d)

		for i := range clases {
			if !claseTieneDia(&clases[i], diaSemana) {
				continue
			}
			hecho, err := s.justificarDia(ctx, estudiante.ID, clases[i].ID, fecha)
			if err != nil {
				return nil, err
			}
			if hecho {
				tocados++
			}
		}
	}

	s.logger.Info("justificante aplicado",
		zap.Uint("id_justificante", justificante.ID),
		zap.String("matricula", req.Matricula),
		zap.Int("dias", dias),
		zap.Int("registros", tocados),
	)

	return &dto.JustificanteAplicadoResponse{
		IDJustificante:   justificante.ID,
		DiasCubiertos:    dias,
		RegistrosTocados: tocados,
	}, nil
}

func (s *justificanteService) ListarPorMatricula(ctx context.Context, matricula string) ([]model.Justificante, error) {
	if _, err := s.repo.Estudiante.GetByMatricula(ctx, matricula); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEstudianteNoEncontrado
		}
		return nil, err
	}
	return s.repo.Justificante.ListPorMatricula(ctx, matricula)
}

// justificarDia upserts one justified record, preserving an existing entry
// time. Returns false when the record was already justified.
func (s *justificanteService) justificarDia(ctx context.Context, idEstudiante, idClase uint, fecha string) (bool, error) {
	existente, err := s.repo.Asistencia.For(ctx, idEstudiante, idClase, fecha)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	registro := &model.Asistencia{
		IDEstudiante: idEstudiante,
		IDClase:      idClase,
		Fecha:        fecha,
		Estado:       model.AsistenciaJustificada,
	}
	if existente != nil {
		if existente.Estado == model.AsistenciaJustificada {
			return false, nil
		}
		registro.ID = existente.ID
		registro.HoraEntrada = existente.HoraEntrada
	}

	if err := s.repo.Asistencia.Upsert(ctx, registro); err != nil {
		return false, err
	}
	return true, nil
}

// claseTieneDia reports whether the class is scheduled on the weekday.
func claseTieneDia(clase *model.Clase, dia string) bool {
	for _, h := range clase.Horarios {
		if h.Dia == dia {
			return true
		}
	}
	return false
}
