package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/IvanREAL05/control-actividades-sub000/internal/model"
)

// EstudianteRepository is the student data-access interface.
type EstudianteRepository interface {
	GetByID(ctx context.Context, id uint) (*model.Estudiante, error)
	GetByMatricula(ctx context.Context, matricula string) (*model.Estudiante, error)
	ListByGrupo(ctx context.Context, idGrupo uint) ([]model.Estudiante, error)
}

type estudianteRepo struct {
	db *gorm.DB
}

// NewEstudianteRepo builds the GORM-backed EstudianteRepository.
func NewEstudianteRepo(db *gorm.DB) EstudianteRepository {
	return &estudianteRepo{db: db}
}

func (r *estudianteRepo) GetByID(ctx context.Context, id uint) (*model.Estudiante, error) {
	var e model.Estudiante
	err := conReintento(func() error {
		return r.db.WithContext(ctx).
			Preload("Grupo").
			Where("id = ?", id).
			First(&e).Error
	})
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *estudianteRepo) GetByMatricula(ctx context.Context, matricula string) (*model.Estudiante, error) {
	var e model.Estudiante
	err := conReintento(func() error {
		return r.db.WithContext(ctx).
			Preload("Grupo").
			Where("matricula = ?", matricula).
			First(&e).Error
	})
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *estudianteRepo) ListByGrupo(ctx context.Context, idGrupo uint) ([]model.Estudiante, error) {
	var estudiantes []model.Estudiante
	err := conReintento(func() error {
		return r.db.WithContext(ctx).
			Where("id_grupo = ? AND estado_actual = ?", idGrupo, model.EstudianteActivo).
			Order("no_lista ASC NULLS LAST, apellido ASC").
			Find(&estudiantes).Error
	})
	if err != nil {
		return nil, err
	}
	return estudiantes, nil
}
