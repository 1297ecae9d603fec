package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/IvanREAL05/control-actividades-sub000/internal/model"
)

// JustificanteRepository is the justification data-access interface.
type JustificanteRepository interface {
	Create(ctx context.Context, j *model.Justificante) error
	ListPorMatricula(ctx context.Context, matricula string) ([]model.Justificante, error)
}

type justificanteRepo struct {
	db *gorm.DB
}

// NewJustificanteRepo builds the GORM-backed JustificanteRepository.
func NewJustificanteRepo(db *gorm.DB) JustificanteRepository {
	return &justificanteRepo{db: db}
}

func (r *justificanteRepo) Create(ctx context.Context, j *model.Justificante) error {
	return conReintento(func() error {
		return r.db.WithContext(ctx).Create(j).Error
	})
}

func (r *justificanteRepo) ListPorMatricula(ctx context.Context, matricula string) ([]model.Justificante, error) {
	var justificantes []model.Justificante
	err := conReintento(func() error {
		return r.db.WithContext(ctx).
			Where("matricula = ?", matricula).
			Order("fecha DESC").
			Find(&justificantes).Error
	})
	if err != nil {
		return nil, err
	}
	return justificantes, nil
}
