package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/IvanREAL05/control-actividades-sub000/internal/model"
)

// ClaseRepository is the class data-access interface.
type ClaseRepository interface {
	GetByID(ctx context.Context, id uint) (*model.Clase, error)
	GetByNRC(ctx context.Context, nrc string) (*model.Clase, error)
	ListByGrupo(ctx context.Context, idGrupo uint) ([]model.Clase, error)
}

type claseRepo struct {
	db *gorm.DB
}

// NewClaseRepo builds the GORM-backed ClaseRepository.
func NewClaseRepo(db *gorm.DB) ClaseRepository {
	return &claseRepo{db: db}
}

func (r *claseRepo) GetByID(ctx context.Context, id uint) (*model.Clase, error) {
	var c model.Clase
	err := conReintento(func() error {
		return r.db.WithContext(ctx).
			Preload("Materia").
			Preload("Grupo").
			Preload("Horarios").
			Where("id = ?", id).
			First(&c).Error
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *claseRepo) GetByNRC(ctx context.Context, nrc string) (*model.Clase, error) {
	var c model.Clase
	err := conReintento(func() error {
		return r.db.WithContext(ctx).
			Preload("Materia").
			Preload("Grupo").
			Preload("Horarios").
			Where("nrc = ?", nrc).
			First(&c).Error
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *claseRepo) ListByGrupo(ctx context.Context, idGrupo uint) ([]model.Clase, error) {
	var clases []model.Clase
	err := conReintento(func() error {
		return r.db.WithContext(ctx).
			Preload("Horarios").
			Where("id_grupo = ?", idGrupo).
			Find(&clases).Error
	})
	if err != nil {
		return nil, err
	}
	return clases, nil
}
