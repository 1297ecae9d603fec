package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/IvanREAL05/control-actividades-sub000/internal/model"
)

// ActividadRepository is the activity data-access interface.
type ActividadRepository interface {
	// GetByID returns the activity with its class, group and subject
	// preloaded; delivery events read their names from it.
	GetByID(ctx context.Context, id uint) (*model.Actividad, error)
	// ListDeHoy returns the class activities due on the given date.
	ListDeHoy(ctx context.Context, idClase uint, fecha string) ([]model.Actividad, error)
}

type actividadRepo struct {
	db *gorm.DB
}

// NewActividadRepo builds the GORM-backed ActividadRepository.
func NewActividadRepo(db *gorm.DB) ActividadRepository {
	return &actividadRepo{db: db}
}

func (r *actividadRepo) GetByID(ctx context.Context, id uint) (*model.Actividad, error) {
	var a model.Actividad
	err := conReintento(func() error {
		return r.db.WithContext(ctx).
			Preload("Clase").
			Preload("Clase.Grupo").
			Preload("Clase.Materia").
			Where("id = ?", id).
			First(&a).Error
	})
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *actividadRepo) ListDeHoy(ctx context.Context, idClase uint, fecha string) ([]model.Actividad, error) {
	var actividades []model.Actividad
	err := conReintento(func() error {
		return r.db.WithContext(ctx).
			Where("id_clase = ? AND DATE(fecha_entrega) = ?", idClase, fecha).
			Order("fecha_entrega ASC").
			Find(&actividades).Error
	})
	if err != nil {
		return nil, err
	}
	return actividades, nil
}
