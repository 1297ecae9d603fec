package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/IvanREAL05/control-actividades-sub000/internal/model"
)

// EntregaRepository is the activity-delivery data-access interface.
// The unique key (id_actividad, id_estudiante) backs every write.
type EntregaRepository interface {
	// For returns the existing record for the key, or gorm.ErrRecordNotFound.
	For(ctx context.Context, idEstudiante, idActividad uint) (*model.ActividadEstudiante, error)
	// Upsert inserts or updates the single row for the key atomically.
	Upsert(ctx context.Context, e *model.ActividadEstudiante) error
	// ListPorActividades returns every delivery row of the given activities.
	ListPorActividades(ctx context.Context, idActividades []uint) ([]model.ActividadEstudiante, error)
}

type entregaRepo struct {
	db *gorm.DB
}

// NewEntregaRepo builds the GORM-backed EntregaRepository.
func NewEntregaRepo(db *gorm.DB) EntregaRepository {
	return &entregaRepo{db: db}
}

func (r *entregaRepo) For(ctx context.Context, idEstudiante, idActividad uint) (*model.ActividadEstudiante, error) {
	var e model.ActividadEstudiante
	err := conReintento(func() error {
		return r.db.WithContext(ctx).
			Where("id_estudiante = ? AND id_actividad = ?", idEstudiante, idActividad).
			First(&e).Error
	})
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *entregaRepo) Upsert(ctx context.Context, e *model.ActividadEstudiante) error {
	return conReintento(func() error {
		return r.db.WithContext(ctx).
			Clauses(clause.OnConflict{
				Columns: []clause.Column{
					{Name: "id_actividad"}, {Name: "id_estudiante"},
				},
				DoUpdates: clause.AssignmentColumns([]string{"estado", "fecha_entrega_real", "calificacion"}),
			}).
			Create(e).Error
	})
}

func (r *entregaRepo) ListPorActividades(ctx context.Context, idActividades []uint) ([]model.ActividadEstudiante, error) {
	if len(idActividades) == 0 {
		return nil, nil
	}
	var entregas []model.ActividadEstudiante
	err := conReintento(func() error {
		return r.db.WithContext(ctx).
			Where("id_actividad IN ?", idActividades).
			Find(&entregas).Error
	})
	if err != nil {
		return nil, err
	}
	return entregas, nil
}
