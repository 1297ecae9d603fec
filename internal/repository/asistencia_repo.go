package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/IvanREAL05/control-actividades-sub000/internal/model"
)

// AsistenciaRepository is the attendance data-access interface.
// The unique key (id_estudiante, id_clase, fecha) backs every write.
type AsistenciaRepository interface {
	// For returns the existing record for the key, or gorm.ErrRecordNotFound.
	For(ctx context.Context, idEstudiante, idClase uint, fecha string) (*model.Asistencia, error)
	// Upsert inserts or updates the single row for the key atomically.
	Upsert(ctx context.Context, a *model.Asistencia) error
	// InitializeToday bulk-inserts an absent row for every active student of
	// the group where none exists yet. Safe under concurrent callers.
	// Returns the number of rows created.
	InitializeToday(ctx context.Context, idClase, idGrupo uint, fecha string) (int64, error)
	// ListPorClaseFecha returns the class records for a date.
	ListPorClaseFecha(ctx context.Context, idClase uint, fecha string) ([]model.Asistencia, error)
	// ListPorEstudianteRango returns the student's records inside [desde, hasta].
	ListPorEstudianteRango(ctx context.Context, idEstudiante uint, desde, hasta string) ([]model.Asistencia, error)
}

type asistenciaRepo struct {
	db *gorm.DB
}

// NewAsistenciaRepo builds the GORM-backed AsistenciaRepository.
func NewAsistenciaRepo(db *gorm.DB) AsistenciaRepository {
	return &asistenciaRepo{db: db}
}

func (r *asistenciaRepo) For(ctx context.Context, idEstudiante, idClase uint, fecha string) (*model.Asistencia, error) {
	var a model.Asistencia
	err := conReintento(func() error {
		return r.db.WithContext(ctx).
			Where("id_estudiante = ? AND id_clase = ? AND fecha = ?", idEstudiante, idClase, fecha).
			First(&a).Error
	})
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *asistenciaRepo) Upsert(ctx context.Context, a *model.Asistencia) error {
	return conReintento(func() error {
		return r.db.WithContext(ctx).
			Clauses(clause.OnConflict{
				Columns: []clause.Column{
					{Name: "id_estudiante"}, {Name: "id_clase"}, {Name: "fecha"},
				},
				DoUpdates: clause.AssignmentColumns([]string{"estado", "hora_entrada"}),
			}).
			Create(a).Error
	})
}

func (r *asistenciaRepo) InitializeToday(ctx context.Context, idClase, idGrupo uint, fecha string) (int64, error) {
	var creadas int64
	err := conReintento(func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			res := tx.Exec(`
				INSERT INTO asistencia (id_estudiante, id_clase, fecha, estado)
				SELECT e.id, ?, ?, ?
				FROM estudiante e
				WHERE e.id_grupo = ? AND e.estado_actual = ?
				ON CONFLICT (id_estudiante, id_clase, fecha) DO NOTHING`,
				idClase, fecha, model.AsistenciaAusente, idGrupo, model.EstudianteActivo,
			)
			if res.Error != nil {
				return res.Error
			}
			creadas = res.RowsAffected
			return nil
		})
	})
	if err != nil {
		return 0, err
	}
	return creadas, nil
}

func (r *asistenciaRepo) ListPorClaseFecha(ctx context.Context, idClase uint, fecha string) ([]model.Asistencia, error) {
	var registros []model.Asistencia
	err := conReintento(func() error {
		return r.db.WithContext(ctx).
			Where("id_clase = ? AND fecha = ?", idClase, fecha).
			Find(&registros).Error
	})
	if err != nil {
		return nil, err
	}
	return registros, nil
}

func (r *asistenciaRepo) ListPorEstudianteRango(ctx context.Context, idEstudiante uint, desde, hasta string) ([]model.Asistencia, error) {
	var registros []model.Asistencia
	err := conReintento(func() error {
		return r.db.WithContext(ctx).
			Where("id_estudiante = ? AND fecha BETWEEN ? AND ?", idEstudiante, desde, hasta).
			Find(&registros).Error
	})
	if err != nil {
		return nil, err
	}
	return registros, nil
}
