package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/IvanREAL05/control-actividades-sub000/internal/model"
)

// GrupoRepository is the group data-access interface.
type GrupoRepository interface {
	GetByID(ctx context.Context, id uint) (*model.Grupo, error)
}

type grupoRepo struct {
	db *gorm.DB
}

// NewGrupoRepo builds the GORM-backed GrupoRepository.
func NewGrupoRepo(db *gorm.DB) GrupoRepository {
	return &grupoRepo{db: db}
}

func (r *grupoRepo) GetByID(ctx context.Context, id uint) (*model.Grupo, error) {
	var g model.Grupo
	err := conReintento(func() error {
		return r.db.WithContext(ctx).Where("id = ?", id).First(&g).Error
	})
	if err != nil {
		return nil, err
	}
	return &g, nil
}
