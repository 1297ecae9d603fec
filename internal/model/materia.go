package model

// Materia is a subject taught in one or more classes.
type Materia struct {
	ID          uint    `gorm:"primaryKey"                        json:"id"`
	Nombre      string  `gorm:"type:varchar(100);not null;unique" json:"nombre"`
	Clave       *string `gorm:"type:varchar(20)"                  json:"clave,omitempty"`
	Descripcion *string `gorm:"type:text"                         json:"descripcion,omitempty"`
	NumCurso    *int    `gorm:"column:num_curso"                  json:"num_curso,omitempty"`
}

func (Materia) TableName() string { return "materia" }
