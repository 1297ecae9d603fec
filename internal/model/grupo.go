package model

// Turno distinguishes the morning and evening teaching blocks.
type Turno string

const (
	TurnoMatutino   Turno = "morning"
	TurnoVespertino Turno = "evening"
)

// Grupo is a cohort of students progressing through classes together.
type Grupo struct {
	ID     uint   `gorm:"primaryKey"                      json:"id"`
	Nombre string `gorm:"type:varchar(50);not null;unique" json:"nombre"`
	Turno  Turno  `gorm:"type:varchar(10);not null"        json:"turno"`
	Nivel  string `gorm:"type:varchar(50)"                 json:"nivel,omitempty"`
}

func (Grupo) TableName() string { return "grupo" }
