package model

// Clase is a course section: one instructor, one subject, one group.
// The NRC is the externally assigned registration code.
type Clase struct {
	ID          uint    `gorm:"primaryKey"                       json:"id"`
	NRC         string  `gorm:"column:nrc;type:varchar(20);not null;unique" json:"nrc"`
	NombreClase string  `gorm:"column:nombre_clase;type:varchar(100);not null" json:"nombre_clase"`
	IDProfesor  uint    `gorm:"column:id_profesor;not null"      json:"id_profesor"`
	IDMateria   uint    `gorm:"column:id_materia;not null"       json:"id_materia"`
	IDGrupo     uint    `gorm:"column:id_grupo;not null"         json:"id_grupo"`
	Aula        *string `gorm:"type:varchar(50)"                 json:"aula,omitempty"`

	Profesor *Profesor      `gorm:"foreignKey:IDProfesor" json:"profesor,omitempty"`
	Materia  *Materia       `gorm:"foreignKey:IDMateria"  json:"materia,omitempty"`
	Grupo    *Grupo         `gorm:"foreignKey:IDGrupo"    json:"grupo,omitempty"`
	Horarios []HorarioClase `gorm:"foreignKey:IDClase"    json:"horarios,omitempty"`
}

func (Clase) TableName() string { return "clase" }

// HorarioClase is one weekly time window of a class. A class has 1..n.
// Times are wall clock in the school timezone, stored without zone.
type HorarioClase struct {
	ID         uint   `gorm:"primaryKey"                  json:"id"`
	IDClase    uint   `gorm:"column:id_clase;not null"    json:"id_clase"`
	Dia        string `gorm:"type:varchar(3);not null"    json:"dia"` // Mon..Sat
	HoraInicio string `gorm:"column:hora_inicio;type:time;not null" json:"hora_inicio"`
	HoraFin    string `gorm:"column:hora_fin;type:time;not null"    json:"hora_fin"`
}

func (HorarioClase) TableName() string { return "horario_clase" }
