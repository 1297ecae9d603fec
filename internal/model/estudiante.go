package model

// EstadoEstudiante is the enrollment activity status.
type EstadoEstudiante string

const (
	EstudianteActivo   EstadoEstudiante = "active"
	EstudianteInactivo EstadoEstudiante = "inactive"
	EstudianteOtro     EstadoEstudiante = "other"
)

// Estudiante is a student. The matrícula is the externally assigned
// enrollment code carried inside the QR token.
type Estudiante struct {
	ID           uint             `gorm:"primaryKey"                        json:"id"`
	Matricula    string           `gorm:"type:varchar(20);not null;unique"  json:"matricula"`
	Nombre       string           `gorm:"type:varchar(100);not null"        json:"nombre"`
	Apellido     string           `gorm:"type:varchar(100);not null"        json:"apellido"`
	Correo       *string          `gorm:"type:varchar(150)"                 json:"correo,omitempty"`
	IDGrupo      uint             `gorm:"column:id_grupo;not null"          json:"id_grupo"`
	NoLista      *int             `gorm:"column:no_lista"                   json:"no_lista,omitempty"`
	EstadoActual EstadoEstudiante `gorm:"type:varchar(20);not null;default:'active'" json:"estado_actual"`

	Grupo *Grupo `gorm:"foreignKey:IDGrupo" json:"grupo,omitempty"`
}

func (Estudiante) TableName() string { return "estudiante" }

// NombreCompleto joins first and last name the way dashboards display it.
func (e *Estudiante) NombreCompleto() string {
	if e.Apellido == "" {
		return e.Nombre
	}
	return e.Nombre + " " + e.Apellido
}
