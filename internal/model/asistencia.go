package model

// EstadoAsistencia is the attendance state for one student, class and date.
type EstadoAsistencia string

const (
	AsistenciaPresente    EstadoAsistencia = "present"
	AsistenciaAusente     EstadoAsistencia = "absent"
	AsistenciaJustificada EstadoAsistencia = "justified"
)

// Valida reports whether the state is one of the supported values.
func (e EstadoAsistencia) Valida() bool {
	switch e {
	case AsistenciaPresente, AsistenciaAusente, AsistenciaJustificada:
		return true
	default:
		return false
	}
}

// Asistencia is the attendance record. At most one row per
// (estudiante, clase, fecha); the Recorder is the only writer.
type Asistencia struct {
	ID           uint             `gorm:"primaryKey"                 json:"id"`
	IDEstudiante uint             `gorm:"column:id_estudiante;not null;uniqueIndex:uq_asistencia" json:"id_estudiante"`
	IDClase      uint             `gorm:"column:id_clase;not null;uniqueIndex:uq_asistencia"      json:"id_clase"`
	Fecha        string           `gorm:"type:date;not null;uniqueIndex:uq_asistencia"            json:"fecha"` // YYYY-MM-DD
	Estado       EstadoAsistencia `gorm:"type:varchar(20);not null"  json:"estado"`
	HoraEntrada  *string          `gorm:"column:hora_entrada;type:time" json:"hora_entrada,omitempty"` // HH:MM:SS

	Estudiante *Estudiante `gorm:"foreignKey:IDEstudiante" json:"estudiante,omitempty"`
	Clase      *Clase      `gorm:"foreignKey:IDClase"      json:"clase,omitempty"`
}

func (Asistencia) TableName() string { return "asistencia" }
