package model

// Justificante is an accepted absence justification. Once stored, it forces
// every matching attendance record inside [FechaInicio, FechaFin] to
// justified; missing records are created.
type Justificante struct {
	ID          uint    `gorm:"primaryKey"                  json:"id"`
	Fecha       string  `gorm:"type:date;not null"          json:"fecha"` // issue date
	Matricula   string  `gorm:"type:varchar(20);not null"   json:"matricula"`
	Nombre      string  `gorm:"type:varchar(200);not null"  json:"nombre"`
	FechaInicio string  `gorm:"column:fecha_inicio;type:date;not null" json:"fecha_inicio"`
	FechaFin    string  `gorm:"column:fecha_fin;type:date;not null"    json:"fecha_fin"`
	Motivo      *string `gorm:"type:text"                   json:"motivo,omitempty"`
	Folio       *string `gorm:"type:varchar(50)"            json:"folio,omitempty"`
	Archivos    *string `gorm:"type:text"                   json:"archivos,omitempty"` // file references
}

func (Justificante) TableName() string { return "justificante" }

// Observacion is a free-text note an instructor attaches to a student.
type Observacion struct {
	ID           uint   `gorm:"primaryKey"                json:"id"`
	IDEstudiante uint   `gorm:"column:id_estudiante;not null" json:"id_estudiante"`
	IDClase      *uint  `gorm:"column:id_clase"           json:"id_clase,omitempty"`
	Fecha        string `gorm:"type:date;not null"        json:"fecha"`
	Texto        string `gorm:"type:text;not null"        json:"texto"`
}

func (Observacion) TableName() string { return "observacion" }
