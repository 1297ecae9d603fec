package model

import "time"

// TipoActividad classifies an activity. Exams never auto-grade on scan.
type TipoActividad string

const (
	ActividadTarea    TipoActividad = "task"
	ActividadProyecto TipoActividad = "project"
	ActividadPractica TipoActividad = "practice"
	ActividadExamen   TipoActividad = "exam"
)

// Actividad is a gradable deliverable belonging to one class.
type Actividad struct {
	ID            uint          `gorm:"primaryKey"                          json:"id"`
	Titulo        string        `gorm:"type:varchar(200);not null"          json:"titulo"`
	Descripcion   *string       `gorm:"type:text"                           json:"descripcion,omitempty"`
	Tipo          TipoActividad `gorm:"type:varchar(20);not null"           json:"tipo"`
	FechaCreacion time.Time     `gorm:"column:fecha_creacion;not null;default:CURRENT_TIMESTAMP" json:"fecha_creacion"`
	FechaEntrega  time.Time     `gorm:"column:fecha_entrega;not null"       json:"fecha_entrega"`
	IDClase       uint          `gorm:"column:id_clase;not null"            json:"id_clase"`
	ValorMaximo   float64       `gorm:"column:valor_maximo;type:numeric(4,2);not null" json:"valor_maximo"`

	Clase *Clase `gorm:"foreignKey:IDClase" json:"clase,omitempty"`
}

func (Actividad) TableName() string { return "actividad" }

// EstadoEntrega is the delivery state of one student on one activity.
type EstadoEntrega string

const (
	EntregaPendiente   EstadoEntrega = "pending"
	EntregaEntregada   EstadoEntrega = "delivered"
	EntregaNoEntregada EstadoEntrega = "not-delivered"
)

// ActividadEstudiante is the per-student delivery record.
// At most one row per (actividad, estudiante); calificación is only set when
// the state is delivered.
type ActividadEstudiante struct {
	ID               uint          `gorm:"primaryKey"                       json:"id"`
	IDActividad      uint          `gorm:"column:id_actividad;not null;uniqueIndex:uq_actividad_estudiante" json:"id_actividad"`
	IDEstudiante     uint          `gorm:"column:id_estudiante;not null;uniqueIndex:uq_actividad_estudiante" json:"id_estudiante"`
	Estado           EstadoEntrega `gorm:"type:varchar(20);not null;default:'pending'" json:"estado"`
	FechaEntregaReal *time.Time    `gorm:"column:fecha_entrega_real"        json:"fecha_entrega_real,omitempty"`
	Calificacion     *float64      `gorm:"type:numeric(4,2)"                json:"calificacion,omitempty"`

	Actividad  *Actividad  `gorm:"foreignKey:IDActividad"  json:"actividad,omitempty"`
	Estudiante *Estudiante `gorm:"foreignKey:IDEstudiante" json:"estudiante,omitempty"`
}

func (ActividadEstudiante) TableName() string { return "actividad_estudiante" }
