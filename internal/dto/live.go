package dto

// Message types on the class channel.
const (
	TipoDatosIniciales = "datos_iniciales"
	TipoPing           = "ping"
	TipoPong           = "pong"
)

// Event kinds published by the Recorder.
const (
	EventoNuevaAsistencia       = "new_attendance"
	EventoAsistenciaActualizada = "attendance_updated"
	EventoNuevaEntrega          = "new_delivery"
	EventoEntregaActualizada    = "delivery_updated"
)

// EventoClase is one state-change notification pushed to every dashboard
// watching the class.
type EventoClase struct {
	Evento        string `json:"evento"`
	IDEstudiante  uint   `json:"id_estudiante"`
	Nombre        string `json:"nombre"`
	Apellido      string `json:"apellido"`
	IDClase       uint   `json:"id_clase"`
	Estado        string `json:"estado"`
	Hora          string `json:"hora"`
	Fecha         string `json:"fecha"`
	NombreGrupo   string `json:"nombre_grupo"`
	NombreMateria string `json:"nombre_materia"`
}

// ClaseMeta is the class header of a snapshot.
type ClaseMeta struct {
	IDClase       uint   `json:"id_clase"`
	NombreClase   string `json:"nombre_clase"`
	NombreMateria string `json:"nombre_materia"`
	NombreGrupo   string `json:"nombre_grupo"`
}

// ActividadResumen is one of today's activities inside a snapshot.
type ActividadResumen struct {
	IDActividad  uint    `json:"id_actividad"`
	Titulo       string  `json:"titulo"`
	Tipo         string  `json:"tipo"`
	FechaEntrega string  `json:"fecha_entrega"`
	ValorMaximo  float64 `json:"valor_maximo"`
}

// EstudianteTabla is one roster row inside a snapshot: identity, today's
// attendance and the per-activity delivery states.
type EstudianteTabla struct {
	IDEstudiante uint            `json:"id_estudiante"`
	Matricula    string          `json:"matricula"`
	Nombre       string          `json:"nombre"`
	Apellido     string          `json:"apellido"`
	NoLista      *int            `json:"no_lista,omitempty"`
	Estado       string          `json:"estado"` // "pending" until materialized
	HoraEntrada  *string         `json:"hora_entrada,omitempty"`
	Entregas     map[uint]string `json:"entregas"` // id_actividad → delivery state
}

// DatosIniciales is the full snapshot sent on (re)subscription, always
// before any event.
type DatosIniciales struct {
	Tipo        string             `json:"tipo"` // "datos_iniciales"
	Clase       ClaseMeta          `json:"clase"`
	Actividades []ActividadResumen `json:"actividades"`
	Estudiantes []EstudianteTabla  `json:"estudiantes"`
}
