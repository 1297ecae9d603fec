package dto

// RegistrarAsistenciaRequest is the QR scan ingest body.
type RegistrarAsistenciaRequest struct {
	QR      string `json:"qr" binding:"required"`
	IDClase uint   `json:"id_clase" binding:"required"`
	Estado  string `json:"estado" binding:"required,oneof=present absent justified"`
}

// ActualizarEstadoRequest is the operator-driven state change body.
// The student is identified by internal id or by matrícula.
type ActualizarEstadoRequest struct {
	IDEstudiante uint   `json:"id_estudiante"`
	Matricula    string `json:"matricula"`
	IDClase      uint   `json:"id_clase" binding:"required"`
	Estado       string `json:"estado" binding:"required,oneof=present absent justified"`
}

// CrearJustificanteRequest registers an accepted absence justification.
type CrearJustificanteRequest struct {
	Matricula   string  `json:"matricula" binding:"required"`
	Nombre      string  `json:"nombre" binding:"required"`
	FechaInicio string  `json:"fecha_inicio" binding:"required"` // YYYY-MM-DD
	FechaFin    string  `json:"fecha_fin" binding:"required"`    // YYYY-MM-DD
	Motivo      *string `json:"motivo,omitempty"`
	Folio       *string `json:"folio,omitempty"`
	Archivos    *string `json:"archivos,omitempty"`
}

// JustificanteAplicadoResponse reports the effect of a justification.
type JustificanteAplicadoResponse struct {
	IDJustificante   uint `json:"id_justificante"`
	DiasCubiertos    int  `json:"dias_cubiertos"`
	RegistrosTocados int  `json:"registros_tocados"`
}
