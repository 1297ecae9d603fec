package dto

// EntregarActividadRequest is the delivery-mode scan body.
type EntregarActividadRequest struct {
	QR          string `json:"qr" binding:"required"`
	IDActividad uint   `json:"id_actividad" binding:"required"`
}

// ValidarEntregaResponse lets the operator confirm before committing a
// manual grade. No write happens on validation.
type ValidarEntregaResponse struct {
	Tarde        bool     `json:"tarde"`
	IDEstudiante uint     `json:"id_estudiante"`
	Nombre       string   `json:"nombre"`
	Calificacion *float64 `json:"calificacion,omitempty"`
	Mensaje      string   `json:"mensaje"`
}
