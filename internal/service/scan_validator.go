package service

import (
	"errors"
	"strings"
	"time"

	"github.com/IvanREAL05/control-actividades-sub000/internal/model"
	"github.com/IvanREAL05/control-actividades-sub000/pkg/clock"
	"github.com/IvanREAL05/control-actividades-sub000/pkg/qr"
)

// ── validation-tier errors ──

var (
	ErrEstudianteNoEncontrado = errors.New("estudiante no encontrado")
	ErrClaseNoEncontrada      = errors.New("clase no encontrada")
	ErrActividadNoEncontrada  = errors.New("actividad no encontrada")
	ErrGrupoNoCoincide        = errors.New("el grupo del token no coincide con el del estudiante")
	ErrClaseAjena             = errors.New("la clase no pertenece al grupo del estudiante")
	ErrClaseNoActiva          = errors.New("la clase no tiene sesión activa")
	ErrEstadoInvalido         = errors.New("estado de asistencia inválido")
	ErrInvarianteViolada      = errors.New("invariante de unicidad violada")
)

// VeredictoAsistencia classifies an attendance scan.
type VeredictoAsistencia int

const (
	AsistenciaRechazada   VeredictoAsistencia = iota
	AsistenciaDuplicada                       // same state already recorded, no write
	AsistenciaActualizada                     // state change on an existing row
	AsistenciaCreada                          // first row for the key
)

// DecisionAsistencia is the validator outcome plus the derived row to write.
// Registro is nil for rejections and duplicates.
type DecisionAsistencia struct {
	Veredicto VeredictoAsistencia
	Motivo    error
	Registro  *model.Asistencia
}

// ValidarAsistencia classifies an attendance scan. Pure: it never touches
// storage or the real clock; the caller supplies the decoded token, the
// already-looked-up rows and the instant.
//
// The decision table is evaluated strictly in order: unknown student, group
// mismatch, wrong class, duplicate, update, create. Token decoding failures
// are classified by the caller before the table applies.
func ValidarAsistencia(
	token qr.Payload,
	estudiante *model.Estudiante,
	clase *model.Clase,
	existente *model.Asistencia,
	estadoSolicitado model.EstadoAsistencia,
	ahora time.Time,
) DecisionAsistencia {
	if !estadoSolicitado.Valida() {
		return DecisionAsistencia{Veredicto: AsistenciaRechazada, Motivo: ErrEstadoInvalido}
	}
	if estudiante == nil {
		return DecisionAsistencia{Veredicto: AsistenciaRechazada, Motivo: ErrEstudianteNoEncontrado}
	}
	if estudiante.Grupo == nil || !strings.EqualFold(token.Grupo, estudiante.Grupo.Nombre) {
		return DecisionAsistencia{Veredicto: AsistenciaRechazada, Motivo: ErrGrupoNoCoincide}
	}
	if clase == nil {
		return DecisionAsistencia{Veredicto: AsistenciaRechazada, Motivo: ErrClaseNoEncontrada}
	}
	if clase.IDGrupo != estudiante.IDGrupo {
		return DecisionAsistencia{Veredicto: AsistenciaRechazada, Motivo: ErrClaseAjena}
	}

	if existente != nil && existente.Estado == estadoSolicitado {
		return DecisionAsistencia{Veredicto: AsistenciaDuplicada}
	}

	hora := clock.Hora(ahora)
	registro := &model.Asistencia{
		IDEstudiante: estudiante.ID,
		IDClase:      clase.ID,
		Fecha:        clock.Fecha(ahora),
		Estado:       estadoSolicitado,
		HoraEntrada:  &hora,
	}

	if existente != nil {
		registro.ID = existente.ID
		return DecisionAsistencia{Veredicto: AsistenciaActualizada, Registro: registro}
	}
	return DecisionAsistencia{Veredicto: AsistenciaCreada, Registro: registro}
}

// VeredictoEntrega classifies a delivery scan.
type VeredictoEntrega int

const (
	EntregaRechazada      VeredictoEntrega = iota
	EntregaYaRegistrada                    // delivered row exists, no write
	EntregaRequiereManual                  // exam or past due: deferred to manual grading
	EntregaAutomatica                      // on time: delivered with max score
)

// DecisionEntrega is the validator outcome for delivery mode.
// Registro is set only for EntregaAutomatica; Tarde is meaningful for
// EntregaRequiereManual.
type DecisionEntrega struct {
	Veredicto VeredictoEntrega
	Motivo    error
	Tarde     bool
	Registro  *model.ActividadEstudiante
}

// ValidarEntrega classifies a delivery scan against an activity. Pure, same
// contract as ValidarAsistencia. Exams always require manual grading; late
// deliveries of any kind are deferred to manual grading rather than
// auto-recorded.
func ValidarEntrega(
	token qr.Payload,
	estudiante *model.Estudiante,
	actividad *model.Actividad,
	existente *model.ActividadEstudiante,
	ahora time.Time,
) DecisionEntrega {
	if estudiante == nil {
		return DecisionEntrega{Veredicto: EntregaRechazada, Motivo: ErrEstudianteNoEncontrado}
	}
	if estudiante.Grupo == nil || !strings.EqualFold(token.Grupo, estudiante.Grupo.Nombre) {
		return DecisionEntrega{Veredicto: EntregaRechazada, Motivo: ErrGrupoNoCoincide}
	}
	if actividad == nil {
		return DecisionEntrega{Veredicto: EntregaRechazada, Motivo: ErrActividadNoEncontrada}
	}
	if actividad.Clase == nil || actividad.Clase.IDGrupo != estudiante.IDGrupo {
		return DecisionEntrega{Veredicto: EntregaRechazada, Motivo: ErrClaseAjena}
	}

	if existente != nil && existente.Estado == model.EntregaEntregada {
		return DecisionEntrega{Veredicto: EntregaYaRegistrada}
	}

	tarde := ahora.After(actividad.FechaEntrega)
	if actividad.Tipo == model.ActividadExamen || tarde {
		return DecisionEntrega{Veredicto: EntregaRequiereManual, Tarde: tarde}
	}

	entregaReal := ahora
	calificacion := actividad.ValorMaximo
	registro := &model.ActividadEstudiante{
		IDActividad:      actividad.ID,
		IDEstudiante:     estudiante.ID,
		Estado:           model.EntregaEntregada,
		FechaEntregaReal: &entregaReal,
		Calificacion:     &calificacion,
	}
	if existente != nil {
		registro.ID = existente.ID
	}
	return DecisionEntrega{Veredicto: EntregaAutomatica, Registro: registro}
}
