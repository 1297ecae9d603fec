package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/IvanREAL05/control-actividades-sub000/internal/model"
)

func TestEstudiante_BadgeQR(t *testing.T) {
	e := nuevoEntorno(t)
	e.sembrarEscenario()
	svc := NewEstudianteService(e.repo, e.codec, "v1")

	png, err := svc.BadgeQR(context.Background(), 1)
	if err != nil {
		t.Fatalf("BadgeQR: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("badge should be a PNG image")
	}
}

func TestEstudiante_BadgeQR_GrupoSinCargar(t *testing.T) {
	e := nuevoEntorno(t)
	e.sembrarEscenario()
	// drop the association; the group label must be resolved by id
	e.estudiantes.estudiantes[1].Grupo = nil
	svc := NewEstudianteService(e.repo, e.codec, "v1")

	png, err := svc.BadgeQR(context.Background(), 1)
	if err != nil {
		t.Fatalf("BadgeQR: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("badge should be a PNG image")
	}
}

func TestEstudiante_BadgeQR_Desconocido(t *testing.T) {
	e := nuevoEntorno(t)
	svc := NewEstudianteService(e.repo, e.codec, "v1")

	if _, err := svc.BadgeQR(context.Background(), 404); !errors.Is(err, ErrEstudianteNoEncontrado) {
		t.Errorf("got %v, want ErrEstudianteNoEncontrado", err)
	}
}

func TestEstudiante_HistorialAsistencia(t *testing.T) {
	e := nuevoEntorno(t)
	e.sembrarEscenario()
	hora := "08:05:00"
	e.asistencias.registros["1|5|2026-03-09"] = &model.Asistencia{
		ID: 1, IDEstudiante: 1, IDClase: 5, Fecha: "2026-03-09",
		Estado: model.AsistenciaPresente, HoraEntrada: &hora,
	}
	e.asistencias.registros["1|5|2026-03-20"] = &model.Asistencia{
		ID: 2, IDEstudiante: 1, IDClase: 5, Fecha: "2026-03-20",
		Estado: model.AsistenciaAusente,
	}
	svc := NewEstudianteService(e.repo, e.codec, "v1")

	registros, err := svc.HistorialAsistencia(context.Background(), 1, "2026-03-09", "2026-03-13")
	if err != nil {
		t.Fatalf("HistorialAsistencia: %v", err)
	}
	if len(registros) != 1 || registros[0].Fecha != "2026-03-09" {
		t.Errorf("registros: got %+v, want only the in-range row", registros)
	}
}

func TestEstudiante_HistorialAsistencia_RangoInvalido(t *testing.T) {
	e := nuevoEntorno(t)
	e.sembrarEscenario()
	svc := NewEstudianteService(e.repo, e.codec, "v1")

	casos := []struct{ nombre, inicio, fin string }{
		{"rango invertido", "2026-03-13", "2026-03-09"},
		{"inicio ilegible", "marzo", "2026-03-13"},
		{"fin ilegible", "2026-03-09", ""},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			if _, err := svc.HistorialAsistencia(context.Background(), 1, c.inicio, c.fin); !errors.Is(err, ErrRangoFechasInvalido) {
				t.Errorf("got %v, want ErrRangoFechasInvalido", err)
			}
		})
	}
}

func TestEstudiante_HistorialAsistencia_Desconocido(t *testing.T) {
	e := nuevoEntorno(t)
	svc := NewEstudianteService(e.repo, e.codec, "v1")

	if _, err := svc.HistorialAsistencia(context.Background(), 404, "2026-03-09", "2026-03-13"); !errors.Is(err, ErrEstudianteNoEncontrado) {
		t.Errorf("got %v, want ErrEstudianteNoEncontrado", err)
	}
}
