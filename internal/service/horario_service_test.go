package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/IvanREAL05/control-actividades-sub000/internal/model"
)

func setupHorario(t *testing.T) (HorarioService, *entorno) {
	t.Helper()
	e := nuevoEntorno(t)
	e.sembrarEscenario()
	aula := "B-12"
	e.clases.clases[5].Aula = &aula
	e.clases.clases[5].Horarios = []model.HorarioClase{
		{ID: 1, IDClase: 5, Dia: "Mon", HoraInicio: "08:00:00", HoraFin: "09:00:00"},
		{ID: 2, IDClase: 5, Dia: "Wed", HoraInicio: "11:00:00", HoraFin: "12:30:00"},
	}
	svc := NewHorarioService(e.repo, e.reloj)
	return svc, e
}

func TestHorarioEnCurso(t *testing.T) {
	horarios := []model.HorarioClase{
		{Dia: "Mon", HoraInicio: "08:00:00", HoraFin: "09:00:00"},
	}

	casos := []struct {
		nombre string
		dia    string
		hora   string
		quiero bool
	}{
		{"dentro de la ventana", "Mon", "08:30:00", true},
		{"justo al inicio", "Mon", "08:00:00", true},
		{"justo al fin queda fuera", "Mon", "09:00:00", false},
		{"antes de la ventana", "Mon", "07:59:59", false},
		{"otro día", "Tue", "08:30:00", false},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			if got := HorarioEnCurso(horarios, c.dia, c.hora); got != c.quiero {
				t.Errorf("HorarioEnCurso(%s %s): got %v, want %v", c.dia, c.hora, got, c.quiero)
			}
		})
	}
}

func TestHorario_ClaseActivaAhora(t *testing.T) {
	// the fixed clock reads Monday 08:15:30, inside the Mon window
	svc, _ := setupHorario(t)

	activa, err := svc.ClaseActivaAhora(context.Background(), 5)
	if err != nil {
		t.Fatalf("ClaseActivaAhora: %v", err)
	}
	if !activa {
		t.Error("Monday 08:15:30 falls inside the 08:00-09:00 window")
	}
}

func TestHorario_ClaseActivaAhora_ClaseDesconocida(t *testing.T) {
	svc, _ := setupHorario(t)

	if _, err := svc.ClaseActivaAhora(context.Background(), 404); !errors.Is(err, ErrClaseNoEncontrada) {
		t.Errorf("got %v, want ErrClaseNoEncontrada", err)
	}
}

func TestHorario_ExportarICS(t *testing.T) {
	svc, _ := setupHorario(t)

	ical, err := svc.ExportarICS(context.Background(), 5)
	if err != nil {
		t.Fatalf("ExportarICS: %v", err)
	}

	for _, quiero := range []string{
		"BEGIN:VCALENDAR",
		"METHOD:PUBLISH",
		"SUMMARY:Matemáticas 3A",
		"LOCATION:B-12",
		"RRULE:FREQ=WEEKLY;BYDAY=MO",
		"RRULE:FREQ=WEEKLY;BYDAY=WE",
		"UID:horario-1@control-actividades",
		"END:VCALENDAR",
	} {
		if !strings.Contains(ical, quiero) {
			t.Errorf("serialized calendar should contain %q", quiero)
		}
	}
}

func TestHorario_ExportarICSPorNRC(t *testing.T) {
	svc, _ := setupHorario(t)

	ical, err := svc.ExportarICSPorNRC(context.Background(), "10001")
	if err != nil {
		t.Fatalf("ExportarICSPorNRC: %v", err)
	}
	if !strings.Contains(ical, "SUMMARY:Matemáticas 3A") {
		t.Error("the NRC feed should carry the same class events")
	}

	if _, err := svc.ExportarICSPorNRC(context.Background(), "99999"); !errors.Is(err, ErrClaseNoEncontrada) {
		t.Errorf("got %v, want ErrClaseNoEncontrada", err)
	}
}

func TestHorario_ExportarICS_SinHorarios(t *testing.T) {
	svc, e := setupHorario(t)
	e.clases.clases[5].Horarios = nil

	ical, err := svc.ExportarICS(context.Background(), 5)
	if err != nil {
		t.Fatalf("ExportarICS: %v", err)
	}
	if strings.Contains(ical, "BEGIN:VEVENT") {
		t.Error("a class without schedule windows exports an empty calendar")
	}
}
