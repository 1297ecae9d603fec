package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"gorm.io/gorm"

	"github.com/IvanREAL05/control-actividades-sub000/internal/model"
	"github.com/IvanREAL05/control-actividades-sub000/internal/repository"
	"github.com/IvanREAL05/control-actividades-sub000/pkg/clock"
)

// HorarioService answers schedule questions: whether a class is in session
// at an instant, and the weekly schedule as an iCal feed for calendar apps.
type HorarioService interface {
	ClaseActivaAhora(ctx context.Context, idClase uint) (bool, error)
	ExportarICS(ctx context.Context, idClase uint) (string, error)
	// ExportarICSPorNRC is the same feed keyed by the registration code
	// operators actually know.
	ExportarICSPorNRC(ctx context.Context, nrc string) (string, error)
}

type horarioService struct {
	repo  *repository.Repository
	reloj clock.Clock
}

// NewHorarioService builds the HorarioService.
func NewHorarioService(repo *repository.Repository, reloj clock.Clock) HorarioService {
	return &horarioService{repo: repo, reloj: reloj}
}

func (s *horarioService) ClaseActivaAhora(ctx context.Context, idClase uint) (bool, error) {
	clase, err := s.repo.Clase.GetByID(ctx, idClase)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrClaseNoEncontrada
		}
		return false, err
	}

	ahora := s.reloj.Now()
	return HorarioEnCurso(clase.Horarios, clock.DiaSemana(ahora), clock.Hora(ahora)), nil
}

// HorarioEnCurso reports whether any window covers the weekday and wall time.
// Times compare lexicographically: both sides are zero-padded HH:MM[:SS].
func HorarioEnCurso(horarios []model.HorarioClase, dia, hora string) bool {
	for _, h := range horarios {
		if h.Dia != dia {
			continue
		}
		if h.HoraInicio <= hora && hora < h.HoraFin {
			return true
		}
	}
	return false
}

// diasICS maps the stored weekday enumeration to RRULE BYDAY codes.
var diasICS = map[string]string{
	"Mon": "MO", "Tue": "TU", "Wed": "WE", "Thu": "TH", "Fri": "FR", "Sat": "SA",
}

func (s *horarioService) ExportarICS(ctx context.Context, idClase uint) (string, error) {
	clase, err := s.repo.Clase.GetByID(ctx, idClase)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrClaseNoEncontrada
		}
		return "", err
	}
	return s.construirICS(clase), nil
}

func (s *horarioService) ExportarICSPorNRC(ctx context.Context, nrc string) (string, error) {
	clase, err := s.repo.Clase.GetByNRC(ctx, nrc)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrClaseNoEncontrada
		}
		return "", err
	}
	return s.construirICS(clase), nil
}

func (s *horarioService) construirICS(clase *model.Clase) string {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//control-actividades//horarios//ES")

	for _, h := range clase.Horarios {
		byday, ok := diasICS[h.Dia]
		if !ok {
			continue
		}

		ev := cal.AddEvent(fmt.Sprintf("horario-%d@control-actividades", h.ID))
		ev.SetSummary(clase.NombreClase)
		if clase.Aula != nil {
			ev.SetLocation(*clase.Aula)
		}
		// Weekly recurrence; the concrete first occurrence is left to the
		// calendar app via DTSTART on the next matching weekday.
		inicio, fin := proximaVentana(s.reloj.Now(), h)
		ev.SetStartAt(inicio)
		ev.SetEndAt(fin)
		ev.AddRrule("FREQ=WEEKLY;BYDAY=" + byday)
	}

	return cal.Serialize()
}

// proximaVentana finds the next occurrence of the schedule window at or
// after the given instant.
func proximaVentana(desde time.Time, h model.HorarioClase) (time.Time, time.Time) {
	d := desde
	for i := 0; i < 7; i++ {
		if clock.DiaSemana(d) == h.Dia {
			break
		}
		d = d.AddDate(0, 0, 1)
	}

	inicio := enHora(d, h.HoraInicio)
	fin := enHora(d, h.HoraFin)
	return inicio, fin
}

// enHora combines the calendar date of d with a HH:MM[:SS] wall time.
func enHora(d time.Time, hora string) time.Time {
	var hh, mm, ss int
	fmt.Sscanf(hora, "%d:%d:%d", &hh, &mm, &ss)
	return time.Date(d.Year(), d.Month(), d.Day(), hh, mm, ss, 0, d.Location())
}
