package clock

import (
	"fmt"
	"time"
)

// Clock is the single time authority for the service. Scan validation,
// attendance timestamps and schedule checks all read through it so they can
// never disagree, and tests can inject a fixed instant.
type Clock interface {
	Now() time.Time
}

// Regional reports the current instant in the school's civil timezone.
type Regional struct {
	loc *time.Location
}

// NewRegional builds a Regional clock from an IANA timezone identifier.
func NewRegional(tz string) (*Regional, error) {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("zona horaria inválida %q: %w", tz, err)
	}
	return &Regional{loc: loc}, nil
}

func (r *Regional) Now() time.Time {
	return time.Now().In(r.loc)
}

// Fixed always reports the same instant. Test use only.
type Fixed struct {
	Instant time.Time
}

func (f Fixed) Now() time.Time {
	return f.Instant
}

// ── formatting helpers ──

var dias = [...]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// Fecha formats the calendar date as YYYY-MM-DD.
func Fecha(t time.Time) string {
	return t.Format("2006-01-02")
}

// Hora formats the wall time with second precision.
func Hora(t time.Time) string {
	return t.Format("15:04:05")
}

// DiaSemana returns the weekday name in the fixed Mon..Sun enumeration
// used by horario_clase.dia.
func DiaSemana(t time.Time) string {
	return dias[t.Weekday()]
}
