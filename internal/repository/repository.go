package repository

import (
	"database/sql/driver"
	"errors"
	"net"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ── storage-tier errors ──

var (
	// ErrDuplicado replaces raw unique-violation errors from the driver.
	ErrDuplicado = errors.New("registro duplicado")

	// ErrAlmacenNoDisponible surfaces after the single retry on a
	// connection-class failure.
	ErrAlmacenNoDisponible = errors.New("almacenamiento no disponible")
)

const codigoUniqueViolation = "23505"

// Repository is the aggregate entry point for all data access.
type Repository struct {
	Estudiante   EstudianteRepository
	Grupo        GrupoRepository
	Clase        ClaseRepository
	Actividad    ActividadRepository
	Asistencia   AsistenciaRepository
	Entrega      EntregaRepository
	Justificante JustificanteRepository
}

// NewRepository builds the aggregate over one GORM handle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Estudiante:   NewEstudianteRepo(db),
		Grupo:        NewGrupoRepo(db),
		Clase:        NewClaseRepo(db),
		Actividad:    NewActividadRepo(db),
		Asistencia:   NewAsistenciaRepo(db),
		Entrega:      NewEntregaRepo(db),
		Justificante: NewJustificanteRepo(db),
	}
}

// esViolacionUnicidad reports whether the error is a unique-key violation.
func esViolacionUnicidad(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codigoUniqueViolation
}

// esErrorConexion reports whether the error is worth one retry on a fresh
// pooled connection.
func esErrorConexion(err error) bool {
	if errors.Is(err, driver.ErrBadConn) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var connectErr *pgconn.ConnectError
	return errors.As(err, &connectErr)
}

// conReintento runs op, retrying exactly once when the failure looks like a
// broken connection, and maps driver errors to the storage-tier taxonomy.
// gorm.ErrRecordNotFound passes through untouched.
func conReintento(op func() error) error {
	err := op()
	if err == nil || errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if esViolacionUnicidad(err) {
		return ErrDuplicado
	}
	if esErrorConexion(err) {
		if err = op(); err == nil {
			return nil
		}
		if esViolacionUnicidad(err) {
			return ErrDuplicado
		}
		return errors.Join(ErrAlmacenNoDisponible, err)
	}
	return err
}
