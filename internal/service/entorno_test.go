package service

import (
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/IvanREAL05/control-actividades-sub000/internal/model"
	"github.com/IvanREAL05/control-actividades-sub000/internal/repository"
	"github.com/IvanREAL05/control-actividades-sub000/pkg/clock"
	"github.com/IvanREAL05/control-actividades-sub000/pkg/qr"
)

const claveDePrueba = "dGVzdC1rZXktMzItYnl0ZXMtbG9uZy1leGFjdGx5ISE=" // 32 bytes, base64

// entorno bundles the mocks one service test needs: the seeded repository,
// the capturing publisher and cache, a fixed clock and a working codec.
type entorno struct {
	repo        *repository.Repository
	estudiantes *mockEstudianteRepo
	grupos      *mockGrupoRepo
	clases      *mockClaseRepo
	actividades *mockActividadRepo
	asistencias *mockAsistenciaRepo
	entregas    *mockEntregaRepo
	pub         *mockPublisher
	cache       *mockSnapshotCache
	codec       *qr.Codec
	reloj       clock.Fixed
	recorder    *Recorder
}

func nuevoEntorno(t *testing.T) *entorno {
	t.Helper()

	codec, err := qr.NewCodec(claveDePrueba)
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}

	e := &entorno{
		estudiantes: newMockEstudianteRepo(),
		grupos:      newMockGrupoRepo(),
		clases:      newMockClaseRepo(),
		actividades: newMockActividadRepo(),
		asistencias: newMockAsistenciaRepo(),
		entregas:    newMockEntregaRepo(),
		pub:         &mockPublisher{},
		cache:       &mockSnapshotCache{},
		codec:       codec,
		reloj:       clock.Fixed{Instant: instante},
	}
	e.repo = &repository.Repository{
		Estudiante:   e.estudiantes,
		Grupo:        e.grupos,
		Clase:        e.clases,
		Actividad:    e.actividades,
		Asistencia:   e.asistencias,
		Entrega:      e.entregas,
		Justificante: newMockJustificanteRepo(),
	}
	e.recorder = NewRecorder(e.repo, e.pub, e.cache, zap.NewNop())
	return e
}

// sembrarEscenario loads the canonical fixture: group 3A, student E100 and
// the Matemáticas class, all consistent with tokenDePrueba.
func (e *entorno) sembrarEscenario() {
	grupo := &model.Grupo{ID: 7, Nombre: "3A", Turno: model.TurnoMatutino}
	e.grupos.grupos[7] = grupo
	e.estudiantes.estudiantes[1] = &model.Estudiante{
		ID:           1,
		Matricula:    "E100",
		Nombre:       "Ana",
		Apellido:     "López",
		IDGrupo:      7,
		EstadoActual: model.EstudianteActivo,
		Grupo:        grupo,
	}
	e.clases.clases[5] = &model.Clase{
		ID:          5,
		NRC:         "10001",
		NombreClase: "Matemáticas 3A",
		IDGrupo:     7,
		Grupo:       grupo,
		Materia:     &model.Materia{ID: 2, Nombre: "Matemáticas"},
		// in session at the fixed instant (Monday 08:15:30)
		Horarios: []model.HorarioClase{
			{ID: 1, IDClase: 5, Dia: "Mon", HoraInicio: "08:00:00", HoraFin: "09:00:00"},
		},
	}
}

func (e *entorno) tokenValido(t *testing.T) string {
	t.Helper()
	token, err := e.codec.Encode(tokenDePrueba())
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	return token
}

func (e *entorno) sembrarActividad(tipo model.TipoActividad, entrega time.Time) {
	e.actividades.actividades[3] = &model.Actividad{
		ID:           3,
		Titulo:       "Serie de ejercicios 4",
		Tipo:         tipo,
		FechaEntrega: entrega,
		IDClase:      5,
		ValorMaximo:  10,
		Clase:        e.clases.clases[5],
	}
}
