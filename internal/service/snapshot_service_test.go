package service

import (
	"context"
	"errors"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/IvanREAL05/control-actividades-sub000/internal/dto"
	"github.com/IvanREAL05/control-actividades-sub000/internal/model"
)

func setupSnapshot(t *testing.T, store SnapshotStore) (SnapshotService, *entorno) {
	t.Helper()
	e := nuevoEntorno(t)
	e.sembrarEscenario()
	e.estudiantes.estudiantes[2] = &model.Estudiante{
		ID: 2, Matricula: "E200", Nombre: "Bruno", Apellido: "Mora",
		IDGrupo: 7, EstadoActual: model.EstudianteActivo, Grupo: e.grupos.grupos[7],
	}
	svc := NewSnapshotService(e.repo, e.reloj, store, zap.NewNop())
	return svc, e
}

func TestSnapshot_TablaCompleta(t *testing.T) {
	svc, e := setupSnapshot(t, nil)
	e.sembrarActividad(model.ActividadTarea, instante.Add(2*time.Hour)) // due today

	// student 1 already present and delivered; student 2 untouched
	hora := "08:05:00"
	if err := e.asistencias.Upsert(context.Background(), &model.Asistencia{
		IDEstudiante: 1, IDClase: 5, Fecha: "2026-03-09",
		Estado: model.AsistenciaPresente, HoraEntrada: &hora,
	}); err != nil {
		t.Fatalf("seed asistencia: %v", err)
	}
	calif := 10.0
	if err := e.entregas.Upsert(context.Background(), &model.ActividadEstudiante{
		IDActividad: 3, IDEstudiante: 1,
		Estado: model.EntregaEntregada, Calificacion: &calif,
	}); err != nil {
		t.Fatalf("seed entrega: %v", err)
	}

	snap, err := svc.Snapshot(context.Background(), 5)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}

	if snap.Tipo != dto.TipoDatosIniciales {
		t.Errorf("tipo: got %s, want %s", snap.Tipo, dto.TipoDatosIniciales)
	}
	if snap.Clase.NombreClase != "Matemáticas 3A" || snap.Clase.NombreGrupo != "3A" {
		t.Errorf("class meta: %+v", snap.Clase)
	}
	if len(snap.Actividades) != 1 || snap.Actividades[0].IDActividad != 3 {
		t.Fatalf("actividades: %+v", snap.Actividades)
	}
	if len(snap.Estudiantes) != 2 {
		t.Fatalf("roster: got %d rows, want 2", len(snap.Estudiantes))
	}

	fila1 := snap.Estudiantes[0]
	if fila1.IDEstudiante != 1 || fila1.Estado != "present" {
		t.Errorf("row 1: %+v", fila1)
	}
	if fila1.HoraEntrada == nil || *fila1.HoraEntrada != hora {
		t.Errorf("row 1 hora_entrada: got %v, want %s", fila1.HoraEntrada, hora)
	}
	if fila1.Entregas[3] != "delivered" {
		t.Errorf("row 1 delivery: got %s, want delivered", fila1.Entregas[3])
	}

	fila2 := snap.Estudiantes[1]
	if fila2.Estado != "pending" {
		t.Errorf("unmaterialized attendance: got %s, want pending", fila2.Estado)
	}
	if fila2.Entregas[3] != "pending" {
		t.Errorf("untouched delivery: got %s, want pending", fila2.Entregas[3])
	}
}

func TestSnapshot_SinActividadesDeHoy(t *testing.T) {
	svc, e := setupSnapshot(t, nil)
	e.sembrarActividad(model.ActividadTarea, instante.AddDate(0, 0, 1)) // due tomorrow

	snap, err := svc.Snapshot(context.Background(), 5)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if len(snap.Actividades) != 0 {
		t.Errorf("an activity due tomorrow must not appear today: %+v", snap.Actividades)
	}
	for _, fila := range snap.Estudiantes {
		if len(fila.Entregas) != 0 {
			t.Errorf("no activities, no delivery columns: %+v", fila.Entregas)
		}
	}
}

func TestSnapshot_ClaseDesconocida(t *testing.T) {
	svc, _ := setupSnapshot(t, nil)

	if _, err := svc.Snapshot(context.Background(), 404); !errors.Is(err, ErrClaseNoEncontrada) {
		t.Errorf("got %v, want ErrClaseNoEncontrada", err)
	}
}

func TestSnapshotJSON_UsaCache(t *testing.T) {
	store := newMockSnapshotStore()
	svc, _ := setupSnapshot(t, store)

	primero, err := svc.SnapshotJSON(context.Background(), 5)
	if err != nil {
		t.Fatalf("first SnapshotJSON: %v", err)
	}
	if store.sets != 1 {
		t.Errorf("cache sets: got %d, want 1", store.sets)
	}

	var snap dto.DatosIniciales
	if err := json.Unmarshal(primero, &snap); err != nil {
		t.Fatalf("frame should be valid JSON: %v", err)
	}
	if snap.Tipo != dto.TipoDatosIniciales {
		t.Errorf("tipo: got %s, want %s", snap.Tipo, dto.TipoDatosIniciales)
	}

	segundo, err := svc.SnapshotJSON(context.Background(), 5)
	if err != nil {
		t.Fatalf("second SnapshotJSON: %v", err)
	}
	if string(segundo) != string(primero) {
		t.Error("second read should come from the cache unchanged")
	}
	if store.sets != 1 {
		t.Errorf("cache sets after hit: got %d, want still 1", store.sets)
	}
}

func TestSnapshotJSON_SinCache(t *testing.T) {
	svc, _ := setupSnapshot(t, nil)

	frame, err := svc.SnapshotJSON(context.Background(), 5)
	if err != nil {
		t.Fatalf("SnapshotJSON without cache: %v", err)
	}
	if len(frame) == 0 {
		t.Error("frame should not be empty")
	}
}
