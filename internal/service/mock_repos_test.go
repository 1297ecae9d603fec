package service

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"gorm.io/gorm"

	"github.com/IvanREAL05/control-actividades-sub000/internal/dto"
	"github.com/IvanREAL05/control-actividades-sub000/internal/model"
	"github.com/IvanREAL05/control-actividades-sub000/pkg/clock"
)

// ── Mock EstudianteRepository ──

type mockEstudianteRepo struct {
	estudiantes map[uint]*model.Estudiante
}

func newMockEstudianteRepo() *mockEstudianteRepo {
	return &mockEstudianteRepo{estudiantes: make(map[uint]*model.Estudiante)}
}

func (m *mockEstudianteRepo) GetByID(_ context.Context, id uint) (*model.Estudiante, error) {
	if e, ok := m.estudiantes[id]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEstudianteRepo) GetByMatricula(_ context.Context, matricula string) (*model.Estudiante, error) {
	for _, e := range m.estudiantes {
		if e.Matricula == matricula {
			return e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEstudianteRepo) ListByGrupo(_ context.Context, idGrupo uint) ([]model.Estudiante, error) {
	var result []model.Estudiante
	for _, e := range m.estudiantes {
		if e.IDGrupo == idGrupo && e.EstadoActual == model.EstudianteActivo {
			result = append(result, *e)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// ── Mock GrupoRepository ──

type mockGrupoRepo struct {
	grupos map[uint]*model.Grupo
}

func newMockGrupoRepo() *mockGrupoRepo {
	return &mockGrupoRepo{grupos: make(map[uint]*model.Grupo)}
}

func (m *mockGrupoRepo) GetByID(_ context.Context, id uint) (*model.Grupo, error) {
	if g, ok := m.grupos[id]; ok {
		return g, nil
	}
	return nil, gorm.ErrRecordNotFound
}

// ── Mock ClaseRepository ──

type mockClaseRepo struct {
	clases map[uint]*model.Clase
}

func newMockClaseRepo() *mockClaseRepo {
	return &mockClaseRepo{clases: make(map[uint]*model.Clase)}
}

func (m *mockClaseRepo) GetByID(_ context.Context, id uint) (*model.Clase, error) {
	if c, ok := m.clases[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockClaseRepo) GetByNRC(_ context.Context, nrc string) (*model.Clase, error) {
	for _, c := range m.clases {
		if c.NRC == nrc {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockClaseRepo) ListByGrupo(_ context.Context, idGrupo uint) ([]model.Clase, error) {
	var result []model.Clase
	for _, c := range m.clases {
		if c.IDGrupo == idGrupo {
			result = append(result, *c)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// ── Mock ActividadRepository ──

type mockActividadRepo struct {
	actividades map[uint]*model.Actividad
}

func newMockActividadRepo() *mockActividadRepo {
	return &mockActividadRepo{actividades: make(map[uint]*model.Actividad)}
}

func (m *mockActividadRepo) GetByID(_ context.Context, id uint) (*model.Actividad, error) {
	if a, ok := m.actividades[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockActividadRepo) ListDeHoy(_ context.Context, idClase uint, fecha string) ([]model.Actividad, error) {
	var result []model.Actividad
	for _, a := range m.actividades {
		if a.IDClase == idClase && clock.Fecha(a.FechaEntrega) == fecha {
			result = append(result, *a)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// ── Mock AsistenciaRepository ──

type mockAsistenciaRepo struct {
	mu        sync.Mutex
	registros map[string]*model.Asistencia // "idEst|idClase|fecha"
	nextID    uint
	upserts   int
	upsertErr error
	// roster seeds InitializeToday: id_grupo → active student ids.
	roster map[uint][]uint
}

func newMockAsistenciaRepo() *mockAsistenciaRepo {
	return &mockAsistenciaRepo{
		registros: make(map[string]*model.Asistencia),
		roster:    make(map[uint][]uint),
	}
}

func claveAsistencia(idEstudiante, idClase uint, fecha string) string {
	return fmt.Sprintf("%d|%d|%s", idEstudiante, idClase, fecha)
}

func (m *mockAsistenciaRepo) For(_ context.Context, idEstudiante, idClase uint, fecha string) (*model.Asistencia, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.registros[claveAsistencia(idEstudiante, idClase, fecha)]; ok {
		copia := *a
		return &copia, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAsistenciaRepo) Upsert(_ context.Context, a *model.Asistencia) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.upserts++
	clave := claveAsistencia(a.IDEstudiante, a.IDClase, a.Fecha)
	if prev, ok := m.registros[clave]; ok {
		a.ID = prev.ID
	} else if a.ID == 0 {
		m.nextID++
		a.ID = m.nextID
	}
	copia := *a
	m.registros[clave] = &copia
	return nil
}

func (m *mockAsistenciaRepo) InitializeToday(_ context.Context, idClase, idGrupo uint, fecha string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var creadas int64
	for _, idEst := range m.roster[idGrupo] {
		clave := claveAsistencia(idEst, idClase, fecha)
		if _, ok := m.registros[clave]; ok {
			continue
		}
		m.nextID++
		m.registros[clave] = &model.Asistencia{
			ID:           m.nextID,
			IDEstudiante: idEst,
			IDClase:      idClase,
			Fecha:        fecha,
			Estado:       model.AsistenciaAusente,
		}
		creadas++
	}
	return creadas, nil
}

func (m *mockAsistenciaRepo) ListPorClaseFecha(_ context.Context, idClase uint, fecha string) ([]model.Asistencia, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.Asistencia
	for _, a := range m.registros {
		if a.IDClase == idClase && a.Fecha == fecha {
			result = append(result, *a)
		}
	}
	return result, nil
}

func (m *mockAsistenciaRepo) ListPorEstudianteRango(_ context.Context, idEstudiante uint, desde, hasta string) ([]model.Asistencia, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.Asistencia
	for _, a := range m.registros {
		if a.IDEstudiante == idEstudiante && a.Fecha >= desde && a.Fecha <= hasta {
			result = append(result, *a)
		}
	}
	return result, nil
}

// ── Mock EntregaRepository ──

type mockEntregaRepo struct {
	registros map[string]*model.ActividadEstudiante // "idActividad|idEstudiante"
	nextID    uint
	upserts   int
	upsertErr error
}

func newMockEntregaRepo() *mockEntregaRepo {
	return &mockEntregaRepo{registros: make(map[string]*model.ActividadEstudiante)}
}

func claveEntrega(idActividad, idEstudiante uint) string {
	return fmt.Sprintf("%d|%d", idActividad, idEstudiante)
}

func (m *mockEntregaRepo) For(_ context.Context, idEstudiante, idActividad uint) (*model.ActividadEstudiante, error) {
	if e, ok := m.registros[claveEntrega(idActividad, idEstudiante)]; ok {
		copia := *e
		return &copia, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEntregaRepo) Upsert(_ context.Context, e *model.ActividadEstudiante) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.upserts++
	clave := claveEntrega(e.IDActividad, e.IDEstudiante)
	if prev, ok := m.registros[clave]; ok {
		e.ID = prev.ID
	} else if e.ID == 0 {
		m.nextID++
		e.ID = m.nextID
	}
	copia := *e
	m.registros[clave] = &copia
	return nil
}

func (m *mockEntregaRepo) ListPorActividades(_ context.Context, idActividades []uint) ([]model.ActividadEstudiante, error) {
	quiero := make(map[uint]bool, len(idActividades))
	for _, id := range idActividades {
		quiero[id] = true
	}
	var result []model.ActividadEstudiante
	for _, e := range m.registros {
		if quiero[e.IDActividad] {
			result = append(result, *e)
		}
	}
	return result, nil
}

// ── Mock JustificanteRepository ──

type mockJustificanteRepo struct {
	justificantes []*model.Justificante
	nextID        uint
}

func newMockJustificanteRepo() *mockJustificanteRepo {
	return &mockJustificanteRepo{}
}

func (m *mockJustificanteRepo) Create(_ context.Context, j *model.Justificante) error {
	m.nextID++
	j.ID = m.nextID
	m.justificantes = append(m.justificantes, j)
	return nil
}

func (m *mockJustificanteRepo) ListPorMatricula(_ context.Context, matricula string) ([]model.Justificante, error) {
	var result []model.Justificante
	for _, j := range m.justificantes {
		if j.Matricula == matricula {
			result = append(result, *j)
		}
	}
	return result, nil
}

// ── Mock Publisher y SnapshotCache ──

type mockPublisher struct {
	mu      sync.Mutex
	eventos []dto.EventoClase
}

func (m *mockPublisher) Publish(_ uint, evento *dto.EventoClase) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.eventos = append(m.eventos, *evento)
}

func (m *mockPublisher) publicados() []dto.EventoClase {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]dto.EventoClase(nil), m.eventos...)
}

type mockSnapshotCache struct {
	invalidaciones []uint
}

func (m *mockSnapshotCache) InvalidateSnapshot(_ context.Context, idClase uint) error {
	m.invalidaciones = append(m.invalidaciones, idClase)
	return nil
}

// mockSnapshotStore is a map-backed SnapshotStore for cache-path tests.
type mockSnapshotStore struct {
	datos map[uint]string
	sets  int
}

func newMockSnapshotStore() *mockSnapshotStore {
	return &mockSnapshotStore{datos: make(map[uint]string)}
}

func (m *mockSnapshotStore) GetSnapshot(_ context.Context, idClase uint) (string, error) {
	return m.datos[idClase], nil
}

func (m *mockSnapshotStore) SetSnapshot(_ context.Context, idClase uint, data string) error {
	m.sets++
	m.datos[idClase] = data
	return nil
}
