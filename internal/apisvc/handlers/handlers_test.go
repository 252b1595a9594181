package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/sgsc/sgsc-services/internal/apisvc/catalog"
	"github.com/sgsc/sgsc-services/internal/apisvc/models"
	"github.com/sgsc/sgsc-services/internal/apisvc/service"
	"github.com/sgsc/sgsc-services/internal/apisvc/store"
	"github.com/sgsc/sgsc-services/internal/auth"
	"github.com/sgsc/sgsc-services/internal/evidence"
	"github.com/sgsc/sgsc-services/internal/refcache"
	"github.com/sgsc/sgsc-services/internal/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore[T any, F any] struct {
	mu    sync.Mutex
	rows  map[string]T
	order []string
	seq   int
	setID func(*T, string)
}

func newMemStore[T any, F any](setID func(*T, string)) *memStore[T, F] {
	return &memStore[T, F]{rows: map[string]T{}, setID: setID}
}

func (m *memStore[T, F]) List(context.Context, F) ([]T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []T
	for _, id := range m.order {
		if r, ok := m.rows[id]; ok {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memStore[T, F]) Get(_ context.Context, id string) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rows[id]
	if !ok {
		return nil, fmt.Errorf("get %s: %w", id, store.ErrNotFound)
	}
	return &r, nil
}

func (m *memStore[T, F]) Create(_ context.Context, rec *T) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	id := fmt.Sprintf("id-%d", m.seq)
	m.setID(rec, id)
	m.rows[id] = *rec
	m.order = append(m.order, id)
	return rec, nil
}

func (m *memStore[T, F]) Update(_ context.Context, id string, rec *T) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return nil, store.ErrNotFound
	}
	m.setID(rec, id)
	m.rows[id] = *rec
	return rec, nil
}

func (m *memStore[T, F]) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

type source struct{}

func (source) ListSectors(context.Context) ([]models.Sector, error) {
	return []models.Sector{{ID: "s-1", NombreSector: "Centro"}}, nil
}

func (source) ListShifts(context.Context) ([]models.Shift, error) {
	return []models.Shift{{ID: "t-1", NombreTurno: "Mañana"}}, nil
}

func (source) ListPersonnel(context.Context) ([]models.Personnel, error) {
	return nil, nil
}

func (source) ListVehicles(context.Context) ([]models.Vehicle, error) {
	return nil, errors.New("vehiculo table unavailable")
}

func (source) ListBooths(context.Context) ([]models.Booth, error) {
	return nil, nil
}

func (source) ListSupervisors(context.Context) ([]models.Personnel, error) {
	return nil, nil
}

type images map[string]string

func (i images) SetImage(_ context.Context, id, url string) error {
	if _, ok := i[id]; !ok {
		return store.ErrNotFound
	}
	i[id] = url
	return nil
}

type uploader struct{}

func (uploader) Upload(_ context.Context, folder, id, contentType string, body io.Reader) (string, error) {
	if contentType != "image/jpeg" {
		return "", evidence.ErrUnsupportedImage
	}
	return "https://cdn.example.pe/" + folder + "/" + id + "/a.jpg", nil
}

const secret = "test-secret"

type fixture struct {
	server  *httptest.Server
	token   string
	sectors *memStore[models.Sector, store.NoFilter]
	patrols *memStore[models.Patrol, store.PatrolFilter]
	cache   *refcache.Cache
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		sectors: newMemStore[models.Sector, store.NoFilter](func(s *models.Sector, id string) { s.ID = id }),
		patrols: newMemStore[models.Patrol, store.PatrolFilter](func(p *models.Patrol, id string) { p.ID = id }),
		cache:   refcache.New(),
	}
	svcs := &service.Services{
		Sectors: service.New[models.Sector, store.NoFilter]("sector", f.sectors, nil, func(s *models.Sector) string { return s.ID }),
		Patrols: service.New[models.Patrol, store.PatrolFilter]("patrullaje", f.patrols, nil, func(p *models.Patrol) string { return p.ID }),
	}
	lookups := refcache.NewFetchers(f.cache, source{})
	gen := report.NewGenerator(report.WithClock(func() time.Time { return time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC) }))

	h := NewHandler(Deps{
		Catalog:   catalog.New(svcs, lookups, gen),
		Lookups:   lookups,
		Evidence:  service.NewEvidenceService(uploader{}, nil).Register("incidencia", images{"i-1": ""}),
		JWTSecret: secret,
		Port:      "8080",
	})
	h.InitAuth()
	_, token, err := h.tokenAuth.Encode(map[string]interface{}{
		"sub":   "u-1",
		"email": "ana@muni.gob.pe",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	require.NoError(t, err)
	f.token = token

	r := chi.NewRouter()
	h.SetRoutes(r)
	f.server = httptest.NewServer(r)
	t.Cleanup(f.server.Close)
	return f
}

type envelope struct {
	Message string          `json:"message"`
	Code    int             `json:"code"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func (f *fixture) do(t *testing.T, method, path, contentType, body string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequest(method, f.server.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+f.token)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func (f *fixture) json(t *testing.T, method, path, body string) envelope {
	t.Helper()
	resp, raw := f.do(t, method, path, "application/json", body)
	var env envelope
	require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	assert.Equal(t, resp.StatusCode, env.Code)
	return env
}

func TestSecureRoutesRequireToken(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	resp, err := http.Get(f.server.URL + "/v1/sectores")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, err = http.Get(f.server.URL + "/v1/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestSectorCRUD(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	env := f.json(t, http.MethodGet, "/v1/sectores", "")
	assert.Equal(t, http.StatusOK, env.Code)
	assert.JSONEq(t, `[]`, string(env.Data))

	env = f.json(t, http.MethodPost, "/v1/sectores", `{"nombre_sector":"Centro","descripcion":"Cercado"}`)
	require.Equal(t, http.StatusCreated, env.Code)
	var created models.Sector
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "id-1", created.ID)

	env = f.json(t, http.MethodPut, "/v1/sectores/id-1", `{"nombre_sector":"Centro Histórico"}`)
	assert.Equal(t, http.StatusOK, env.Code)

	env = f.json(t, http.MethodGet, "/v1/sectores/id-1", "")
	assert.Contains(t, string(env.Data), "Centro Histórico")

	env = f.json(t, http.MethodDelete, "/v1/sectores/id-1", "")
	assert.Equal(t, http.StatusOK, env.Code)

	env = f.json(t, http.MethodGet, "/v1/sectores/id-1", "")
	assert.Equal(t, http.StatusNotFound, env.Code)
}

func TestCreateRejections(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	env := f.json(t, http.MethodPost, "/v1/sectores", `{"descripcion":"sin nombre"}`)
	assert.Equal(t, http.StatusBadRequest, env.Code)
	assert.Contains(t, env.Error, "nombre_sector")

	env = f.json(t, http.MethodPost, "/v1/sectores", `{"nombre_sector":`)
	assert.Equal(t, http.StatusBadRequest, env.Code)
	assert.Equal(t, "invalid request body", env.Message)

	env = f.json(t, http.MethodPut, "/v1/sectores/missing", `{"nombre_sector":"X"}`)
	assert.Equal(t, http.StatusNotFound, env.Code)
}

func TestPatrolReportDownload(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	_, err := f.patrols.Create(context.Background(), &models.Patrol{
		Fecha:            "2025-03-14",
		HoraInicio:       "08:00",
		RutaPatrullaje:   "Av. Grau",
		EstadoPatrullaje: "en_curso",
	})
	require.NoError(t, err)

	resp, body := f.do(t, http.MethodGet, "/v1/patrullajes/report?format=excel&sector_id=s-1", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, report.Excel.ContentType(), resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "Reporte_de_Patrullajes_2025-03-14.xlsx")
	assert.True(t, strings.HasPrefix(string(body), "PK"))

	resp, body = f.do(t, http.MethodGet, "/v1/patrullajes/report", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.True(t, strings.HasPrefix(string(body), "%PDF-"))

	env := f.json(t, http.MethodGet, "/v1/patrullajes/report?format=csv", "")
	assert.Equal(t, http.StatusBadRequest, env.Code)
}

func TestLookups(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	env := f.json(t, http.MethodGet, "/v1/lookups/sectors", "")
	assert.JSONEq(t, `[{"id":"s-1","nombre_sector":"Centro","descripcion":"","created_at":"0001-01-01T00:00:00Z"}]`, string(env.Data))

	env = f.json(t, http.MethodGet, "/v1/lookups/vehicles", "")
	assert.Equal(t, http.StatusOK, env.Code)
	assert.JSONEq(t, `[]`, string(env.Data))

	env = f.json(t, http.MethodGet, "/v1/lookups/stats", "")
	assert.JSONEq(t, `{"size":1,"keys":["sectors"]}`, string(env.Data))

	env = f.json(t, http.MethodDelete, "/v1/lookups", "")
	assert.Equal(t, http.StatusOK, env.Code)
	assert.Zero(t, f.cache.Stats().Size)

	env = f.json(t, http.MethodGet, "/v1/lookups/planets", "")
	assert.Equal(t, http.StatusNotFound, env.Code)
}

func TestSession(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	env := f.json(t, http.MethodGet, "/v1/session", "")
	assert.JSONEq(t, `{"user_id":"u-1","email":"ana@muni.gob.pe","role":"admin"}`, string(env.Data))
}

func TestOptionalFeatures(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	env := f.json(t, http.MethodPost, "/v1/admin/users", `{}`)
	assert.Equal(t, http.StatusServiceUnavailable, env.Code)

	env = f.json(t, http.MethodGet, "/v1/audit", "")
	assert.Equal(t, http.StatusServiceUnavailable, env.Code)
}

func TestEvidenceUpload(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	resp, raw := f.do(t, http.MethodPut, "/v1/incidencias/i-1/imagen", "image/jpeg", "\xff\xd8\xff")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	assert.Contains(t, string(raw), "https://cdn.example.pe/incidencia/i-1/a.jpg")

	resp, _ = f.do(t, http.MethodPut, "/v1/incidencias/i-1/imagen", "text/plain", "hola")
	assert.Equal(t, http.StatusUnsupportedMediaType, resp.StatusCode)

	resp, _ = f.do(t, http.MethodPut, "/v1/vouchers/v-1/imagen", "image/jpeg", "\xff\xd8\xff")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		code int
	}{
		{err: &models.ValidationError{Field: "dni"}, code: http.StatusBadRequest},
		{err: fmt.Errorf("get: %w", store.ErrNotFound), code: http.StatusNotFound},
		{err: fmt.Errorf("create: %w", store.ErrConflict), code: http.StatusConflict},
		{err: fmt.Errorf("create: %w", store.ErrInvalidReference), code: http.StatusBadRequest},
		{err: fmt.Errorf("get: %w", store.ErrInvalidInput), code: http.StatusBadRequest},
		{err: fmt.Errorf("sign up: %w", &auth.APIError{Status: 422, Message: "User already registered"}), code: http.StatusUnprocessableEntity},
		{err: &auth.APIError{Status: 503}, code: http.StatusBadGateway},
		{err: evidence.ErrDisabled, code: http.StatusServiceUnavailable},
		{err: catalog.ErrNoReport, code: http.StatusNotFound},
		{err: &http.MaxBytesError{Limit: 10}, code: http.StatusRequestEntityTooLarge},
		{err: evidence.ErrTooLarge, code: http.StatusRequestEntityTooLarge},
		{err: errors.New("boom"), code: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		code, _ := classify(tt.err)
		assert.Equal(t, tt.code, code, tt.err.Error())
	}
}
