package server

import (
	"bytes"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/SbEnChOi/world-energy-ubiquity/internal/config"
	"github.com/SbEnChOi/world-energy-ubiquity/pkg/aggregate"
	"github.com/SbEnChOi/world-energy-ubiquity/pkg/seed"
	"github.com/SbEnChOi/world-energy-ubiquity/pkg/validation"
)

type testApp struct {
	t   *testing.T
	srv *Server
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := config.DefaultConfig()
	cfg.Server.DevMode = true
	cfg.Server.MaxSnapshots = 2
	srv, err := New(cfg, seed.Default())
	require.NoError(t, err)
	return &testApp{t: t, srv: srv}
}

func (a *testApp) request(method, path string, body any) *httptest.ResponseRecorder {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	a.srv.Handler().ServeHTTP(rec, req)
	return rec
}

func (a *testApp) create(resource string, seedValue int64) SnapshotResponse {
	a.t.Helper()
	res := a.request(http.MethodPost, "/api/snapshots", CreateSnapshotRequest{Resource: resource, Seed: seedValue})
	require.Equal(a.t, http.StatusCreated, res.Code, res.Body.String())
	var out SnapshotResponse
	require.NoError(a.t, json.Unmarshal(res.Body.Bytes(), &out))
	return out
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestResources(t *testing.T) {
	app := newTestApp(t)
	res := app.request(http.MethodGet, "/api/resources", nil)
	require.Equal(t, http.StatusOK, res.Code)

	out := decode[[]ResourceInfo](t, res)
	require.Len(t, out, 3)
	assert.Equal(t, "Coal", out[1].Name)
	assert.Equal(t, 15.0, out[1].ReserveScale)
	assert.Equal(t, 5.0, out[1].ConsumptionScale)
}

func TestCreateAndFetchSnapshot(t *testing.T) {
	app := newTestApp(t)
	created := app.create("coal", 42)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, seed.Coal, created.Resource)
	assert.Equal(t, int64(42), created.Seed)
	assert.Nil(t, created.Snapshot)

	res := app.request(http.MethodGet, "/api/snapshots/"+created.ID, nil)
	require.Equal(t, http.StatusOK, res.Code)
	full := decode[SnapshotResponse](t, res)
	require.NotNil(t, full.Snapshot)
	assert.Len(t, full.Snapshot.Entities, seed.Default().Len())
	assert.Len(t, full.Snapshot.Entities["USA"].History, full.Range.Years())
}

func TestCreateSnapshotDefaults(t *testing.T) {
	app := newTestApp(t)
	res := app.request(http.MethodPost, "/api/snapshots", nil)
	require.Equal(t, http.StatusCreated, res.Code, res.Body.String())

	out := decode[SnapshotResponse](t, res)
	assert.Equal(t, seed.Oil, out.Resource)
	assert.NotZero(t, out.Seed)
}

func TestCreateSnapshotBadResource(t *testing.T) {
	app := newTestApp(t)
	res := app.request(http.MethodPost, "/api/snapshots", CreateSnapshotRequest{Resource: "uranium"})
	assert.Equal(t, http.StatusBadRequest, res.Code)
}

func TestSameSeedSameSnapshot(t *testing.T) {
	app := newTestApp(t)
	a := app.create("gas", 7)
	b := app.create("gas", 7)

	ra := decode[aggregate.Summary](t, app.request(http.MethodGet, "/api/snapshots/"+a.ID+"/stats?year=2040", nil))
	rb := decode[aggregate.Summary](t, app.request(http.MethodGet, "/api/snapshots/"+b.ID+"/stats?year=2040", nil))
	assert.Equal(t, ra.TotalReserves, rb.TotalReserves)
	assert.Equal(t, ra.DepletedCount, rb.DepletedCount)
}

func TestUnknownSnapshot(t *testing.T) {
	app := newTestApp(t)
	for _, path := range []string{
		"/api/snapshots/missing",
		"/api/snapshots/missing/stats",
		"/api/snapshots/missing/series",
		"/api/snapshots/missing/map",
		"/api/snapshots/missing/entities/USA",
		"/api/snapshots/missing/export",
	} {
		res := app.request(http.MethodGet, path, nil)
		assert.Equal(t, http.StatusNotFound, res.Code, path)
	}
}

func TestStats(t *testing.T) {
	app := newTestApp(t)
	created := app.create("oil", 1)

	res := app.request(http.MethodGet, "/api/snapshots/"+created.ID+"/stats?year=2030", nil)
	require.Equal(t, http.StatusOK, res.Code)
	sum := decode[aggregate.Summary](t, res)
	assert.Equal(t, 2030, sum.Year)
	assert.Equal(t, "Billion Barrels", sum.Unit)
	assert.Greater(t, sum.TotalReserves, 0.0)
	assert.Equal(t, 16, sum.EntityCount)

	res = app.request(http.MethodGet, "/api/snapshots/"+created.ID+"/stats", nil)
	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, 2024, decode[aggregate.Summary](t, res).Year)

	res = app.request(http.MethodGet, "/api/snapshots/"+created.ID+"/stats?year=2100", nil)
	assert.Equal(t, http.StatusBadRequest, res.Code)

	res = app.request(http.MethodGet, "/api/snapshots/"+created.ID+"/stats?year=soon", nil)
	assert.Equal(t, http.StatusBadRequest, res.Code)
}

func TestSeries(t *testing.T) {
	app := newTestApp(t)
	created := app.create("oil", 1)

	res := app.request(http.MethodGet, "/api/snapshots/"+created.ID+"/series", nil)
	require.Equal(t, http.StatusOK, res.Code)
	out := decode[SeriesResponse](t, res)
	require.Len(t, out.Series, created.Range.Years())
	for i := 1; i < len(out.Series); i++ {
		assert.Equal(t, out.Series[i-1].Year+1, out.Series[i].Year)
	}
}

func TestEntity(t *testing.T) {
	app := newTestApp(t)
	created := app.create("oil", 1)

	res := app.request(http.MethodGet, "/api/snapshots/"+created.ID+"/entities/JPN?year=2030", nil)
	require.Equal(t, http.StatusOK, res.Code)
	v := decode[aggregate.EntityView](t, res)
	assert.Equal(t, "Japan", v.Name)
	assert.Equal(t, aggregate.TierDepleted, v.Tier)
	require.NotNil(t, v.Point)
	assert.Zero(t, v.Point.Reserves)

	res = app.request(http.MethodGet, "/api/snapshots/"+created.ID+"/entities/JPN?year=2070", nil)
	require.Equal(t, http.StatusOK, res.Code)
	v = decode[aggregate.EntityView](t, res)
	assert.Equal(t, aggregate.TierNoData, v.Tier)
	assert.Nil(t, v.Point)

	res = app.request(http.MethodGet, "/api/snapshots/"+created.ID+"/entities/XXX", nil)
	assert.Equal(t, http.StatusNotFound, res.Code)
}

func TestMap(t *testing.T) {
	app := newTestApp(t)
	created := app.create("gas", 3)

	res := app.request(http.MethodGet, "/api/snapshots/"+created.ID+"/map?year=2035", nil)
	require.Equal(t, http.StatusOK, res.Code)
	out := decode[[]aggregate.EntityView](t, res)
	require.Len(t, out, 16)
	assert.Equal(t, "ARE", out[0].ID)
	for _, v := range out {
		assert.GreaterOrEqual(t, v.Ratio, 0.0)
		assert.LessOrEqual(t, v.Ratio, 1.0)
	}
}

func TestExport(t *testing.T) {
	app := newTestApp(t)
	created := app.create("coal", 5)

	res := app.request(http.MethodGet, "/api/snapshots/"+created.ID+"/export?year=2030", nil)
	require.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Header().Get("Content-Disposition"), "ecotimeline-Coal-2030.xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(res.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"Summary", "Global", "Entities"}, f.GetSheetList())
}

func TestRegistryEviction(t *testing.T) {
	app := newTestApp(t)
	first := app.create("oil", 1)
	app.create("oil", 2)
	app.create("oil", 3)

	assert.Equal(t, 2, app.srv.Registry().Len())
	res := app.request(http.MethodGet, "/api/snapshots/"+first.ID, nil)
	assert.Equal(t, http.StatusNotFound, res.Code)

	list := decode[[]SnapshotResponse](t, app.request(http.MethodGet, "/api/snapshots", nil))
	require.Len(t, list, 2)
	assert.Equal(t, int64(2), list[0].Seed)
}

func TestValidationEndpoint(t *testing.T) {
	app := newTestApp(t)
	res := app.request(http.MethodGet, "/api/validation", nil)
	require.Equal(t, http.StatusOK, res.Code)
	r := decode[validation.Report](t, res)
	assert.True(t, r.Valid)
}

func TestIndexAndCORS(t *testing.T) {
	app := newTestApp(t)
	res := app.request(http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Body.String(), "EcoTimeline")

	res = app.request(http.MethodOptions, "/api/resources", nil)
	assert.Equal(t, http.StatusNoContent, res.Code)
	assert.Equal(t, "*", res.Header().Get("Access-Control-Allow-Origin"))
}

func TestNewRejectsInvalidTable(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tests := []struct {
		name   string
		growth float64
	}{
		{"nan growth", math.NaN()},
		{"growth at -1", -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := seed.Table{Entities: []seed.Entry{
				{ID: "AAA", Params: seed.Params{BaselineReserves: 100, BaselineConsumption: 10, AnnualGrowthRate: tt.growth}},
			}}
			srv, err := New(config.DefaultConfig(), table)
			require.Error(t, err)
			assert.Nil(t, srv)
			assert.Contains(t, err.Error(), "AAA")
		})
	}
}
