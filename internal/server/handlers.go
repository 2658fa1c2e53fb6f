package server

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SbEnChOi/world-energy-ubiquity/pkg/aggregate"
	"github.com/SbEnChOi/world-energy-ubiquity/pkg/export"
	"github.com/SbEnChOi/world-energy-ubiquity/pkg/seed"
	"github.com/SbEnChOi/world-energy-ubiquity/pkg/timeline"
	"github.com/SbEnChOi/world-energy-ubiquity/pkg/validation"
)

// ResourceInfo describes one selectable resource.
type ResourceInfo struct {
	Name             string  `json:"name"`
	Unit             string  `json:"unit"`
	ReserveScale     float64 `json:"reserve_scale"`
	ConsumptionScale float64 `json:"consumption_scale"`
}

// CreateSnapshotRequest is the POST /api/snapshots body.
type CreateSnapshotRequest struct {
	Resource string `json:"resource"`
	Seed     int64  `json:"seed"`
}

// SnapshotResponse wraps a snapshot with its registry metadata.
type SnapshotResponse struct {
	ID        string                  `json:"id"`
	Seed      int64                   `json:"seed"`
	CreatedAt time.Time               `json:"created_at"`
	Resource  seed.Resource           `json:"resource"`
	Unit      string                  `json:"unit"`
	Range     timeline.Range          `json:"range"`
	Snapshot  *timeline.WorldSnapshot `json:"snapshot,omitempty"`
}

// SeriesResponse is the global trend for a snapshot.
type SeriesResponse struct {
	Series              []aggregate.GlobalYearAggregate `json:"series"`
	GlobalDepletionYear *int                            `json:"global_depletion_year"`
}

func errorJSON(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}

func (s *Server) handleResources(c *gin.Context) {
	out := make([]ResourceInfo, 0, len(seed.Resources))
	for _, r := range seed.Resources {
		rs, cs := r.Scale()
		out = append(out, ResourceInfo{Name: string(r), Unit: r.Unit(), ReserveScale: rs, ConsumptionScale: cs})
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleValidation(c *gin.Context) {
	c.JSON(http.StatusOK, validation.ValidateTable(s.table))
}

func (s *Server) handleListSnapshots(c *gin.Context) {
	entries := s.registry.List()
	out := make([]SnapshotResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, describe(e, false))
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleCreateSnapshot(c *gin.Context) {
	var req CreateSnapshotRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			errorJSON(c, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
			return
		}
	}

	resource := s.cfg.DefaultResource()
	if req.Resource != "" {
		r, err := seed.ParseResource(req.Resource)
		if err != nil {
			errorJSON(c, http.StatusBadRequest, err.Error())
			return
		}
		resource = r
	}

	seedValue := req.Seed
	if seedValue == 0 {
		seedValue = s.cfg.Projection.Seed
	}
	rng, used := timeline.NewSeededRNG(seedValue)

	snap := timeline.Generate(s.table, resource, rng)
	e := s.registry.Add(snap, used)
	log.Printf("generated %s snapshot %s (seed %d)", resource, e.ID, used)

	c.JSON(http.StatusCreated, describe(e, false))
}

func (s *Server) handleSnapshot(c *gin.Context) {
	e, ok := s.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, describe(e, true))
}

func (s *Server) handleStats(c *gin.Context) {
	e, ok := s.lookup(c)
	if !ok {
		return
	}
	year, ok := s.requireYear(c, e.Snapshot.Range)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, aggregate.Summarize(e.Snapshot, year, s.cfg.Projection.CriticalThreshold))
}

func (s *Server) handleSeries(c *gin.Context) {
	e, ok := s.lookup(c)
	if !ok {
		return
	}
	series := aggregate.ComputeGlobalSeries(e.Snapshot)
	resp := SeriesResponse{Series: series}
	if y, ok := aggregate.GlobalDepletionYear(series); ok {
		resp.GlobalDepletionYear = &y
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleMap(c *gin.Context) {
	e, ok := s.lookup(c)
	if !ok {
		return
	}
	year, err := s.queryYear(c)
	if err != nil {
		errorJSON(c, http.StatusBadRequest, err.Error())
		return
	}
	ids := e.Snapshot.IDs()
	out := make([]aggregate.EntityView, 0, len(ids))
	for _, id := range ids {
		out = append(out, aggregate.Inspect(e.Snapshot.Entities[id], year, s.cfg.Projection.CriticalThreshold))
	}
	c.JSON(http.StatusOK, out)
}

// handleEntity degrades to a no_data view for years outside the range so
// map tooltips can render a placeholder instead of failing.
func (s *Server) handleEntity(c *gin.Context) {
	e, ok := s.lookup(c)
	if !ok {
		return
	}
	tl, ok := e.Snapshot.Entity(c.Param("entity"))
	if !ok {
		errorJSON(c, http.StatusNotFound, fmt.Sprintf("entity %s not found", c.Param("entity")))
		return
	}
	year, err := s.queryYear(c)
	if err != nil {
		errorJSON(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, aggregate.Inspect(tl, year, s.cfg.Projection.CriticalThreshold))
}

func (s *Server) handleExport(c *gin.Context) {
	e, ok := s.lookup(c)
	if !ok {
		return
	}
	year, ok := s.requireYear(c, e.Snapshot.Range)
	if !ok {
		return
	}

	filename := fmt.Sprintf("ecotimeline-%s-%d.xlsx", e.Snapshot.Resource, year)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Status(http.StatusOK)
	if err := export.WriteWorkbook(c.Writer, e.Snapshot, year, s.cfg.Projection.CriticalThreshold); err != nil {
		log.Printf("export %s failed: %v", e.ID, err)
		_ = c.Error(err)
	}
}

func (s *Server) lookup(c *gin.Context) (*Entry, bool) {
	e, ok := s.registry.Get(c.Param("id"))
	if !ok {
		errorJSON(c, http.StatusNotFound, fmt.Sprintf("snapshot %s not found", c.Param("id")))
		return nil, false
	}
	return e, true
}

func (s *Server) queryYear(c *gin.Context) (int, error) {
	raw := c.Query("year")
	if raw == "" {
		return s.cfg.Projection.Year, nil
	}
	year, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid year %q", raw)
	}
	return year, nil
}

// requireYear rejects years outside the range; aggregate totals for such
// years would silently read as zero.
func (s *Server) requireYear(c *gin.Context, rng timeline.Range) (int, bool) {
	year, err := s.queryYear(c)
	if err != nil {
		errorJSON(c, http.StatusBadRequest, err.Error())
		return 0, false
	}
	if !rng.Contains(year) {
		errorJSON(c, http.StatusBadRequest, fmt.Sprintf("year %d outside %d-%d", year, rng.Start, rng.End))
		return 0, false
	}
	return year, true
}

func describe(e *Entry, withSnapshot bool) SnapshotResponse {
	resp := SnapshotResponse{
		ID:        e.ID,
		Seed:      e.Seed,
		CreatedAt: e.CreatedAt,
		Resource:  e.Snapshot.Resource,
		Unit:      e.Snapshot.Resource.Unit(),
		Range:     e.Snapshot.Range,
	}
	if withSnapshot {
		resp.Snapshot = e.Snapshot
	}
	return resp
}
