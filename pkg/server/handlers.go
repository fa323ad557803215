package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/brooklinpub/brooklin/pkg/cache"
	"github.com/brooklinpub/brooklin/pkg/curve"
	"github.com/brooklinpub/brooklin/pkg/placement"
	"github.com/brooklinpub/brooklin/pkg/render/sink"
)

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type placementQuery struct {
	count         int
	width, height float64
	format        string
}

func parsePlacementQuery(r *http.Request) (placementQuery, error) {
	q := r.URL.Query()
	var pq placementQuery
	var err error

	if pq.count, err = strconv.Atoi(q.Get("count")); err != nil || pq.count < 1 || pq.count > MaxCount {
		return pq, fmt.Errorf("count must be an integer in [1, %d]", MaxCount)
	}
	if pq.width, err = strconv.ParseFloat(q.Get("width"), 64); err != nil || pq.width <= 0 || pq.width > MaxDimension {
		return pq, fmt.Errorf("width must be a number in (0, %g]", MaxDimension)
	}
	if pq.height, err = strconv.ParseFloat(q.Get("height"), 64); err != nil || pq.height <= 0 || pq.height > MaxDimension {
		return pq, fmt.Errorf("height must be a number in (0, %g]", MaxDimension)
	}
	pq.format = q.Get("format")
	if pq.format == "" {
		pq.format = sink.FormatJSON
	}
	if pq.format != sink.FormatJSON && pq.format != sink.FormatSVG {
		return pq, fmt.Errorf("format must be json or svg")
	}
	return pq, nil
}

func (s *Server) handlePlacements(w http.ResponseWriter, r *http.Request) {
	pq, err := parsePlacementQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	ctx := r.Context()

	hotspots := s.hotspots(r)
	key := s.keyer.PlacementKey(cache.PlacementKeyOpts{
		Count:    pq.count,
		Width:    pq.width,
		Height:   pq.height,
		PathHash: s.pathHash + cache.Hash(hotspotBytes(hotspots)),
		Format:   pq.format,
	})
	if data, ok, _ := s.cache.Get(ctx, key); ok {
		writeBody(w, pq.format, "hit", data)
		return
	}

	vp := placement.Viewport{Width: pq.width, Height: pq.height}
	pad := s.opts.Padding
	c := curve.Fit(s.path, curve.Rect{MinX: pad, MinY: pad, MaxX: pq.width - pad, MaxY: pq.height - pad})
	layout, ok := placement.ResolveContext(ctx, c, pq.count, vp, s.opts)
	if !ok {
		writeError(w, http.StatusUnprocessableEntity, fmt.Errorf("viewport %gx%g leaves no room inside padding %g", pq.width, pq.height, s.opts.Padding))
		return
	}

	data, err := sink.Render(layout, pq.format, c.Points(), hotspots)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if err := s.cache.Set(ctx, key, data, s.ttl); err != nil {
		s.logger.Warn("cache placement", "error", err)
	}
	writeBody(w, pq.format, "miss", data)
}

// hotspots labels placements with active specials. Failures degrade to
// unlabelled hotspots.
func (s *Server) hotspots(r *http.Request) []sink.Hotspot {
	if s.specials == nil {
		return nil
	}
	list, err := s.specials.Active(r.Context(), false)
	if err != nil {
		s.logger.Warn("load specials for hotspots", "error", err)
		return nil
	}
	hs := make([]sink.Hotspot, len(list))
	for i, sp := range list {
		hs[i] = sink.Hotspot{Label: sp.Title, URL: "/specials/" + sp.ID}
	}
	return hs
}

func hotspotBytes(hs []sink.Hotspot) []byte {
	data, _ := json.Marshal(hs)
	return data
}

func (s *Server) handleActiveSpecials(w http.ResponseWriter, r *http.Request) {
	if s.specials == nil {
		writeError(w, http.StatusNotFound, fmt.Errorf("specials are not configured"))
		return
	}
	list, err := s.specials.Active(r.Context(), false)
	if err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func writeBody(w http.ResponseWriter, format, cacheStatus string, data []byte) {
	w.Header().Set("Content-Type", sink.ContentType(format))
	w.Header().Set("X-Cache", cacheStatus)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
