package main

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"math"
	"net/http"
	"strconv"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"

	"shape-simplifier/simplify"
)

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type SimplifyRequest struct {
	Points         []Point  `json:"points"`
	Closed         bool     `json:"closed,omitempty"`         // append the first point as the last one
	Algorithm      string   `json:"algorithm,omitempty"`      // "dp" (default) or "visvalingam"
	Tolerance      *float64 `json:"tolerance,omitempty"`      // fixed tolerance, bypasses the strategy
	Strategy       string   `json:"strategy,omitempty"`       // "density" or "zoom"
	BaseTolerance  float64  `json:"baseTolerance,omitempty"`  // base tolerance for the strategy
	Zoom           *float64 `json:"zoom,omitempty"`           // current map zoom
	HighestQuality bool     `json:"highestQuality,omitempty"` // skip the radial prefilter
	Precision      int      `json:"precision,omitempty"`      // decimal digits kept
	PointsToKeep   int      `json:"pointsToKeep,omitempty"`   // visvalingam only
	Store          bool     `json:"store,omitempty"`          // keep the result in the shape index
	Name           string   `json:"name,omitempty"`
}

type SimplifyResponse struct {
	Success        bool    `json:"success"`
	Algorithm      string  `json:"algorithm"`
	Strategy       string  `json:"strategy,omitempty"`
	Tolerance      float64 `json:"tolerance,omitempty"`
	InputPoints    int     `json:"inputPoints"`
	OutputPoints   int     `json:"outputPoints"`
	Simplified     []Point `json:"simplified"`
	Quantized      []Point `json:"quantized"`
	Encoding       string  `json:"encoding"`
	SelfIntersects bool    `json:"selfIntersects"`
	ID             int     `json:"id,omitempty"`
}

// Server exposes the simplification core over HTTP.
type Server struct {
	cfg   Config
	index *ShapeIndex
}

func NewServer(cfg Config, index *ShapeIndex) *Server {
	return &Server{cfg: cfg, index: index}
}

// Routes registers every endpoint on a fresh mux.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/simplify", corsMiddleware(s.simplifyHandler))
	mux.HandleFunc("/shapes", corsMiddleware(s.shapesHandler))
	mux.HandleFunc("/health", corsMiddleware(s.healthHandler))
	return mux
}

// corsMiddleware adds CORS headers to allow frontend requests
func corsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		// Handle preflight
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next(w, r)
	}
}

// POST /simplify - Simplify a drawn boundary
func (s *Server) simplifyHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("========================================")
	log.Println("✏️  Simplify request received")
	defer log.Println("========================================")

	if r.Method != http.MethodPost {
		log.Printf("❌ Method not allowed: %s\n", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req SimplifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ Invalid request body: %v\n", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if len(req.Points) == 0 {
		writeError(w, http.StatusBadRequest, errors.New("no points"))
		return
	}

	ls := make(orb.LineString, len(req.Points))
	for i, p := range req.Points {
		ls[i] = orb.Point{p.X, p.Y}
	}
	if req.Closed {
		ls = simplify.CloseRing(ls)
	}

	precision := req.Precision
	if precision == 0 {
		precision = s.cfg.Precision
	}
	if precision < 1 || precision > 15 {
		writeError(w, http.StatusBadRequest, errors.Errorf("precision must be within [1, 15], got %d", precision))
		return
	}

	log.Printf("   Points: %d (closed: %v)\n", len(ls), req.Closed)
	log.Printf("   Precision: %d digits\n", precision)

	resp := SimplifyResponse{InputPoints: len(ls)}
	var res simplify.Result
	var err error

	switch req.Algorithm {
	case "", "dp", "douglas-peucker":
		resp.Algorithm = "dp"
		var strategy simplify.ToleranceStrategy
		strategy, err = s.strategyFor(req)
		if err != nil {
			break
		}
		zoom := s.cfg.Zoom
		if req.Zoom != nil {
			zoom = *req.Zoom
		}
		resp.Strategy = strategy.Name()
		log.Printf("   Douglas-Peucker: strategy %s, zoom %.1f, highest quality %v\n",
			strategy.Name(), zoom, req.HighestQuality)

		p := simplify.Pipeline{Strategy: strategy, HighestQuality: req.HighestQuality, Precision: precision}
		res, err = p.Run(r.Context(), ls, zoom)
	case "visvalingam":
		resp.Algorithm = "visvalingam"
		log.Printf("   Visvalingam: keep %d points\n", req.PointsToKeep)

		p := simplify.Pipeline{Precision: precision}
		res, err = p.RunCount(r.Context(), ls, req.PointsToKeep)
	default:
		err = errors.Errorf("unknown algorithm %q", req.Algorithm)
	}
	if err != nil {
		log.Printf("❌ Simplification failed: %v\n", err)
		status := http.StatusBadRequest
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			status = http.StatusServiceUnavailable
		}
		writeError(w, status, err)
		return
	}

	resp.Success = true
	resp.Tolerance = res.Tolerance
	resp.OutputPoints = len(res.Simplified)
	resp.Simplified = toPoints(res.Simplified)
	resp.Quantized = toPoints(res.Quantized)
	resp.Encoding = res.Encoded
	resp.SelfIntersects = simplify.SelfIntersects(res.Quantized)

	if req.Store {
		id, err := s.index.Add(shapeFromResult(req.Name, res))
		if err != nil {
			log.Printf("⚠️  Failed to store shape: %v\n", err)
		} else {
			resp.ID = id
			log.Printf("   Stored as shape %d\n", id)
		}
	}

	log.Printf("✅ %d -> %d points, %d characters encoded\n",
		resp.InputPoints, resp.OutputPoints, len(resp.Encoding))
	if resp.SelfIntersects {
		log.Println("⚠️  Simplified boundary intersects itself")
	}

	writeJSON(w, http.StatusOK, resp)
}

// strategyFor picks the tolerance strategy for a Douglas-Peucker request.
func (s *Server) strategyFor(req SimplifyRequest) (simplify.ToleranceStrategy, error) {
	if req.Tolerance != nil {
		if *req.Tolerance < 0 {
			return nil, errors.Errorf("tolerance must not be negative, got %g", *req.Tolerance)
		}
		return simplify.Fixed(*req.Tolerance), nil
	}

	name := req.Strategy
	if name == "" {
		name = s.cfg.Strategy
	}
	base := req.BaseTolerance
	if base == 0 {
		base = s.cfg.BaseTolerance
	}
	if base < 0 {
		return nil, errors.Errorf("base tolerance must not be negative, got %g", base)
	}
	return simplify.StrategyByName(name, base)
}

// GET /shapes - Stored shapes as GeoJSON, optionally limited to a bounding box
func (s *Server) shapesHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("========================================")
	log.Println("🗺️  Shapes request received")
	defer log.Println("========================================")

	if r.Method != http.MethodGet {
		log.Printf("❌ Method not allowed: %s\n", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var shapes []Shape
	q := r.URL.Query()
	if q.Has("minX") || q.Has("minY") || q.Has("maxX") || q.Has("maxY") {
		var box [4]float64
		for i, key := range []string{"minX", "minY", "maxX", "maxY"} {
			v, err := strconv.ParseFloat(q.Get(key), 64)
			if err != nil {
				writeError(w, http.StatusBadRequest, errors.Wrapf(err, "query parameter %s", key))
				return
			}
			if math.IsNaN(v) || math.IsInf(v, 0) {
				writeError(w, http.StatusBadRequest, errors.Errorf("query parameter %s must be finite, got %s", key, q.Get(key)))
				return
			}
			box[i] = v
		}
		if box[0] > box[2] || box[1] > box[3] {
			writeError(w, http.StatusBadRequest, errors.New("bounding box min must not exceed max"))
			return
		}
		log.Printf("   Box: (%.6f, %.6f) to (%.6f, %.6f)\n", box[0], box[1], box[2], box[3])
		shapes = s.index.QueryRegion(box[0], box[1], box[2], box[3])
	} else {
		shapes = s.index.All()
	}

	fc := geojson.NewFeatureCollection()
	for _, shape := range shapes {
		fc.Append(shapeFeature(shape))
	}

	log.Printf("   Returning %d shapes\n", len(shapes))
	writeJSON(w, http.StatusOK, fc)
}

// shapeFeature turns a closed shape into a polygon feature and anything else
// into a line string feature.
func shapeFeature(shape Shape) *geojson.Feature {
	var g orb.Geometry = shape.Points
	if simplify.IsClosed(shape.Points) && len(shape.Points) >= 4 {
		g = orb.Polygon{orb.Ring(shape.Points)}
	}
	f := geojson.NewFeature(g)
	f.ID = shape.ID
	f.Properties["name"] = shape.Name
	f.Properties["encoding"] = shape.Encoding
	f.Properties["tolerance"] = shape.Tolerance
	return f
}

// GET /health - Health check endpoint
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "ready",
		"numShapes": s.index.Len(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("⚠️  Failed to write response: %v\n", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]interface{}{
		"success": false,
		"error":   err.Error(),
	})
}

func toPoints(ls orb.LineString) []Point {
	points := make([]Point, len(ls))
	for i, p := range ls {
		points[i] = Point{X: p[0], Y: p[1]}
	}
	return points
}

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}
	if cfg.Quiet {
		log.SetOutput(io.Discard)
	}

	log.Println("========================================")
	log.Println("🚀 Shape Simplifier Server")
	log.Println("========================================")
	log.Printf("   Tolerance strategy: %s (base %g)\n", cfg.Strategy, cfg.BaseTolerance)
	log.Printf("   Default zoom: %.1f, precision: %d digits\n", cfg.Zoom, cfg.Precision)

	pipeline, err := cfg.Pipeline()
	if err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}

	index := NewShapeIndex()
	if _, err := loadBoundaries(context.Background(), cfg.BoundaryDir, pipeline, cfg.Zoom, index); err != nil {
		log.Printf("⚠️  Failed to load boundaries: %v\n", err)
	}
	log.Println("")

	server := NewServer(cfg, index)

	log.Printf("Server starting on %s\n", cfg.Addr)
	log.Println("")
	log.Println("Endpoints:")
	log.Println("  POST /simplify   - Simplify a boundary (Douglas-Peucker or Visvalingam)")
	log.Println("  GET  /shapes     - Stored shapes as GeoJSON, optionally within a box")
	log.Println("  GET  /health     - Check server status")
	log.Println("")
	log.Println("CORS enabled for all origins")
	log.Println("========================================")
	log.Println("")

	if err := http.ListenAndServe(cfg.Addr, server.Routes()); err != nil {
		log.Fatal(err)
	}
}
