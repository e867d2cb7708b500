package main

import (
	"log"

	"github.com/chazu/bem/pkg/config"
	"github.com/chazu/bem/pkg/engine"
	"github.com/chazu/bem/pkg/halfedge"
	"github.com/chazu/bem/pkg/kernel"
	"github.com/chazu/bem/pkg/kernel/sdfx"
	"github.com/chazu/bem/pkg/tessellate"
)

// colorPalette is a default palette used to assign distinct colors to parts.
var colorPalette = []string{
	"#4A90D9", "#E67E22", "#2ECC71", "#9B59B6",
	"#E74C3C", "#1ABC9C", "#F39C12", "#3498DB",
}

// App runs the script → scene → half-edge pipeline.
type App struct {
	engine *engine.Engine
	kernel kernel.Kernel
	opts   tessellate.Options
}

// MeshData is the JSON-serializable mesh format for renderers.
type MeshData struct {
	Vertices []float32      `json:"vertices"`
	Normals  []float32      `json:"normals"`
	Indices  []uint32       `json:"indices"`
	PartName string         `json:"partName"`
	Color    string         `json:"color"`
	Stats    halfedge.Stats `json:"stats"`
}

// EvalErrorData is a JSON-serializable eval error.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// EvalResult is the full result of one run.
type EvalResult struct {
	Meshes []MeshData      `json:"meshes"`
	Errors []EvalErrorData `json:"errors"`
	Totals halfedge.Stats  `json:"totals"`
}

// NewApp creates an App with the sdfx kernel configured from cfg.
func NewApp(cfg config.Config) *App {
	k := sdfx.New(sdfx.WithCells(cfg.MeshCells))
	return &App{
		engine: engine.NewEngine(k, engine.WithTimeout(cfg.EvalTimeout.Duration)),
		kernel: k,
		opts:   cfg.TessellateOptions(),
	}
}

// Evaluate takes script source and returns mesh data + errors.
func (a *App) Evaluate(source string) EvalResult {
	result := EvalResult{
		Meshes: []MeshData{},
		Errors: []EvalErrorData{},
	}

	s, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		// panic or timeout
		log.Printf("evaluate: fatal: %v", err)
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			result.Errors = append(result.Errors, EvalErrorData{Line: e.Line, Col: e.Col, Message: e.Message})
		}
		return result
	}

	results, err := tessellate.Tessellate(s, a.kernel, a.opts)
	if err != nil {
		log.Printf("tessellate: %v", err)
		result.Errors = append(result.Errors, EvalErrorData{Message: "tessellation failed: " + err.Error()})
		return result
	}

	for i, r := range results {
		m := tessellate.Export(r)
		result.Meshes = append(result.Meshes, MeshData{
			Vertices: m.Vertices,
			Normals:  m.Normals,
			Indices:  m.Indices,
			PartName: m.PartName,
			Color:    colorPalette[i%len(colorPalette)],
			Stats:    r.Stats,
		})
		// Export copied the geometry.
		r.Mesh.Release()
	}
	result.Totals = tessellate.Totals(results)

	return result
}
