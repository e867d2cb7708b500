// Command bem evaluates a mesh script, builds a half-edge mesh for every
// part, and reports their topology.
//
// Usage:
//
//	bem -script examples/square.bem [-config bem.json] [-json] [-cells n] [-weld tol] [-timeout 5s]
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/chazu/bem/pkg/config"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("bem: ")

	scriptFile := flag.String("script", "", "Path to the mesh script (or pass it as the first argument)")
	configFile := flag.String("config", "", "Path to a JSON config file")
	jsonOut := flag.Bool("json", false, "Write meshes and stats as JSON")
	cells := flag.Int("cells", 0, "Marching cubes cells along the longest axis (default: 200)")
	weld := flag.Float64("weld", -1, "Weld tolerance for kernel meshes (default: 1e-6)")
	timeout := flag.Duration("timeout", 0, "Script evaluation time limit (default: 5s)")

	flag.Parse()

	path := *scriptFile
	if path == "" && flag.NArg() > 0 {
		path = flag.Arg(0)
	}
	if path == "" {
		flag.Usage()
		os.Exit(2)
	}

	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			log.Fatalf("loading config: %v", err)
		}
	}
	cfg.Resolve(config.Flags{
		Cells:   *cells,
		Weld:    *weld,
		JSON:    *jsonOut,
		Timeout: *timeout,
	})

	source, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("reading script: %v", err)
	}

	result := NewApp(cfg).Evaluate(string(source))

	if cfg.OutputJSON {
		enc := json.NewEncoder(os.Stdout)
		if err := enc.Encode(result); err != nil {
			log.Fatalf("encoding result: %v", err)
		}
	} else {
		for _, m := range result.Meshes {
			s := m.Stats
			fmt.Printf("%-16s V=%d E=%d F=%d boundary=%d euler=%d\n",
				m.PartName, s.Vertices, s.Edges, s.Faces, s.BoundaryEdges, s.Euler)
		}
		if len(result.Meshes) > 1 {
			t := result.Totals
			fmt.Printf("%-16s V=%d E=%d F=%d boundary=%d\n", "total", t.Vertices, t.Edges, t.Faces, t.BoundaryEdges)
		}
	}

	for _, e := range result.Errors {
		if e.Line > 0 {
			log.Printf("%s:%d: %s", path, e.Line, e.Message)
		} else {
			log.Printf("%s: %s", path, e.Message)
		}
	}
	if len(result.Errors) > 0 {
		os.Exit(1)
	}
}
