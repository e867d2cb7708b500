package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/chazu/bem/pkg/engine"
	"github.com/chazu/bem/pkg/kernel/sdfx"
	"github.com/chazu/bem/pkg/tessellate"
)

// Config holds the pipeline settings.
type Config struct {
	// Kernel
	MeshCells int `json:"mesh_cells"`

	// Tessellation. A nil WeldTolerance means "not set"; zero is a valid
	// tolerance that merges only identical positions.
	WeldTolerance *float64 `json:"weld_tolerance,omitempty"`
	SkipCheck     bool     `json:"skip_check"`

	// Evaluation
	EvalTimeout Duration `json:"eval_timeout"`

	// Output
	OutputJSON bool `json:"output_json"`
}

// Duration is a time.Duration that reads and writes as a string like "5s".
type Duration struct {
	time.Duration
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("duration must be a string like \"5s\": %w", err)
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// Default returns a fully resolved configuration.
func Default() Config {
	var c Config
	c.Resolve(Flags{Weld: -1})
	return c
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values until Resolve.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if cfg.WeldTolerance != nil && *cfg.WeldTolerance < 0 {
		return Config{}, fmt.Errorf("config: %s: weld_tolerance must not be negative", path)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
// Zero values (and a negative Weld) mean "not given".
type Flags struct {
	Cells   int
	Weld    float64
	JSON    bool
	Timeout time.Duration
}

// Resolve applies flag overrides, then fills every unset field with its
// default. CLI flags take priority when given.
func (c *Config) Resolve(flags Flags) {
	if flags.Cells > 0 {
		c.MeshCells = flags.Cells
	}
	if flags.Weld >= 0 {
		w := flags.Weld
		c.WeldTolerance = &w
	}
	if flags.JSON {
		c.OutputJSON = true
	}
	if flags.Timeout > 0 {
		c.EvalTimeout.Duration = flags.Timeout
	}

	if c.MeshCells <= 0 {
		c.MeshCells = sdfx.DefaultMeshCells
	}
	if c.WeldTolerance == nil {
		w := tessellate.DefaultWeldTolerance
		c.WeldTolerance = &w
	}
	if c.EvalTimeout.Duration <= 0 {
		c.EvalTimeout.Duration = engine.DefaultEvalTimeout
	}
}

// TessellateOptions converts the resolved settings for the pipeline.
func (c Config) TessellateOptions() tessellate.Options {
	opts := tessellate.Options{WeldTolerance: tessellate.DefaultWeldTolerance, Check: !c.SkipCheck}
	if c.WeldTolerance != nil {
		opts.WeldTolerance = *c.WeldTolerance
	}
	return opts
}
