// Package engine provides the Lisp front-end for building meshes. It wraps
// zygomys in a sandboxed environment and produces a scene.Scene of named
// parts from user source code.
package engine

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/chazu/bem/pkg/kernel"
	"github.com/chazu/bem/pkg/scene"
	zygo "github.com/glycerine/zygomys/zygo"
)

// EvalError represents a non-fatal error encountered during evaluation,
// such as a parse error or a runtime error in user code.
type EvalError struct {
	Line    int
	Col     int
	Message string
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// Engine wraps the zygomys interpreter. It is safe for concurrent use;
// each call to Evaluate creates a fresh sandboxed environment.
type Engine struct {
	mu         sync.Mutex
	generation uint64

	kernel  kernel.Kernel
	timeout time.Duration
}

// Option configures an Engine.
type Option func(*Engine)

// WithTimeout sets the hard limit for a single evaluation.
// Non-positive values leave the default in place.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// NewEngine creates a new Engine. The kernel backs the solid builtins
// (box, sphere, union, ...); it may be nil for scripts that only declare
// explicit meshes.
func NewEngine(k kernel.Kernel, opts ...Option) *Engine {
	e := &Engine{kernel: k, timeout: DefaultEvalTimeout}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Timeout returns the evaluation time limit.
func (e *Engine) Timeout() time.Duration {
	return e.timeout
}

// Evaluate takes Lisp source code and produces a new Scene.
//
// Return semantics:
//   - On success: returns scene + nil errors + nil error
//   - On parse/eval failure: returns nil scene + eval errors + nil error
//   - On fatal failure (timeout, panic): returns nil + nil + error
func (e *Engine) Evaluate(source string) (*scene.Scene, []EvalError, error) {
	e.mu.Lock()
	e.generation++
	gen := e.generation
	e.mu.Unlock()

	ch := make(chan evalResult, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- evalResult{err: fmt.Errorf("panic during evaluation: %v", r)}
			}
		}()

		s, evalErrs, err := e.evaluate(source)
		ch <- evalResult{scene: s, errors: evalErrs, err: err}
	}()

	return waitWithTimeout(ch, gen, &e.mu, &e.generation, e.timeout)
}

func (e *Engine) evaluate(source string) (*scene.Scene, []EvalError, error) {
	s := scene.New()
	if strings.TrimSpace(source) == "" {
		return s, nil, nil
	}

	// Sandbox mode keeps user code away from the filesystem and syscalls.
	env := zygo.NewZlispSandbox()
	defer env.Stop()

	registerBuiltins(env, s, e.kernel)

	if err := env.LoadString(preprocessSource(source)); err != nil {
		return nil, parseZygomysError(err), nil
	}
	if _, err := env.Run(); err != nil {
		return nil, parseZygomysError(err), nil
	}
	return s, nil, nil
}

// linePattern matches zygomys error messages that include "Error on line N: ..."
var linePattern = regexp.MustCompile(`(?is)(?:error )?on line (\d+):\s*(.*)`)

// linePatternShort matches simpler "line N: ..." patterns.
var linePatternShort = regexp.MustCompile(`(?is)^line (\d+):\s*(.*)`)

// parseZygomysError converts a zygomys error into one or more EvalError
// values, extracting line numbers when the message carries them.
func parseZygomysError(err error) []EvalError {
	msg := err.Error()

	for _, re := range []*regexp.Regexp{linePattern, linePatternShort} {
		if m := re.FindStringSubmatch(msg); m != nil {
			line, _ := strconv.Atoi(m[1])
			return []EvalError{{Line: line, Message: strings.TrimSpace(m[2])}}
		}
	}

	return []EvalError{{Message: strings.TrimSpace(msg)}}
}
