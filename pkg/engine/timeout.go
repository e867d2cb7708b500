package engine

import (
	"fmt"
	"sync"
	"time"

	"github.com/chazu/bem/pkg/scene"
)

// DefaultEvalTimeout is the hard limit for a single evaluation unless
// WithTimeout overrides it.
const DefaultEvalTimeout = 5 * time.Second

type evalResult struct {
	scene  *scene.Scene
	errors []EvalError
	err    error
}

// waitWithTimeout waits for a result from ch, but returns a timeout error
// if the evaluation exceeds timeout. Results whose generation is no longer
// current are discarded.
//
// On timeout the evaluating goroutine may still be running; the generation
// check drops its result when it eventually completes.
func waitWithTimeout(
	ch <-chan evalResult,
	gen uint64,
	mu *sync.Mutex,
	currentGen *uint64,
	timeout time.Duration,
) (*scene.Scene, []EvalError, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case res := <-ch:
		mu.Lock()
		current := *currentGen
		mu.Unlock()

		if gen != current {
			return nil, nil, fmt.Errorf("evaluation superseded by newer request")
		}
		return res.scene, res.errors, res.err

	case <-timer.C:
		return nil, nil, fmt.Errorf("evaluation timed out after %s", timeout)
	}
}
