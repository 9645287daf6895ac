package engine

import (
	"fmt"
	"sync"
	"time"

	"github.com/chazu/brep/pkg/topo"
)

// EvalTimeout is the default hard limit for a single evaluation.
const EvalTimeout = 5 * time.Second

// evalResult is the internal type used to pass evaluation results through channels.
type evalResult struct {
	body   *topo.Body
	errors []EvalError
	err    error
}

// waitWithTimeout waits for a result from ch, but returns a timeout error
// if the evaluation exceeds timeout. It uses a generation counter to
// discard stale results from previous evaluations.
//
// On timeout, the goroutine may still be running; the generation check
// ensures its result is discarded when it eventually completes.
func waitWithTimeout(
	ch <-chan evalResult,
	gen uint64,
	mu *sync.Mutex,
	currentGen *uint64,
	timeout time.Duration,
) (*topo.Body, []EvalError, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case res := <-ch:
		mu.Lock()
		current := *currentGen
		mu.Unlock()

		if gen != current {
			// A newer evaluation was started; discard this result.
			return nil, nil, fmt.Errorf("evaluation superseded by newer request")
		}

		return res.body, res.errors, res.err

	case <-timer.C:
		return nil, nil, fmt.Errorf("evaluation timed out after %s", timeout)
	}
}
