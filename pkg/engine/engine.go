// Package engine provides the Lisp evaluation engine for brep scripts.
// It wraps zygomys in a sandboxed environment whose builtins drive the Euler
// operators of pkg/topo, and returns the body the script built.
package engine

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	zygo "github.com/glycerine/zygomys/zygo"
	"go.uber.org/zap"

	"github.com/chazu/brep/pkg/topo"
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

// EvalWarning is a structural finding on the resulting body. The script ran
// to completion but left the body in a state Validate objects to.
type EvalWarning struct {
	Code    string
	Entity  string
	Message string
}

// EvalResult bundles the full output of an evaluation.
type EvalResult struct {
	Body     *topo.Body
	Errors   []EvalError
	Warnings []EvalWarning
}

// Engine wraps the zygomys interpreter.
// It is safe for concurrent use; each call to Evaluate creates a fresh
// sandboxed environment and a fresh identifier allocator for determinism.
type Engine struct {
	mu         sync.Mutex
	generation uint64

	timeout time.Duration
	log     *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithTimeout overrides EvalTimeout. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// WithLogger sets the logger used for evaluation events.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// NewEngine creates a new Engine instance.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{timeout: EvalTimeout, log: zap.NewNop()}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Evaluate runs Lisp source code and returns the body it built.
// Each call creates a fresh zygomys sandbox for deterministic evaluation.
//
// Return semantics:
//   - On success: returns body + nil errors + nil error. The body is nil if
//     the script never called mvfs.
//   - On parse/eval failure: returns nil body + eval errors + nil error
//   - On fatal failure (timeout, panic): returns nil + nil + error
func (e *Engine) Evaluate(source string) (*topo.Body, []EvalError, error) {
	e.mu.Lock()
	e.generation++
	gen := e.generation
	e.mu.Unlock()

	ch := make(chan evalResult, 1)
	start := time.Now()

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- evalResult{err: fmt.Errorf("panic during evaluation: %v", r)}
			}
		}()

		b, evalErrs, err := e.evaluate(source)
		ch <- evalResult{body: b, errors: evalErrs, err: err}
	}()

	b, evalErrs, err := waitWithTimeout(ch, gen, &e.mu, &e.generation, e.timeout)
	e.log.Debug("evaluated",
		zap.Uint64("generation", gen),
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("errors", len(evalErrs)),
		zap.Error(err))
	return b, evalErrs, err
}

// Run evaluates source and validates the resulting body. Validation
// findings are reported as warnings.
func (e *Engine) Run(source string) (EvalResult, error) {
	b, evalErrs, err := e.Evaluate(source)
	if err != nil {
		return EvalResult{}, err
	}
	res := EvalResult{Body: b, Errors: evalErrs}
	if b == nil {
		return res, nil
	}
	for _, v := range b.Validate() {
		res.Warnings = append(res.Warnings, EvalWarning{Code: v.Code, Entity: v.Entity, Message: v.Message})
	}
	return res, nil
}

// evaluate performs the actual zygomys evaluation in a fresh sandbox.
func (e *Engine) evaluate(source string) (*topo.Body, []EvalError, error) {
	// Empty source is a valid program that builds nothing.
	if strings.TrimSpace(source) == "" {
		return nil, nil, nil
	}

	// Create a fresh sandboxed zygomys environment.
	// Sandbox mode prevents user code from accessing the filesystem or syscalls.
	env := zygo.NewZlispSandbox()
	defer env.Stop()

	s := newSession()
	registerBuiltins(env, s)

	// Load and compile the source string into bytecode.
	err := env.LoadString(preprocessSource(source))
	if err != nil {
		evalErrs := parseZygomysError(err)
		return nil, evalErrs, nil
	}

	// Execute the compiled bytecode.
	_, err = env.Run()
	if err != nil {
		evalErrs := parseZygomysError(err)
		return nil, evalErrs, nil
	}

	return s.body, nil, nil
}

// linePattern matches zygomys error messages that include "Error on line N: ..."
var linePattern = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)

// linePatternShort matches simpler "line N: ..." patterns.
var linePatternShort = regexp.MustCompile(`(?i)^line (\d+):\s*(.*)`)

// parseZygomysError converts a zygomys error into one or more EvalError values.
// It attempts to extract line number information from the error message.
func parseZygomysError(err error) []EvalError {
	msg := err.Error()

	// zygomys formats parse errors as "Error on line N: <details>\n"
	for _, re := range []*regexp.Regexp{linePattern, linePatternShort} {
		if m := re.FindStringSubmatch(msg); m != nil {
			line, _ := strconv.Atoi(m[1])
			return []EvalError{{
				Line:    line,
				Message: strings.TrimSpace(m[2]),
			}}
		}
	}

	// Fallback: no line info available.
	return []EvalError{{Message: strings.TrimSpace(msg)}}
}
