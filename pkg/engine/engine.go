// Package engine provides the Lisp evaluation engine for draft2d.
// It wraps zygomys in a sandboxed environment and produces a Sketch from
// drafting source code: scripted construction of segments, circles and
// arcs, plus the editing verbs of the geometry kernel.
package engine

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/draft2d/pkg/geom"
	"github.com/chazu/draft2d/pkg/sketch"
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

// EvalWarning represents a non-fatal warning attached to a sketch entity.
type EvalWarning struct {
	Message string
	Entity  sketch.EntityID
}

// EvalResult bundles evaluation output plus sketch validation, for
// callers that want all diagnostics in one shot.
type EvalResult struct {
	Sketch   *sketch.Sketch
	Errors   []EvalError
	Warnings []EvalWarning
}

// Engine wraps the zygomys interpreter for draft2d evaluation.
// It is safe for concurrent use; each call to Evaluate creates a fresh
// sandboxed environment for determinism.
type Engine struct {
	mu         sync.Mutex
	generation uint64
}

// NewEngine creates a new Engine instance.
func NewEngine() *Engine {
	return &Engine{}
}

// Evaluate takes drafting Lisp source and produces a new Sketch.
// Each call creates a fresh zygomys sandbox for deterministic evaluation.
//
// Return semantics:
//   - On success: returns sketch + nil errors + nil error
//   - On parse/eval failure: returns nil sketch + eval errors + nil error
//   - On fatal failure (timeout, panic): returns nil + nil + error
func (e *Engine) Evaluate(source string) (*sketch.Sketch, []EvalError, error) {
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

		sk, evalErrs, err := e.evaluate(source)
		ch <- evalResult{sketch: sk, errors: evalErrs, err: err}
	}()

	return waitWithTimeout(ch, gen, &e.mu, &e.generation)
}

// Check evaluates source and folds sketch validation into the result:
// blocking findings become errors, advisory findings become warnings.
func (e *Engine) Check(source string) (EvalResult, error) {
	sk, evalErrs, err := e.Evaluate(source)
	if err != nil {
		return EvalResult{}, err
	}
	res := EvalResult{Sketch: sk, Errors: evalErrs}
	if sk == nil {
		return res, nil
	}

	v := sketch.Validate(sk, geom.Epsilon)
	for _, ve := range v.Errors {
		res.Errors = append(res.Errors, EvalError{Message: ve.Error()})
	}
	for _, vw := range v.Warnings {
		res.Warnings = append(res.Warnings, EvalWarning{Message: vw.Message, Entity: vw.Entity})
	}
	return res, nil
}

// sandboxFuncs returns zygomys' sandbox-safe builtins minus names that
// collide with the drafting verbs registered by registerBuiltins. The
// zygomys VM dispatches builtins before user globals, so a colliding
// builtin ("trim") would permanently shadow the drafting verb of the
// same name.
func sandboxFuncs() map[string]zygo.ZlispUserFunction {
	funcs := zygo.SandboxSafeFunctions()
	delete(funcs, "trim")
	return funcs
}

// evaluate performs the actual zygomys evaluation in a fresh sandbox.
func (e *Engine) evaluate(source string) (*sketch.Sketch, []EvalError, error) {
	// Empty source is a valid program that produces an empty sketch.
	if strings.TrimSpace(source) == "" {
		return sketch.New(), nil, nil
	}

	// Sandbox mode prevents user code from accessing the filesystem or
	// syscalls.
	env := zygo.NewZlispWithFuncs(sandboxFuncs())
	defer env.Stop()

	sk := sketch.New()
	registerBuiltins(env, sk)

	err := env.LoadString(preprocessSource(source))
	if err != nil {
		return nil, parseZygomysError(err), nil
	}

	_, err = env.Run()
	if err != nil {
		return nil, parseZygomysError(err), nil
	}

	return sk, nil, nil
}

// linePattern matches zygomys error messages that include "Error on line N: ..."
var linePattern = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)

// linePatternShort matches simpler "line N: ..." patterns.
var linePatternShort = regexp.MustCompile(`(?i)^line (\d+):\s*(.*)`)

// parseZygomysError converts a zygomys error into one or more EvalError
// values, extracting line numbers where the message carries them.
func parseZygomysError(err error) []EvalError {
	msg := err.Error()

	if m := linePattern.FindStringSubmatch(msg); m != nil {
		line, _ := strconv.Atoi(m[1])
		return []EvalError{{
			Line:    line,
			Message: strings.TrimSpace(m[2]),
		}}
	}

	if m := linePatternShort.FindStringSubmatch(msg); m != nil {
		line, _ := strconv.Atoi(m[1])
		return []EvalError{{
			Line:    line,
			Message: strings.TrimSpace(m[2]),
		}}
	}

	// No line info available.
	return []EvalError{{
		Message: strings.TrimSpace(msg),
	}}
}
