// Package hispano is HispanoLang's embeddable public API: parse and run
// source text without touching internal/lexer, internal/parser, or
// internal/interp directly.
package hispano

import (
	"github.com/nicvazquezdev/hispano-lang/internal/ast"
	"github.com/nicvazquezdev/hispano-lang/internal/herrors"
	"github.com/nicvazquezdev/hispano-lang/internal/interp"
	"github.com/nicvazquezdev/hispano-lang/internal/interp/runtime"
	"github.com/nicvazquezdev/hispano-lang/internal/parser"
)

// Result is the outcome of Interpret: every `mostrar` line produced, in
// order, plus an error description when execution failed partway
// through (Outputs still holds everything printed before the failure).
type Result struct {
	Success bool
	Outputs []string
	Error   string
}

// Option reconfigures the interpreter an Interpret/Runner call builds.
type Option = interp.Option

// WithOutput is re-exported for embedders that want mostrar tracing
// streamed live in addition to Result.Outputs.
var WithOutput = interp.WithOutput

// WithInput is re-exported for embedders that want to supply leer's
// input stream.
var WithInput = interp.WithInput

// WithMaxRecursionDepth is re-exported to let embedders raise or lower
// DefaultMaxRecursionDepth.
var WithMaxRecursionDepth = interp.WithMaxRecursionDepth

func parseProgram(source string) (*ast.Program, *herrors.HispanoError) {
	p, err := parser.New(source)
	if err != nil {
		return nil, err
	}
	return p.Parse()
}

// Interpret parses and runs source as a standalone program, returning a
// Result instead of requiring the caller to manage a lexer/parser/
// interpreter pipeline directly.
func Interpret(source string, opts ...Option) Result {
	program, err := parseProgram(source)
	if err != nil {
		return Result{Success: false, Error: err.WithSource(source).Format(false)}
	}

	it := interp.New(opts...)
	if err := it.Run(program); err != nil {
		return Result{Success: false, Outputs: it.Outputs(), Error: err.WithSource(source).Format(false)}
	}
	return Result{Success: true, Outputs: it.Outputs()}
}

// Run parses and executes source, returning only the `mostrar` output
// lines. Parse or runtime failures are reported as a single trailing
// line rather than a Go error, matching the Run signature.
func Run(source string, opts ...Option) []string {
	result := Interpret(source, opts...)
	if !result.Success {
		return append(result.Outputs, result.Error)
	}
	return result.Outputs
}

// Runner is a persistent interpreter session, for hosts (e.g. a REPL)
// that need top-level bindings to survive across multiple Eval calls,
// with binding introspection and reset.
type Runner struct {
	it *interp.Interpreter
}

// NewRunner creates a Runner with a fresh global environment.
func NewRunner(opts ...Option) *Runner {
	return &Runner{it: interp.New(opts...)}
}

// Eval parses source as a fragment (statements, not necessarily a
// complete program) and runs it against the Runner's persistent global
// environment, returning whatever new output lines it produced.
func (r *Runner) Eval(source string) Result {
	before := len(r.it.Outputs())
	program, err := parseProgram(source)
	if err != nil {
		return Result{Success: false, Error: err.WithSource(source).Format(false)}
	}
	if err := r.it.Run(program); err != nil {
		return Result{Success: false, Outputs: r.it.Outputs()[before:], Error: err.WithSource(source).Format(false)}
	}
	return Result{Success: true, Outputs: r.it.Outputs()[before:]}
}

// TopLevelBindings returns the name/value pairs currently bound in the
// Runner's global scope, rendered with mostrar's English stringify, for
// a REPL "variables" command.
func (r *Runner) TopLevelBindings() map[string]string {
	bindings := r.it.Global().Bindings()
	out := make(map[string]string, len(bindings))
	for name, v := range bindings {
		out[name] = runtime.Stringify(v)
	}
	return out
}

// ResetTopLevel discards all top-level bindings and output history,
// starting a fresh session while reusing the Runner value itself.
func (r *Runner) ResetTopLevel() {
	r.it = interp.New()
}

// FormatError is a convenience for hosts that caught a *herrors.HispanoError
// from a lower-level call (e.g. via internal/parser directly in a test)
// and want the same "Error en la línea N: ..." rendering Interpret uses.
func FormatError(err *herrors.HispanoError, source string) string {
	return err.WithSource(source).Format(false)
}
