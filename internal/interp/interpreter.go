// Package interp is HispanoLang's tree-walking evaluator: it interprets
// an *ast.Program against a chain of lexically-scoped runtime.Environment
// frames, dispatches to the built-in function and method tables, and
// implements non-local control transfer for retornar/romper/continuar
// as typed unwinds rather than Go panics.
package interp

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/nicvazquezdev/hispano-lang/internal/ast"
	"github.com/nicvazquezdev/hispano-lang/internal/herrors"
	"github.com/nicvazquezdev/hispano-lang/internal/interp/runtime"
)

// signal identifies a pending non-local control transfer. It is
// orthogonal to the *herrors.HispanoError Go-level error channel: a
// signal never wraps an error and an error never sets a signal.
type signal int

const (
	signalNone signal = iota
	signalReturn
	signalBreak
	signalContinue
)

// DefaultMaxRecursionDepth bounds function-call nesting so a runaway
// recursive HispanoLang program fails with a catchable error instead of
// overflowing the Go call stack.
const DefaultMaxRecursionDepth = 1024

// callFrame threads the `este` receiver and its declaring class through
// method/constructor invocations.
type callFrame struct {
	instance *runtime.InstanceValue
	owner    *runtime.ClassValue // class whose method body is executing, for super() resolution
}

// Options configures an Interpreter. Use the With* functions below;
// the zero value is a valid, default configuration.
type Options struct {
	output            io.Writer
	input             io.Reader
	maxRecursionDepth int
	trace             bool
}

// Option configures an Interpreter at construction time, mirroring the
// teacher's functional-options pattern (internal/lexer.Option,
// internal/interp/options.go).
type Option func(*Options)

// WithOutput makes every `mostrar` line also be written to w as it is
// produced; outputs are always collected into Result.Outputs regardless
// of this option.
func WithOutput(w io.Writer) Option { return func(o *Options) { o.output = w } }

// WithInput supplies the stream `leer` reads lines from. Defaults to
// nothing (leer fails) unless set.
func WithInput(r io.Reader) Option { return func(o *Options) { o.input = r } }

// WithMaxRecursionDepth overrides DefaultMaxRecursionDepth.
func WithMaxRecursionDepth(depth int) Option {
	return func(o *Options) { o.maxRecursionDepth = depth }
}

// WithTrace records the trace flag in Options; the evaluator itself
// emits no trace output.
func WithTrace(enabled bool) Option { return func(o *Options) { o.trace = enabled } }

// Interpreter walks an *ast.Program's statements against its global
// environment, producing an ordered list of mostrar output lines.
type Interpreter struct {
	global *runtime.Environment

	classes map[string]*runtime.ClassValue

	signal      signal
	returnValue runtime.Value

	frames []callFrame

	outputs    []string
	out        io.Writer
	in         *bufio.Reader
	trace      bool
	maxDepth   int
	callDepth  int
}

// New creates an Interpreter with a fresh global environment.
func New(opts ...Option) *Interpreter {
	cfg := &Options{maxRecursionDepth: DefaultMaxRecursionDepth}
	for _, opt := range opts {
		opt(cfg)
	}
	it := &Interpreter{
		global:   runtime.New(),
		classes:  make(map[string]*runtime.ClassValue),
		out:      cfg.output,
		trace:    cfg.trace,
		maxDepth: cfg.maxRecursionDepth,
	}
	if cfg.input != nil {
		it.in = bufio.NewReader(cfg.input)
	}
	return it
}

// Global exposes the top-level environment, for REPL integration
// (pkg/hispano.TopLevelBindings/ResetTopLevel).
func (it *Interpreter) Global() *runtime.Environment { return it.global }

// Outputs returns every line produced by mostrar so far.
func (it *Interpreter) Outputs() []string { return it.outputs }

// Run executes every statement of program against the interpreter's
// current global environment, in order, stopping at the first error.
// A stray `retornar`/`romper`/`continuar` left pending at top level
// (i.e. not consumed by any enclosing function/loop) is itself an
// error, 
func (it *Interpreter) Run(program *ast.Program) *herrors.HispanoError {
	for _, stmt := range program.Statements {
		if err := it.execStatement(it.global, stmt); err != nil {
			return err
		}
		if it.signal != signalNone {
			return it.straySignalError(stmt.Line())
		}
	}
	return nil
}

func (it *Interpreter) straySignalError(line int) *herrors.HispanoError {
	switch it.signal {
	case signalReturn:
		return herrors.New(herrors.ParseError, line, "'retornar' usado fuera de una función")
	case signalBreak:
		return herrors.New(herrors.ParseError, line, "'romper' usado fuera de un bucle")
	case signalContinue:
		return herrors.New(herrors.ParseError, line, "'continuar' usado fuera de un bucle")
	default:
		return nil
	}
}

func (it *Interpreter) print(line string) {
	it.outputs = append(it.outputs, line)
	if it.out != nil {
		io.WriteString(it.out, line+"\n")
	}
}

func (it *Interpreter) readLine() (runtime.Value, *herrors.HispanoError) {
	if it.in == nil {
		return nil, herrors.New(herrors.TypeError, 0, "no hay una entrada disponible para 'leer'")
	}
	line, err := it.in.ReadString('\n')
	line = strings.TrimRight(line, "\r\n")
	if err != nil && line == "" {
		return runtime.StringValue{Value: ""}, nil
	}
	if n, perr := strconv.ParseFloat(line, 64); perr == nil {
		return runtime.NumberValue{Value: n}, nil
	}
	return runtime.StringValue{Value: line}, nil
}

func (it *Interpreter) currentFrame() (callFrame, bool) {
	if len(it.frames) == 0 {
		return callFrame{}, false
	}
	return it.frames[len(it.frames)-1], true
}

func (it *Interpreter) pushFrame(f callFrame) { it.frames = append(it.frames, f) }
func (it *Interpreter) popFrame()             { it.frames = it.frames[:len(it.frames)-1] }
