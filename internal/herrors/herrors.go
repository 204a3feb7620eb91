// Package herrors defines HispanoLang's runtime and compile-time error
// taxonomy and renders errors with source context: a line-number header
// followed by the offending source line.
package herrors

import (
	"fmt"
	"strings"
)

// Kind classifies a HispanoError into one of the taxonomy entries from
// The CLI and test suite can branch on Kind without string
// matching the (Spanish) message text.
type Kind int

const (
	// Unknown is the zero value; it should never be produced by the
	// interpreter itself.
	Unknown Kind = iota
	LexError
	ParseError
	UndefinedVariable
	ConstantReassignment
	Arity
	TypeError
	DivisionByZero
	ModuloByZero
	BoundsError
	EmptyCollection
	UnknownMethod
	InvalidThis
)

func (k Kind) String() string {
	switch k {
	case LexError:
		return "LexError"
	case ParseError:
		return "ParseError"
	case UndefinedVariable:
		return "UndefinedVariable"
	case ConstantReassignment:
		return "ConstantReassignment"
	case Arity:
		return "Arity"
	case TypeError:
		return "TypeError"
	case DivisionByZero:
		return "DivisionByZero"
	case ModuloByZero:
		return "ModuloByZero"
	case BoundsError:
		return "BoundsError"
	case EmptyCollection:
		return "EmptyCollection"
	case UnknownMethod:
		return "UnknownMethod"
	case InvalidThis:
		return "InvalidThis"
	default:
		return "Unknown"
	}
}

// HispanoError is the single error type surfaced by every pipeline stage.
// Message is always Spanish-language text suitable for direct display to
// an end user (e.g. via mostrar inside a capturar block).
type HispanoError struct {
	Kind    Kind
	Message string
	Line    int
	Source  string // full program source, for context rendering; may be empty
}

// New creates a HispanoError without source context. Most call sites
// inside the evaluator use this form since they don't carry the original
// source string past the lexer/parser stage.
func New(kind Kind, line int, format string, args ...any) *HispanoError {
	return &HispanoError{Kind: kind, Message: fmt.Sprintf(format, args...), Line: line}
}

// WithSource attaches the program source so Format can render the
// offending line.
func (e *HispanoError) WithSource(source string) *HispanoError {
	e.Source = source
	return e
}

// Error implements the error interface.
func (e *HispanoError) Error() string {
	return e.Format(false)
}

// Format renders the error with a line-number header and, when source is
// available, the offending source line. When color is true, the message
// is wrapped in ANSI bold-red escapes; used by the CLI, never by the
// language core itself.
func (e *HispanoError) Format(color bool) string {
	var sb strings.Builder

	if e.Line > 0 {
		sb.WriteString(fmt.Sprintf("Error en la línea %d: ", e.Line))
	} else {
		sb.WriteString("Error: ")
	}

	if color {
		sb.WriteString("\033[1;31m")
	}
	sb.WriteString(e.Message)
	if color {
		sb.WriteString("\033[0m")
	}

	if e.Source != "" && e.Line > 0 {
		if line := sourceLine(e.Source, e.Line); line != "" {
			sb.WriteString("\n")
			prefix := fmt.Sprintf("%4d | ", e.Line)
			sb.WriteString(prefix)
			sb.WriteString(line)
		}
	}

	return sb.String()
}

func sourceLine(source string, line int) string {
	lines := strings.Split(source, "\n")
	if line < 1 || line > len(lines) {
		return ""
	}
	return lines[line-1]
}
