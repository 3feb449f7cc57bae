// Package diagnostic provides errors and warnings anchored to a position in
// the user's source code.
package diagnostic

import (
	"fmt"
	"go/token"
)

// Severity of a Diagnostic.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Diagnostic is a message about a location in source code. Error diagnostics
// are returned as errors and stop generation; warnings are reported alongside
// a successful result.
type Diagnostic struct {
	Severity Severity
	Pos      token.Position
	Message  string
}

// Errorf returns an error Diagnostic at pos. pos may be invalid, in which case
// no location is printed.
func Errorf(fset *token.FileSet, pos token.Pos, format string, args ...any) *Diagnostic {
	return newDiagnostic(SeverityError, fset, pos, format, args...)
}

// Warningf returns a warning Diagnostic at pos.
func Warningf(fset *token.FileSet, pos token.Pos, format string, args ...any) *Diagnostic {
	return newDiagnostic(SeverityWarning, fset, pos, format, args...)
}

func newDiagnostic(sev Severity, fset *token.FileSet, pos token.Pos, format string, args ...any) *Diagnostic {
	d := &Diagnostic{
		Severity: sev,
		Message:  fmt.Sprintf(format, args...),
	}
	if fset != nil && pos.IsValid() {
		d.Pos = fset.Position(pos)
	}
	return d
}

// Error implements the error interface. If the position is valid it is
// prepended to the message.
func (d *Diagnostic) Error() string {
	if !d.Pos.IsValid() {
		return d.Message
	}
	return fmt.Sprintf("%s: %s", d.Pos, d.Message)
}
