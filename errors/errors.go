package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in the bridge the error occurred
type Phase string

const (
	PhaseLoad     Phase = "load"     // shared library loading
	PhaseResolve  Phase = "resolve"  // class and selector lookup
	PhaseDispatch Phase = "dispatch" // objc_msgSend marshalling
	PhaseCoerce   Phase = "coerce"   // Go to runtime values
	PhaseDecode   Phase = "decode"   // runtime to Go values
	PhaseClassify Phase = "classify" // wrapper registration and lookup
	PhasePool     Phase = "pool"     // autorelease pool lifecycle
	PhaseRender   Phase = "render"   // result item markup
	PhaseConfig   Phase = "config"   // configuration loading
)

// Kind categorizes the error
type Kind string

const (
	KindTypeMismatch   Kind = "type_mismatch"
	KindInvalidData    Kind = "invalid_data"
	KindUnsupported    Kind = "unsupported"
	KindInvalidUTF8    Kind = "invalid_utf8"
	KindNilPointer     Kind = "nil_pointer"
	KindNotFound       Kind = "not_found"
	KindNotInitialized Kind = "not_initialized"
	KindInvalidInput   Kind = "invalid_input"
	KindRegistration   Kind = "registration"
	KindMisuse         Kind = "misuse"
)

// Error is the structured error type used throughout the bridge
type Error struct {
	Value    any
	Cause    error
	Phase    Phase
	Kind     Kind
	GoType   string
	ObjCType string
	Detail   string
	Path     []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.GoType != "" || e.ObjCType != "" {
		b.WriteString(": ")
		if e.GoType != "" && e.ObjCType != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
			b.WriteString(", ObjC type ")
			b.WriteString(e.ObjCType)
		} else if e.GoType != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
		} else {
			b.WriteString("ObjC type ")
			b.WriteString(e.ObjCType)
		}
	}

	if e.Detail != "" {
		if e.GoType != "" || e.ObjCType != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the selector or key path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// GoType sets the Go type name
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// ObjCType sets the Objective-C class or type encoding
func (b *Builder) ObjCType(t string) *Builder {
	b.err.ObjCType = t
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// TypeMismatch creates a type mismatch error
func TypeMismatch(phase Phase, path []string, goType, objcType string) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindTypeMismatch,
		Path:     path,
		GoType:   goType,
		ObjCType: objcType,
	}
}

// InvalidUTF8 creates an invalid UTF-8 error
func InvalidUTF8(phase Phase, path []string, data []byte) *Error {
	preview := data
	if len(preview) > 32 {
		preview = preview[:32]
	}
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidUTF8,
		Path:   path,
		Detail: fmt.Sprintf("invalid UTF-8 sequence: %x", preview),
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// NilPointer creates a nil pointer error
func NilPointer(phase Phase, path []string, goType string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNilPointer,
		Path:   path,
		GoType: goType,
		Detail: "nil pointer",
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Path:   path,
		Detail: detail,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// MissingLibrary records one shared library that could not be opened
type MissingLibrary struct {
	Name       string   // e.g., "Foundation"
	Candidates []string // paths handed to dlopen, in order
	Cause      error    // last dlopen failure
}

// MissingLibrariesError is returned when the loader cannot open a required library
type MissingLibrariesError struct {
	Libraries []MissingLibrary
}

func (e *MissingLibrariesError) Error() string {
	if len(e.Libraries) == 0 {
		return "[load] not_found: no libraries specified"
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("missing %d shared librar", len(e.Libraries)))
	if len(e.Libraries) == 1 {
		b.WriteString("y:")
	} else {
		b.WriteString("ies:")
	}

	for _, lib := range e.Libraries {
		b.WriteString("\n  ")
		b.WriteString(lib.Name)
		b.WriteByte(':')
		for _, c := range lib.Candidates {
			b.WriteString("\n    - ")
			b.WriteString(c)
		}
		if lib.Cause != nil {
			b.WriteString("\n    last error: ")
			b.WriteString(lib.Cause.Error())
		}
	}

	return b.String()
}

// Is reports whether target matches this error type.
// A load/not_found *Error also matches so callers can test with a single sentinel.
func (e *MissingLibrariesError) Is(target error) bool {
	switch t := target.(type) {
	case *MissingLibrariesError:
		return true
	case *Error:
		return t.Phase == PhaseLoad && t.Kind == KindNotFound
	}
	return false
}

// Bridge convenience constructors

// NotInitialized creates a not-initialized error
func NotInitialized(phase Phase, component string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotInitialized,
		Detail: fmt.Sprintf("%s not initialized", component),
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Registration creates a wrapper registration error
func Registration(className, detail string) *Error {
	return &Error{
		Phase:    PhaseClassify,
		Kind:     KindRegistration,
		ObjCType: className,
		Detail:   detail,
	}
}

// Misuse creates a precondition violation error. These are raised as panics
// by callers; they describe programmer errors, not runtime conditions.
func Misuse(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindMisuse,
		Detail: detail,
	}
}

// Load creates a library loading error
func Load(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindNotFound,
		Detail: detail,
		Cause:  cause,
	}
}
