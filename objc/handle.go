package objc

import "fmt"

// Handle is an opaque address of a class, selector or object in the
// Objective-C runtime. Handle 0 is nil. Handles are never dereferenced on
// the Go side; they only travel back into the runtime.
type Handle uintptr

// IsNil reports whether h is the nil handle.
func (h Handle) IsNil() bool { return h == 0 }

func (h Handle) String() string { return fmt.Sprintf("%#x", uintptr(h)) }

// Kind is the C type of one objc_msgSend slot.
type Kind uint8

const (
	Pointer Kind = iota // id, Class, SEL, void*
	Void                // return only
	Bool                // BOOL
	Int                 // NSInteger and smaller signed integers
	Uint                // NSUInteger and smaller unsigned integers
	Float               // float
	Double              // double, CGFloat
	CString             // const char*
	Buffer              // pointer into Go memory, e.g. id[] out-parameters
)

var kindNames = [...]string{
	Pointer: "Pointer",
	Void:    "Void",
	Bool:    "Bool",
	Int:     "Int",
	Uint:    "Uint",
	Float:   "Float",
	Double:  "Double",
	CString: "CString",
	Buffer:  "Buffer",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// CallTypes declares the argument and return types of one message send.
// Args excludes the implicit receiver and selector slots.
type CallTypes struct {
	Args   []Kind
	Return Kind
}

// Text is a Go string passed across the boundary as a NUL-terminated
// const char*. Plain Go strings are coerced to NSString objects instead.
type Text string

// Runtime is the foreign-function surface of libobjc and Foundation the
// bridge depends on. Implementations are not required to be safe for
// concurrent use.
type Runtime interface {
	// GetClass returns the class named name, or 0.
	GetClass(name string) Handle

	// RegisterName returns the selector named name, registering it if needed.
	RegisterName(name string) Handle

	// ClassName returns the class name of obj. For a class object this is
	// the class's own name.
	ClassName(obj Handle) string

	// MsgSend performs objc_msgSend(receiver, sel, args...) with the slot
	// types in types. The result type follows types.Return: Handle for
	// Pointer, nil for Void, bool, int64, uint64, float32, float64, or
	// string for CString. An error is returned only when the arguments
	// cannot be marshalled; the call itself has no failure channel.
	MsgSend(types CallTypes, receiver, sel Handle, args ...any) (any, error)

	// Log passes an NSString handle to NSLog as the format.
	Log(format Handle)
}
