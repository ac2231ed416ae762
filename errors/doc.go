// Package errors provides structured error types for the cocoa bridge.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the selector path, Go and Objective-C type names, and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDispatch, errors.KindTypeMismatch).
//		Path("getObjects:andKeys:", "arg0").
//		GoType("string").
//		ObjCType("Buffer").
//		Detail("cannot pass string as a buffer").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.TypeMismatch(errors.PhaseDispatch, path, "string", "Buffer")
//	err := errors.InvalidUTF8(errors.PhaseDecode, path, raw)
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
