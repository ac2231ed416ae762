// Package engine calls into the native Objective-C runtime.
//
// Native implements objc.Runtime with purego, so no cgo is needed. The
// fixed-signature entry points are bound once:
//
//	objc_getClass        func(name string) uintptr
//	sel_registerName     func(name string) uintptr
//	object_getClassName  func(obj uintptr) string
//	NSLog                func(format uintptr)
//
// objc_msgSend has no fixed signature. Each distinct objc.CallTypes gets a
// Go function type built with reflect.FuncOf and bound to the same address;
// the bound values are cached by signature key:
//
//	Kind      Go slot type
//	──────────────────────────
//	Pointer   uintptr
//	Buffer    unsafe.Pointer
//	CString   string
//	Bool      bool
//	Int       int64
//	Uint      uint64
//	Float     float32
//	Double    float64
//
// Buffer arguments point into Go slices of objc.Handle. They are kept alive
// for the duration of the call and must not be retained by the callee.
//
// Native is usable only from the goroutine that drives the bridge. On
// darwin, AppKit calls generally belong on the main thread; lock it with
// runtime.LockOSThread in main before opening a session.
package engine
