// Package objc implements message dispatch into the Objective-C runtime.
//
// A Bridge sits on top of a Runtime (the raw libobjc/Foundation entry
// points) and adds:
//
//	Class/Selector      memoized class and selector lookup
//	Send/SendRaw        objc_msgSend with per-call slot types
//	ToRuntime/ToHost    Go value <-> runtime object conversion
//	Define/Classify     class name -> wrapper type registry
//
// # Messages
//
// Selectors are built from fragments, each carrying at most one argument:
//
//	b.Send(dict, objc.Msg("valueForKey:", "name"))
//	b.SendRaw(dict, objc.Sel("count").Returns(objc.Uint))
//
// Every slot defaults to a pointer-sized id. Scalars, C strings and Go
// buffers need explicit kinds, because objc_msgSend has no prototype of its
// own:
//
//	objc.Msg("stringWithUTF8String:", objc.Text(s)).
//	    Types(objc.CallTypes{Args: []objc.Kind{objc.CString}})
//
// # Nil
//
// Messages to a nil receiver are not sent and return nil, matching the
// runtime's own semantics. A nil result classifies to a nil Wrapper.
//
// # Classification
//
// Classify walks an object's class chain through -superclass until it
// finds a registered class name. Unregistered objects come back as a
// generic *Object.
//
// # Threading
//
// The caches are locked, but the runtime objects behind them are not: use a
// Bridge from one goroutine.
package objc
