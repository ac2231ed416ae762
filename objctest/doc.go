// Package objctest provides an in-memory Objective-C runtime for tests and
// for running the bridge on machines without libobjc.
//
//	rt := objctest.New()
//	b := objc.New(rt)
//	foundation.Register(b)
//
//	d := rt.NewStringDictionary("a", "1", "b", "2")
//	dict := foundation.WrapDictionary(b, d)
//	items, _ := dict.Items()
//
// The runtime models what the bridge relies on: class objects with
// inheritance, selector registration, retain counts, nested autorelease
// pools, and the Foundation/AppKit classes NSObject, NSString,
// NSMutableString, NSDictionary, NSMutableDictionary, NSEnumerator, NSURL,
// NSAutoreleasePool, NSProcessInfo and NSWorkspace.
//
// Every entry point is counted and every message send recorded, so tests
// can assert that a cache hit or a nil receiver made no foreign call.
//
// Argument values are checked against the declared slot kinds the same way
// the native engine marshals them, so a wrapper that declares the wrong
// kind fails here too.
package objctest
