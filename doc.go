// Package cocoabridge calls into the Objective-C runtime from Go.
//
// The repository is organized by layer:
//
//	cocoabridge/   Session: loads the runtime, registers wrappers, holds the root pool
//	├── loader/    dlopen of objc, Foundation and AppKit
//	├── engine/    objc.Runtime over purego (objc_msgSend, objc_getClass, ...)
//	├── objc/      handle caches, message dispatch, coercion, wrapper registry
//	├── foundation/ NSString, NSDictionary, NSEnumerator, NSURL, autorelease pools
//	├── appkit/    NSWorkspace
//	├── objctest/  in-memory runtime for tests and --fake
//	├── alfred/    Alfred script filter XML
//	├── errors/    structured errors
//	└── cmd/cocoa/ command line tool
//
// # Quick Start
//
//	s, err := cocoabridge.Open(cocoabridge.DefaultConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer s.Close()
//
//	if err := s.Launch("Safari"); err != nil {
//		log.Fatal(err)
//	}
//
// Lower-level access goes through the session's bridge:
//
//	b := s.Bridge()
//	err = foundation.WithAutoreleasePool(b, func() error {
//		env, err := foundation.Environment(b)
//		if err != nil {
//			return err
//		}
//		vars, err := env.Strings()
//		...
//	})
//
// # Threading
//
// A session must be driven from one goroutine. On macOS that goroutine
// should be locked to the main thread before Open is called.
package cocoabridge
