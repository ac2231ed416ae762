// Package foundation wraps the Foundation classes the bridge needs:
// NSString, NSEnumerator, NSDictionary, NSURL and NSAutoreleasePool.
//
// Register must be called on a bridge before the wrappers are used. It
// binds each wrapper type to its class, so results of message sends are
// classified into *String, *Dictionary and so on, and it installs the
// coercion that turns Go strings passed as message arguments into
// autoreleased NSString objects.
//
// Objects created here are autoreleased. Run code that creates them inside
// WithAutoreleasePool, or rely on the root pool a session keeps in place:
//
//	err := foundation.WithAutoreleasePool(b, func() error {
//		d := foundation.WrapDictionary(b, h)
//		items, err := d.Items()
//		...
//	})
package foundation
