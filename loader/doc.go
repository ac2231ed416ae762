// Package loader opens the shared libraries the bridge calls into: the
// Objective-C runtime (objc), Foundation and AppKit.
//
// Candidates for each library are generated from the configured search
// directories first and the platform's standard locations after them:
//
//	darwin: <dir>/lib<name>.dylib, <dir>/<name>.framework/<name>,
//	        /usr/lib/lib<name>.dylib, /System/Library/Frameworks/<name>.framework/<name>
//	linux:  <dir>/lib<name>.so, lib<name>.so
//
// A library that cannot be opened from any candidate is fatal. Load
// reports every missing library with the candidates it tried in a single
// *errors.MissingLibrariesError.
package loader
