// Package gzjson reads and writes gzip-compressed JSON documents as
// whole-file units.
//
// Files produced by this package are standard gzip streams whose
// decompressed content is a single JSON document in compact form: UTF-8
// text with no whitespace between structural tokens and non-ASCII
// characters emitted literally rather than as \uXXXX escapes. Any
// gzip-compliant reader and any conformant JSON parser interoperates with
// them.
//
// Example usage:
//
//	// Writing a document
//	err := gzjson.Write("out.json.gz", map[string]any{"a": 1})
//
//	// Reading it back
//	doc, err := gzjson.Read("out.json.gz")
//
//	// Reading into a typed value
//	var cfg Settings
//	err = gzjson.ReadInto("settings.json.gz", &cfg)
//
//	// Checking error codes
//	if gzjson.IsCode(err, gzjson.CodeFileNotFound) {
//	    // handle missing file
//	}
//
//	// Distinguishing environment failures from caller bugs
//	switch {
//	case gzjson.IsReadError(err), gzjson.IsWriteError(err):
//	    // disk, permissions, corrupt input: possibly retryable
//	case gzjson.IsUnsupportedValue(err):
//	    // the document itself is not JSON-representable: never retry
//	}
package gzjson
