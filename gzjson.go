package gzjson

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/klauspost/compress/gzip"
)

// DefaultLevel is the gzip compression level used when a Codec does not
// specify one. It matches the level the files this library interoperates
// with were historically written at.
const DefaultLevel = gzip.BestCompression

// Codec reads and writes gzip-compressed JSON documents as whole-file
// units. Decompressed content is always a single JSON document encoded as
// UTF-8 text in compact form: no whitespace between structural tokens and
// non-ASCII characters emitted literally rather than escaped.
//
// The zero value is ready for use. A Codec holds no state between calls;
// concurrent use from multiple goroutines is safe.
type Codec struct {
	// Level is the gzip compression level for writes.
	// Zero means DefaultLevel.
	Level int

	// MaxDecompressedBytes caps how many bytes a single read is allowed to
	// decompress, guarding long-lived processes against decompression
	// bombs. Zero means no limit.
	MaxDecompressedBytes int64
}

// defaultCodec backs the package-level functions.
var defaultCodec = &Codec{}

// Read reads the gzip-compressed JSON file at path and returns the parsed
// document using the default codec.
func Read(path string) (any, error) {
	return defaultCodec.Read(path)
}

// ReadInto reads the gzip-compressed JSON file at path and decodes the
// document into v using the default codec.
func ReadInto(path string, v any) error {
	return defaultCodec.ReadInto(path, v)
}

// Write serializes doc as compact JSON, compresses it with gzip, and
// writes it to path using the default codec, creating or overwriting the
// file.
func Write(path string, doc any) error {
	return defaultCodec.Write(path, doc)
}

// Marshal returns doc as a gzip-compressed compact JSON byte stream using
// the default codec.
func Marshal(doc any) ([]byte, error) {
	return defaultCodec.Marshal(doc)
}

// Unmarshal parses a gzip-compressed JSON byte stream produced by Marshal
// (or any gzip-compliant writer) using the default codec.
func Unmarshal(data []byte) (any, error) {
	return defaultCodec.Unmarshal(data)
}

// Read reads the gzip-compressed JSON file at path and returns the parsed
// document. Objects decode as map[string]any, arrays as []any, numbers as
// float64.
//
// Failures surface as *Error with a read-side code: FILE_NOT_FOUND when
// path does not refer to an existing file, GZIP_INVALID when the contents
// are not a gzip stream, JSON_INVALID when the decompressed text is not a
// single well-formed JSON document, READ_FAILED for any other I/O failure.
func (c *Codec) Read(path string) (any, error) {
	var doc any
	if err := c.ReadInto(path, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// ReadInto is Read decoding into a caller-supplied value, typically a
// pointer to a struct.
func (c *Codec) ReadInto(path string, v any) error {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return FileNotFound(path)
		}
		return ReadFailed(path, err)
	}
	defer f.Close()

	return c.decode(f, v, path)
}

// Decode reads one gzip-compressed JSON document from r and returns it.
func (c *Codec) Decode(r io.Reader) (any, error) {
	var doc any
	if err := c.decode(r, &doc, ""); err != nil {
		return nil, err
	}
	return doc, nil
}

// DecodeInto reads one gzip-compressed JSON document from r into v.
func (c *Codec) DecodeInto(r io.Reader, v any) error {
	return c.decode(r, v, "")
}

// Unmarshal parses a gzip-compressed JSON byte stream.
func (c *Codec) Unmarshal(data []byte) (any, error) {
	return c.Decode(bytes.NewReader(data))
}

func (c *Codec) decode(r io.Reader, v any, path string) error {
	zr, err := gzip.NewReader(r)
	if err != nil {
		if errors.Is(err, gzip.ErrHeader) || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return GzipInvalid(path, err)
		}
		return ReadFailed(path, err)
	}
	defer zr.Close()

	var src io.Reader = zr
	if c.MaxDecompressedBytes > 0 {
		src = io.LimitReader(zr, c.MaxDecompressedBytes+1)
	}

	data, err := io.ReadAll(src)
	if err != nil {
		if errors.Is(err, gzip.ErrHeader) || errors.Is(err, gzip.ErrChecksum) {
			return GzipInvalid(path, err)
		}
		return ReadFailed(path, err)
	}
	if c.MaxDecompressedBytes > 0 && int64(len(data)) > c.MaxDecompressedBytes {
		return ReadFailed(path, fmt.Errorf("document exceeds %d decompressed bytes", c.MaxDecompressedBytes))
	}

	if err := json.Unmarshal(data, v); err != nil {
		return JSONInvalid(path, err)
	}
	return nil
}

// Write serializes doc as compact JSON, compresses it with gzip, and
// writes it to path, creating or overwriting the file. The parent
// directory must exist.
//
// The compressed stream is written to a temporary file next to the
// destination and renamed into place, so a failed write never leaves a
// valid gzip stream wrapping a truncated document.
//
// Failures surface as *Error: PERMISSION_DENIED or WRITE_FAILED for
// environment problems, UNSUPPORTED_VALUE when doc contains a value
// outside the JSON data model (a caller bug, distinct from both).
func (c *Codec) Write(path string, doc any) error {
	data, err := c.marshal(doc, path)
	if err != nil {
		return err
	}
	return writeFileAtomic(path, data)
}

// Encode writes doc to w as a gzip-compressed compact JSON stream.
func (c *Codec) Encode(w io.Writer, doc any) error {
	return c.encode(w, doc, "")
}

// Marshal returns doc as a gzip-compressed compact JSON byte stream.
func (c *Codec) Marshal(doc any) ([]byte, error) {
	return c.marshal(doc, "")
}

func (c *Codec) marshal(doc any, path string) ([]byte, error) {
	var buf bytes.Buffer
	if err := c.encode(&buf, doc, path); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (c *Codec) encode(w io.Writer, doc any, path string) error {
	text, err := encodeCompact(doc, path)
	if err != nil {
		return err
	}

	zw, err := gzip.NewWriterLevel(w, c.level())
	if err != nil {
		return WriteFailed(path, err)
	}
	if _, err := zw.Write(text); err != nil {
		zw.Close()
		return WriteFailed(path, err)
	}
	// Close flushes the gzip footer; the stream is not a valid gzip
	// container until it succeeds.
	if err := zw.Close(); err != nil {
		return WriteFailed(path, err)
	}
	return nil
}

func (c *Codec) level() int {
	if c.Level == 0 {
		return DefaultLevel
	}
	return c.Level
}

// encodeCompact serializes doc to compact JSON text: no insignificant
// whitespace, literal UTF-8 for non-ASCII characters, no HTML escaping.
func encodeCompact(doc any, path string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		if isUnsupportedValue(err) {
			return nil, UnsupportedValue(path, err)
		}
		return nil, WriteFailed(path, err)
	}
	// Encoder.Encode appends a newline after the document; the on-disk
	// format is the bare document.
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// isUnsupportedValue reports whether a json encoding error means the value
// is outside the JSON data model, as opposed to an I/O failure.
func isUnsupportedValue(err error) bool {
	var typeErr *json.UnsupportedTypeError
	var valueErr *json.UnsupportedValueError
	var marshalerErr *json.MarshalerError
	return errors.As(err, &typeErr) || errors.As(err, &valueErr) || errors.As(err, &marshalerErr)
}

// writeFileAtomic writes data to a uniquely named temporary file in the
// destination directory and renames it over path. The random suffix keeps
// concurrent writers to the same destination from clobbering each other's
// temporary files.
func writeFileAtomic(path string, data []byte) error {
	tmp := fmt.Sprintf("%s.%s.tmp", path, uuid.NewString()[:8])

	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrPermission) {
			return PermissionDenied(path)
		}
		return WriteFailed(path, err)
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return WriteFailed(path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return WriteFailed(path, err)
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		if errors.Is(err, os.ErrPermission) {
			return PermissionDenied(path)
		}
		return WriteFailed(path, err)
	}
	return nil
}
