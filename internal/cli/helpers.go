package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/Fuabioo/gzjson"
	"github.com/Fuabioo/gzjson/internal/config"
)

// outputJSON marshals and prints JSON to stdout.
func outputJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// renderDocument serializes a document for display: compact with literal
// UTF-8, or indented when pretty is set. Matches the on-disk encoding so
// piped output can be round-tripped.
func renderDocument(doc any, pretty bool) ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	if pretty {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	return buf.Bytes(), nil
}

// isTerminal checks if the given file descriptor is a TTY.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// getExitCode maps error kinds to CLI exit codes.
func getExitCode(err error) int {
	if err == nil {
		return 0
	}

	switch {
	case gzjson.IsReadError(err):
		return 2
	case gzjson.IsWriteError(err):
		return 3
	case gzjson.IsUnsupportedValue(err):
		return 4
	default:
		return 1
	}
}

// loadConfig loads the configuration from the data directory.
func loadConfig() (*config.Config, error) {
	dataDir, err := config.DataDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get data directory: %w", err)
	}

	cfg, err := config.Load(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return cfg, nil
}

// newCodec builds the codec the command should use, honoring config and
// the per-command level override.
func newCodec(levelOverride int) (*gzjson.Codec, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	codec := cfg.NewCodec()
	if levelOverride != 0 {
		codec.Level = levelOverride
	}
	return codec, nil
}

// printError prints an error to stderr with appropriate formatting.
func printError(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
}
