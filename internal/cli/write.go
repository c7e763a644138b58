package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/tidwall/jsonc"

	"github.com/Fuabioo/gzjson"
)

var (
	writeFlagStdin   bool
	writeFlagContent string
	writeFlagJSONC   bool
	writeFlagLevel   int
)

var writeCmd = &cobra.Command{
	Use:   "write <file>",
	Short: "Write a JSON document to a gzip-compressed file",
	Long: `Serializes a JSON document to compact form, compresses it with gzip,
and writes it to the given path, creating or overwriting the file.

Reads from stdin by default when piped, or use --content for inline strings.
With --jsonc, input may contain // and /* */ comments and trailing commas;
they are stripped before encoding.`,
	Args: cobra.ExactArgs(1),
	RunE: runWrite,
}

func init() {
	writeCmd.Flags().BoolVar(&writeFlagStdin, "stdin", false, "Read content from stdin (default when piped)")
	writeCmd.Flags().StringVar(&writeFlagContent, "content", "", "Content to write (inline string)")
	writeCmd.Flags().BoolVar(&writeFlagJSONC, "jsonc", false, "Accept JSON with comments and trailing commas")
	writeCmd.Flags().IntVar(&writeFlagLevel, "level", 0, "gzip compression level (1-9, 0 uses the configured default)")
}

func runWrite(cmd *cobra.Command, args []string) error {
	path := args[0]

	// Determine content source
	var content []byte
	var err error

	if writeFlagContent != "" {
		// Content from flag
		content = []byte(writeFlagContent)
	} else if writeFlagStdin || !isTerminal(os.Stdin) {
		// Content from stdin (explicit flag or piped input)
		content, err = io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read from stdin: %w", err)
		}
	} else {
		return fmt.Errorf("no content provided; use --content or pipe data to stdin")
	}

	if writeFlagJSONC {
		content = jsonc.ToJSON(content)
	}

	var doc any
	if err := json.Unmarshal(content, &doc); err != nil {
		return gzjson.JSONInvalid("", err)
	}

	codec, err := newCodec(writeFlagLevel)
	if err != nil {
		return err
	}

	if err := codec.Write(path, doc); err != nil {
		return err
	}

	if !flagQuiet {
		if info, statErr := os.Stat(path); statErr == nil {
			fmt.Fprintf(os.Stderr, "Wrote %s (%d bytes compressed)\n", path, info.Size())
		} else {
			fmt.Fprintf(os.Stderr, "Wrote %s\n", path)
		}
	}

	return nil
}
