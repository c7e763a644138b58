package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/spf13/cobra"

	"github.com/Fuabioo/gzjson"
)

var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Validate a gzip-compressed JSON file",
	Long: `Checks that the file is a valid gzip stream wrapping a single
well-formed JSON document and reports its sizes.

The command exits non-zero when the file is invalid; with --json the
report is machine-readable.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

// checkReport is the result of validating one file.
type checkReport struct {
	Path              string `json:"path"`
	Valid             bool   `json:"valid"`
	Code              string `json:"code,omitempty"`
	Error             string `json:"error,omitempty"`
	CompressedBytes   int64  `json:"compressed_bytes"`
	DecompressedBytes int64  `json:"decompressed_bytes"`
}

func runCheck(cmd *cobra.Command, args []string) error {
	path := args[0]
	report := checkReport{Path: path}

	var checkErr error

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			checkErr = gzjson.FileNotFound(path)
		} else {
			checkErr = gzjson.ReadFailed(path, err)
		}
	} else {
		report.CompressedBytes = info.Size()

		if n, err := decompressedSize(path); err == nil {
			report.DecompressedBytes = n
		}

		codec, err := newCodec(0)
		if err != nil {
			return err
		}
		if _, err := codec.Read(path); err != nil {
			checkErr = err
		}
	}

	if checkErr != nil {
		report.Code = gzjson.ErrorCode(checkErr)
		report.Error = checkErr.Error()
	} else {
		report.Valid = true
	}

	if flagJSON {
		if err := outputJSON(report); err != nil {
			return err
		}
	} else if report.Valid {
		if !flagQuiet {
			fmt.Printf("%s: valid (%d bytes compressed, %d decompressed)\n",
				path, report.CompressedBytes, report.DecompressedBytes)
		}
	} else {
		fmt.Printf("%s: invalid (%s)\n", path, report.Code)
	}

	return checkErr
}

// decompressedSize counts the bytes the gzip stream at path expands to.
func decompressedSize(path string) (int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	zr, err := gzip.NewReader(f)
	if err != nil {
		return 0, err
	}
	defer zr.Close()

	return io.Copy(io.Discard, zr)
}
