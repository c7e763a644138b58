package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	catFlagPretty  bool
	catFlagCompact bool
)

var catCmd = &cobra.Command{
	Use:   "cat <file>",
	Short: "Print the JSON document stored in a gzip-compressed file",
	Long: `Reads a gzip-compressed JSON file and prints the document to stdout.

Output is pretty-printed when stdout is a terminal and compact otherwise,
so piped output matches the on-disk encoding byte for byte.`,
	Args: cobra.ExactArgs(1),
	RunE: runCat,
}

func init() {
	catCmd.Flags().BoolVar(&catFlagPretty, "pretty", false, "Force pretty-printed output")
	catCmd.Flags().BoolVar(&catFlagCompact, "compact", false, "Force compact output")
}

func runCat(cmd *cobra.Command, args []string) error {
	codec, err := newCodec(0)
	if err != nil {
		return err
	}

	doc, err := codec.Read(args[0])
	if err != nil {
		return err
	}

	pretty := catFlagPretty || (isTerminal(os.Stdout) && !catFlagCompact)
	out, err := renderDocument(doc, pretty)
	if err != nil {
		return err
	}

	_, err = os.Stdout.Write(out)
	return err
}
