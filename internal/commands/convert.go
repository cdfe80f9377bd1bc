package commands

import (
	"fmt"

	"github.com/bastiangx/dictable/pkg/dataset"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var convertCmd = &cobra.Command{
	Use:   "convert <source> <output>",
	Short: "Convert a dataset between JSON and msgpack",
	Long: `Reads a dataset from a file or URL and writes it to output. The output
format follows its extension: .json, or .msgpack / .mpk.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		loader := dataset.NewLoader(appConfig.Dataset.FetchTimeout())
		ds, err := loader.Load(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", args[0], err)
		}
		if err := dataset.WriteFile(args[1], ds); err != nil {
			return fmt.Errorf("failed to write %s: %w", args[1], err)
		}
		from, to := describeFormat(args[0]), describeFormat(args[1])
		log.Debugf("Converted %d rows from %s to %s", ds.Len(), from, to)
		cmd.Printf("wrote %d rows to %s (%s -> %s)\n", ds.Len(), args[1], from, to)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)
}

// describeFormat names the encoding picked for a path or URL.
func describeFormat(name string) string {
	info, ok := dataset.GetFormatInfo(dataset.DetectFormat(name))
	if !ok {
		return "unknown format"
	}
	return info.Description
}
