package main

import (
	"fmt"
	"io"
	"os"

	"github.com/ZanzyTHEbar/lazykit/kit/magic"

	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract <file|->",
	Short: "Print the @kit annotations of a single file",
	Long: `Reads one file (or standard input when the argument is "-") and prints the
annotations it declares. With the tree format every occurrence is listed with
its line number; json and yaml print the resolved key/value map.`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringP("format", "f", "", "Output format: json, yaml or tree")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("format") {
		cfg.Output.Format, _ = cmd.Flags().GetString("format")
	}

	text, err := readSource(cmd, args[0])
	if err != nil {
		return err
	}

	if cfg.Output.Format == "tree" {
		for _, a := range magic.Scan(text) {
			fmt.Fprintln(cmd.OutOrStdout(), a.String())
		}
		return nil
	}
	return render(cmd.OutOrStdout(), cfg.Output.Format, magic.Extract(text))
}

func readSource(cmd *cobra.Command, name string) (string, error) {
	if name == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read standard input: %w", err)
		}
		return string(data), nil
	}

	f, err := os.Open(name)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", name, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", name, err)
	}
	return string(data), nil
}
