// Command libtojson parses a Liberty (.lib) file and writes its JSON
// projection. File I/O and CLI argument handling are explicitly outside
// the core library's scope (spec.md 1); this binary is the external
// collaborator spec.md names: it calls liberty.Parse/ParseMulti, then
// liberty.ToJSON, and writes the result.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/qigel/liberty"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var pretty bool
	var multi bool

	cmd := &cobra.Command{
		Use:   "libtojson <in.lib> <out.json>",
		Short: "Convert a Liberty library file to its JSON projection",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0], args[1], pretty, multi)
		},
		SilenceUsage: true,
	}
	cmd.Flags().BoolVar(&pretty, "pretty", false, "indent the output JSON")
	cmd.Flags().BoolVar(&multi, "multi", false, "parse the input as multiple concatenated top-level groups")
	return cmd
}

func run(inPath, outPath string, pretty, multi bool) error {
	logger, err := zap.NewProduction()
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	src, err := os.ReadFile(inPath)
	if err != nil {
		logger.Error("reading input file", zap.String("path", inPath), zap.Error(err))
		return err
	}

	out, err := os.Create(outPath)
	if err != nil {
		logger.Error("creating output file", zap.String("path", outPath), zap.Error(err))
		return err
	}
	defer out.Close()

	if multi {
		groups, err := liberty.ParseMulti(string(src))
		if err != nil {
			logger.Error("parsing multi-group library", zap.String("path", inPath), zap.Error(err))
			return err
		}
		fmt.Fprint(out, "[")
		for i, g := range groups {
			if i > 0 {
				fmt.Fprint(out, ",")
			}
			if err := liberty.ToJSON(g, out, pretty); err != nil {
				logger.Error("projecting group to JSON", zap.Int("index", i), zap.Error(err))
				return err
			}
		}
		fmt.Fprint(out, "]")
		return nil
	}

	group, err := liberty.Parse(string(src))
	if err != nil {
		logger.Error("parsing library", zap.String("path", inPath), zap.Error(err))
		return err
	}
	if err := liberty.ToJSON(group, out, pretty); err != nil {
		logger.Error("projecting group to JSON", zap.Error(err))
		return err
	}
	return nil
}
