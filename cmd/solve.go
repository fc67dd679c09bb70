package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Beastly713/hashira/pkg/format"
	"github.com/Beastly713/hashira/pkg/pipeline"
)

var solveCmd = &cobra.Command{
	Use:   "solve [files...]",
	Short: "Recover the secret from one or more share documents",
	Long: `Solve reads each share document (JSON or YAML, optionally gzipped),
decodes every share, and interpolates the first k shares at x=0.

With no arguments it solves testcase1.json and testcase2.json, or the
files listed in the config file.

Example:
  hashira solve testcase1.json testcase2.json -o json

  Each file is solved independently. A broken file is reported and
  the rest are still solved.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// 1. Decide which files to solve
		paths := args
		if len(paths) == 0 {
			paths = appConfig.Files
		}
		if len(paths) == 0 {
			return fmt.Errorf("no share documents given")
		}

		style, err := format.ParseStyle(appConfig.Output)
		if err != nil {
			return err
		}

		// 2. Solve them
		reports := pipeline.SolveFiles(cmd.Context(), paths, pipeline.PipelineConfig{
			Verify:     appConfig.Verify.Enabled,
			MaxSubsets: appConfig.Verify.MaxSubsets,
			Workers:    appConfig.Workers,
		})

		// 3. Print every report, failures included
		if err := format.NewWriter(cmd.OutOrStdout(), style).Write(reports...); err != nil {
			return err
		}

		failed := 0
		for _, r := range reports {
			if r.Failed() {
				failed++
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d share documents failed", failed, len(reports))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(solveCmd)

	solveCmd.Flags().StringP("output", "o", "text", "Output style: text, json, or yaml")
	solveCmd.Flags().IntP("workers", "w", 4, "Number of documents solved in parallel")
	solveCmd.Flags().Bool("verify", false, "Cross-check the secret over other k-subsets and flag suspect shares")
	solveCmd.Flags().Int("max-subsets", 10000, "Upper bound on subsets tried by --verify (0 for all)")
}
