package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"jsderive/internal/gen"
)

func (a *app) genCmd() *cobra.Command {
	var (
		dryRun   bool
		debugDir string
	)

	cmd := &cobra.Command{
		Use:   "gen [packages]",
		Short: "Generate TryToJS implementations",
		Long: `gen loads the given packages (default ".") and writes one generated file
next to every source file that declares a selected type. Generated files
that nothing selects any more are removed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			pass, err := a.run(cmd, args, debugDir)
			if err != nil {
				return err
			}

			if dryRun {
				for _, file := range pass.res.Files {
					fmt.Fprintf(cmd.OutOrStdout(), "// %s\n%s", file.Filename, file.Content)
				}

				for _, name := range pass.orphans {
					fmt.Fprintf(cmd.OutOrStdout(), "// remove %s\n", name)
				}
			} else {
				if err := gen.WriteFiles(pass.res.Files); err != nil {
					return err
				}

				for _, file := range pass.res.Files {
					a.log.Info("wrote", "file", file.Filename)
				}

				if err := gen.RemoveFiles(pass.orphans); err != nil {
					return err
				}

				for _, name := range pass.orphans {
					a.log.Info("removed", "file", name)
				}
			}

			return a.report(cmd, pass.diags, a.embeddedCount(pass.res))
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "print generated files instead of writing them")
	cmd.Flags().StringVar(&debugDir, "debug-dir", "", "directory for unformatted output when formatting fails")

	return cmd
}
