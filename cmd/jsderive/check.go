package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"jsderive/internal/gen"
)

func (a *app) checkCmd() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "check [packages]",
		Short: "Fail when generated files are missing or out of date",
		RunE: func(cmd *cobra.Command, args []string) error {
			pass, err := a.run(cmd, args, "")
			if err != nil {
				return err
			}

			stale, err := gen.Check(pass.res.Files, pass.orphans)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			for _, s := range stale {
				switch {
				case s.Missing:
					fmt.Fprintf(out, "missing: %s\n", s.Filename)
				case s.Orphaned:
					fmt.Fprintf(out, "orphaned: %s\n", s.Filename)
				default:
					fmt.Fprintf(out, "stale: %s\n", s.Filename)
				}

				if !quiet && !s.Missing && !s.Orphaned {
					fmt.Fprint(out, s.Diff)
				}
			}

			if err := a.report(cmd, pass.diags, a.embeddedCount(pass.res)); err != nil {
				return err
			}

			if len(stale) > 0 {
				return fmt.Errorf("%d generated file(s) out of date, run jsderive gen", len(stale))
			}

			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "list stale files without diffs")

	return cmd
}
