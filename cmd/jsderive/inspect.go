package main

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"jsderive/internal/analyze"
)

func (a *app) inspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [packages]",
		Short: "Print the derived shapes as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			pass, err := a.run(cmd, args, "")
			if err != nil {
				return err
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)

			if err := enc.Encode(struct {
				Shapes []*analyze.Shape `yaml:"shapes"`
			}{pass.res.Shapes}); err != nil {
				return err
			}

			if err := enc.Close(); err != nil {
				return err
			}

			// Nothing is written, so every failure counts.
			return a.report(cmd, pass.diags, 0)
		},
	}
}
