package main

import (
	"github.com/spf13/cobra"
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"
)

type setting struct {
	Value  any    `yaml:"value"`
	Source string `yaml:"source"`
}

func (a *app) configCmd() *cobra.Command {
	var sources bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the resolved configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)

			var doc any = a.loaded.Config
			if sources {
				doc = a.settings()
			}

			if err := enc.Encode(doc); err != nil {
				return err
			}

			return enc.Close()
		},
	}

	cmd.Flags().BoolVarP(&sources, "sources", "s", false, "show where each setting came from")

	return cmd
}

// settings lists the resolved settings in declaration order.
func (a *app) settings() *orderedmap.OrderedMap[string, setting] {
	cfg := a.loaded.Config
	values := []struct {
		key   string
		value any
	}{
		{"output_suffix", cfg.OutputSuffix},
		{"runtime_import", cfg.RuntimeImport},
		{"embed_errors", cfg.EmbedErrors},
		{"types", cfg.Types},
		{"tuples", cfg.Tuples},
		{"build_tags", cfg.BuildTags},
		{"log_level", cfg.LogLevel},
		{"log_json", cfg.LogJSON},
	}

	out := orderedmap.New[string, setting](len(values))
	for _, v := range values {
		out.Set(v.key, setting{Value: v.value, Source: string(a.loaded.Sources[v.key])})
	}

	return out
}
