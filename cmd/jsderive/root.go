package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"jsderive/internal/analyze"
	"jsderive/internal/config"
	"jsderive/internal/diagnostic"
	"jsderive/internal/gen"
	"jsderive/internal/logger"
)

// errReported signals a failure that was already printed.
var errReported = errors.New("failed")

// settingFlags maps persistent flags to configuration settings.
var settingFlags = map[string]string{
	"suffix":       "output_suffix",
	"runtime":      "runtime_import",
	"embed-errors": "embed_errors",
	"types":        "types",
	"tuples":       "tuples",
	"tags":         "build_tags",
	"log-level":    "log_level",
	"log-json":     "log_json",
}

type app struct {
	configFile string
	dir        string
	environ    func() []string

	loaded *config.Loaded
	log    logger.Logger
}

func newRootCmd() *cobra.Command {
	return (&app{}).rootCmd()
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "jsderive",
		Short: "Generate TryToJS conversions for Go structs",
		Long: `jsderive generates a TryToJS method for every struct marked with a
//jsderive:derive directive, or listed under types or tuples in jsderive.yaml.

Named structs become objects keyed by camelCase field names in declaration
order. Structs marked "//jsderive:derive tuple" become arrays.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.dir, "dir", "C", "", "run as if started in this directory")
	flags.StringVarP(&a.configFile, "config", "c", "", "configuration file (default ./"+config.DefaultFile+" when present)")
	flags.String("suffix", "", "suffix replacing .go in generated file names")
	flags.String("runtime", "", "import path of the runtime package")
	flags.Bool("embed-errors", true, "emit derive failures as compile errors in the generated file")
	flags.StringSlice("types", nil, "types to derive as objects without a directive")
	flags.StringSlice("tuples", nil, "types to derive as arrays without a directive")
	flags.StringSlice("tags", nil, "build tags used when loading packages")
	flags.String("log-level", "", "log level: debug, info, warn, error")
	flags.Bool("log-json", false, "log as JSON")

	root.AddCommand(
		a.genCmd(),
		a.checkCmd(),
		a.inspectCmd(),
		a.configCmd(),
	)

	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	overrides, err := flagOverrides(cmd.Flags())
	if err != nil {
		return err
	}

	loaded, err := config.Load(config.Options{
		File:      a.configFile,
		Dir:       a.dir,
		Environ:   a.environ,
		Overrides: overrides,
	})
	if err != nil {
		return err
	}

	a.loaded = loaded
	a.log = logger.NewLogger(&logger.Config{
		Level:  logger.LogLevel(loaded.Config.LogLevel),
		Output: cmd.ErrOrStderr(),
		JSON:   loaded.Config.LogJSON,
	})

	if loaded.File != "" {
		a.log.Debug("loaded configuration", "file", loaded.File)
	}

	return nil
}

// flagOverrides returns the settings given explicitly on the command line.
func flagOverrides(flags *pflag.FlagSet) (map[string]any, error) {
	overrides := make(map[string]any)

	for name, key := range settingFlags {
		f := flags.Lookup(name)
		if f == nil || !f.Changed {
			continue
		}

		var (
			value any
			err   error
		)

		switch f.Value.Type() {
		case "bool":
			value, err = flags.GetBool(name)
		case "stringSlice":
			value, err = flags.GetStringSlice(name)
		default:
			value = f.Value.String()
		}

		if err != nil {
			return nil, fmt.Errorf("flag --%s: %w", name, err)
		}

		overrides[key] = value
	}

	return overrides, nil
}

// outcome is what one load and generate pass produced.
type outcome struct {
	res     *gen.Result
	// orphans are generated files on disk the pass no longer produces.
	orphans []string
	diags   diagnostic.Diagnostics
}

// run loads patterns and generates code for every selected type.
func (a *app) run(cmd *cobra.Command, patterns []string, debugDir string) (*outcome, error) {
	cfg := a.loaded.Config

	if len(patterns) == 0 {
		patterns = []string{"."}
	}

	loader := analyze.NewLoader(analyze.Options{
		Types:           cfg.Types,
		Tuples:          cfg.Tuples,
		BuildTags:       cfg.BuildTags,
		GeneratedSuffix: cfg.OutputSuffix,
		Dir:             a.dir,
	}, a.log)

	loaded, err := loader.Load(cmd.Context(), patterns...)
	if err != nil {
		return nil, err
	}

	generator := gen.NewGenerator(gen.GeneratorConfig{
		RuntimeImport: cfg.RuntimeImport,
		OutputSuffix:  cfg.OutputSuffix,
		EmbedErrors:   cfg.EmbedErrors,
		DebugDir:      debugDir,
	}, a.log)

	res, err := generator.Generate(loaded.Files)
	if err != nil {
		return nil, err
	}

	out := &outcome{
		res:     res,
		orphans: gen.Orphans(loaded.Generated, res.Files),
		diags:   loaded.Diagnostics,
	}
	out.diags.Merge(res.Diagnostics)

	return out, nil
}

// report prints diags and decides whether they fail the command. Derive
// failures embedded in the output surface when the package is compiled, so
// they only fail the command when embedding is off.
func (a *app) report(cmd *cobra.Command, diags diagnostic.Diagnostics, embedded int) error {
	if err := diagnostic.NewPrinter(cmd.ErrOrStderr()).Print(&diags); err != nil {
		return err
	}

	if len(diags.Errors) > embedded {
		return errReported
	}

	return nil
}

// embeddedCount is the number of derive failures the generated files carry.
func (a *app) embeddedCount(res *gen.Result) int {
	if !a.loaded.Config.EmbedErrors {
		return 0
	}

	return len(res.Diagnostics.Errors)
}
