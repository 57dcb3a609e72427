package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func environ(vars ...string) func() []string {
	return func() []string { return vars }
}

func writeFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "jsderive.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "")

	loaded, err := Load(Options{File: path, Environ: environ()})
	require.NoError(t, err)

	cfg := loaded.Config
	assert.Equal(t, path, loaded.File)
	assert.Equal(t, "_jsgen.go", cfg.OutputSuffix)
	assert.Equal(t, "jsderive/jsrt", cfg.RuntimeImport)
	assert.True(t, cfg.EmbedErrors)
	assert.Empty(t, cfg.Types)
	assert.Empty(t, cfg.Tuples)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, SourceDefault, loaded.Sources["output_suffix"])
	assert.Equal(t, SourceDefault, loaded.Sources["embed_errors"])
}

func TestLoad_Precedence(t *testing.T) {
	t.Parallel()

	path := writeFile(t, `output_suffix: _js.go
types: [User, Account]
log_level: info
`)

	loaded, err := Load(Options{
		File: path,
		Environ: environ(
			"JSDERIVE_LOG_LEVEL=debug",
			"JSDERIVE_TUPLES=Point, Pair",
			"JSDERIVE_EMBED_ERRORS=false",
			"JSDERIVE_UNKNOWN=1",
			"HOME=/root",
		),
		Overrides: map[string]any{"output_suffix": "_bind.go"},
	})
	require.NoError(t, err)

	cfg := loaded.Config
	assert.Equal(t, path, loaded.File)
	assert.Equal(t, "_bind.go", cfg.OutputSuffix)
	assert.Equal(t, []string{"User", "Account"}, cfg.Types)
	assert.Equal(t, []string{"Point", "Pair"}, cfg.Tuples)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.False(t, cfg.EmbedErrors)
	assert.Equal(t, "jsderive/jsrt", cfg.RuntimeImport)

	assert.Equal(t, map[string]Source{
		"output_suffix":  SourceFlag,
		"runtime_import": SourceDefault,
		"embed_errors":   SourceEnv,
		"types":          SourceFile,
		"tuples":         SourceEnv,
		"build_tags":     SourceDefault,
		"log_level":      SourceEnv,
		"log_json":       SourceDefault,
	}, loaded.Sources)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(Options{File: filepath.Join(t.TempDir(), "nope.yaml"), Environ: environ()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts func(t *testing.T) Options
		want string
	}{
		{
			name: "unknown file setting",
			opts: func(t *testing.T) Options {
				return Options{File: writeFile(t, "suffix: _x.go\n")}
			},
			want: `unknown setting "suffix"`,
		},
		{
			name: "malformed file",
			opts: func(t *testing.T) Options {
				return Options{File: writeFile(t, "types: [\n")}
			},
			want: "failed to parse",
		},
		{
			name: "unknown override",
			opts: func(t *testing.T) Options {
				return Options{File: writeFile(t, ""), Overrides: map[string]any{"nope": 1}}
			},
			want: `unknown setting "nope"`,
		},
		{
			name: "invalid suffix",
			opts: func(t *testing.T) Options {
				return Options{File: writeFile(t, "output_suffix: _gen_test.go\n")}
			},
			want: "would produce test files",
		},
		{
			name: "type in both lists",
			opts: func(t *testing.T) Options {
				return Options{
					File:    writeFile(t, "types: [Point]\n"),
					Environ: environ("JSDERIVE_TUPLES=Point"),
				}
			},
			want: "type Point is listed in both types and tuples",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := tt.opts(t)
			if opts.Environ == nil {
				opts.Environ = environ()
			}

			_, err := Load(opts)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	cfg := Default()
	require.NoError(t, cfg.Validate())

	cfg.OutputSuffix = ".go"
	cfg.RuntimeImport = " "
	cfg.LogLevel = "loud"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output_suffix")
	assert.Contains(t, err.Error(), "runtime_import")
	assert.Contains(t, err.Error(), "log_level")
}

func TestSplitList(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"a", "b"}, splitList(" a, ,b,"))
	assert.Equal(t, []string{}, splitList(""))
}
