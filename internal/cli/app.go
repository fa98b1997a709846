package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/factgraph/factgraph/internal/claims"
	"github.com/factgraph/factgraph/internal/model"
	"github.com/factgraph/factgraph/internal/overlay"
	"github.com/factgraph/factgraph/internal/store"
)

// loadConfig builds the effective configuration: defaults, merged under the
// config file and environment, merged under explicit flags.
func loadConfig() (model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("parse configuration: %w", err)
	}

	// Flag overrides win over everything.
	if claimsPath != "" {
		cfg.Paths.ClaimsFile = claimsPath
	}
	if storePath != "" {
		cfg.Paths.RelevanceFile = storePath
	}
	if verbose {
		cfg.Output.Verbose = true
	}

	color.NoColor = color.NoColor || !cfg.Output.Color
	return cfg, nil
}

// appFs is the host filesystem all commands operate on.
func appFs() afero.Fs {
	return afero.NewOsFs()
}

// diagLogf returns the store diagnostic hook: verbose runs see silent no-ops
// on stderr, quiet runs discard them.
func diagLogf(cfg model.Config) store.LogFunc {
	if !cfg.Output.Verbose {
		return nil
	}
	return func(format string, args ...interface{}) {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}

func newStore(fs afero.Fs, cfg model.Config) *store.Store {
	return store.New(fs, cfg.Paths.RelevanceFile, diagLogf(cfg))
}

func newClaims(fs afero.Fs, cfg model.Config) *claims.Source {
	return claims.NewSource(fs, cfg.Paths.ClaimsFile)
}

func newRenderer(st *store.Store, cfg model.Config) *overlay.Renderer {
	return overlay.NewRenderer(st, cfg.Cache, stderrNotifier{})
}

// stderrNotifier surfaces transient notices the way a host editor would
// flash a notification.
type stderrNotifier struct{}

func (stderrNotifier) Notify(message string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", color.YellowString("!"), message)
}
