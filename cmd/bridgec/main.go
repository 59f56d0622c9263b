package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"omibyte.io/bridge/config"
	"omibyte.io/bridge/gen"
	"omibyte.io/bridge/logger"
	"omibyte.io/bridge/manifest"
)

var (
	rootOpts = struct {
		config   string
		logLevel string
	}{}

	cfg *config.Config

	rootCmd = &cobra.Command{
		Use:   "bridgec",
		Short: "Generate the glue code between Rust and Swift",
		Long: "Generate the transfer functions and C declarations that carry calls " +
			"between Rust and Swift from a bridge manifest",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, err := config.Load(rootOpts.config)
			if err != nil {
				return err
			}
			if len(rootOpts.logLevel) > 0 {
				c.Log.Level = rootOpts.logLevel
			}

			logger.Init(logger.Config{
				Level:  logger.ParseLevel(c.Log.Level),
				Format: c.Log.Format,
				Output: cmd.ErrOrStderr(),
			})

			cfg = c
			return nil
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&rootOpts.config, "config", "bridge.yaml", "configuration file")
	rootCmd.PersistentFlags().StringVar(&rootOpts.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(generateCmd, symbolsCmd, classifyCmd)
}

// loadModule loads and resolves the manifest at path. A prefix set in the
// manifest takes precedence over the configured one.
func loadModule(ctx context.Context, path string) (*manifest.Module, gen.Options, error) {
	m, err := manifest.Load(path)
	if err != nil {
		return nil, gen.Options{}, err
	}

	module, err := m.Resolve(ctx)
	if err != nil {
		return nil, gen.Options{}, err
	}

	namer := cfg.Namer()
	if len(module.Prefix) > 0 {
		namer.Prefix = module.Prefix
	}

	return module, gen.Options{
		Namer:       namer,
		Jobs:        cfg.Jobs,
		CalleeScope: cfg.CalleeScope,
	}, nil
}

func main() {
	logger.Init(logger.DefaultConfig())

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		logger.Error("Command failed", "err", err)
		os.Exit(1)
	}
}
