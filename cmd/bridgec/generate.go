package main

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"omibyte.io/bridge/gen"
	"omibyte.io/bridge/logger"
)

var (
	generateOpts = struct {
		output string
		jobs   int
	}{}

	generateCmd = &cobra.Command{
		Use:   "generate <manifest>",
		Short: "Generate the Rust glue and C header for a manifest",
		Long: "Generate <name>.rs and <name>.h for the manifest <name>.yaml. Both " +
			"are written to stdout unless an output directory is given.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()
			log := logger.With("manifest", args[0])

			module, opts, err := loadModule(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if generateOpts.jobs > 0 {
				opts.Jobs = generateOpts.jobs
			}

			out, err := gen.Generate(cmd.Context(), module.Functions, opts)
			if err != nil {
				return err
			}

			if len(generateOpts.output) == 0 {
				w := cmd.OutOrStdout()
				if _, err := w.Write([]byte(out.RustSource())); err != nil {
					return err
				}
				_, err = w.Write([]byte("\n" + out.HeaderSource()))
				return err
			}

			if err := os.MkdirAll(generateOpts.output, os.ModePerm); err != nil {
				return err
			}

			name := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
			rustPath := filepath.Join(generateOpts.output, name+".rs")
			headerPath := filepath.Join(generateOpts.output, name+".h")
			if err := os.WriteFile(rustPath, []byte(out.RustSource()), 0644); err != nil {
				return err
			}
			if err := os.WriteFile(headerPath, []byte(out.HeaderSource()), 0644); err != nil {
				return err
			}

			log.Info("Generated bridge",
				"functions", len(out.Fragments),
				"rust", rustPath,
				"header", headerPath,
				"duration", time.Since(start).String())
			return nil
		},
	}
)

func init() {
	generateCmd.Flags().StringVarP(&generateOpts.output, "output", "o", "", "output directory")
	generateCmd.Flags().IntVarP(&generateOpts.jobs, "jobs", "j", 0, "number of functions rendered concurrently (default from config)")
}
