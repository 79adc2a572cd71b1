package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"github.com/BogdanMihaiciuc/BMCoreUI-sub001/config"
	"github.com/BogdanMihaiciuc/BMCoreUI-sub001/dts"
	"github.com/BogdanMihaiciuc/BMCoreUI-sub001/workspace"
)

var log = commonlog.GetLogger("dtsgen.cmd")

func newGenerateCmd() *cobra.Command {
	var (
		output    string
		module    bool
		noPrelude bool
		watch     bool
	)

	cmd := &cobra.Command{
		Use:   "generate [file...]",
		Short: "Generate a .d.ts file from annotated sources",
		Long: `Generate TypeScript declarations from annotated sources.

Input files are concatenated in argument order before extraction. Without
arguments the inputs listed in the config file are used, and without a config
file the source is read from stdin.

Use --watch to regenerate whenever an input file changes.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			inputs := args
			if len(inputs) == 0 {
				inputs = cfg.InputPaths()
			}
			if !cmd.Flags().Changed("output") {
				output = cfg.OutputPath()
			}
			if !cmd.Flags().Changed("module") {
				module = cfg.Module
			}
			if !cmd.Flags().Changed("no-prelude") {
				noPrelude = !cfg.PreludeEnabled()
			}

			var opts []dts.Option
			if module {
				opts = append(opts, dts.WithModule())
			}
			if noPrelude {
				opts = append(opts, dts.WithoutPrelude())
			}

			if !watch {
				return generate(cmd.OutOrStdout(), inputs, output, opts)
			}

			if len(inputs) == 0 {
				return fmt.Errorf("--watch requires input files: %w", config.ErrNoInputs)
			}
			if err := generate(cmd.OutOrStdout(), inputs, output, opts); err != nil {
				return err
			}

			watcher := workspace.NewFileWatcher(inputs, func(changed []string) {
				log.Infof("changed: %s", strings.Join(changed, ", "))
				if err := generate(cmd.OutOrStdout(), inputs, output, opts); err != nil {
					log.Errorf("%s", err)
				}
			})
			watcher.SetInterval(cfg.PollInterval())
			watcher.Start()
			defer watcher.Stop()

			sig := make(chan os.Signal, 1)
			signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
			<-sig
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the declarations to this file instead of stdout")
	cmd.Flags().BoolVar(&module, "module", false, "emit exported declarations instead of ambient ones")
	cmd.Flags().BoolVar(&noPrelude, "no-prelude", false, "omit the builtin type aliases and interfaces")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "regenerate when an input file changes")

	return cmd
}

func generate(stdout io.Writer, inputs []string, output string, opts []dts.Option) error {
	source, err := readSources(inputs)
	if err != nil {
		return err
	}

	text, err := dts.Generate(source, opts...)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}

	if output == "" {
		_, err = io.WriteString(stdout, text)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(output, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	log.Infof("wrote %s", output)
	return nil
}

// readSources concatenates the given files in order, or reads stdin when
// there are none.
func readSources(paths []string) (string, error) {
	if len(paths) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}

	var sb strings.Builder
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read file: %w", err)
		}
		sb.Write(data)
		if len(data) > 0 && data[len(data)-1] != '\n' {
			sb.WriteByte('\n')
		}
	}
	return sb.String(), nil
}
