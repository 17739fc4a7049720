// Command devais generates the DevAIs handheld enclosure and its
// push-to-talk button as printable STL parts. Run with no arguments to
// build the default design into ./output.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/devais/enclosure/pkg/assembly"
	"github.com/devais/enclosure/pkg/engine"
	"github.com/devais/enclosure/pkg/export"
	"github.com/devais/enclosure/pkg/kernel/sdfx"
	"github.com/devais/enclosure/pkg/logger"
	"github.com/devais/enclosure/pkg/params"
	"github.com/devais/enclosure/pkg/printcheck"
	"github.com/devais/enclosure/pkg/solid"
)

const defaultLayerHeight = 0.2

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		cfgFile   string
		script    string
		outputDir string
		format    string
		checkOnly bool
		logLevel  string
	)

	cmd := &cobra.Command{
		Use:           "devais",
		Short:         "Generate the DevAIs handheld enclosure",
		Long:          "devais builds the parametric octagonal enclosure and push-to-talk button\nand exports them as printable STL files.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			v := viper.New()
			v.SetDefault("width", 40.0)
			v.SetDefault("height", 150.0)
			v.SetDefault("wall-thickness", 1.6)
			v.SetDefault("chamfer-scheme", string(params.ChamferRatio73))
			v.SetDefault("edge-fillet-radius", 4.0)
			v.SetDefault("top-fillet-radius", 4.0)
			v.SetDefault("split-shell", false)
			v.SetDefault("mounts", false)

			v.SetEnvPrefix("DEVAIS")
			v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
			v.AutomaticEnv()

			if cfgFile != "" {
				v.SetConfigFile(cfgFile)
				if err := v.ReadInConfig(); err != nil {
					return fmt.Errorf("read config: %w", err)
				}
			} else {
				v.SetConfigName("devais")
				v.SetConfigType("yaml")
				v.AddConfigPath(".")
				if err := v.ReadInConfig(); err != nil {
					if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
						return fmt.Errorf("read config: %w", err)
					}
				}
			}

			log := logger.MustNew(logger.Config{Level: logLevel, Format: "console"})
			defer log.Sync() //nolint:errcheck

			return run(log, v, script, outputDir, format, checkOnly)
		},
	}

	cmd.Flags().StringVar(&cfgFile, "config", "", "config file (default ./devais.yaml)")
	cmd.Flags().StringVar(&script, "script", "", "design-override script to evaluate")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "output", "output directory")
	cmd.Flags().StringVar(&format, "format", string(export.FormatSTLBinary), "export format (stl-binary, stl-ascii)")
	cmd.Flags().BoolVar(&checkOnly, "check-only", false, "run the pipeline and validation without writing files")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	return cmd
}

func run(log *zap.Logger, v *viper.Viper, script, outputDir, format string, checkOnly bool) error {
	runID := uuid.NewString()
	log.Info("starting generation", zap.String("run_id", runID))

	primary := params.Primary{
		Width:            v.GetFloat64("width"),
		Height:           v.GetFloat64("height"),
		WallThickness:    v.GetFloat64("wall-thickness"),
		ChamferScheme:    params.ChamferScheme(v.GetString("chamfer-scheme")),
		Chamfer:          v.GetFloat64("chamfer"),
		EdgeFilletRadius: v.GetFloat64("edge-fillet-radius"),
		TopFilletRadius:  v.GetFloat64("top-fillet-radius"),
		SplitShell:       v.GetBool("split-shell"),
		Mounts:           v.GetBool("mounts"),
	}

	if script != "" {
		overrides, err := evaluateScript(script)
		if err != nil {
			return err
		}
		if primary, err = primary.WithOverrides(overrides); err != nil {
			return err
		}
		log.Info("script overrides applied", zap.String("script", script), zap.Int("count", len(overrides)))
	}

	ps, err := params.New(primary)
	if err != nil {
		return err
	}
	log.Info("parameters derived",
		zap.Float64("long_side", ps.LongSide),
		zap.Float64("short_side", ps.ShortSide),
		zap.Float64("chamfer", ps.ChamferDist))

	k := sdfx.New()
	b := solid.NewBuilder(k)
	result, err := assembly.New(b, ps, log.Named("assembly")).Run()
	if err != nil {
		return err
	}

	parts := append([]assembly.Part{}, result.Shell...)
	parts = append(parts, result.Button)

	for _, part := range parts {
		report := printcheck.Check(k, part.Solid, defaultLayerHeight)
		for _, w := range report.Warnings() {
			log.Warn("printability", zap.String("finding", w))
		}
		log.Info("part checked",
			zap.String("part", part.Name),
			zap.Bool("single_solid", report.SingleSolid),
			zap.Float64("volume_mm3", report.Volume))
	}

	if checkOnly {
		log.Info("check-only run complete", zap.String("run_id", runID))
		return nil
	}

	exp := export.New(k)
	for _, part := range parts {
		path, err := exp.Write(part.Solid, part.Name, export.Format(format), outputDir)
		if err != nil {
			return err
		}
		log.Info("part written", zap.String("part", part.Name), zap.String("path", path))
	}
	log.Info("generation complete", zap.String("run_id", runID), zap.Int("parts", len(parts)))
	return nil
}

// evaluateScript loads and runs a design-override script, mapping script
// problems onto fatal CLI errors with their line context.
func evaluateScript(path string) (map[string]float64, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	overrides, evalErrs, err := engine.NewEngine().Evaluate(string(src))
	if err != nil {
		return nil, fmt.Errorf("script %s: %w", path, err)
	}
	if len(evalErrs) > 0 {
		msgs := make([]string, len(evalErrs))
		for i, e := range evalErrs {
			msgs[i] = e.Error()
		}
		return nil, fmt.Errorf("script %s: %s", path, strings.Join(msgs, "; "))
	}
	return overrides, nil
}
