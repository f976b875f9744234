// File: cmd/run.go
package cmd

import (
	"fmt"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/MLouchini/sitepilot/api/schemas"
	"github.com/MLouchini/sitepilot/internal/binding"
	"github.com/MLouchini/sitepilot/internal/engine"
	"github.com/MLouchini/sitepilot/internal/manifest"
	"github.com/MLouchini/sitepilot/internal/narrator"
	"github.com/MLouchini/sitepilot/internal/observability"
	"github.com/MLouchini/sitepilot/internal/reporting"
	"github.com/MLouchini/sitepilot/internal/resolver"
	"github.com/MLouchini/sitepilot/internal/validation"
)

// newRunCmd creates and configures the `run` command: one full
// resolve-validate-trace pass for a single goal.
func newRunCmd() *cobra.Command {
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Resolve a goal against a manifest, validate its inputs, and emit the trace",
		Example: `  sitepilot run --manifest site.manifest.json --goal book_flight \
      --input origin=SFO --input destination=JFK \
      --input date_range=2025-01-10/2025-01-15 --input max_budget=400`,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			// Bind flags to viper keys so CLI flags override config/env.
			if err := viper.BindPFlag("engine.validation_concurrency", cmd.Flags().Lookup("concurrency")); err != nil {
				return err
			}
			return viper.BindPFlag("resolver.keyword_heuristic", cmd.Flags().Lookup("fuzzy"))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := observability.GetLogger()

			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to finalize config with flag overrides: %w", err)
			}

			manifestPath, _ := cmd.Flags().GetString("manifest")
			goalID, _ := cmd.Flags().GetString("goal")
			goalText, _ := cmd.Flags().GetString("describe")
			inputPairs, _ := cmd.Flags().GetStringArray("input")
			output, _ := cmd.Flags().GetString("output")
			format, _ := cmd.Flags().GetString("format")
			narrate, _ := cmd.Flags().GetBool("narrate")
			bind, _ := cmd.Flags().GetBool("bind")

			values, err := parseInputPairs(inputPairs)
			if err != nil {
				return err
			}

			expanded, err := homedir.Expand(manifestPath)
			if err != nil {
				return fmt.Errorf("cannot expand manifest path %s: %w", manifestPath, err)
			}

			m, err := manifest.Load(expanded)
			if err != nil {
				return err
			}
			logger.Info("Manifest loaded",
				zap.String("origin", m.Origin),
				zap.String("site", m.Site),
				zap.Int("actions", len(m.Actions)))

			opts := []engine.Option{}
			if bind {
				opts = append(opts, engine.WithBinder(binding.NewStaticBinder("ui_hint")))
			}
			eng, err := engine.New(cfg.Engine, logger, resolver.New(cfg.Resolver), validation.New(), opts...)
			if err != nil {
				return fmt.Errorf("failed to initialize engine: %w", err)
			}

			goal := schemas.GoalInstance{
				ID:          goalID,
				Description: goalText,
				Values:      values,
			}
			if goal.Description == "" {
				goal.Description = describeGoal(m, goalID)
			}

			record, err := eng.Run(ctx, m, goal)
			if err != nil {
				return err
			}

			writer, err := reporting.New(format, output)
			if err != nil {
				return fmt.Errorf("failed to initialize trace writer: %w", err)
			}
			defer func() {
				if err := writer.Close(); err != nil {
					logger.Error("Failed to close trace writer", zap.Error(err))
				}
			}()
			if err := writer.Write(record); err != nil {
				return fmt.Errorf("failed to write trace: %w", err)
			}

			if narrate {
				if err := narrator.New(cfg.Narrator, logger).Replay(ctx, record); err != nil {
					return err
				}
			}

			// A failed validation is a reportable outcome, not a program
			// fault: the trace carries it, and the command still succeeds.
			return nil
		},
	}

	runCmd.Flags().StringP("manifest", "m", "", "Path to the site manifest document (required)")
	runCmd.Flags().StringP("goal", "g", "", "Goal id declared in the manifest")
	runCmd.Flags().String("describe", "", "Free-text goal description (used with --fuzzy)")
	runCmd.Flags().StringArrayP("input", "i", nil, "Slot value as name=value (repeatable)")
	runCmd.Flags().StringP("output", "o", "", "Output file path for the trace. Defaults to stdout.")
	runCmd.Flags().StringP("format", "f", "json", "Trace output format ('json' or 'text')")
	runCmd.Flags().Bool("narrate", false, "Replay the trace steps at a human-watchable pace")
	runCmd.Flags().Bool("bind", false, "Consult the ui_hint binding adapter for provenance")
	runCmd.Flags().Bool("fuzzy", false, "Allow keyword-overlap resolution for free-text goals")
	runCmd.Flags().IntP("concurrency", "j", 0, "Slot validation concurrency (overrides config/env)")
	_ = runCmd.MarkFlagRequired("manifest")

	return runCmd
}

// parseInputPairs turns repeated name=value flags into the goal's value map.
func parseInputPairs(pairs []string) (map[string]string, error) {
	values := make(map[string]string, len(pairs))
	for _, p := range pairs {
		name, value, ok := strings.Cut(p, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --input %q: expected name=value", p)
		}
		values[name] = value
	}
	return values, nil
}

// describeGoal falls back to the manifest's own description for a goal id so
// traces stay readable when the caller supplies only the id.
func describeGoal(m *schemas.Manifest, goalID string) string {
	for _, g := range m.Goals {
		if g.ID == goalID {
			return g.Description
		}
	}
	return goalID
}
