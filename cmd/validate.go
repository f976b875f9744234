// File: cmd/validate.go
package cmd

import (
	"errors"
	"fmt"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"

	"github.com/MLouchini/sitepilot/internal/manifest"
)

// newValidateCmd creates the `validate` command: structural manifest
// validation only, no goal resolution.
func newValidateCmd() *cobra.Command {
	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a site manifest for structural schema violations",
		RunE: func(cmd *cobra.Command, args []string) error {
			manifestPath, _ := cmd.Flags().GetString("manifest")

			expanded, err := homedir.Expand(manifestPath)
			if err != nil {
				return fmt.Errorf("cannot expand manifest path %s: %w", manifestPath, err)
			}

			m, err := manifest.Load(expanded)
			if err != nil {
				var sve *manifest.SchemaViolationError
				if errors.As(err, &sve) {
					fmt.Fprintf(cmd.OutOrStdout(), "INVALID: %s\n", sve.Error())
				}
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "OK: %d goal(s), %d action(s), %d state model(s)\n",
				len(m.Goals), len(m.Actions), len(m.StateModels))
			return nil
		},
	}

	validateCmd.Flags().StringP("manifest", "m", "", "Path to the site manifest document (required)")
	_ = validateCmd.MarkFlagRequired("manifest")

	return validateCmd
}
