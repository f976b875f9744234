// File: cmd/actions.go
package cmd

import (
	"fmt"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"

	"github.com/MLouchini/sitepilot/internal/manifest"
)

// newActionsCmd creates the `actions` command, which lists the capabilities a
// manifest declares without resolving or validating anything.
func newActionsCmd() *cobra.Command {
	actionsCmd := &cobra.Command{
		Use:   "actions",
		Short: "List the actions a site manifest declares",
		RunE: func(cmd *cobra.Command, args []string) error {
			manifestPath, _ := cmd.Flags().GetString("manifest")

			expanded, err := homedir.Expand(manifestPath)
			if err != nil {
				return fmt.Errorf("cannot expand manifest path %s: %w", manifestPath, err)
			}
			m, err := manifest.Load(expanded)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, a := range m.Actions {
				mode := "executes"
				if a.ExecutionPolicy.DryRunDefault {
					mode = "dry-run"
				}
				fmt.Fprintf(out, "%s  (%s)\n", a.ID, mode)
				if a.Title != "" {
					fmt.Fprintf(out, "    %s\n", a.Title)
				}
				if len(a.Goals) > 0 {
					fmt.Fprintf(out, "    goals: %s\n", strings.Join(a.Goals, ", "))
				}
				for _, in := range a.Inputs {
					req := "optional"
					if in.Required {
						req = "required"
					}
					line := fmt.Sprintf("    - %s (%s, %s)", in.Name, in.Type, req)
					if in.Constraint != nil {
						line += ": " + in.Constraint.Description
					}
					fmt.Fprintln(out, line)
				}
			}
			return nil
		},
	}

	actionsCmd.Flags().StringP("manifest", "m", "", "Path to the site manifest document (required)")
	_ = actionsCmd.MarkFlagRequired("manifest")

	return actionsCmd
}
