package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"quote_backend/internal/app/di"
	"quote_backend/internal/feature/settings/transport/http/dto"
)

func newSettingsCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change the API key and demo mode",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show the current settings (key masked)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd.Context(), func(app *di.App) error {
				return c.printSettings(cmd.Context(), app)
			})
		},
	}

	setKey := &cobra.Command{
		Use:   "set-key KEY",
		Short: `Store the Alpha Vantage API key ("" clears it)`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd.Context(), func(app *di.App) error {
				if err := app.Settings.SetAPIKey(cmd.Context(), args[0]); err != nil {
					return err
				}
				return c.printSettings(cmd.Context(), app)
			})
		},
	}

	demo := &cobra.Command{
		Use:       "demo on|off",
		Short:     "Turn demo mode on or off",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"on", "off"},
		RunE: func(cmd *cobra.Command, args []string) error {
			on, err := parseSwitch(args[0])
			if err != nil {
				return err
			}
			return c.withApp(cmd.Context(), func(app *di.App) error {
				if err := app.Settings.SetDemoMode(cmd.Context(), on); err != nil {
					return err
				}
				return c.printSettings(cmd.Context(), app)
			})
		},
	}

	cmd.AddCommand(show, setKey, demo)
	return cmd
}

func (c *cli) printSettings(ctx context.Context, app *di.App) error {
	s := app.Settings.Snapshot(ctx)
	if c.asJSON {
		return c.printJSON(dto.NewSettingsResponse(s))
	}
	key := s.APIKeyMasked
	if key == "" {
		key = "(not set)"
	}
	fmt.Fprintf(c.out, "api key:   %s (%s)\n", key, s.KeySource)
	fmt.Fprintf(c.out, "demo mode: %t\n", s.DemoMode)
	fmt.Fprintf(c.out, "live:      %t\n", s.Live)
	return nil
}

func parseSwitch(v string) (bool, error) {
	switch v {
	case "on":
		return true, nil
	case "off":
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("expected on or off, got %q", v)
	}
	return b, nil
}
