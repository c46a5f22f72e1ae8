package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"quote_backend/internal/app/di"
	"quote_backend/internal/feature/quotes/transport/http/dto"
)

func newUsageCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "usage",
		Short: "Show today's upstream request usage",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd.Context(), func(app *di.App) error {
				stats := app.Quotes.UsageStats(cmd.Context())
				if c.asJSON {
					return c.printJSON(dto.NewUsageResponse(stats))
				}

				last := "never"
				if !stats.LastRequestAt.IsZero() {
					last = stats.LastRequestAt.Format(time.RFC3339)
				}
				w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
				fmt.Fprintf(w, "used\t%d/%d\n", stats.Used, stats.Limit)
				fmt.Fprintf(w, "remaining\t%d\n", stats.Remaining)
				fmt.Fprintf(w, "cooldown\t%t\n", stats.CooldownActive)
				fmt.Fprintf(w, "market open\t%t\n", stats.MarketOpen)
				fmt.Fprintf(w, "last request\t%s\n", last)
				return w.Flush()
			})
		},
	}
}
