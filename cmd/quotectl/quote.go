package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"quote_backend/internal/app/di"
	"quote_backend/internal/feature/quotes/domain/entity"
	"quote_backend/internal/feature/quotes/transport/http/dto"
)

func newQuoteCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "quote SYMBOL...",
		Short: "Resolve quotes (live, cached or fallback)",
		Long: `Resolve one or more symbols through the same cache, quota and fallback chain
as the server. Without arguments the active watchlist is used.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd.Context(), func(app *di.App) error {
				symbols := args
				if len(symbols) == 0 {
					codes, err := app.Watchlist.ListActiveCodes(cmd.Context())
					if err != nil {
						return err
					}
					symbols = codes
				}
				return c.printQuotes(app.Quotes.GetQuotes(cmd.Context(), symbols))
			})
		},
	}
}

func (c *cli) printQuotes(quotes []entity.Quote) error {
	if c.asJSON {
		out := make([]dto.QuoteResponse, 0, len(quotes))
		for _, q := range quotes {
			out = append(out, dto.NewQuoteResponse(q))
		}
		return c.printJSON(out)
	}

	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SYMBOL\tPRICE\tCHANGE\tCHANGE%\tVOLUME\tSOURCE")
	for _, q := range quotes {
		fmt.Fprintf(w, "%s\t%.2f\t%+.2f\t%+.2f%%\t%d\t%s\n",
			q.Symbol, q.Price, q.Change, q.ChangePercent, q.Volume, q.Source)
	}
	return w.Flush()
}

func (c *cli) printJSON(v any) error {
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
