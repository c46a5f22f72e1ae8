// Package dto defines data transfer objects for the Alpha Vantage API responses.
package dto

// GlobalQuoteResponse represents the JSON response from the GLOBAL_QUOTE function.
// On throttling or rejected calls the provider answers 200 with Note, Information
// or Error Message instead of a quote.
type GlobalQuoteResponse struct {
	GlobalQuote  *GlobalQuote `json:"Global Quote,omitempty"`
	Note         string       `json:"Note,omitempty"`
	Information  string       `json:"Information,omitempty"`
	ErrorMessage string       `json:"Error Message,omitempty"`
}

// GlobalQuote carries every value as a string, as the provider sends them.
type GlobalQuote struct {
	Symbol           string `json:"01. symbol"`
	Open             string `json:"02. open"`
	High             string `json:"03. high"`
	Low              string `json:"04. low"`
	Price            string `json:"05. price"`
	Volume           string `json:"06. volume"`
	LatestTradingDay string `json:"07. latest trading day"`
	PreviousClose    string `json:"08. previous close"`
	Change           string `json:"09. change"`
	ChangePercent    string `json:"10. change percent"`
}

// IsEmpty reports whether the quote object carried no data ("Global Quote": {}).
func (g *GlobalQuote) IsEmpty() bool {
	return g == nil || (g.Symbol == "" && g.Price == "")
}
