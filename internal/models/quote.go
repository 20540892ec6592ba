package models

// FinnhubQuote mirrors the quote payload returned by the Finnhub /quote
// endpoint and passed through unchanged by the stock-quote proxy.
type FinnhubQuote struct {
	Current       float64 `json:"c"`
	Change        float64 `json:"d"`
	ChangePercent float64 `json:"dp"`
	High          float64 `json:"h"`
	Low           float64 `json:"l"`
	Open          float64 `json:"o"`
	PreviousClose float64 `json:"pc"`
	Timestamp     int64   `json:"t"`
}

// StockData is the per-symbol quote record used by enrichment.
type StockData struct {
	Symbol        string  `json:"symbol"`
	CurrentPrice  float64 `json:"currentPrice"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
	High          float64 `json:"high"`
	Low           float64 `json:"low"`
	Open          float64 `json:"open"`
	PreviousClose float64 `json:"previousClose"`
}

// StockDataFromQuote converts a raw Finnhub quote to a StockData record.
func StockDataFromQuote(symbol string, q FinnhubQuote) StockData {
	return StockData{
		Symbol:        symbol,
		CurrentPrice:  q.Current,
		Change:        q.Change,
		ChangePercent: q.ChangePercent,
		High:          q.High,
		Low:           q.Low,
		Open:          q.Open,
		PreviousClose: q.PreviousClose,
	}
}
