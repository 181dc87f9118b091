package dto

// IndexDataResponse is the payload returned by the daily index quote API.
type IndexDataResponse struct {
	Symbol string          `json:"symbol"`
	Bars   []IndexDataBar  `json:"bars"`
	Error  *IndexDataError `json:"error,omitempty"`
}

type IndexDataBar struct {
	Date  string  `json:"date"`
	Open  float64 `json:"open"`
	High  float64 `json:"high"`
	Low   float64 `json:"low"`
	Close float64 `json:"close"`
}

type IndexDataError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
