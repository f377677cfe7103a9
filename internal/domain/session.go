package domain

// Session is a single customer visit. It is created open (EndTime empty) and
// closed exactly once, which sets EndTime, Converted and ConversionValue.
// Closed sessions are immutable.
type Session struct {
	ID              string  `json:"id"`
	CustomerID      string  `json:"customerId"`
	StartTime       string  `json:"startTime"`
	EndTime         string  `json:"endTime,omitempty"`
	Channel         string  `json:"channel"`
	Device          string  `json:"device"`
	Converted       bool    `json:"converted"`
	ConversionValue float64 `json:"conversionValue"`
}
