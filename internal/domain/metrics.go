package domain

// StageMetrics is one row of the funnel analysis. ExitCount for a stage is
// the entry count of the next stage; for the last stage it is the number of
// converted sessions that reached it. ConversionRate and DropOffRate always
// sum to 100.
type StageMetrics struct {
	StageID        string  `json:"stageId"`
	StageName      string  `json:"stageName"`
	Position       int     `json:"position"`
	EntryCount     int     `json:"entryCount"`
	ExitCount      int     `json:"exitCount"`
	ConversionRate float64 `json:"conversionRate"`
	DropOffRate    float64 `json:"dropOffRate"`
	AvgDurationMS  float64 `json:"avgDurationMs"`
}

// PathGroup is one ranked conversion-path signature.
type PathGroup struct {
	PathSignature  string  `json:"pathSignature"`
	Occurrences    int     `json:"occurrences"`
	Conversions    int     `json:"conversions"`
	ConversionRate float64 `json:"conversionRate"`
}

// DropoffBreakdown aggregates the dropoff events recorded at one stage three
// ways over the same rows.
type DropoffBreakdown struct {
	StageID       string         `json:"stageId"`
	Reasons       map[string]int `json:"reasons"`
	TimeOfDay     map[int]int    `json:"timeOfDay"`
	ByChannel     map[string]int `json:"byChannel"`
	TotalDropoffs int            `json:"totalDropoffs"`
}

// ChannelStats is one row of the channel attribution report. AvgValue is the
// mean conversion value over converted sessions only; it is nil when the
// channel has no conversions.
type ChannelStats struct {
	Channel        string   `json:"channel"`
	Sessions       int      `json:"sessions"`
	Conversions    int      `json:"conversions"`
	ConversionRate float64  `json:"conversionRate"`
	AvgValue       *float64 `json:"avgValue,omitempty"`
}

// CustomerLTV is a customer's total conversion value across converted
// sessions.
type CustomerLTV struct {
	CustomerID string  `json:"customerId"`
	LTV        float64 `json:"ltv"`
}

// LTVSegment is one equal-width customer value bucket. Ranges are half-open
// [Min, Max) except the last bucket, which is closed to include the maximum.
type LTVSegment struct {
	Bucket        int     `json:"bucket"`
	LTVMin        float64 `json:"ltvMin"`
	LTVMax        float64 `json:"ltvMax"`
	CustomerCount int     `json:"customerCount"`
	Label         string  `json:"label"`
}

// Heatmap is touchpoint volume bucketed by day-of-week and hour-of-day.
// Matrix is indexed [day][hour] with day 0 = Monday.
type Heatmap struct {
	Matrix           [][]int  `json:"matrix"`
	DayLabels        []string `json:"dayLabels"`
	HourLabels       []string `json:"hourLabels"`
	TotalTouchpoints int      `json:"totalTouchpoints"`
}
