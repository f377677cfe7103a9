package domain

// PathSeparator joins stage names into a path signature.
const PathSeparator = " → "

// DirectPath is the signature recorded for a session that triggered no
// funnel stage at all.
const DirectPath = "direct"

// ConversionPath records the ordered set of funnel stages a session touched.
// Exactly one is created per session, at close. StagesVisited is ordered by
// stage position, not by touchpoint time.
type ConversionPath struct {
	ID            string   `json:"id"`
	SessionID     string   `json:"sessionId"`
	StagesVisited []string `json:"stagesVisited"`
	PathSignature string   `json:"pathSignature"`
	Converted     bool     `json:"converted"`
	CreatedAt     string   `json:"createdAt"`
}
