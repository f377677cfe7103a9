package domain

// DropoffReasonStageNotReached marks a dropoff derived at session close from
// the earliest funnel stage the session never triggered.
const DropoffReasonStageNotReached = "stage_not_reached"

// DropoffEvent marks the earliest funnel stage a non-converting session
// failed to reach. A session produces at most one.
type DropoffEvent struct {
	ID        string `json:"id"`
	SessionID string `json:"sessionId"`
	StageID   string `json:"stageId"`
	StageName string `json:"stageName"`
	Timestamp string `json:"timestamp"`
	Reason    string `json:"reason"`
}
