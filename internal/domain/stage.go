package domain

// FunnelStage is a named, ordered step in the customer journey. A touchpoint
// whose event type equals EntryEvent marks its session as having reached this
// stage. Stages are always iterated in ascending Position; positions are not
// required to be unique.
type FunnelStage struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Position    int    `json:"position"`
	Description string `json:"description"`
	EntryEvent  string `json:"entryEvent"`
	ExitEvent   string `json:"exitEvent"`
}
