package entities

// ReviewSummary is the fixed-shape result of the external review
// summarization call.
type ReviewSummary struct {
	Summary        string `json:"summary"`
	PositiveThemes string `json:"positive_themes"`
	NegativeThemes string `json:"negative_themes"`
}
