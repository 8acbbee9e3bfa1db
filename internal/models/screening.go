package models

import "sort"

// NotSpecified is reported for any text field the heuristics could not fill.
const NotSpecified = "Not specified"

type ResumeFields struct {
	Skills       []string `json:"skills"`
	Experience   string   `json:"experience"`
	Education    string   `json:"education"`
	Location     string   `json:"location"`
	LastPosition string   `json:"lastPosition"`
}

// DefaultResumeFields returns the fields reported when nothing could be extracted.
func DefaultResumeFields() ResumeFields {
	return ResumeFields{
		Skills:       []string{},
		Experience:   NotSpecified,
		Education:    NotSpecified,
		Location:     NotSpecified,
		LastPosition: NotSpecified,
	}
}

// ResumeResult carries either a score with its fields or an error, never both.
// The embedded fields pointer is left nil on failure so the JSON omits them.
type ResumeResult struct {
	FileName string   `json:"fileName"`
	Score    *float64 `json:"score,omitempty"`
	*ResumeFields
	Error string `json:"error,omitempty"`
}

func (r ResumeResult) Failed() bool {
	return r.Error != ""
}

// SortKey is the score used for ranking; failed results rank as 0.
func (r ResumeResult) SortKey() float64 {
	if r.Score == nil {
		return 0
	}
	return *r.Score
}

type ScreeningResponse struct {
	Scores []ResumeResult `json:"scores"`
}

// SortResults orders results by score, highest first. Ties keep submission order.
func SortResults(results []ResumeResult) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].SortKey() > results[j].SortKey()
	})
}
