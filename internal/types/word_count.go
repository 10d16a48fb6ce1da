package types

// WordCount is a read-side projection, never persisted: one word's summed
// count across every chapter an agency references, scoped to one effective
// date.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
	Date  string `json:"date,omitempty"`
}

// AgencyWithWordCount is the agencies listing projection: agency scalar
// fields plus the total word count across all referenced chapters and all
// dates, with the reference list deduplicated.
type AgencyWithWordCount struct {
	Agency
	TotalWordCount int `json:"total_word_count"`
}
