package ecfr

// Agency is the upstream admin-API agency shape: a tree via Children, each
// node carrying its own CFR reference list.
type Agency struct {
	Name          string         `json:"name"`
	ShortName     string         `json:"short_name"`
	DisplayName   string         `json:"display_name"`
	SortableName  string         `json:"sortable_name"`
	Slug          string         `json:"slug"`
	Children      []Agency       `json:"children"`
	CfrReferences []CfrReference `json:"cfr_references"`
}

type CfrReference struct {
	Title   int    `json:"title"`
	Chapter string `json:"chapter"`
}

// Title is the upstream versioner-API title shape. Date fields stay as
// YYYY-MM-DD strings; reserved titles have no regulatory text.
type Title struct {
	Number          int    `json:"number"`
	Name            string `json:"name"`
	LatestAmendedOn string `json:"latest_amended_on"`
	LatestIssueDate string `json:"latest_issue_date"`
	UpToDateAsOf    string `json:"up_to_date_as_of"`
	Reserved        bool   `json:"reserved"`
}

type agencyResponse struct {
	Agencies []Agency `json:"agencies"`
}

type titleResponse struct {
	Titles []Title `json:"titles"`
}
