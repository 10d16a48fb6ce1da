package types

// Title is one top-level numbered division of the CFR. Agencies point at
// titles through cfr_references; titles do not reference agencies back.
type Title struct {
	ID              uint   `gorm:"primaryKey" json:"-"`
	Number          int    `gorm:"not null;index;column:number" json:"number"`
	Name            string `gorm:"column:name" json:"name"`
	LatestAmendedOn string `gorm:"column:latest_amended_on" json:"latest_amended_on"`
	LatestIssueDate string `gorm:"column:latest_issue_date" json:"latest_issue_date"`
	UpToDateAsOf    string `gorm:"column:up_to_date_as_of" json:"up_to_date_as_of"`
	Reserved        bool   `gorm:"column:reserved" json:"reserved"`
}

func (Title) TableName() string {
	return "titles"
}
