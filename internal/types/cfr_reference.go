package types

// CfrReference points from an agency into the regulatory corpus. A (title,
// chapter) pair may be referenced by more than one agency.
type CfrReference struct {
	ID       uint   `gorm:"primaryKey" json:"-"`
	AgencyID uint   `gorm:"not null;index;column:agency_id" json:"-"`
	Title    int    `gorm:"not null;column:title" json:"title"`
	Chapter  string `gorm:"column:chapter" json:"chapter"`
}

func (CfrReference) TableName() string {
	return "cfr_references"
}
