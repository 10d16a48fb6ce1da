package types

// Agency is one flattened federal agency row. The upstream document nests
// agencies via children; every node becomes an independent row here and the
// parent/child relationship is not preserved in storage. Slug is the stable
// external identifier, ID is assigned at persist time.
type Agency struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Name          string         `gorm:"not null;column:name" json:"name"`
	ShortName     string         `gorm:"column:short_name" json:"short_name"`
	DisplayName   string         `gorm:"column:display_name" json:"display_name"`
	SortableName  string         `gorm:"column:sortable_name" json:"sortable_name"`
	Slug          string         `gorm:"column:slug;index" json:"slug"`
	CfrReferences []CfrReference `gorm:"constraint:OnDelete:CASCADE;foreignKey:AgencyID;references:ID" json:"cfr_references"`
}

func (Agency) TableName() string {
	return "agencies"
}
