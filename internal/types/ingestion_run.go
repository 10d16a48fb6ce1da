package types

import (
	"time"

	"github.com/google/uuid"
)

// IngestionRun records one ingestion attempt for operability. IDs are
// generated app-side so the table works on both postgres and sqlite.
type IngestionRun struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Status       string     `gorm:"not null;column:status" json:"status"`
	StartedAt    time.Time  `gorm:"not null;column:started_at" json:"started_at"`
	FinishedAt   *time.Time `gorm:"column:finished_at" json:"finished_at,omitempty"`
	Error        string     `gorm:"column:error" json:"error,omitempty"`
	AgencyCount  int        `gorm:"column:agency_count" json:"agency_count"`
	TitleCount   int        `gorm:"column:title_count" json:"title_count"`
	ChapterCount int        `gorm:"column:chapter_count" json:"chapter_count"`
}

func (IngestionRun) TableName() string {
	return "ingestion_runs"
}
