package types

import (
	"gorm.io/datatypes"
)

// ChapterWordCount holds the word-frequency mapping for one chapter of one
// title at one effective date. The unique index makes re-ingestion for the
// same date replace instead of accumulate.
type ChapterWordCount struct {
	ID          uint           `gorm:"primaryKey" json:"-"`
	TitleNumber int            `gorm:"not null;column:title_number;uniqueIndex:idx_title_chapter_date" json:"title_number"`
	ChapterName string         `gorm:"column:chapter_name;uniqueIndex:idx_title_chapter_date" json:"chapter_name"`
	Date        string         `gorm:"column:date;uniqueIndex:idx_title_chapter_date" json:"date"`
	WordCount   datatypes.JSON `gorm:"column:word_count" json:"word_count"`
}

func (ChapterWordCount) TableName() string {
	return "title_chapter_word_counts"
}
