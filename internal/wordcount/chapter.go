package wordcount

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"github.com/yungbote/ecfr-analyzer-backend/internal/document"
	"github.com/yungbote/ecfr-analyzer-backend/internal/types"
)

const (
	// Chapter subtrees in the eCFR full-title XML are DIV3 elements; their
	// identifying attribute N carries the chapter name.
	chapterKey     = "DIV3"
	chapterNameKey = "@N"
	paragraphKey   = "p"
)

// ChapterCounts finds every chapter subtree of a decoded title document,
// tokenizes its paragraph text, and emits one record per chapter. A chapter
// with no paragraphs still yields a record with an empty mapping so
// downstream joins never miss it. Chapter names are passed through as found,
// without validation.
func ChapterCounts(doc any, titleNumber int, date string) ([]*types.ChapterWordCount, error) {
	var records []*types.ChapterWordCount

	for _, chapter := range document.Search(doc, chapterKey) {
		counts := map[string]int{}
		for _, paragraph := range document.Search(chapter, paragraphKey) {
			Merge(counts, Tokenize(document.FlattenText(paragraph)))
		}

		raw, err := json.Marshal(counts)
		if err != nil {
			return nil, fmt.Errorf("marshal word counts for title %d: %w", titleNumber, err)
		}

		name := ""
		if obj, ok := chapter.(*document.Object); ok {
			name = obj.GetString(chapterNameKey)
		}

		records = append(records, &types.ChapterWordCount{
			TitleNumber: titleNumber,
			ChapterName: name,
			Date:        date,
			WordCount:   datatypes.JSON(raw),
		})
	}

	return records, nil
}
