package ecfr

import (
	"github.com/yungbote/ecfr-analyzer-backend/internal/types"
)

// FlattenAgencies walks the nested agency trees in pre-order and emits one
// row per node, children becoming sibling rows. Each row keeps only its own
// CFR reference list.
func FlattenAgencies(agencies []Agency) []*types.Agency {
	var rows []*types.Agency
	for i := range agencies {
		rows = flattenAgency(&agencies[i], rows)
	}
	return rows
}

func flattenAgency(agency *Agency, rows []*types.Agency) []*types.Agency {
	row := &types.Agency{
		Name:         agency.Name,
		ShortName:    agency.ShortName,
		DisplayName:  agency.DisplayName,
		SortableName: agency.SortableName,
		Slug:         agency.Slug,
	}
	for _, ref := range agency.CfrReferences {
		row.CfrReferences = append(row.CfrReferences, types.CfrReference{
			Title:   ref.Title,
			Chapter: ref.Chapter,
		})
	}
	rows = append(rows, row)

	for i := range agency.Children {
		rows = flattenAgency(&agency.Children[i], rows)
	}
	return rows
}
