package store

import (
	"testing"

	"zhastar/catalog-service/internal/catalog"
)

func TestColumnTypes_CoverAllColumns(t *testing.T) {
	for _, c := range catalog.Categories {
		for _, col := range columnsFor(c) {
			if _, ok := columnTypes[col]; !ok {
				t.Errorf("%s: column %q has no SQL type", c, col)
			}
		}
	}
}
