package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"storekeeper/internal/core/entity"
	"storekeeper/internal/core/id"
	"storekeeper/internal/core/types"
)

type testCatalog struct {
	entity.Catalog
	SalePrice types.Money `db:"sale_price" json:"salePrice"`
	Hidden    string      `db:"-" json:"hidden"`
	NoTag     string      `json:"noTag"`
}

func TestExtractDBColumns(t *testing.T) {
	cols := ExtractDBColumns[testCatalog]()

	expectedCols := []string{
		"id", "deletion_mark", "version", "code", "name", "sale_price",
	}

	for _, expected := range expectedCols {
		assert.Contains(t, cols, expected)
	}

	assert.NotContains(t, cols, "-")
	assert.NotContains(t, cols, "hidden")
	assert.NotContains(t, cols, "no_tag")
}

func TestStructToMap(t *testing.T) {
	cat := testCatalog{
		Catalog: entity.Catalog{
			BaseCatalog: entity.BaseCatalog{
				BaseEntity: entity.BaseEntity{
					ID:           id.New(),
					DeletionMark: true,
					Version:      5,
				},
			},
			Code: "TEST",
			Name: "Test Name",
		},
		SalePrice: types.NewMoney(19.99),
		Hidden:    "secret",
	}

	m := StructToMap(cat)

	assert.Equal(t, cat.ID, m["id"])
	assert.Equal(t, true, m["deletion_mark"])
	assert.Equal(t, 5, m["version"])
	assert.Equal(t, "TEST", m["code"])
	assert.Equal(t, "Test Name", m["name"])
	assert.Equal(t, cat.SalePrice, m["sale_price"])

	_, hasHidden := m["-"]
	assert.False(t, hasHidden)
}

func TestStructToMap_PointerInput(t *testing.T) {
	cat := &testCatalog{
		Catalog: entity.NewCatalog("PTR", "Pointer Input"),
	}

	m := StructToMap(cat)

	assert.Equal(t, "PTR", m["code"])
	assert.Equal(t, "Pointer Input", m["name"])
}
