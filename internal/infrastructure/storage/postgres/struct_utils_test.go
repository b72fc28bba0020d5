package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pharmapos/internal/core/entity"
	"pharmapos/internal/core/id"
)

type mockCatalog struct {
	entity.Catalog

	GenericName string `db:"generic_name" json:"genericName"`
	Barcode     *string `db:"barcode" json:"barcode,omitempty"`
	Internal    string `db:"-" json:"-"`
	untagged    string
}

func TestExtractDBColumns(t *testing.T) {
	cols := ExtractDBColumns[mockCatalog]()

	expectedCols := []string{
		"id", "deletion_mark", "version", "attributes",
		"code", "name", "generic_name", "barcode",
	}

	for _, expected := range expectedCols {
		assert.Contains(t, cols, expected)
	}

	assert.NotContains(t, cols, "-")
	assert.NotContains(t, cols, "untagged")
}

func TestStructToMap(t *testing.T) {
	barcode := "4870001234567"
	cat := mockCatalog{
		Catalog: entity.Catalog{
			BaseCatalog: entity.BaseCatalog{
				BaseEntity: entity.BaseEntity{
					ID:           id.New(),
					DeletionMark: true,
					Version:      5,
				},
			},
			Code: "MED-00001",
			Name: "Paracetamol 500mg",
		},
		GenericName: "Paracetamol",
		Barcode:     &barcode,
		Internal:    "skipped",
		untagged:    "skipped",
	}

	m := StructToMap(cat)

	assert.Equal(t, cat.ID, m["id"])
	assert.Equal(t, true, m["deletion_mark"])
	assert.Equal(t, 5, m["version"])
	assert.Equal(t, "MED-00001", m["code"])
	assert.Equal(t, "Paracetamol 500mg", m["name"])
	assert.Equal(t, "Paracetamol", m["generic_name"])
	assert.Equal(t, &barcode, m["barcode"])

	_, hasInternal := m["-"]
	assert.False(t, hasInternal)
}

func TestStructToMap_Pointer(t *testing.T) {
	cat := &mockCatalog{
		Catalog: entity.NewCatalog("SUP-00001", "Acme Pharma"),
	}

	m := StructToMap(cat)

	assert.Equal(t, "SUP-00001", m["code"])
	assert.Equal(t, "Acme Pharma", m["name"])
}
