package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"warelog/internal/core/entity"
)

type mockCatalog struct {
	entity.BaseEntity
	Code     string  `db:"code" json:"code"`
	Name     string  `db:"name" json:"name"`
	Note     *string `db:"note" json:"note,omitempty"`
	internal string  // no db tag, must be skipped
}

func TestExtractDBColumns_EmbeddedBase(t *testing.T) {
	cols := ExtractDBColumns[mockCatalog]()

	expectedCols := []string{
		"id", "created_at", "updated_at", "code", "name", "note",
	}

	for _, expected := range expectedCols {
		assert.Contains(t, cols, expected)
	}
	assert.NotContains(t, cols, "internal")
}

func TestStructToMap_EmbeddedBase(t *testing.T) {
	now := time.Now().UTC()
	note := "free text"
	cat := mockCatalog{
		BaseEntity: entity.BaseEntity{
			ID: 42,
			Timestamps: entity.Timestamps{
				CreatedAt: now,
				UpdatedAt: now,
			},
		},
		Code: "TEST",
		Name: "Test Name",
		Note: &note,
	}

	m := StructToMap(cat)

	assert.Equal(t, int64(42), m["id"])
	assert.Equal(t, now, m["created_at"])
	assert.Equal(t, now, m["updated_at"])
	assert.Equal(t, "TEST", m["code"])
	assert.Equal(t, "Test Name", m["name"])
	assert.Equal(t, &note, m["note"])
	assert.NotContains(t, m, "internal")
}

func TestStructToMap_Pointer(t *testing.T) {
	cat := &mockCatalog{Code: "PTR"}
	m := StructToMap(cat)
	assert.Equal(t, "PTR", m["code"])
}
