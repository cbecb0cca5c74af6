package catalogs

import (
	"context"

	"warelog/internal/core/apperror"
	"warelog/internal/core/entity"
)

// Category groups products into a hierarchy.
type Category struct {
	entity.BaseEntity

	Name             string  `db:"name" json:"name"`
	Description      *string `db:"description" json:"description,omitempty"`
	ParentCategoryID *int64  `db:"parent_category_id" json:"parentCategoryId,omitempty"`
	HierarchyLevel   int     `db:"hierarchy_level" json:"hierarchyLevel"`
	CategoryType     *string `db:"category_type" json:"categoryType,omitempty"`
}

// Validate implements entity.Validatable.
func (c *Category) Validate(ctx context.Context) error {
	if c.Name == "" {
		return apperror.NewValidation("name is required").WithDetail("field", "name")
	}
	if c.HierarchyLevel < 1 {
		return apperror.NewValidation("hierarchy level must be at least 1").
			WithDetail("field", "hierarchyLevel")
	}
	if c.ParentCategoryID != nil && *c.ParentCategoryID == c.ID && c.ID != 0 {
		return apperror.NewValidation("category cannot be its own parent").
			WithDetail("field", "parentCategoryId")
	}
	return nil
}
