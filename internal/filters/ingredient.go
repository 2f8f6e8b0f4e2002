package filters

import "gorm.io/gorm"

// IngredientFilter narrows an ingredient query by name prefix. The match is
// case-sensitive.
type IngredientFilter struct {
	Name string `form:"name"`
}

func (f IngredientFilter) Apply(query *gorm.DB) *gorm.DB {
	if f.Name != "" {
		query = query.Where("name LIKE ?", f.Name+"%")
	}
	return query
}
