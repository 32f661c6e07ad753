package model

// Category groups transactions of one type under a display name.
type Category struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Color string          `json:"color"`
	Icon  string          `json:"icon,omitempty"`
	Type  TransactionType `json:"type"`
}

// CategoryInput holds the fields of a category that has not been stored yet.
type CategoryInput struct {
	Name  string
	Color string
	Icon  string
	Type  TransactionType
}

// Category turns the input into a stored category with the given id.
func (in CategoryInput) Category(id string) Category {
	return Category{
		ID:    id,
		Name:  in.Name,
		Color: in.Color,
		Icon:  in.Icon,
		Type:  in.Type,
	}
}

// CategoryPatch is a partial update. Nil fields are left untouched.
type CategoryPatch struct {
	Name  *string
	Color *string
	Icon  *string
	Type  *TransactionType
}

// Apply merges the non-nil fields of p into c.
func (p CategoryPatch) Apply(c *Category) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Color != nil {
		c.Color = *p.Color
	}
	if p.Icon != nil {
		c.Icon = *p.Icon
	}
	if p.Type != nil {
		c.Type = *p.Type
	}
}
