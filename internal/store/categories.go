package store

import (
	"context"
	"fmt"

	"github.com/Veraticus/expense-track/internal/common"
	"github.com/Veraticus/expense-track/internal/model"
	"github.com/Veraticus/expense-track/internal/service"
)

func categoryID(c model.Category) string { return c.ID }

// Categories returns a copy of every category in store order.
func (s *Store) Categories() []model.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloned(s.categories)
}

// Category returns a copy of the category with the given id.
func (s *Store) Category(id string) (model.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := indexOf(s.categories, id, categoryID)
	if i < 0 {
		return model.Category{}, fmt.Errorf("category %s: %w", id, common.ErrNotFound)
	}
	return s.categories[i], nil
}

// AddCategory stores a new category under a fresh identifier.
func (s *Store) AddCategory(ctx context.Context, in model.CategoryInput) (model.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := in.Category(s.newID())
	if err := validateCategory(c); err != nil {
		return model.Category{}, err
	}

	categories := append(cloned(s.categories), c)
	if err := s.persist(ctx, map[service.Slot]any{service.SlotCategories: categories}); err != nil {
		return model.Category{}, err
	}
	s.categories = categories
	return c, nil
}

// UpdateCategory merges patch into the category with the given id.
// An unknown id is a silent no-op.
func (s *Store) UpdateCategory(ctx context.Context, id string, patch model.CategoryPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.categories, id, categoryID)
	if i < 0 {
		return nil
	}

	updated := s.categories[i]
	patch.Apply(&updated)
	updated.ID = id
	if err := validateCategory(updated); err != nil {
		return err
	}

	categories := cloned(s.categories)
	categories[i] = updated
	if err := s.persist(ctx, map[service.Slot]any{service.SlotCategories: categories}); err != nil {
		return err
	}
	s.categories = categories
	return nil
}

// DeleteCategory removes the category with the given id. It fails with a
// *common.ReferentialIntegrityError while any transaction references it.
func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if refs := s.countReferences(func(t model.Transaction) bool { return t.Category == id }); refs > 0 {
		return &common.ReferentialIntegrityError{Kind: "category", ID: id, References: refs}
	}

	i := indexOf(s.categories, id, categoryID)
	if i < 0 {
		return nil
	}

	categories := make([]model.Category, 0, len(s.categories)-1)
	categories = append(categories, s.categories[:i]...)
	categories = append(categories, s.categories[i+1:]...)
	if err := s.persist(ctx, map[service.Slot]any{service.SlotCategories: categories}); err != nil {
		return err
	}
	s.categories = categories
	return nil
}

// countReferences counts transactions matching ref. Callers hold s.mu.
func (s *Store) countReferences(ref func(model.Transaction) bool) int {
	n := 0
	for _, t := range s.transactions {
		if ref(t) {
			n++
		}
	}
	return n
}
