package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkordes/tripjournal/internal/domain"
)

// CreateCategory adds a user category. User categories are never defaults.
func (s *ExpenseService) CreateCategory(ctx context.Context, c domain.Category) (domain.Category, error) {
	c, err := normalizeCategory(c)
	if err != nil {
		return domain.Category{}, err
	}
	c.ID = domain.NewCategoryID()
	c.IsDefault = false

	result, err := s.categories.Create(ctx, c)
	if err != nil {
		return domain.Category{}, fmt.Errorf("service.ExpenseService.CreateCategory: %w", err)
	}
	return result, nil
}

// GetCategory returns a single category by ID.
func (s *ExpenseService) GetCategory(ctx context.Context, id domain.CategoryID) (domain.Category, error) {
	result, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return domain.Category{}, fmt.Errorf("service.ExpenseService.GetCategory: %w", err)
	}
	return result, nil
}

// ListCategories returns every category, newest first.
func (s *ExpenseService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.ExpenseService.ListCategories: %w", err)
	}
	return orEmpty(categories), nil
}

// UpdateCategory replaces a category's name, icon and color. The default flag
// of the stored category is kept.
func (s *ExpenseService) UpdateCategory(ctx context.Context, c domain.Category) (domain.Category, error) {
	existing, err := s.categories.GetByID(ctx, c.ID)
	if err != nil {
		return domain.Category{}, fmt.Errorf("service.ExpenseService.UpdateCategory: %w", err)
	}
	c, err = normalizeCategory(c)
	if err != nil {
		return domain.Category{}, err
	}
	c.IsDefault = existing.IsDefault

	result, err := s.categories.Update(ctx, c)
	if err != nil {
		return domain.Category{}, fmt.Errorf("service.ExpenseService.UpdateCategory: %w", err)
	}
	return result, nil
}

// DeleteCategory removes a user category.
// Returns domain.ErrValidation for a default category and domain.ErrNotFound
// for an unknown ID.
func (s *ExpenseService) DeleteCategory(ctx context.Context, id domain.CategoryID) error {
	c, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("service.ExpenseService.DeleteCategory: %w", err)
	}
	if c.IsDefault {
		return fmt.Errorf("%w: default categories cannot be deleted", domain.ErrValidation)
	}
	if err := s.categories.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.ExpenseService.DeleteCategory: %w", err)
	}
	return nil
}

func normalizeCategory(c domain.Category) (domain.Category, error) {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return domain.Category{}, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	c.Icon = strings.TrimSpace(c.Icon)
	c.Color = strings.TrimSpace(c.Color)
	return c, nil
}
