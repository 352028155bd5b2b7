package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pkordes/tripjournal/internal/domain"
)

// CategoryRepo defines the persistence operations for spend Categories.
type CategoryRepo interface {
	Create(ctx context.Context, category domain.Category) (domain.Category, error)

	// GetByID returns domain.ErrNotFound if no category with that ID exists.
	GetByID(ctx context.Context, id domain.CategoryID) (domain.Category, error)

	List(ctx context.Context) ([]domain.Category, error)

	// Update returns domain.ErrNotFound if no category with that ID exists.
	Update(ctx context.Context, category domain.Category) (domain.Category, error)

	// Delete returns domain.ErrNotFound if no category with that ID exists.
	Delete(ctx context.Context, id domain.CategoryID) error
}

const categoryColumns = `id, name, icon, color, is_default`

// pgCategoryRepo is the Postgres implementation of CategoryRepo.
type pgCategoryRepo struct {
	db db
}

// NewCategoryRepo constructs a CategoryRepo backed by the provided db connection.
func NewCategoryRepo(db db) CategoryRepo {
	return &pgCategoryRepo{db: db}
}

func (r *pgCategoryRepo) Create(ctx context.Context, category domain.Category) (domain.Category, error) {
	const q = `
		INSERT INTO categories (id, name, icon, color, is_default)
		VALUES (@id, @name, @icon, @color, @is_default)
		RETURNING ` + categoryColumns

	result, err := scanCategory(r.db.QueryRow(ctx, q, categoryArgs(category)))
	if err != nil {
		return domain.Category{}, fmt.Errorf("repo.CategoryRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgCategoryRepo) GetByID(ctx context.Context, id domain.CategoryID) (domain.Category, error) {
	const q = `SELECT ` + categoryColumns + ` FROM categories WHERE id = @id`

	result, err := scanCategory(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": string(id)}))
	if err != nil {
		return domain.Category{}, fmt.Errorf("repo.CategoryRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgCategoryRepo) List(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.db.Query(ctx, `SELECT `+categoryColumns+` FROM categories ORDER BY position DESC`)
	if err != nil {
		return nil, fmt.Errorf("repo.CategoryRepo.List: %w", err)
	}
	categories, err := collect(rows, scanCategory)
	if err != nil {
		return nil, fmt.Errorf("repo.CategoryRepo.List: scan: %w", err)
	}
	return categories, nil
}

func (r *pgCategoryRepo) Update(ctx context.Context, category domain.Category) (domain.Category, error) {
	const q = `
		UPDATE categories
		SET name = @name, icon = @icon, color = @color, is_default = @is_default
		WHERE id = @id
		RETURNING ` + categoryColumns

	result, err := scanCategory(r.db.QueryRow(ctx, q, categoryArgs(category)))
	if err != nil {
		return domain.Category{}, fmt.Errorf("repo.CategoryRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgCategoryRepo) Delete(ctx context.Context, id domain.CategoryID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM categories WHERE id = @id`, pgx.NamedArgs{"id": string(id)})
	if err != nil {
		return fmt.Errorf("repo.CategoryRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.CategoryRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func categoryArgs(c domain.Category) pgx.NamedArgs {
	return pgx.NamedArgs{
		"id":         string(c.ID),
		"name":       c.Name,
		"icon":       c.Icon,
		"color":      c.Color,
		"is_default": c.IsDefault,
	}
}

func scanCategory(s scanner) (domain.Category, error) {
	var (
		c  domain.Category
		id string
	)
	if err := s.Scan(&id, &c.Name, &c.Icon, &c.Color, &c.IsDefault); err != nil {
		return domain.Category{}, notFound(err)
	}
	c.ID = domain.CategoryID(id)
	return c, nil
}

// memCategoryRepo is the in-memory implementation of CategoryRepo.
type memCategoryRepo struct {
	t *memTable[domain.Category, domain.CategoryID]
}

// NewMemoryCategoryRepo constructs a CategoryRepo holding seed in memory, in the given order.
func NewMemoryCategoryRepo(seed []domain.Category) CategoryRepo {
	return &memCategoryRepo{t: newMemTable(seed,
		func(c domain.Category) domain.CategoryID { return c.ID },
		func(c domain.Category) domain.Category { return c })}
}

func (r *memCategoryRepo) Create(_ context.Context, category domain.Category) (domain.Category, error) {
	return r.t.insert(category), nil
}

func (r *memCategoryRepo) GetByID(_ context.Context, id domain.CategoryID) (domain.Category, error) {
	c, ok := r.t.get(id)
	if !ok {
		return domain.Category{}, fmt.Errorf("repo.CategoryRepo.GetByID: %w", domain.ErrNotFound)
	}
	return c, nil
}

func (r *memCategoryRepo) List(_ context.Context) ([]domain.Category, error) {
	return r.t.filter(nil), nil
}

func (r *memCategoryRepo) Update(_ context.Context, category domain.Category) (domain.Category, error) {
	c, ok := r.t.replace(category)
	if !ok {
		return domain.Category{}, fmt.Errorf("repo.CategoryRepo.Update: %w", domain.ErrNotFound)
	}
	return c, nil
}

func (r *memCategoryRepo) Delete(_ context.Context, id domain.CategoryID) error {
	if !r.t.remove(id) {
		return fmt.Errorf("repo.CategoryRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}
