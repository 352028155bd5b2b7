package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/tripjournal/internal/domain"
)

// DiaryRepo defines the persistence operations for Diary entries.
type DiaryRepo interface {
	// Create stores a new diary (ID already assigned) at the head of the list.
	Create(ctx context.Context, diary domain.Diary) (domain.Diary, error)

	// GetByID retrieves a single diary.
	// Returns domain.ErrNotFound if no diary with that ID exists.
	GetByID(ctx context.Context, id domain.DiaryID) (domain.Diary, error)

	// List returns every diary, newest first.
	List(ctx context.Context) ([]domain.Diary, error)

	// ListByTripID returns the diaries of one trip, newest first.
	ListByTripID(ctx context.Context, tripID domain.TripID) ([]domain.Diary, error)

	// Update replaces an existing diary.
	// Returns domain.ErrNotFound if no diary with that ID exists.
	Update(ctx context.Context, diary domain.Diary) (domain.Diary, error)

	// Delete removes a diary by ID. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id domain.DiaryID) error

	// DeleteByTripID removes every diary of a trip and returns how many went.
	DeleteByTripID(ctx context.Context, tripID domain.TripID) (int64, error)
}

const diaryColumns = `id, trip_id, title, date, time, location, country, content, photos, weather, temperature, tags`

// pgDiaryRepo is the Postgres implementation of DiaryRepo.
type pgDiaryRepo struct {
	db db
}

// NewDiaryRepo constructs a DiaryRepo backed by the provided db connection.
func NewDiaryRepo(db db) DiaryRepo {
	return &pgDiaryRepo{db: db}
}

func (r *pgDiaryRepo) Create(ctx context.Context, diary domain.Diary) (domain.Diary, error) {
	const q = `
		INSERT INTO diaries (id, trip_id, title, date, time, location, country, content, photos, weather, temperature, tags)
		VALUES (@id, @trip_id, @title, @date, @time, @location, @country, @content, @photos, @weather, @temperature, @tags)
		RETURNING ` + diaryColumns

	result, err := scanDiary(r.db.QueryRow(ctx, q, diaryArgs(diary)))
	if err != nil {
		return domain.Diary{}, fmt.Errorf("repo.DiaryRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgDiaryRepo) GetByID(ctx context.Context, id domain.DiaryID) (domain.Diary, error) {
	const q = `SELECT ` + diaryColumns + ` FROM diaries WHERE id = @id`

	result, err := scanDiary(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": string(id)}))
	if err != nil {
		return domain.Diary{}, fmt.Errorf("repo.DiaryRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgDiaryRepo) List(ctx context.Context) ([]domain.Diary, error) {
	const q = `SELECT ` + diaryColumns + ` FROM diaries ORDER BY position DESC`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.DiaryRepo.List: %w", err)
	}
	diaries, err := collect(rows, scanDiary)
	if err != nil {
		return nil, fmt.Errorf("repo.DiaryRepo.List: scan: %w", err)
	}
	return diaries, nil
}

func (r *pgDiaryRepo) ListByTripID(ctx context.Context, tripID domain.TripID) ([]domain.Diary, error) {
	const q = `SELECT ` + diaryColumns + ` FROM diaries WHERE trip_id = @trip_id ORDER BY position DESC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": string(tripID)})
	if err != nil {
		return nil, fmt.Errorf("repo.DiaryRepo.ListByTripID: %w", err)
	}
	diaries, err := collect(rows, scanDiary)
	if err != nil {
		return nil, fmt.Errorf("repo.DiaryRepo.ListByTripID: scan: %w", err)
	}
	return diaries, nil
}

func (r *pgDiaryRepo) Update(ctx context.Context, diary domain.Diary) (domain.Diary, error) {
	const q = `
		UPDATE diaries
		SET trip_id     = @trip_id,
		    title       = @title,
		    date        = @date,
		    time        = @time,
		    location    = @location,
		    country     = @country,
		    content     = @content,
		    photos      = @photos,
		    weather     = @weather,
		    temperature = @temperature,
		    tags        = @tags
		WHERE id = @id
		RETURNING ` + diaryColumns

	result, err := scanDiary(r.db.QueryRow(ctx, q, diaryArgs(diary)))
	if err != nil {
		return domain.Diary{}, fmt.Errorf("repo.DiaryRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgDiaryRepo) Delete(ctx context.Context, id domain.DiaryID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM diaries WHERE id = @id`, pgx.NamedArgs{"id": string(id)})
	if err != nil {
		return fmt.Errorf("repo.DiaryRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.DiaryRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgDiaryRepo) DeleteByTripID(ctx context.Context, tripID domain.TripID) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM diaries WHERE trip_id = @trip_id`, pgx.NamedArgs{"trip_id": string(tripID)})
	if err != nil {
		return 0, fmt.Errorf("repo.DiaryRepo.DeleteByTripID: %w", err)
	}
	return tag.RowsAffected(), nil
}

func diaryArgs(d domain.Diary) pgx.NamedArgs {
	return pgx.NamedArgs{
		"id":          string(d.ID),
		"trip_id":     string(d.TripID),
		"title":       d.Title,
		"date":        d.Date,
		"time":        d.Time,
		"location":    d.Location,
		"country":     d.Country,
		"content":     d.Content,
		"photos":      orEmpty(d.Photos),
		"weather":     d.Weather,
		"temperature": d.Temperature, // nil becomes NULL
		"tags":        orEmpty(d.Tags),
	}
}

func scanDiary(s scanner) (domain.Diary, error) {
	var (
		d      domain.Diary
		id     string
		tripID string
		date   pgtype.Date
	)

	err := s.Scan(&id, &tripID, &d.Title, &date, &d.Time, &d.Location, &d.Country,
		&d.Content, &d.Photos, &d.Weather, &d.Temperature, &d.Tags)
	if err != nil {
		return domain.Diary{}, notFound(err)
	}

	d.ID = domain.DiaryID(id)
	d.TripID = domain.TripID(tripID)
	d.Date = dateOf(date)
	return d, nil
}

// memDiaryRepo is the in-memory implementation of DiaryRepo.
type memDiaryRepo struct {
	t *memTable[domain.Diary, domain.DiaryID]
}

// NewMemoryDiaryRepo constructs a DiaryRepo holding seed in memory, in the given order.
func NewMemoryDiaryRepo(seed []domain.Diary) DiaryRepo {
	return &memDiaryRepo{t: newMemTable(seed, func(d domain.Diary) domain.DiaryID { return d.ID }, cloneDiary)}
}

func (r *memDiaryRepo) Create(_ context.Context, diary domain.Diary) (domain.Diary, error) {
	return r.t.insert(diary), nil
}

func (r *memDiaryRepo) GetByID(_ context.Context, id domain.DiaryID) (domain.Diary, error) {
	d, ok := r.t.get(id)
	if !ok {
		return domain.Diary{}, fmt.Errorf("repo.DiaryRepo.GetByID: %w", domain.ErrNotFound)
	}
	return d, nil
}

func (r *memDiaryRepo) List(_ context.Context) ([]domain.Diary, error) {
	return r.t.filter(nil), nil
}

func (r *memDiaryRepo) ListByTripID(_ context.Context, tripID domain.TripID) ([]domain.Diary, error) {
	return r.t.filter(func(d domain.Diary) bool { return d.TripID == tripID }), nil
}

func (r *memDiaryRepo) Update(_ context.Context, diary domain.Diary) (domain.Diary, error) {
	d, ok := r.t.replace(diary)
	if !ok {
		return domain.Diary{}, fmt.Errorf("repo.DiaryRepo.Update: %w", domain.ErrNotFound)
	}
	return d, nil
}

func (r *memDiaryRepo) Delete(_ context.Context, id domain.DiaryID) error {
	if !r.t.remove(id) {
		return fmt.Errorf("repo.DiaryRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *memDiaryRepo) DeleteByTripID(_ context.Context, tripID domain.TripID) (int64, error) {
	return r.t.removeWhere(func(d domain.Diary) bool { return d.TripID == tripID }), nil
}

func cloneDiary(d domain.Diary) domain.Diary {
	d.Photos = cloneStrings(d.Photos)
	d.Tags = cloneStrings(d.Tags)
	if d.Temperature != nil {
		t := *d.Temperature
		d.Temperature = &t
	}
	return d
}
