// Package handler implements the HTTP API for the trip journal on a chi router.
// All handlers are methods on Server. Methods are split into resource files
// (trip.go, diary.go, expense.go, ...) but share the same Server struct.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/tripjournal/internal/domain"
	"github.com/pkordes/tripjournal/internal/service"
	"github.com/pkordes/tripjournal/internal/views"
)

// The interfaces below list only what the handlers call, so tests can inject
// a mock without a store behind it.

// TripServicer covers trips, their notes and the session selections.
type TripServicer interface {
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	GetByID(ctx context.Context, id domain.TripID) (domain.Trip, error)
	ListPaged(ctx context.Context, status domain.TripStatusFilter, order domain.TripSort, p domain.PaginationParams) ([]domain.Trip, int64, error)
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	Delete(ctx context.Context, id domain.TripID) error

	CreateNote(ctx context.Context, note domain.Note) (domain.Note, error)
	GetNote(ctx context.Context, id domain.NoteID) (domain.Note, error)
	ListNotesByTripID(ctx context.Context, tripID domain.TripID) ([]domain.Note, error)
	UpdateNote(ctx context.Context, note domain.Note) (domain.Note, error)
	DeleteNote(ctx context.Context, id domain.NoteID) error

	ActiveTrip() (domain.TripID, bool)
	SetActiveTrip(ctx context.Context, id *domain.TripID) error
	CurrentTab() domain.Tab
	SetCurrentTab(tab domain.Tab) error
}

// DiaryServicer covers diary entries.
type DiaryServicer interface {
	Create(ctx context.Context, diary domain.Diary) (domain.Diary, error)
	GetByID(ctx context.Context, id domain.DiaryID) (domain.Diary, error)
	ListByTripID(ctx context.Context, tripID domain.TripID) ([]domain.Diary, error)
	Update(ctx context.Context, diary domain.Diary) (domain.Diary, error)
	Delete(ctx context.Context, id domain.DiaryID) error
}

// ExpenseServicer covers expenses and the category settings.
type ExpenseServicer interface {
	Create(ctx context.Context, expense domain.Expense) (domain.Expense, error)
	GetByID(ctx context.Context, id domain.ExpenseID) (domain.Expense, error)
	ListByTripID(ctx context.Context, tripID domain.TripID) ([]domain.Expense, error)
	Update(ctx context.Context, expense domain.Expense) (domain.Expense, error)
	Delete(ctx context.Context, id domain.ExpenseID) error

	CreateCategory(ctx context.Context, c domain.Category) (domain.Category, error)
	GetCategory(ctx context.Context, id domain.CategoryID) (domain.Category, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	UpdateCategory(ctx context.Context, c domain.Category) (domain.Category, error)
	DeleteCategory(ctx context.Context, id domain.CategoryID) error
}

// BudgetServicer covers per-currency budgets.
type BudgetServicer interface {
	Create(ctx context.Context, b domain.Budget) (domain.Budget, error)
	GetByID(ctx context.Context, id domain.BudgetID) (domain.Budget, error)
	ListByTripID(ctx context.Context, tripID domain.TripID) ([]domain.Budget, error)
	Update(ctx context.Context, b domain.Budget) (domain.Budget, error)
	Delete(ctx context.Context, id domain.BudgetID) error
}

// ViewServicer serves the read-only screens.
type ViewServicer interface {
	TripStats(ctx context.Context, tripID domain.TripID) (views.Stats, error)
	TripProgress(ctx context.Context, tripID domain.TripID) (views.TripProgress, error)
	Diaries(ctx context.Context, tripID domain.TripID, query string) ([]views.MonthGroup, error)
	DiaryContent(ctx context.Context, diaryID domain.DiaryID) ([]views.Block, error)
	DiaryExpenses(ctx context.Context, diaryID domain.DiaryID) ([]domain.Expense, views.ExpenseSummary, error)
	ExpensesByDate(ctx context.Context, tripID domain.TripID) ([]views.DayGroup, error)
	CurrencyTotals(ctx context.Context, tripID domain.TripID) ([]service.CurrencyReport, error)
	Budgets(ctx context.Context, tripID domain.TripID) ([]views.Usage, error)
	Places(ctx context.Context, tripID domain.TripID) ([]views.CountryGroup, error)
	Timeline(ctx context.Context, tripID domain.TripID, country, location string) ([]domain.Diary, error)
}

// AuthServicer holds the signed-in flag and profile.
type AuthServicer interface {
	Login(email, password string) error
	SignUp(form service.Signup) (service.Profile, error)
	Logout()
	Authenticated() bool
	Profile() (service.Profile, bool)
}

// Exporter produces the flat export rows.
type Exporter interface {
	Export(ctx context.Context) ([]domain.ExportRow, error)
}

// Deps are the services a Server dispatches to. A nil field leaves its
// routes unregistered.
type Deps struct {
	Trips    TripServicer
	Diaries  DiaryServicer
	Expenses ExpenseServicer
	Budgets  BudgetServicer
	Views    ViewServicer
	Auth     AuthServicer
	Export   Exporter
	Log      *slog.Logger
}

// Server holds the handler dependencies.
type Server struct {
	trips    TripServicer
	diaries  DiaryServicer
	expenses ExpenseServicer
	budgets  BudgetServicer
	views    ViewServicer
	auth     AuthServicer
	export   Exporter
	log      *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
func NewServer(d Deps) *Server {
	log := d.Log
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		trips:    d.Trips,
		diaries:  d.Diaries,
		expenses: d.Expenses,
		budgets:  d.Budgets,
		views:    d.Views,
		auth:     d.Auth,
		export:   d.Export,
		log:      log,
	}
}

// NewHealthHandler returns a Server with no services, serving only /healthz.
func NewHealthHandler() *Server {
	return NewServer(Deps{})
}

// Routes builds the chi router for every registered service. Middleware is
// added by the caller.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/healthz", s.GetHealth)
	r.Get("/lookups", s.GetLookups)

	if s.auth != nil {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", s.Login)
			r.Post("/signup", s.SignUp)
			r.Post("/logout", s.Logout)
			r.Get("/session", s.GetAuthSession)
		})
	}

	if s.trips != nil {
		r.Route("/session", func(r chi.Router) {
			r.Get("/active-trip", s.GetActiveTrip)
			r.Put("/active-trip", s.PutActiveTrip)
			r.Get("/tab", s.GetTab)
			r.Put("/tab", s.PutTab)
		})
		r.Route("/trips", func(r chi.Router) {
			r.Get("/", s.ListTrips)
			r.Post("/", s.CreateTrip)
			r.Route("/{tripId}", func(r chi.Router) {
				r.Get("/", s.GetTrip)
				r.Put("/", s.UpdateTrip)
				r.Delete("/", s.DeleteTrip)
				r.Get("/notes", s.ListNotes)
				r.Post("/notes", s.CreateNote)
				if s.views != nil {
					r.Get("/stats", s.GetTripStats)
					r.Get("/progress", s.GetTripProgress)
				}
				if s.diaries != nil {
					r.Get("/diaries", s.ListDiaries)
					r.Post("/diaries", s.CreateDiary)
				}
				if s.expenses != nil {
					r.Get("/expenses", s.ListExpenses)
					r.Post("/expenses", s.CreateExpense)
				}
				if s.budgets != nil {
					r.Get("/budgets", s.ListBudgets)
					r.Post("/budgets", s.CreateBudget)
				}
			})
		})
		r.Route("/notes/{noteId}", func(r chi.Router) {
			r.Get("/", s.GetNote)
			r.Put("/", s.UpdateNote)
			r.Delete("/", s.DeleteNote)
		})
	}

	if s.diaries != nil {
		r.Route("/diaries/{diaryId}", func(r chi.Router) {
			r.Get("/", s.GetDiary)
			r.Put("/", s.UpdateDiary)
			r.Delete("/", s.DeleteDiary)
			if s.views != nil {
				r.Get("/content", s.GetDiaryContent)
				r.Get("/expenses", s.GetDiaryExpenses)
			}
		})
	}

	if s.expenses != nil {
		r.Route("/expenses/{expenseId}", func(r chi.Router) {
			r.Get("/", s.GetExpense)
			r.Put("/", s.UpdateExpense)
			r.Delete("/", s.DeleteExpense)
		})
		r.Route("/categories", func(r chi.Router) {
			r.Get("/", s.ListCategories)
			r.Post("/", s.CreateCategory)
			r.Get("/{categoryId}", s.GetCategory)
			r.Put("/{categoryId}", s.UpdateCategory)
			r.Delete("/{categoryId}", s.DeleteCategory)
		})
	}

	if s.budgets != nil {
		r.Route("/budgets/{budgetId}", func(r chi.Router) {
			r.Get("/", s.GetBudget)
			r.Put("/", s.UpdateBudget)
			r.Delete("/", s.DeleteBudget)
		})
	}

	if s.views != nil {
		r.Route("/views", func(r chi.Router) {
			r.Get("/diaries", s.ViewDiaries)
			r.Get("/expenses", s.ViewExpenses)
			r.Get("/currency-totals", s.ViewCurrencyTotals)
			r.Get("/budgets", s.ViewBudgets)
			r.Get("/places", s.ViewPlaces)
			r.Get("/places/timeline", s.ViewTimeline)
		})
	}

	if s.export != nil {
		r.Get("/export", s.GetExport)
	}

	return r
}

// Handler is Routes as a plain http.Handler.
func (s *Server) Handler() http.Handler { return s.Routes() }
