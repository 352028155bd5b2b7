package domain

import "github.com/google/uuid"

// Each entity has its own identifier type so a DiaryID can never be passed
// where a TripID is expected. Values are opaque; new ones are random UUIDs.
type (
	TripID     string
	DiaryID    string
	ExpenseID  string
	CategoryID string
	BudgetID   string
	NoteID     string
)

func NewTripID() TripID         { return TripID(uuid.NewString()) }
func NewDiaryID() DiaryID       { return DiaryID(uuid.NewString()) }
func NewExpenseID() ExpenseID   { return ExpenseID(uuid.NewString()) }
func NewCategoryID() CategoryID { return CategoryID(uuid.NewString()) }
func NewBudgetID() BudgetID     { return BudgetID(uuid.NewString()) }
func NewNoteID() NoteID         { return NoteID(uuid.NewString()) }
