// Package fixtures holds the seed data the app boots with and the static
// lookup tables used to label categories and currencies.
//
// Every exported function returns a fresh copy, so callers may mutate the
// result without affecting later seeds.
package fixtures

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pkordes/tripjournal/internal/domain"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func usd(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func diaryRef(id domain.DiaryID) *domain.DiaryID { return &id }

func celsius(c float64) *float64 { return &c }

// Trips returns the seed trips, newest first.
func Trips() []domain.Trip {
	return []domain.Trip{
		{
			ID:         "1",
			Title:      "2026 South America",
			CoverImage: "https://images.unsplash.com/photo-1526392060635-9d6019884377?w=800",
			StartDate:  day(2026, time.March, 1),
			EndDate:    day(2026, time.May, 31),
			Countries:  []string{"Peru", "Bolivia", "Chile", "Argentina", "Brazil"},
			Status:     domain.TripOngoing,
		},
		{
			ID:         "2",
			Title:      "2025 Japan",
			CoverImage: "https://images.unsplash.com/photo-1493976040374-85c8e12f0c0e?w=800",
			StartDate:  day(2025, time.December, 20),
			EndDate:    day(2025, time.December, 30),
			Countries:  []string{"Japan"},
			Status:     domain.TripCompleted,
		},
	}
}

// Diaries returns the seed diary entries in list order.
func Diaries() []domain.Diary {
	return []domain.Diary{
		{
			ID:       "1",
			TripID:   "1",
			Title:    "Machu Picchu",
			Date:     day(2026, time.March, 15),
			Time:     "14:30",
			Location: "Machu Picchu, Cusco",
			Country:  "Peru",
			Content: "Made it to Machu Picchu today. The Inca ruins showing through the clouds were unreal. " +
				"Up at 4am for the bus and the sunrise was worth every minute.",
			Photos: []string{
				"https://images.unsplash.com/photo-1587595431973-160d0d94add1?w=800",
				"https://images.unsplash.com/photo-1526392060635-9d6019884377?w=800",
				"https://images.unsplash.com/photo-1580066350866-c6e0bc1a7e2a?w=800",
			},
			Weather:     "sunny",
			Temperature: celsius(18),
			Tags:        []string{"ruins", "sunrise", "moved"},
		},
		{
			ID:       "4",
			TripID:   "1",
			Title:    "Old town of Cusco",
			Date:     day(2026, time.March, 14),
			Time:     "11:00",
			Location: "Cusco",
			Country:  "Peru",
			Content: "Walked the lanes of Cusco. The old Inca capital still mixes stone walls with colonial buildings.\n\n" +
				"Chatted with locals on the Plaza de Armas and bought an alpaca hat. The altitude hurt a little until the coca tea kicked in.\n\n" +
				"Tried cuy for dinner. Took some courage, turned out fine!",
			Photos: []string{
				"https://images.unsplash.com/photo-1645740717221-00651b431a23?w=1080",
				"https://images.unsplash.com/photo-1659356413086-b98e1b07f16e?w=1080",
			},
			Weather:     "sunny",
			Temperature: celsius(16),
			Tags:        []string{"culture", "food", "streets"},
		},
		{
			ID:       "5",
			TripID:   "1",
			Title:    "Rainbow Mountain trek",
			Date:     day(2026, time.March, 17),
			Time:     "07:00",
			Location: "Vinicunca",
			Country:  "Peru",
			Content: "Left at 3am for Rainbow Mountain. Three hard hours up to 5,200m, and the view at the top was spectacular.\n\n" +
				"Red, yellow and green layers stacked on one mountain. I kept stopping for breath and every stop had a better view.\n\n" +
				"Hot cocoa at the summit. Something I will never forget.",
			Photos: []string{
				"https://images.unsplash.com/photo-1545330785-15356daae141?w=1080",
				"https://images.unsplash.com/photo-1739519309379-05e5ad1038dc?w=1080",
			},
			Weather:     "sunny",
			Temperature: celsius(2),
			Tags:        []string{"trekking", "nature", "adventure"},
		},
		{
			ID:          "2",
			TripID:      "1",
			Title:       "Uyuni salt flats",
			Date:        day(2026, time.March, 16),
			Time:        "10:00",
			Location:    "Uyuni",
			Country:     "Bolivia",
			Content:     "Like walking on the sky. The endless white flats mirror the clouds perfectly.",
			Photos:      []string{"https://images.unsplash.com/photo-1553603227-2358aabe821e?w=800"},
			Weather:     "sunny",
			Temperature: celsius(15),
			Tags:        []string{"nature", "desert", "scenery"},
		},
		{
			ID:          "3",
			TripID:      "2",
			Title:       "First day in Tokyo",
			Date:        day(2025, time.December, 20),
			Time:        "18:00",
			Location:    "Shibuya",
			Country:     "Japan",
			Content:     "Finally in Tokyo. The crowd at the Shibuya scramble is something else.",
			Photos:      []string{"https://images.unsplash.com/photo-1540959733332-eab4deabeeaf?w=800"},
			Weather:     "cloudy",
			Temperature: celsius(8),
			Tags:        []string{"city", "shopping"},
		},
	}
}

// Expenses returns the seed expenses in list order.
func Expenses() []domain.Expense {
	type row struct {
		id       domain.ExpenseID
		trip     domain.TripID
		diary    domain.DiaryID
		date     time.Time
		category domain.CategoryKey
		amount   int64
		currency string
		memo     string
	}
	rows := []row{
		{"1", "1", "1", day(2026, time.March, 15), domain.CategoryActivity, 50, "USD", "Machu Picchu entry"},
		{"2", "1", "1", day(2026, time.March, 15), domain.CategoryFood, 30, "USD", "Lunch"},
		{"3", "1", "1", day(2026, time.March, 15), domain.CategoryTransport, 20, "USD", "Bus round trip"},
		{"4", "1", "2", day(2026, time.March, 16), domain.CategoryActivity, 60, "USD", "Uyuni tour"},
		{"5", "1", "2", day(2026, time.March, 16), domain.CategoryFood, 20, "USD", "Dinner"},
		{"6", "1", "", day(2026, time.March, 14), domain.CategoryAccommodation, 60, "USD", "Hostel, one night"},
		{"7", "1", "", day(2026, time.March, 14), domain.CategoryFood, 25, "USD", "Dinner"},
		{"8", "1", "", day(2026, time.March, 14), domain.CategoryCafe, 8, "USD", "Coffee"},
		{"9", "1", "", day(2026, time.March, 13), domain.CategoryTransport, 45, "USD", "Airport taxi"},
		{"10", "1", "", day(2026, time.March, 13), domain.CategoryFood, 35, "USD", "Welcome dinner"},
		{"11", "1", "", day(2026, time.March, 17), domain.CategoryShopping, 80, "USD", "Souvenirs"},
		{"12", "1", "", day(2026, time.March, 17), domain.CategoryCafe, 12, "USD", "Latte"},
		{"13", "2", "", day(2025, time.December, 20), domain.CategoryFood, 3500, "JPY", "Ramen"},
		{"14", "2", "", day(2025, time.December, 20), domain.CategoryTransport, 2000, "JPY", "Subway"},
	}

	out := make([]domain.Expense, len(rows))
	for i, r := range rows {
		e := domain.Expense{
			ID:       r.id,
			TripID:   r.trip,
			Date:     r.date,
			Category: r.category,
			Amount:   usd(r.amount),
			Currency: r.currency,
			Memo:     r.memo,
		}
		if r.diary != "" {
			e.DiaryID = diaryRef(r.diary)
		}
		out[i] = e
	}
	return out
}

// Categories returns the default spend categories.
func Categories() []domain.Category {
	return []domain.Category{
		{ID: "1", Name: "Meals", Icon: "restaurant", Color: "#FF5722", IsDefault: true},
		{ID: "2", Name: "Transport", Icon: "directions_bus", Color: "#009688", IsDefault: true},
		{ID: "3", Name: "Lodging", Icon: "hotel", Color: "#673AB7", IsDefault: true},
		{ID: "4", Name: "Activities", Icon: "directions_walk", Color: "#FF9800", IsDefault: true},
		{ID: "5", Name: "Shopping", Icon: "shopping_cart", Color: "#FFC107", IsDefault: true},
		{ID: "6", Name: "Other", Icon: "more_horiz", Color: "#9E9E9E", IsDefault: true},
	}
}

// Budgets returns the seed budgets.
func Budgets() []domain.Budget {
	return []domain.Budget{
		{ID: "1", TripID: "1", Currency: "USD", Amount: decimal.NewFromInt(5000)},
		{ID: "2", TripID: "1", Currency: "KRW", Amount: decimal.NewFromInt(1000000)},
		{ID: "3", TripID: "2", Currency: "JPY", Amount: decimal.NewFromInt(200000)},
	}
}

// Notes returns the seed trip notes.
func Notes() []domain.Note {
	return []domain.Note{
		{
			ID:        "1",
			TripID:    "1",
			Title:     "Places to see in Cusco",
			Content:   "- San Pedro market (try the street food)\n- Sacsayhuaman ruins\n- Qorikancha (temple of the sun)\n- Plaza de Armas",
			Tags:      []string{"cusco", "sightseeing"},
			CreatedAt: day(2026, time.February, 28),
			UpdatedAt: day(2026, time.March, 1),
		},
		{
			ID:        "2",
			TripID:    "1",
			Title:     "Packing checklist",
			Content:   "[x] altitude pills\n[x] sunscreen\n[ ] power bank\n[ ] warm layers for dawn treks\n[ ] water bottle\n[ ] snacks",
			Tags:      []string{"packing", "checklist"},
			CreatedAt: day(2026, time.February, 25),
			UpdatedAt: day(2026, time.March, 10),
		},
		{
			ID:        "3",
			TripID:    "1",
			Title:     "Restaurants locals recommend",
			Content:   "Cusco: Chicha por Gaston Acurio\nLima: La Mar Cebicheria\nUyuni: Minuteman Revolutionary Pizza",
			Tags:      []string{"restaurants", "food"},
			CreatedAt: day(2026, time.March, 5),
			UpdatedAt: day(2026, time.March, 5),
		},
		{
			ID:        "4",
			TripID:    "2",
			Title:     "Tokyo tips",
			Content:   "- Buy the JR pass\n- Ichiran ramen (Shibuya branch)\n- Tsukiji market early in the morning",
			Tags:      []string{"tokyo", "tips"},
			CreatedAt: day(2025, time.December, 15),
			UpdatedAt: day(2025, time.December, 18),
		},
	}
}
