package views

import (
	"slices"
	"strings"

	"github.com/pkordes/tripjournal/internal/domain"
)

// CountryGroup is one country on the places screen.
type CountryGroup struct {
	Country   string
	Locations []string // distinct, in order of first appearance
	Diaries   []domain.Diary
}

// DiariesByCountry groups diaries by country in order of first appearance.
// Diaries without a country are left out.
func DiariesByCountry(diaries []domain.Diary) []CountryGroup {
	var groups []CountryGroup
	idx := make(map[string]int)
	for _, d := range diaries {
		if d.Country == "" {
			continue
		}
		i, ok := idx[d.Country]
		if !ok {
			i = len(groups)
			idx[d.Country] = i
			groups = append(groups, CountryGroup{Country: d.Country})
		}
		g := &groups[i]
		g.Diaries = append(g.Diaries, d)
		if d.Location != "" && !slices.Contains(g.Locations, d.Location) {
			g.Locations = append(g.Locations, d.Location)
		}
	}
	return groups
}

// DiaryTimeline drills into one country, and into one location of it when
// location is not empty. Results run oldest first. An empty country yields nothing.
func DiaryTimeline(diaries []domain.Diary, country, location string) []domain.Diary {
	country = strings.TrimSpace(country)
	if country == "" {
		return []domain.Diary{}
	}
	out := make([]domain.Diary, 0)
	for _, d := range diaries {
		if d.Country != country {
			continue
		}
		if location != "" && d.Location != location {
			continue
		}
		out = append(out, d)
	}
	slices.SortStableFunc(out, func(a, b domain.Diary) int { return a.Date.Compare(b.Date) })
	return out
}
