package content

import (
	"strings"
	"time"

	"github.com/balbriggan-gardens/garden/internal/domain"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FilterBySeason keeps tips whose season equals season, ignoring case.
// Order is preserved.
func FilterBySeason(tips []domain.Tip, season string) []domain.Tip {
	out := []domain.Tip{}
	for _, t := range tips {
		if strings.EqualFold(t.Season, season) {
			out = append(out, t)
		}
	}
	return out
}

// FilterSeasonal keeps tips flagged as seasonal. Order is preserved.
func FilterSeasonal(tips []domain.Tip) []domain.Tip {
	out := []domain.Tip{}
	for _, t := range tips {
		if t.Seasonal {
			out = append(out, t)
		}
	}
	return out
}

// FilterPlantsByType keeps plants of the given type, ignoring case.
// An empty type or "all" keeps everything.
func FilterPlantsByType(plants []domain.Plant, plantType string) []domain.Plant {
	plantType = strings.TrimSpace(plantType)
	if plantType == "" || strings.EqualFold(plantType, "all") {
		return append([]domain.Plant{}, plants...)
	}
	out := []domain.Plant{}
	for _, p := range plants {
		if strings.EqualFold(p.Type, plantType) {
			out = append(out, p)
		}
	}
	return out
}

// Head returns at most the first n items
func Head[T any](items []T, n int) []T {
	if n < 0 {
		n = 0
	}
	if len(items) <= n {
		return items
	}
	return items[:n]
}

// SeasonFor maps a date to the Irish meteorological season
func SeasonFor(t time.Time) string {
	switch t.Month() {
	case time.December, time.January, time.February:
		return "winter"
	case time.March, time.April, time.May:
		return "spring"
	case time.June, time.July, time.August:
		return "summer"
	default:
		return "autumn"
	}
}

// SeasonTitle formats a season label for display ("all year" -> "All Year")
func SeasonTitle(season string) string {
	return cases.Title(language.English).String(strings.TrimSpace(season))
}
