package content

import "github.com/balbriggan-gardens/garden/internal/domain"

// Fallback data served when a resource file is missing or unreadable.
// The package-level tables are never handed out directly; callers get copies.

var fallbackTips = [...]domain.Tip{
	{
		ID:          1,
		Title:       "Start Small",
		Description: "Begin with herbs in containers on your balcony or windowsill",
		Season:      "All Year",
		Emoji:       "🌱",
		Icon:        "fas fa-seedling",
		Seasonal:    false,
	},
	{
		ID:          2,
		Title:       "Use Coastal Winds",
		Description: "Balbriggan's sea breeze helps prevent plant diseases",
		Season:      "Summer",
		Emoji:       "🌊",
		Icon:        "fas fa-wind",
		Seasonal:    true,
	},
	{
		ID:          3,
		Title:       "Saturday Market",
		Description: "Visit Balbriggan Farmers Market for local plants and advice",
		Season:      "All Year",
		Emoji:       "🛒",
		Icon:        "fas fa-shopping-basket",
		Seasonal:    false,
	},
}

var fallbackPlants = [...]domain.Plant{
	{
		ID:           1,
		Name:         "Sea Kale",
		Description:  "Loves our coastal breeze! Edible and beautiful.",
		Sun:          "Full Sun",
		PlantingTime: "Spring",
		Emoji:        "🌊",
		Difficulty:   domain.DifficultyEasy,
		Type:         "vegetable",
	},
	{
		ID:           2,
		Name:         "Balbriggan Berries",
		Description:  "Strawberries & raspberries thrive in our microclimate.",
		Sun:          "6+ hours",
		PlantingTime: "March-May",
		Emoji:        "🍓",
		Difficulty:   domain.DifficultyMedium,
		Type:         "fruit",
	},
	{
		ID:           3,
		Name:         "Coastal Herbs",
		Description:  "Rosemary, thyme & sage love the seaside air.",
		Sun:          "Full Sun",
		PlantingTime: "April-June",
		Emoji:        "🌿",
		Difficulty:   domain.DifficultyEasy,
		Type:         "herb",
	},
	{
		ID:           4,
		Name:         "Dublin Potatoes",
		Description:  "Classic Irish staple - grows perfectly here!",
		Sun:          "Partial Sun",
		PlantingTime: "St. Patrick's Day",
		Emoji:        "🥔",
		Difficulty:   domain.DifficultyEasy,
		Type:         "vegetable",
	},
}

var fallbackVideos = [...]domain.Video{
	{
		ID:              1,
		Title:           "Container Herbs for Beginners",
		Description:     "Pot, soil and watering basics for a windowsill herb garden.",
		Date:            "2024-04-06",
		Duration:        "12:30",
		ExternalVideoID: "kX3nq8Lr2Vw",
		Instructor:      "Community Garden Team",
		Difficulty:      string(domain.DifficultyEasy),
		Tags:            []string{"herbs", "containers", "beginner"},
		Thumbnail:       "https://img.youtube.com/vi/kX3nq8Lr2Vw/hqdefault.jpg",
	},
}

var communityEvents = [...]domain.Event{
	{Date: "Every Saturday", Event: "Farmers Market", Emoji: "🛒", Location: "Balbriggan Town Centre"},
	{Date: "First Sunday", Event: "Seed Swap", Emoji: "🌱", Location: "Balbriggan Library"},
	{Date: "March 17", Event: "Potato Planting Day", Emoji: "🥔", Location: "Ardgillan Castle Gardens"},
	{Date: "Late June", Event: "Coastal Garden Tour", Emoji: "🌊", Location: "Balbriggan Harbour"},
}

func defaultTips() []domain.Tip {
	return append([]domain.Tip(nil), fallbackTips[:]...)
}

func defaultPlants() []domain.Plant {
	return append([]domain.Plant(nil), fallbackPlants[:]...)
}

func defaultVideos() []domain.Video {
	out := make([]domain.Video, len(fallbackVideos))
	for i, v := range fallbackVideos {
		v.Tags = append([]string(nil), v.Tags...)
		out[i] = v
	}
	return out
}

// Events returns the community events calendar.
func Events() []domain.Event {
	return append([]domain.Event(nil), communityEvents[:]...)
}
