package domain

// Tip is a piece of gardening advice
type Tip struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Season      string `json:"season"`
	Emoji       string `json:"emoji"`
	Icon        string `json:"icon"`
	Seasonal    bool   `json:"seasonal"`
}

// Difficulty rates how hard a plant is to grow
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Plant describes something that grows well locally
type Plant struct {
	ID           int        `json:"id"`
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	Sun          string     `json:"sun"`
	PlantingTime string     `json:"planting_time"`
	Emoji        string     `json:"emoji"`
	Difficulty   Difficulty `json:"difficulty"`
	Type         string     `json:"type"`
}

// Video is a recorded workshop or walkthrough
type Video struct {
	ID              int      `json:"id"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Date            string   `json:"date"`
	Duration        string   `json:"duration"`
	ExternalVideoID string   `json:"external_video_id"`
	Instructor      string   `json:"instructor"`
	Difficulty      string   `json:"difficulty"`
	Tags            []string `json:"tags"`
	Thumbnail       string   `json:"thumbnail"`
}

// Event is a community meetup. Date is a display label and is never parsed.
type Event struct {
	Date     string `json:"date"`
	Event    string `json:"event"`
	Emoji    string `json:"emoji"`
	Location string `json:"location"`
}

// Contact is a submitted contact form
type Contact struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Subscription is a newsletter sign-up
type Subscription struct {
	Email string `json:"email"`
}
