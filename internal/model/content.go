package model

// Content kinds double as cache-key suffixes and export sheet names.
const (
	KindIntro        = "intro"
	KindHistory      = "history"
	KindAchievements = "achievements"
	KindPartners     = "partners"
	KindCampus       = "campus"
)

// IntroSlide is one landing-page hero slide.
type IntroSlide struct {
	ID           int     `json:"id"`
	Title        string  `json:"title"`
	Description  *string `json:"description"`
	ImageURL     *string `json:"image_url"`
	DisplayOrder int     `json:"display_order"`
}

// HistoryEvent is a milestone on the institution timeline.
type HistoryEvent struct {
	ID          int     `json:"id"`
	YearDate    string  `json:"year_date"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
}

// Achievement is a headline number such as "70+ years" or "30,000 students".
type Achievement struct {
	ID           int     `json:"id"`
	Title        string  `json:"title"`
	Description  *string `json:"description"`
	Prefix       *string `json:"prefix"`
	NumberVal    int64   `json:"number_val"`
	Suffix       *string `json:"suffix"`
	ImageURL     *string `json:"image_url"`
	DisplayOrder int     `json:"display_order"`
}

// Partner is a corporate or academic partner shown in the logo wall.
type Partner struct {
	ID         int     `json:"id"`
	Name       string  `json:"name"`
	LogoURL    *string `json:"logo_url"`
	WebsiteURL *string `json:"website_url"`
}
