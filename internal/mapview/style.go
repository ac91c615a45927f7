package mapview

import "github.com/Yimmi-urbano/dencia-app-front/internal/domain"

// Style is how a marker is drawn: a translucent circle.
type Style struct {
	Name    string  `json:"name"`
	Color   string  `json:"color"`
	Opacity float64 `json:"opacity"`
	Radius  int     `json:"radius"`
}

var (
	StyleRobbery   = Style{Name: "robbery", Color: "orange", Opacity: 0.35, Radius: 25}
	StyleExtortion = Style{Name: "extortion", Color: "red", Opacity: 0.35, Radius: 25}
	StyleDefault   = Style{Name: "default", Color: "gray", Opacity: 0.35, Radius: 25}
)

var categoryStyles = map[domain.Category]Style{
	domain.CategoryRobbery:   StyleRobbery,
	domain.CategoryExtortion: StyleExtortion,
}

// Classify never fails: unknown categories get StyleDefault.
func Classify(c domain.Category) Style {
	if s, ok := categoryStyles[c]; ok {
		return s
	}
	return StyleDefault
}
