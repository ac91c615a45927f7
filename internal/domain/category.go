package domain

import (
	"encoding/json"
	"strings"

	"github.com/Yimmi-urbano/dencia-app-front/pkg/e"
)

type Category string

const (
	CategoryRobbery   Category = "robo"
	CategoryExtortion Category = "extorsion"
)

// categoryAll is what multi-select widgets send when nothing concrete is chosen.
const categoryAll = "all"

var knownCategories = []Category{CategoryRobbery, CategoryExtortion}

func Categories() []Category {
	out := make([]Category, len(knownCategories))
	copy(out, knownCategories)
	return out
}

func (c Category) Known() bool {
	for _, k := range knownCategories {
		if c == k {
			return true
		}
	}
	return false
}

func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return "", e.NewValidation("incidentType", "no category selected")
	case strings.EqualFold(s, categoryAll):
		return "", e.NewValidation("incidentType", "a single category must be selected")
	}
	c := Category(strings.ToLower(s))
	if !c.Known() {
		return "", e.NewValidation("incidentType", "unknown category "+s)
	}
	return c, nil
}

// CategoryChoice holds at most one selected category.
type CategoryChoice struct {
	category Category
	selected bool
}

func NoCategory() CategoryChoice { return CategoryChoice{} }

func Choose(c Category) (CategoryChoice, error) {
	if !c.Known() {
		return CategoryChoice{}, e.NewValidation("incidentType", "unknown category "+string(c))
	}
	return CategoryChoice{category: c, selected: true}, nil
}

func (c CategoryChoice) Get() (Category, bool) {
	return c.category, c.selected
}

func (c CategoryChoice) String() string {
	if !c.selected {
		return ""
	}
	return string(c.category)
}

func (c CategoryChoice) MarshalJSON() ([]byte, error) {
	if !c.selected {
		return []byte("null"), nil
	}
	return json.Marshal(string(c.category))
}

func (c *CategoryChoice) UnmarshalJSON(data []byte) error {
	var raw *string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil || *raw == "" {
		*c = NoCategory()
		return nil
	}
	cat, err := ParseCategory(*raw)
	if err != nil {
		return err
	}
	*c = CategoryChoice{category: cat, selected: true}
	return nil
}
