package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Category is the closed set of activity tags an Item may carry.
type Category string

const (
	CategoryFood     Category = "food"
	CategoryShopping Category = "shopping"
	CategoryScenery  Category = "scenery"
	CategoryStay     Category = "stay"
	CategoryFun      Category = "fun"
	CategoryMisc     Category = "misc"
)

// Categories lists every valid category in display order.
var Categories = []Category{
	CategoryFood, CategoryShopping, CategoryScenery,
	CategoryStay, CategoryFun, CategoryMisc,
}

var categoryLabels = map[Category]string{
	CategoryFood:     "美食",
	CategoryShopping: "購物",
	CategoryScenery:  "風景",
	CategoryStay:     "住宿",
	CategoryFun:      "遊樂",
	CategoryMisc:     "其他",
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// Label returns the display label for c, or "" for an unknown category.
func (c Category) Label() string {
	return categoryLabels[c]
}

// ParseCategory validates s as a category. An empty string yields misc.
func ParseCategory(s string) (Category, error) {
	if s == "" {
		return CategoryMisc, nil
	}
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("%w: unknown category %q", ErrValidation, s)
	}
	return c, nil
}

// Cost is an item's optional cost. It is kept as the text the user typed
// and aggregated through Value. JSON input may be a string or a number.
type Cost string

// MaxCostValue bounds the magnitude of Cost.Value so day totals cannot
// overflow.
const MaxCostValue = 99_999_999

// Value returns the integer prefix of the cost text: optional leading
// whitespace, an optional sign, then digits. Anything else is 0.
// Magnitudes above MaxCostValue saturate at MaxCostValue.
func (c Cost) Value() int {
	s := strings.TrimLeft(string(c), " \t\n\r")
	neg := false
	if s != "" && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		s = s[1:]
	}
	n := 0
	for i := 0; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		n = n*10 + int(s[i]-'0')
		if n > MaxCostValue {
			n = MaxCostValue
			break
		}
	}
	if neg {
		return -n
	}
	return n
}

// UnmarshalJSON accepts a JSON string, a JSON number, or null.
func (c *Cost) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*c = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = Cost(s)
		return nil
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("cost must be a string or number: %w", err)
		}
		*c = Cost(n.String())
		return nil
	}
}

// Item is one scheduled activity within a day.
// Time is "HH:MM" (24h); lexicographic order equals chronological order.
type Item struct {
	ID       string   `json:"id"`
	Time     string   `json:"time"`
	Title    string   `json:"title"`
	Location string   `json:"location"`
	Category Category `json:"category"`
	Cost     Cost     `json:"cost"`
	Notes    string   `json:"notes"`
}

// MapQuery returns the string used to geocode the item: its location when
// present, otherwise its title.
func (i Item) MapQuery() string {
	if strings.TrimSpace(i.Location) != "" {
		return i.Location
	}
	return i.Title
}

// ItemPatch lists the mutable fields of an Item. Nil fields keep their
// current value. ID is never patched.
type ItemPatch struct {
	Time     *string   `json:"time,omitempty"`
	Title    *string   `json:"title,omitempty"`
	Location *string   `json:"location,omitempty"`
	Category *Category `json:"category,omitempty"`
	Cost     *Cost     `json:"cost,omitempty"`
	Notes    *string   `json:"notes,omitempty"`
}

// Apply returns item with the patch's non-nil fields merged in.
func (p ItemPatch) Apply(item Item) Item {
	if p.Time != nil {
		item.Time = *p.Time
	}
	if p.Title != nil {
		item.Title = *p.Title
	}
	if p.Location != nil {
		item.Location = *p.Location
	}
	if p.Category != nil {
		item.Category = *p.Category
	}
	if p.Cost != nil {
		item.Cost = *p.Cost
	}
	if p.Notes != nil {
		item.Notes = *p.Notes
	}
	return item
}

// ValidateItem enforces the field contract shared by add and edit:
//   - Title must be non-empty (whitespace-only titles are rejected).
//   - Time, if set, must be HH:MM.
//   - Category must be one of Categories.
func ValidateItem(item Item) error {
	if strings.TrimSpace(item.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if item.Time != "" && !validClock(item.Time) {
		return fmt.Errorf("%w: time must be HH:MM, got %q", ErrValidation, item.Time)
	}
	if !item.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q", ErrValidation, item.Category)
	}
	return nil
}

// ValidatePatch applies the ValidateItem rules to the fields p sets, so an
// edit is judged only on what it changes.
func ValidatePatch(p ItemPatch) error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if p.Time != nil && *p.Time != "" && !validClock(*p.Time) {
		return fmt.Errorf("%w: time must be HH:MM, got %q", ErrValidation, *p.Time)
	}
	if p.Category != nil && !p.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q", ErrValidation, *p.Category)
	}
	return nil
}

func validClock(s string) bool {
	if len(s) != 5 || s[2] != ':' {
		return false
	}
	for _, i := range []int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	h := int(s[0]-'0')*10 + int(s[1]-'0')
	m := int(s[3]-'0')*10 + int(s[4]-'0')
	return h < 24 && m < 60
}
