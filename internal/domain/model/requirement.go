package model

import "time"

// Category is the kind of act a requirement asks for.
type Category string

// Requirement categories.
const (
	CategoryMagician Category = "Magician"
	CategorySinger   Category = "Singer"
	CategoryMusician Category = "Musician"
	CategoryDJ       Category = "DJ"
	CategoryComedian Category = "Comedian"
	CategoryDancer   Category = "Dancer"
	CategoryBand     Category = "Band"
)

// Categories lists every category in display order.
func Categories() []Category {
	return []Category{
		CategoryMagician,
		CategorySinger,
		CategoryMusician,
		CategoryDJ,
		CategoryComedian,
		CategoryDancer,
		CategoryBand,
	}
}

// Valid reports whether c is one of the fixed categories.
func (c Category) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// Requirement is a booking opportunity posted on the community board.
// JSON names are part of the persisted format.
type Requirement struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    Category  `json:"category"`
	Date        string    `json:"date"` // YYYY-MM-DD
	Location    string    `json:"location"`
	Budget      float64   `json:"budget"`
	Contact     string    `json:"contact"`
	CreatedAt   time.Time `json:"createdAt"`
}
