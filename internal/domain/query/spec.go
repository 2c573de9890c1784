// Package query defines the structured recipe query contract produced by the
// translator and its compilation into the downstream search API's
// query-string dialect.
package query

import (
	"fmt"

	"github.com/plateful/dishq/internal/domain"
)

// Cuisine is a closed cuisine vocabulary shared by the include and exclude
// variants so the two cannot drift apart.
type Cuisine string

// Cuisines lists every accepted cuisine value, in canonical order.
var Cuisines = []Cuisine{
	"African", "Asian", "American", "British", "Cajun", "Caribbean",
	"Chinese", "Eastern European", "European", "French", "German", "Greek",
	"Indian", "Irish", "Italian", "Japanese", "Jewish", "Korean",
	"Latin American", "Mediterranean", "Mexican", "Middle Eastern",
	"Nordic", "Southern", "Spanish", "Thai", "Vietnamese",
}

// Diet is a closed diet vocabulary.
type Diet string

// Diets lists every accepted diet value.
var Diets = []Diet{"gluten free", "vegetarian", "vegan"}

// Connector joins a diet entry to the preceding one: comma for AND, pipe for OR.
type Connector string

const (
	// ConnectorAND requires recipes to satisfy this diet in addition to the previous ones.
	ConnectorAND Connector = "AND"
	// ConnectorOR accepts recipes satisfying either this diet or the previous ones.
	ConnectorOR Connector = "OR"
	// ConnectorNone marks a diet entry the compiler must exclude entirely.
	ConnectorNone Connector = "none"
)

// DietEntry pairs a diet with how it combines with its neighbours.
// Diets are the one compound field: they can stack under AND or OR semantics.
type DietEntry struct {
	Diet      Diet      `json:"diet"`
	Connector Connector `json:"connector"`
}

// Intolerance is a closed intolerance vocabulary.
type Intolerance string

// Intolerances lists every accepted intolerance value.
var Intolerances = []Intolerance{
	"Dairy", "Egg", "Gluten", "Grain", "Peanut", "Seafood", "Sesame",
	"Shellfish", "Soy", "Sulfite", "Tree", "Nut", "Wheat",
}

// MealType is a closed meal-type vocabulary. Empty means unspecified.
type MealType string

// MealTypes lists every accepted meal type value.
var MealTypes = []MealType{
	"main", "course", "side", "dish", "dessert", "appetizer", "salad",
	"bread", "breakfast", "soup", "beverage", "sauce", "marinade",
	"fingerfood", "snack", "drink",
}

// Spec is the translator's output contract. Every field is always present in
// the generated JSON, even when empty or null, so the compiler never guards
// against missing keys. Produced fresh per request and never mutated.
type Spec struct {
	Query              string        `json:"query"`
	Cuisine            []Cuisine     `json:"cuisine"`
	ExcludeCuisine     []Cuisine     `json:"excludeCuisine"`
	Diet               []DietEntry   `json:"diet"`
	Intolerances       []Intolerance `json:"intolerances"`
	IncludeIngredients []string      `json:"includeIngredients"`
	ExcludeIngredients []string      `json:"excludeIngredients"`
	Type               MealType      `json:"type"`
	MaxReadyTime       int           `json:"maxReadyTime"`
}

// Validate checks the spec against the closed vocabularies. The generation
// contract already constrains the output, but a schema drift upstream must
// surface here rather than leak into the compiled query.
func (s *Spec) Validate() error {
	if s.Query == "" {
		return fmt.Errorf("%w: query is required", domain.ErrInvalidInput)
	}
	for _, c := range s.Cuisine {
		if !validCuisine(c) {
			return fmt.Errorf("%w: unknown cuisine %q", domain.ErrInvalidInput, c)
		}
	}
	for _, c := range s.ExcludeCuisine {
		if !validCuisine(c) {
			return fmt.Errorf("%w: unknown excluded cuisine %q", domain.ErrInvalidInput, c)
		}
	}
	for _, d := range s.Diet {
		if !validDiet(d.Diet) {
			return fmt.Errorf("%w: unknown diet %q", domain.ErrInvalidInput, d.Diet)
		}
		switch d.Connector {
		case ConnectorAND, ConnectorOR, ConnectorNone:
		default:
			return fmt.Errorf("%w: unknown diet connector %q", domain.ErrInvalidInput, d.Connector)
		}
	}
	for _, i := range s.Intolerances {
		if !validIntolerance(i) {
			return fmt.Errorf("%w: unknown intolerance %q", domain.ErrInvalidInput, i)
		}
	}
	if s.Type != "" && !validMealType(s.Type) {
		return fmt.Errorf("%w: unknown meal type %q", domain.ErrInvalidInput, s.Type)
	}
	if s.MaxReadyTime < 0 {
		return fmt.Errorf("%w: maxReadyTime must not be negative", domain.ErrInvalidInput)
	}
	return nil
}

func validCuisine(c Cuisine) bool {
	for _, v := range Cuisines {
		if v == c {
			return true
		}
	}
	return false
}

func validDiet(d Diet) bool {
	for _, v := range Diets {
		if v == d {
			return true
		}
	}
	return false
}

func validIntolerance(i Intolerance) bool {
	for _, v := range Intolerances {
		if v == i {
			return true
		}
	}
	return false
}

func validMealType(t MealType) bool {
	for _, v := range MealTypes {
		if v == t {
			return true
		}
	}
	return false
}
