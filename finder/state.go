package finder

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

type DateRange string

const (
	DateRangeAll       DateRange = "all"
	DateRangeToday     DateRange = "today"
	DateRangeThisWeek  DateRange = "this_week"
	DateRangeThisMonth DateRange = "this_month"
)

type Category string

const (
	CategoryAll      Category = "all"
	CategoryVirtual  Category = "virtual"
	CategoryInPerson Category = "in_person"
)

type SortKey string

const (
	SortRelevance SortKey = "relevance"
	SortDate      SortKey = "date"
	SortTitle     SortKey = "title"
)

// FilterState is the user's current filter and sort selection.
type FilterState struct {
	DateRange  DateRange `validate:"oneof=all today this_week this_month"`
	Category   Category  `validate:"oneof=all virtual in_person"`
	SearchText string
	SortKey    SortKey `validate:"oneof=relevance date title"`
}

// DefaultFilterState is the state a session starts with.
func DefaultFilterState() FilterState {
	return FilterState{
		DateRange: DateRangeAll,
		Category:  CategoryAll,
		SortKey:   SortRelevance,
	}
}

var validate = validator.New()

var fieldLabels = map[string]string{
	"DateRange": "date range",
	"Category":  "category",
	"SortKey":   "sort key",
}

// Validate reports the first invalid field.
func (s FilterState) Validate() error {
	if err := validate.Struct(s); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return fmt.Errorf("invalid %s %q", fieldLabels[fe.Field()], fmt.Sprint(fe.Value()))
		}
		return err
	}
	return nil
}

// ParseFilterState builds a FilterState from loose form or command values.
// Empty values keep the defaults; the legacy option values "Virtual-Event"
// and "In-Person" are accepted for the category.
func ParseFilterState(dateRange, category, searchText, sortKey string) (FilterState, error) {
	state := DefaultFilterState()
	if v := normalizeOption(dateRange); v != "" {
		state.DateRange = DateRange(v)
	}
	if v := normalizeOption(category); v != "" {
		state.Category = ParseCategory(v)
	}
	state.SearchText = searchText
	if v := normalizeOption(sortKey); v != "" {
		state.SortKey = SortKey(v)
	}
	if err := state.Validate(); err != nil {
		return DefaultFilterState(), err
	}
	return state, nil
}

// ParseCategory maps option values, including legacy aliases, to a Category.
// Unknown values are returned unchanged so validation can reject them.
func ParseCategory(value string) Category {
	switch normalizeOption(value) {
	case "virtual", "virtual_event":
		return CategoryVirtual
	case "in_person":
		return CategoryInPerson
	default:
		return Category(normalizeOption(value))
	}
}

func normalizeOption(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	return strings.NewReplacer("-", "_", " ", "_").Replace(value)
}
