package board

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/okian/stagebook/internal/domain/model"
	"github.com/okian/stagebook/internal/validation"
)

// BudgetPolicy decides how budget text that is not a non-negative number is
// handled. An empty budget is always a missing field.
type BudgetPolicy string

// Budget policies.
const (
	// BudgetCoerce stores such budgets as 0.
	BudgetCoerce BudgetPolicy = "coerce"
	// BudgetReject fails with *InvalidBudgetError.
	BudgetReject BudgetPolicy = "reject"
)

// Input is the "post requirement" form. Budget is raw text as typed.
type Input struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Category    string `json:"category" validate:"required,category"`
	Date        string `json:"date" validate:"required"`
	Location    string `json:"location" validate:"required"`
	Budget      string `json:"budget" validate:"required"`
	Contact     string `json:"contact" validate:"required"`
}

func (in Input) trimmed() Input {
	return Input{
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Category:    strings.TrimSpace(in.Category),
		Date:        strings.TrimSpace(in.Date),
		Location:    strings.TrimSpace(in.Location),
		Budget:      strings.TrimSpace(in.Budget),
		Contact:     strings.TrimSpace(in.Contact),
	}
}

// Validate trims in and checks required fields. It returns the trimmed input
// or a *MissingFieldsError naming every failing field.
func Validate(in Input) (Input, error) {
	in = in.trimmed()
	err := validation.Struct(in)
	if err == nil {
		return in, nil
	}
	var verr *validation.Error
	if errors.As(err, &verr) {
		return in, &MissingFieldsError{Fields: verr.Names()}
	}
	return in, err
}

// ParseBudget converts budget text under policy.
func ParseBudget(text string, policy BudgetPolicy) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err == nil && v >= 0 && !math.IsInf(v, 0) && !math.IsNaN(v) {
		return v, nil
	}
	if policy == BudgetReject {
		return 0, &InvalidBudgetError{Value: text}
	}
	return 0, nil
}

// Valid reports whether p is a known policy.
func (p BudgetPolicy) Valid() bool {
	return p == BudgetCoerce || p == BudgetReject
}

// Categories returns the selectable categories as plain strings.
func Categories() []string {
	cs := model.Categories()
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = string(c)
	}
	return out
}
