package filtering

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidCriteria is returned when filter criteria cannot be used.
var ErrInvalidCriteria = errors.New("invalid filter criteria")

var validate = validator.New(validator.WithRequiredStructEnabled())

// Criteria are the acceptance thresholds of a JobFilter.
type Criteria struct {
	MinSalary      int    `json:"min_salary" validate:"gte=0"`
	TargetLocation string `json:"target_location" validate:"max=200"`
}

// NewCriteria parses the minimum salary as it comes from the environment or a flag.
func NewCriteria(minSalary, location string) (Criteria, error) {
	raw := strings.TrimSpace(minSalary)
	value, err := strconv.Atoi(raw)
	if err != nil {
		return Criteria{}, fmt.Errorf("%w: minimum salary %q is not a whole number", ErrInvalidCriteria, raw)
	}

	c := Criteria{
		MinSalary:      value,
		TargetLocation: strings.TrimSpace(location),
	}
	if err := c.Validate(); err != nil {
		return Criteria{}, err
	}
	return c, nil
}

func (c Criteria) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCriteria, err)
	}
	return nil
}
