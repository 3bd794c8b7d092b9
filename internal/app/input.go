package app

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"cryptojournal/internal/domain"
	"cryptojournal/internal/ports"
)

// TradeInput carries the fields accepted when creating a trade. ProfitLoss is
// deliberately absent: it is always derived, never taken from the caller.
type TradeInput struct {
	Coin       string             `json:"coin" validate:"required,max=10"`
	Direction  domain.Direction   `json:"direction" validate:"required,oneof=Long Short"`
	EntryPrice float64            `json:"entryPrice" validate:"required,gt=0"`
	ExitPrice  *float64           `json:"exitPrice" validate:"omitempty,gt=0"`
	Quantity   float64            `json:"quantity" validate:"required,gt=0"`
	Status     domain.TradeStatus `json:"status" validate:"required,oneof=Open Closed Cancelled"`
	Notes      string             `json:"notes"`
	EntryDate  string             `json:"entryDate" validate:"required"`
	ExitDate   string             `json:"exitDate"`
}

// TradeUpdateInput carries a partial update. Nil fields keep their stored
// values; present fields are validated individually.
type TradeUpdateInput struct {
	Coin       *string             `json:"coin" validate:"omitempty,min=1,max=10"`
	Direction  *domain.Direction   `json:"direction" validate:"omitempty,oneof=Long Short"`
	EntryPrice *float64            `json:"entryPrice" validate:"omitempty,gt=0"`
	ExitPrice  *float64            `json:"exitPrice" validate:"omitempty,gt=0"`
	Quantity   *float64            `json:"quantity" validate:"omitempty,gt=0"`
	Status     *domain.TradeStatus `json:"status" validate:"omitempty,oneof=Open Closed Cancelled"`
	Notes      *string             `json:"notes"`
	EntryDate  *string             `json:"entryDate"`
	ExitDate   *string             `json:"exitDate"`
}

// newValidator builds a validator that reports fields by their JSON names, so
// validation errors read the same as the wire format.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// firstFieldError converts a validator error into a ValidationError naming the
// first offending field.
func firstFieldError(err error) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return &ports.ValidationError{Field: fe.Field(), Reason: reasonFor(fe)}
	}
	return fmt.Errorf("%w: %v", ports.ErrInvalidRequest, err)
}

func reasonFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must not be empty"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "gt":
		return "must be positive"
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return "is invalid"
	}
}

// Accepted date formats, most specific first. The journal stores whatever
// granularity the caller provides.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseDate(field, value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, &ports.ValidationError{Field: field, Reason: "must be a valid date"}
}
