package core

// validation.go validates menu input at two levels:
//  1. Field validation: raw form values or CSV cells are checked against
//     MenuFieldSpecs (required, numeric, enum) before a MenuItem is built.
//  2. Item validation: a typed MenuItem is checked against its struct tags
//     (validator/v10) before it is appended to the store.
//
// Both levels report every problem at once so the form can show all missing
// fields together.

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// ValidationError represents a single validation error for a field.
type ValidationError struct {
	Field   string // Field/column name
	Value   string // The invalid value
	Message string // Human-readable error message
}

func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// ValidationErrors collects every failed field of one item.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, ve := range e {
		msgs[i] = ve.Error()
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Fields returns the names of the failed fields in order.
func (e ValidationErrors) Fields() []string {
	fields := make([]string, len(e))
	for i, ve := range e {
		fields[i] = ve.Field
	}
	return fields
}

// AsValidationErrors extracts ValidationErrors from err, if present.
func AsValidationErrors(err error) (ValidationErrors, bool) {
	var ve ValidationErrors
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// validate checks MenuItem struct tags. Safe for concurrent use.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report JSON names so errors can be mapped back to field specs.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("notblank", validators.NotBlank)
	_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return Category(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("stock", func(fl validator.FieldLevel) bool {
		return StockStatus(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("addons", func(fl validator.FieldLevel) bool {
		a := AddonSet(fl.Field().Int())
		return a >= AddonsNone && a <= AddonsCheesesteak
	})

	return v
}

// ValidateItem checks a typed item's invariants.
// Returns nil or ValidationErrors.
func ValidateItem(item MenuItem) error {
	err := validate.Struct(item)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate item: %w", err)
	}

	result := make(ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		result = append(result, ValidationError{
			Field:   specName(fe.Field()),
			Value:   fmt.Sprint(fe.Value()),
			Message: tagMessage(fe.Tag(), fe.Field()),
		})
	}
	return result
}

// tagMessage converts a validator tag into a message MapError understands.
func tagMessage(tag, field string) string {
	switch tag {
	case "required", "notblank":
		return "required field is empty"
	case "gte":
		return "invalid price: must not be negative"
	default:
		return "invalid " + field
	}
}

// specName returns the display name for a field key.
func specName(key string) string {
	for _, spec := range MenuFieldSpecs {
		if spec.Key == key {
			return spec.Name
		}
	}
	return key
}

// ValidateCell validates a single non-empty value against a field specification.
func ValidateCell(value string, spec FieldSpec) error {
	if value == "" {
		return nil
	}

	switch spec.Type {
	case FieldNumeric:
		if _, err := ParsePrice(value); err != nil {
			return err
		}
	case FieldEnum:
		for _, ev := range spec.EnumValues {
			if strings.EqualFold(ev, value) {
				return nil
			}
		}
		return fmt.Errorf("invalid %s: must be one of %s",
			strings.ToLower(spec.Name), strings.Join(spec.EnumValues, ", "))
	}
	return nil
}

// ValidateFields checks raw input values keyed by FieldSpec.Key.
// Values are trimmed and otherwise taken as typed. Every missing required
// field and every malformed value is reported.
func ValidateFields(fields map[string]string) error {
	var errs ValidationErrors

	for _, spec := range MenuFieldSpecs {
		raw := strings.TrimSpace(fields[spec.Key])

		if raw == "" {
			if spec.Required {
				errs = append(errs, ValidationError{
					Field:   spec.Name,
					Message: "required field is empty",
				})
			}
			continue
		}

		if err := ValidateCell(raw, spec); err != nil {
			errs = append(errs, ValidationError{
				Field:   spec.Name,
				Value:   raw,
				Message: err.Error(),
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ParseItem validates raw input values and builds a MenuItem from them.
// The returned item has not been added to any store.
func ParseItem(fields map[string]string) (MenuItem, error) {
	if err := ValidateFields(fields); err != nil {
		return MenuItem{}, err
	}

	// Values passed ValidateFields, so the parsers below cannot fail.
	field := func(key string) string { return strings.TrimSpace(fields[key]) }
	category, _ := ParseCategory(field("category"))
	price, _ := ParsePrice(field("price"))
	stock, _ := ParseStockStatus(field("stock"))
	addons, _ := ParseAddonSet(field("addons"))

	return MenuItem{
		Name:        field("name"),
		Category:    category,
		Price:       price,
		Description: field("description"),
		SKU:         field("sku"),
		Stock:       stock,
		Addons:      addons,
	}, nil
}

// ValidateHeaders checks that all required columns exist in a CSV header.
// Returns the header index, or an error listing the missing columns.
func ValidateHeaders(headers []string, specs []FieldSpec) (HeaderIndex, error) {
	idx := MakeHeaderIndex(headers)
	var missing []string

	for _, spec := range specs {
		if !spec.Required {
			continue
		}
		if _, ok := idx[strings.ToLower(spec.Name)]; !ok {
			missing = append(missing, spec.Name)
		}
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}
	return idx, nil
}

// RowFields maps a CSV row onto field keys using the header index. Cells
// go through CleanCell, so spreadsheet artifacts never reach ParseItem.
// Columns absent from the header or the row are left empty.
func RowFields(row []string, idx HeaderIndex) map[string]string {
	fields := make(map[string]string, len(MenuFieldSpecs))
	for _, spec := range MenuFieldSpecs {
		pos, ok := idx[strings.ToLower(spec.Name)]
		if !ok || pos >= len(row) {
			continue
		}
		fields[spec.Key] = CleanCell(row[pos])
	}
	return fields
}
