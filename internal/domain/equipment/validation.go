package equipment

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// DetailsInput carries the editable descriptive fields of an item.
type DetailsInput struct {
	Name     string `json:"name" validate:"required,min=1,max=120"`
	Brand    string `json:"brand" validate:"required,min=2,max=120"`
	Model    string `json:"model" validate:"required,min=1,max=120"`
	Category string `json:"category" validate:"required,min=2,max=120"`
}

func (in DetailsInput) Normalize() DetailsInput {
	return DetailsInput{
		Name:     strings.TrimSpace(in.Name),
		Brand:    strings.TrimSpace(in.Brand),
		Model:    strings.TrimSpace(in.Model),
		Category: strings.TrimSpace(in.Category),
	}
}

var validate = newValidator()

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

var fieldLabels = map[string]string{
	"name":     "Name",
	"brand":    "Brand",
	"model":    "Model",
	"category": "Category",
}

// ValidateDetails trims in and checks it. The normalized input is returned
// even when validation fails.
func ValidateDetails(in DetailsInput) (DetailsInput, FieldErrors) {
	in = in.Normalize()
	fe := FieldErrors{}

	err := validate.Struct(in)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, ve := range verrs {
			fe.Add(ve.Field(), message(ve))
		}
	}
	return in, fe
}

// ValidateBatch checks every item and rejects the batch as a whole when any
// item fails.
func ValidateBatch(items []DetailsInput) ([]DetailsInput, FieldErrors) {
	fe := FieldErrors{}
	out := make([]DetailsInput, len(items))

	if len(items) == 0 {
		fe.Add("items", "At least one item is required")
		return out, fe
	}

	for i, item := range items {
		normalized, itemErrs := ValidateDetails(item)
		out[i] = normalized
		fe.Merge("items."+strconv.Itoa(i)+".", itemErrs)
	}
	return out, fe
}

func message(fe validator.FieldError) string {
	label := fieldLabels[fe.Field()]
	if label == "" {
		label = fe.Field()
	}

	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", label, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", label, fe.Param())
	default:
		return label + " is invalid"
	}
}
