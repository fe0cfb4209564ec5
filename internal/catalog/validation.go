package catalog

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"kirana_stock/internal/models"
)

type ErrorCode string

const (
	RequiredField ErrorCode = "RequiredField"
	OutOfRange    ErrorCode = "OutOfRange"
	InvalidValue  ErrorCode = "InvalidValue"
)

var itemValidate *validator.Validate

func init() {
	itemValidate = validator.New()
	itemValidate.RegisterTagNameFunc(jsonFieldName)
	_ = itemValidate.RegisterValidation("notblank", validateNotBlank)
}

// jsonFieldName makes validation errors report the JSON name of a field.
func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

var fieldLabels = map[string]string{
	"id":           "Id",
	"itemName":     "Item Name",
	"supplier":     "Supplier",
	"targetStock":  "Target Stock",
	"currentStock": "Current Stock",
	"vendorCycle":  "Vendor Cycle",
	"nextOrderDay": "Next Order Day",
}

var invalidValueMessages = map[string]string{
	"vendorCycle":  "Vendor Cycle must be Weekly or Bi-Weekly",
	"nextOrderDay": "Next Order Day must be a weekday from Monday to Friday",
}

// FieldError describes why a single field of a candidate item was rejected.
type FieldError struct {
	Field   string    `json:"field"`
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// FieldErrors maps the JSON field name to its validation failure.
type FieldErrors map[string]*FieldError

func (fe FieldErrors) Error() string {
	fields := make([]string, 0, len(fe))
	for field := range fe {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	msgs := make([]string, 0, len(fields))
	for _, field := range fields {
		msgs = append(msgs, fe[field].Message)
	}
	return "invalid item: " + strings.Join(msgs, "; ")
}

// Messages flattens the errors into field -> message, the shape the entry form renders.
func (fe FieldErrors) Messages() map[string]string {
	out := make(map[string]string, len(fe))
	for field, err := range fe {
		out[field] = err.Message
	}
	return out
}

// Validate checks a candidate item. It returns nil when the input is acceptable.
func Validate(in models.ItemInput) FieldErrors {
	return fieldErrors(itemValidate.Struct(in))
}

// ValidateItem applies the entry rules to an item that already carries an id.
func ValidateItem(item models.Item) FieldErrors {
	return fieldErrors(itemValidate.Struct(item))
}

func fieldErrors(err error) FieldErrors {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return FieldErrors{"item": {Field: "item", Code: InvalidValue, Message: err.Error()}}
	}

	errs := make(FieldErrors, len(verrs))
	for _, v := range verrs {
		errs[v.Field()] = toFieldError(v)
	}
	return errs
}

func toFieldError(v validator.FieldError) *FieldError {
	field := v.Field()
	label := fieldLabels[field]

	fe := &FieldError{Field: field}
	switch v.Tag() {
	case "notblank", "required":
		fe.Code = RequiredField
		fe.Message = label + " is required"
	case "gte":
		fe.Code = OutOfRange
		fe.Message = fmt.Sprintf("%s must be >= %s", label, v.Param())
	case "gt":
		fe.Code = OutOfRange
		fe.Message = label + " must be a positive number"
	case "oneof":
		fe.Code = InvalidValue
		fe.Message = invalidValueMessages[field]
	default:
		fe.Code = InvalidValue
		fe.Message = fmt.Sprintf("%s is invalid", label)
	}
	return fe
}
