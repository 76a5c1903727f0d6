package middleware

import (
	"errors"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/finance"
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// enumValidators are the ledger enums accepted in request bodies
var enumValidators = map[string]func(string) bool{
	"payable_category": func(s string) bool { return finance.PayableCategory(s).IsValid() },
	"payable_type":     func(s string) bool { return finance.PayableType(s).IsValid() },
	"payment_method":   func(s string) bool { return finance.PaymentMethod(s).IsValid() },
	"payout_type":      func(s string) bool { return finance.PayoutType(s).IsValid() },
	"finance_type":     func(s string) bool { return finance.FinanceType(s).IsValid() },
	"finance_category": func(s string) bool { return finance.FinanceCategory(s).IsValid() },
}

var setupOnce sync.Once

// SetupValidator makes gin's validator report JSON field names and know the
// ledger enum tags. Safe to call more than once.
func SetupValidator() {
	setupOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
			}
			return name
		})
		for tag, valid := range enumValidators {
			_ = v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
				return valid(fl.Field().String())
			})
		}
	})
}

// FormatValidationErrors converts a binding error into the 400 body. Errors
// that are not field validations (malformed JSON) yield a single detail.
func FormatValidationErrors(err error, requestID string) dto.Response {
	var details []dto.ValidationDetail

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, e := range validationErrors {
			details = append(details, dto.ValidationDetail{
				Field:   e.Field(),
				Message: getValidationMessage(e),
			})
		}
	} else {
		details = append(details, dto.ValidationDetail{Field: "body", Message: "The request body could not be read"})
	}

	return dto.NewValidationErrorResponse("Some of the information provided is not valid", requestID, details)
}

// HandleValidationError answers 400 with the field details of err
func HandleValidationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, FormatValidationErrors(err, c.GetString("request_id")))
}

func getValidationMessage(e validator.FieldError) string {
	if _, ok := enumValidators[e.Tag()]; ok {
		return "Unknown " + strings.ReplaceAll(e.Tag(), "_", " ")
	}
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "min":
		if e.Type().Kind() == reflect.String {
			return "Must be at least " + e.Param() + " characters"
		}
		return "Must be at least " + e.Param()
	case "max":
		if e.Type().Kind() == reflect.String {
			return "Must be at most " + e.Param() + " characters"
		}
		return "Must be at most " + e.Param()
	case "uuid":
		return "Invalid UUID format"
	case "oneof":
		return "Must be one of: " + e.Param()
	case "gte":
		return "Must be greater than or equal to " + e.Param()
	case "lte":
		return "Must be less than or equal to " + e.Param()
	case "gt":
		return "Must be greater than " + e.Param()
	default:
		return "Invalid value"
	}
}
