package validators

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"fleetpulse/internal/models"
	"fleetpulse/internal/utils"
)

var validate *validator.Validate

var (
	noSpaceRegex  = regexp.MustCompile(`^\S*$`)
	passwordRegex = regexp.MustCompile(`^\S{8,}$`)
	phoneNoRegex  = regexp.MustCompile(`^\d{3}-\d{3}-\d{4}$`)
	numberRegex   = regexp.MustCompile(`^\d+$`)
)

func init() {
	validate = validator.New()

	// Report json names so messages can be keyed on the wire field
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Register custom validation functions
	validate.RegisterValidation("object_id", validateObjectID)
	validate.RegisterValidation("nospace", validateNoSpace)
	validate.RegisterValidation("password", validatePassword)
	validate.RegisterValidation("phone_no", validatePhoneNo)
	validate.RegisterValidation("numeric_string", validateNumericString)
	validate.RegisterValidation("emergency_status", validateEmergencyStatus)
}

// ValidationError represents a field validation error
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Value   string `json:"value"`
	Message string `json:"message"`
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var messages []string
	for _, err := range v {
		messages = append(messages, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return strings.Join(messages, "; ")
}

// First converts the first failure into a validation AppError. Callers
// report one problem at a time.
func (v ValidationErrors) First() error {
	if len(v) == 0 {
		return nil
	}
	return utils.NewValidationError(v[0].Message)
}

// ValidateStruct validates a struct and returns detailed errors in field
// declaration order.
func ValidateStruct(s interface{}) ValidationErrors {
	var validationErrors ValidationErrors

	err := validate.Struct(s)
	if err != nil {
		fieldErrors, ok := err.(validator.ValidationErrors)
		if !ok {
			return ValidationErrors{{Message: err.Error()}}
		}
		for _, err := range fieldErrors {
			validationErrors = append(validationErrors, ValidationError{
				Field:   err.Field(),
				Tag:     err.Tag(),
				Value:   fmt.Sprintf("%v", reflect.Indirect(reflect.ValueOf(err.Value()))),
				Message: getErrorMessage(err),
			})
		}
	}

	return validationErrors
}

var fieldLabels = map[string]string{
	"first_name":        "First name",
	"last_name":         "Last name",
	"username":          "Username",
	"password":          "Password",
	"name":              "Name",
	"recommended_speed": "Recommended speed",
	"phone_no":          "Phone Number",
}

func fieldLabel(field string) string {
	if label, ok := fieldLabels[field]; ok {
		return label
	}
	return field
}

func getErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return missingFieldMessage(err.Field())
	case "nospace":
		return fmt.Sprintf("%s should not contain spaces", fieldLabel(err.Field()))
	case "password":
		return "Password should not contain spaces and should be at least 8 characters"
	case "phone_no":
		return "Phone Number should be xxx-xxx-xxxx format"
	case "numeric_string":
		return fmt.Sprintf("%s should be a valid number", fieldLabel(err.Field()))
	case "object_id":
		return fmt.Sprintf("Invalid %s", err.Field())
	case "emergency_status":
		return msgInvalidStatus
	default:
		return fmt.Sprintf("Validation failed for %s", err.Field())
	}
}

func missingFieldMessage(field string) string {
	if field == "recommended_speed" {
		return "Please add a recommended speed"
	}
	return fmt.Sprintf("Please add a %s", field)
}

// requirePresent reports the first absent or empty field, in order.
func requirePresent(fields ...presence) error {
	for _, f := range fields {
		if f.value == nil || *f.value == "" {
			return utils.NewValidationError(missingFieldMessage(f.name))
		}
	}
	return nil
}

type presence struct {
	name  string
	value *string
}

// Custom validation functions. Empty values pass; presence is checked
// separately.
func validateObjectID(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	_, err := primitive.ObjectIDFromHex(value)
	return err == nil
}

func validateNoSpace(fl validator.FieldLevel) bool {
	return noSpaceRegex.MatchString(fl.Field().String())
}

func validatePassword(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return passwordRegex.MatchString(value)
}

func validatePhoneNo(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return phoneNoRegex.MatchString(value)
}

func validateNumericString(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return numberRegex.MatchString(value)
}

func validateEmergencyStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.EmergencyStatus(value).IsValid()
}
