package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// newValidator builds the shared request validator with the "objectid" tag,
// which checks that a string field is a well-formed hex ObjectID.
func newValidator() *validator.Validate {
	validate := validator.New()
	_ = validate.RegisterValidation("objectid", func(fl validator.FieldLevel) bool {
		_, err := primitive.ObjectIDFromHex(fl.Field().String())
		return err == nil
	})
	return validate
}

// validationMessage renders the first failed constraint the way clients see
// every other failure: a single human-readable message.
func validationMessage(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok && len(validationErrors) > 0 {
		first := validationErrors[0]
		return fmt.Sprintf("field '%s' failed validation (%s)", first.Field(), first.Tag())
	}
	return err.Error()
}
