// Package respond holds the JSON plumbing shared by the v1 handlers.
package respond

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"

	"github.com/MrJamesThe3rd/finplan/internal/plan"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	return v
}

// Detail is one field or rule level problem in an error response.
type Detail struct {
	Field   string `json:"field,omitempty"`
	Rule    string `json:"rule,omitempty"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error          string          `json:"error"`
	Details        []Detail        `json:"details,omitempty"`
	Reconciliation *Reconciliation `json:"reconciliation,omitempty"`
}

type Reconciliation struct {
	State     plan.State `json:"state"`
	Required  int64      `json:"required"`
	Sources   int64      `json:"sources"`
	Remaining int64      `json:"remaining"`
}

func ToReconciliation(r plan.Reconciliation) Reconciliation {
	return Reconciliation{
		State:     r.State,
		Required:  r.Required,
		Sources:   r.Sources,
		Remaining: r.Remaining,
	}
}

// Decode reads a JSON body into v and checks its validate tags.
func Decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return &BadRequestError{Message: fmt.Sprintf("invalid body: %v", err)}
	}

	return Validate(v)
}

// Validate checks the validate tags of a request struct.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &BadRequestError{Message: err.Error()}
	}

	details := make([]Detail, len(fieldErrs))
	for i, fe := range fieldErrs {
		details[i] = Detail{Field: fe.Field(), Message: describeTag(fe)}
	}

	return &BadRequestError{Message: "invalid request", Details: details}
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "gt", "gte", "lt", "lte", "max", "min":
		return fmt.Sprintf("must satisfy %s=%s", fe.Tag(), fe.Param())
	}

	return "is invalid"
}

// BadRequestError is a request the handler could not read.
type BadRequestError struct {
	Message string
	Details []Detail
}

func (e *BadRequestError) Error() string {
	return e.Message
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Error writes the status and body matching a domain or request error.
func Error(w http.ResponseWriter, err error) {
	var (
		badReq     *BadRequestError
		errs       plan.ValidationErrors
		valErr     *plan.ValidationError
		eligErr    *plan.EligibilityError
		incomplete *plan.IncompletePlanError
	)

	switch {
	case errors.As(err, &badReq):
		JSON(w, http.StatusBadRequest, errorResponse{Error: badReq.Message, Details: badReq.Details})
	case errors.As(err, &errs):
		JSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "validation failed", Details: toDetails(errs)})
	case errors.As(err, &valErr), errors.As(err, &eligErr):
		JSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "validation failed", Details: toDetails([]error{err})})
	case errors.As(err, &incomplete):
		rec := ToReconciliation(incomplete.Reconciliation)
		JSON(w, http.StatusUnprocessableEntity, errorResponse{Error: incomplete.Error(), Reconciliation: &rec})
	case errors.Is(err, plan.ErrNotFound):
		http.Error(w, "plan not found", http.StatusNotFound)
	case errors.Is(err, plan.ErrProviderUnavailable):
		slog.Warn("offer provider unavailable", "error", err)
		http.Error(w, "offer provider unavailable", http.StatusServiceUnavailable)
	default:
		slog.Error("request failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toDetails(errs []error) []Detail {
	details := make([]Detail, 0, len(errs))

	for _, err := range errs {
		var (
			ve *plan.ValidationError
			ee *plan.EligibilityError
		)

		switch {
		case errors.As(err, &ve):
			details = append(details, Detail{Field: ve.Field, Message: ve.Message})
		case errors.As(err, &ee):
			details = append(details, Detail{Rule: ee.Rule, Message: ee.Reason})
		default:
			details = append(details, Detail{Message: err.Error()})
		}
	}

	return details
}
