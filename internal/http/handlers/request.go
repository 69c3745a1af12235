package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/octagoniq/octagoniq-api/internal/http/respond"
	"github.com/octagoniq/octagoniq-api/internal/storage"
)

const maxBodyBytes = 1 << 20

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decode reads a JSON body into dst and validates it. On failure the error
// response has already been written.
func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	return readJSON(w, r, dst) && check(w, r, dst)
}

func readJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		respond.Error(w, r, http.StatusBadRequest, "invalid JSON payload")
		return false
	}
	return true
}

func check(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := validate.Struct(dst); err != nil {
		respond.Error(w, r, http.StatusBadRequest, describeValidation(err))
		return false
	}
	return true
}

func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "invalid request payload"
	}
	fe := verrs[0]
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	}
	return fmt.Sprintf("%s is invalid", field)
}

// pathID parses the {id} wildcard.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respond.Error(w, r, http.StatusBadRequest, "id must be an integer")
		return 0, false
	}
	return id, true
}

// page reads skip/limit query params, defaulting to storage.DefaultPage.
func page(w http.ResponseWriter, r *http.Request) (storage.Page, bool) {
	p := storage.DefaultPage
	q := r.URL.Query()
	if raw := q.Get("skip"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			respond.Error(w, r, http.StatusBadRequest, "skip must be an integer")
			return p, false
		}
		p.Skip = n
	}
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			respond.Error(w, r, http.StatusBadRequest, "limit must be an integer")
			return p, false
		}
		p.Limit = n
	}
	if !p.Valid() {
		respond.Error(w, r, http.StatusBadRequest,
			fmt.Sprintf("skip must be >= 0 and limit between 1 and %d", storage.MaxPageLimit))
		return p, false
	}
	return p, true
}

// storeError maps storage sentinels to client responses. Anything unmapped is
// logged and reported as a bare 500.
func storeError(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		respond.Error(w, r, http.StatusNotFound, notFound)
	case errors.Is(err, storage.ErrEventNotFound):
		respond.Error(w, r, http.StatusNotFound, "Event not found")
	case errors.Is(err, storage.ErrFighterNotFound):
		respond.Error(w, r, http.StatusNotFound, "Fighter not found")
	case errors.Is(err, storage.ErrSameFighter):
		respond.Error(w, r, http.StatusBadRequest, "A fighter cannot fight themselves")
	case errors.Is(err, storage.ErrInvalidWinner):
		respond.Error(w, r, http.StatusBadRequest, "Winner must be one of the two fighters")
	case errors.Is(err, storage.ErrUsernameTaken):
		respond.Error(w, r, http.StatusBadRequest, "Username already taken")
	case errors.Is(err, storage.ErrEmailTaken):
		respond.Error(w, r, http.StatusBadRequest, "Email already registered")
	case errors.Is(err, storage.ErrAlreadyExists):
		respond.Error(w, r, http.StatusBadRequest, "Resource already exists")
	case errors.Is(err, storage.ErrInvalidRole):
		respond.Error(w, r, http.StatusBadRequest, "role must be one of: admin, user")
	case errors.Is(err, storage.ErrFighterInUse):
		respond.Error(w, r, http.StatusBadRequest, "Fighter is referenced by existing fights")
	default:
		zerolog.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("storage failure")
		respond.Error(w, r, http.StatusInternalServerError, "Internal server error")
	}
}
