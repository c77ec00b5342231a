package validation

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/tomboulier/choix-stage-desar/internal/model"
)

var registerOnce sync.Once

// Register installs the custom binding rules on gin's validator:
//
//   - duration: one of the rotation durations ("quarter", "half_year")
//
// Safe to call more than once.
func Register() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = fmt.Errorf("unexpected binding engine %T", binding.Validator.Engine())
			return
		}
		err = v.RegisterValidation("duration", validDuration)
	})
	return err
}

func validDuration(fl validator.FieldLevel) bool {
	return model.Duration(fl.Field().String()).Valid()
}

// FormatErrors turns binding errors into a short "field: problem" summary.
// Non-validation errors (malformed JSON, ...) are returned as is.
func FormatErrors(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		field := toSnake(e.Field())
		switch e.Tag() {
		case "required":
			msgs = append(msgs, field+": is required")
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s: must be at least %s", field, e.Param()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s: must be at most %s", field, e.Param()))
		case "uuid":
			msgs = append(msgs, field+": must be a uuid")
		case "duration":
			msgs = append(msgs, fmt.Sprintf("%s: must be one of %s", field, durationList()))
		default:
			msgs = append(msgs, field+": is invalid")
		}
	}
	sort.Strings(msgs)
	return strings.Join(msgs, "; ")
}

func durationList() string {
	names := make([]string, 0, len(model.Durations))
	for _, d := range model.Durations {
		names = append(names, string(d))
	}
	return strings.Join(names, ", ")
}

// toSnake maps Go field names to their json names ("InternID" -> "intern_id")
func toSnake(s string) string {
	var b strings.Builder
	var prev rune
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 && prev >= 'a' && prev <= 'z' {
				b.WriteByte('_')
			}
			prev = r
			r += 'a' - 'A'
		} else {
			prev = r
		}
		b.WriteRune(r)
	}
	return b.String()
}
