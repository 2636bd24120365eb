package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/yukikurage/project-tracker-api/internal/models"
)

// TagTaskStatus is the binding tag accepting only known task statuses.
const TagTaskStatus = "task_status"

var standalone = validator.New()

func init() {
	_ = standalone.RegisterValidation(TagTaskStatus, validateTaskStatus)
}

// Register installs the custom rules on gin's binding validator.
func Register() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin binding validator is not go-playground/validator")
	}
	return v.RegisterValidation(TagTaskStatus, validateTaskStatus)
}

func validateTaskStatus(fl validator.FieldLevel) bool {
	switch v := fl.Field().Interface().(type) {
	case models.TaskStatus:
		return v.Valid()
	case string:
		return models.TaskStatus(v).Valid()
	default:
		return false
	}
}

// IsEmail reports whether s is a syntactically valid email address.
func IsEmail(s string) bool {
	return standalone.Var(s, "required,email") == nil
}

// IsTaskStatus reports whether s names a known task status.
func IsTaskStatus(s string) bool {
	return standalone.Var(s, "required,"+TagTaskStatus) == nil
}

// FieldErrors flattens binding errors into field -> rule pairs for the
// error response details. It returns nil for non-validation errors.
func FieldErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule = fmt.Sprintf("%s=%s", rule, fe.Param())
		}
		out[lowerFirst(fe.Field())] = rule
	}
	return out
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
