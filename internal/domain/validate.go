package domain

import (
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// checker returns the shared validator instance. Struct rules live in
// `validate` tags on the entity types; this package translates failures
// into ValidationError field maps so nothing above the domain depends on
// the validator library.
func checker() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// checkStruct validates v and maps each failed struct field through
// fieldNames (Go field -> form field) and messages (form field -> text).
// Fields without a mapping fall back to the raw field name.
func checkStruct(v interface{}, fieldNames map[string]string, messages map[string]string) map[string]string {
	err := checker().Struct(v)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"_": err.Error()}
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		name := fe.StructField()
		if mapped, ok := fieldNames[name]; ok {
			name = mapped
		}
		msg, ok := messages[name]
		if !ok {
			msg = "Invalid value"
		}
		fields[name] = msg
	}
	return fields
}
