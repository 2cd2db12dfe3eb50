package http

import (
	"fmt"
	"sort"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/comitanigiacomo/habitly/internal/core/domain"
)

var registerOnce sync.Once

var bindingTags = map[string]validator.Func{
	"periodicity": func(fl validator.FieldLevel) bool {
		_, err := domain.ParsePeriodicity(fl.Field().String())
		return err == nil
	},
	"mood": func(fl validator.FieldLevel) bool {
		_, err := domain.ParseMood(fl.Field().String())
		return err == nil
	},
	"isodate": func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if s == "" {
			return true
		}
		_, err := domain.ParseDate(s)
		return err == nil
	},
}

func registerTags(v *validator.Validate, tags map[string]validator.Func) error {
	names := make([]string, 0, len(tags))
	for name := range tags {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := v.RegisterValidation(name, tags[name]); err != nil {
			return fmt.Errorf("register %q binding tag: %w", name, err)
		}
	}
	return nil
}

// RegisterValidators adds the periodicity, mood and date binding tags to
// gin's validator. Handlers cannot validate without them, so a failure
// panics at startup.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			panic(fmt.Sprintf("binding tags: unexpected validator engine %T", binding.Validator.Engine()))
		}
		if err := registerTags(v, bindingTags); err != nil {
			panic(err)
		}
	})
}
