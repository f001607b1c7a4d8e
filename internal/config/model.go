package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/vk/minipack/internal/transform"
)

// DefaultEntry is bundled when no entry is configured.
const DefaultEntry = "./src/index.js"

// DefaultFile is the configuration file picked up from the working
// directory when none is named.
const DefaultFile = "minipack.hcl"

// Config holds everything a bundle run needs.
type Config struct {
	Entry       string `validate:"required"`
	Output      string // empty means standard output
	Target      string `validate:"required,target"`
	ModuleCache bool
	Banner      string

	LogLevel  string `validate:"oneof=debug info warn error"`
	LogFormat string `validate:"oneof=text json"`

	// MaxCallStackSize bounds JavaScript call depth for `run`. Zero keeps
	// the runner's default.
	MaxCallStackSize int `validate:"gte=0"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Entry:     DefaultEntry,
		Target:    string(transform.DefaultTarget),
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// Overrides is one configuration layer. Nil fields are left unchanged.
type Overrides struct {
	Entry            *string
	Output           *string
	Target           *string
	ModuleCache      *bool
	Banner           *string
	LogLevel         *string
	LogFormat        *string
	MaxCallStackSize *int
}

// Apply layers o on top of c.
func (c *Config) Apply(o Overrides) {
	setIf(&c.Entry, o.Entry)
	setIf(&c.Output, o.Output)
	setIf(&c.Target, o.Target)
	setIf(&c.ModuleCache, o.ModuleCache)
	setIf(&c.Banner, o.Banner)
	setIf(&c.LogLevel, o.LogLevel)
	setIf(&c.LogFormat, o.LogFormat)
	setIf(&c.MaxCallStackSize, o.MaxCallStackSize)
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// Normalize lower-cases enumerated fields so validation is case-insensitive.
func (c *Config) Normalize() {
	c.Target = strings.ToLower(strings.TrimSpace(c.Target))
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("target", func(fl validator.FieldLevel) bool {
		_, err := transform.ParseTarget(fl.Field().String())
		return err == nil
	})
	return v
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", fe.Field(), fe.Param(), fe.Value())
	case "target":
		return fmt.Sprintf("%s %q is not one of [%s]", fe.Field(), fe.Value(), strings.Join(transform.TargetNames(), " "))
	default:
		return fmt.Sprintf("%s failed %q validation", fe.Field(), fe.Tag())
	}
}
