package validator

import (
	"context"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslation "github.com/go-playground/validator/v10/translations/en"
	"github.com/umisama/go-regexpcache"

	"github.com/canvastools/canvas-as-code/internal/pkg/utils/errors"
)

// Anonymous fields are registered under this name, so they can be removed from the error namespace.
const anonymousField = "__nested__"

type Validator interface {
	Validate(ctx context.Context, value any) error
	ValidateValue(value any, tag string) error
	ValidateCtx(ctx context.Context, value any, tag string, namespace string) error
}

// Rule is a custom validation rule.
// ErrorMsg or ErrorMsgFunc replaces the default translated message.
type Rule struct {
	Tag          string
	Func         validator.Func
	ErrorMsg     string
	ErrorMsgFunc ErrorMsgFunc
}

type ErrorMsgFunc func(e validator.FieldError) string

type wrapper struct {
	validate   *validator.Validate
	translator ut.Translator
	errorMsgs  map[string]ErrorMsgFunc
}

func New(rules ...Rule) Validator {
	v := &wrapper{validate: validator.New(), errorMsgs: make(map[string]ErrorMsgFunc)}

	// Register default EN translator
	enLocale := en.New()
	translator, found := ut.New(enLocale, enLocale).GetTranslator("en")
	if !found {
		panic(errors.New("en translator was not found"))
	}
	v.translator = translator
	if err := enTranslation.RegisterDefaultTranslations(v.validate, v.translator); err != nil {
		panic(errors.Errorf("translator was not registered: %s", err))
	}

	// Register default and custom rules
	v.registerRules(defaultRules())
	v.registerRules(rules)

	// Use JSON/YAML field names in error messages
	v.validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if fld.Anonymous {
			return anonymousField
		}
		for _, tag := range []string{"json", "yaml"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return fld.Name
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})

	return v
}

// Validate a struct or a slice, fields are validated according to the "validate" tags.
func (v *wrapper) Validate(ctx context.Context, value any) error {
	return v.ValidateCtx(ctx, value, "dive", "")
}

// ValidateValue validates a single value against the tag, eg. "required".
func (v *wrapper) ValidateValue(value any, tag string) error {
	return v.ValidateCtx(context.Background(), value, tag, "")
}

// ValidateCtx validates the value, the namespace is prepended to each error message.
func (v *wrapper) ValidateCtx(ctx context.Context, value any, tag string, namespace string) error {
	if err := v.validate.VarCtx(ctx, value, tag); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			valueKind := reflect.Indirect(reflect.ValueOf(value)).Kind()
			return v.processError(validationErrs, valueKind, namespace)
		}
		panic(err)
	}
	return nil
}

func (v *wrapper) registerRules(rules []Rule) {
	for _, rule := range rules {
		if rule.Func != nil {
			if err := v.validate.RegisterValidation(rule.Tag, rule.Func); err != nil {
				panic(err)
			}
		}
		switch {
		case rule.ErrorMsgFunc != nil:
			v.errorMsgs[rule.Tag] = rule.ErrorMsgFunc
		case rule.ErrorMsg != "":
			msg := rule.ErrorMsg
			v.errorMsgs[rule.Tag] = func(validator.FieldError) string { return msg }
		}
	}
}

func (v *wrapper) processError(err validator.ValidationErrors, valueKind reflect.Kind, namespace string) error {
	result := errors.NewMultiError()
	for _, e := range err {
		// The translated message starts with the field name, trim it,
		// the field is part of the composed namespace.
		var msg string
		if msgFunc, found := v.errorMsgs[e.Tag()]; found {
			msg = msgFunc(e)
		} else {
			msg = strings.TrimSpace(strings.TrimPrefix(e.Translate(v.translator), e.Field()))
		}

		switch ns := joinNamespace(namespace, processNamespace(e.Namespace(), valueKind)); ns {
		case "":
			result.Append(errors.New(msg))
		default:
			result.Append(errors.Errorf(`"%s" %s`, ns, msg))
		}
	}
	return result.ErrorOrNil()
}

// processNamespace removes anonymous fields and the struct type name (first part).
func processNamespace(namespace string, valueKind reflect.Kind) string {
	namespace = strings.ReplaceAll(namespace, anonymousField+".", "")
	if valueKind == reflect.Struct {
		if index := strings.IndexByte(namespace, '.'); index >= 0 {
			namespace = namespace[index+1:]
		} else {
			namespace = ""
		}
	}
	return namespace
}

func joinNamespace(prefix, namespace string) string {
	switch {
	case prefix == "":
		return namespace
	case namespace == "":
		return prefix
	default:
		return prefix + "." + namespace
	}
}

func defaultRules() []Rule {
	return []Rule{
		{
			// Like "required", but an empty slice or map is rejected too
			Tag: "required_not_empty",
			Func: func(fl validator.FieldLevel) bool {
				field := fl.Field()
				switch field.Kind() {
				case reflect.Slice, reflect.Map, reflect.Array:
					return field.Len() > 0
				default:
					return !field.IsZero()
				}
			},
			ErrorMsg: "is a required field",
		},
		{
			Tag: "alphanumdash",
			Func: func(fl validator.FieldLevel) bool {
				return regexpcache.MustCompile(`^[a-zA-Z0-9\-]+$`).MatchString(fl.Field().String())
			},
			ErrorMsg: "can only contain alphanumeric characters and dash",
		},
	}
}
