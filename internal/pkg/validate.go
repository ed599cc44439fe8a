package pkg

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	zhTranslations "github.com/go-playground/validator/v10/translations/zh"
)

// FieldError 单个字段的校验失败
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError 一次校验的全部失败项；调用方据此整体拒绝写入
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// HasField 测试和调用方判断某字段是否出错
func (e *ValidationError) HasField(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
	trans        ut.Translator
)

func engine() (*validator.Validate, ut.Translator) {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// 错误里的字段名用 json 名
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
		_ = validate.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
			return SlugPattern.MatchString(fl.Field().String())
		})

		zhLocale := zh.New()
		trans, _ = ut.New(zhLocale, zhLocale).GetTranslator("zh")
		_ = zhTranslations.RegisterDefaultTranslations(validate, trans)
		_ = validate.RegisterTranslation("slug", trans,
			func(ut ut.Translator) error {
				return ut.Add("slug", "{0}只能包含小写字母、数字和连字符", true)
			},
			func(ut ut.Translator, fe validator.FieldError) string {
				msg, _ := ut.T("slug", fe.Field())
				return msg
			},
		)
	})
	return validate, trans
}

// Validate 按结构体 validate 标签校验，失败时返回 *ValidationError
func Validate(v any) error {
	val, tr := engine()
	err := val.Struct(v)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return err
	}
	out := &ValidationError{Fields: make([]FieldError, 0, len(ves))}
	for _, fe := range ves {
		out.Fields = append(out.Fields, FieldError{Field: fe.Field(), Message: fe.Translate(tr)})
	}
	return out
}
