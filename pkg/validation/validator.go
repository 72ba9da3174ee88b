package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "ticket-system/pkg/errors"
)

// CustomValidator - обёртка над go-playground/validator, переводящая его
// ошибки в структурированный ValidationError с локализованными сообщениями.
type CustomValidator struct {
	validator *validator.Validate
}

// New создает и настраивает валидатор.
func New() *CustomValidator {
	v := validator.New()

	// Ключи ошибок - имена полей из json-тегов ("subject", а не "Subject")
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// 1. Поддержка null-типов (types_adapter.go)
	registerNullTypes(v)

	// 2. Кастомные правила (rules.go). Если правило не зарегистрировалось -
	// паникуем, приложение не должно стартовать с неполной схемой.
	if err := registerRules(v); err != nil {
		panic("ошибка регистрации валидаторов: " + err.Error())
	}

	return &CustomValidator{validator: v}
}

// ValidateStruct валидирует кандидата целиком и синхронно: либо nil, либо
// полный набор ошибок по полям. Состояние между вызовами не сохраняется.
func (cv *CustomValidator) ValidateStruct(i interface{}) error {
	err := cv.validator.Struct(i)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		fields := make(map[string]string, len(ve))
		for _, fe := range ve {
			if _, ok := fields[fe.Field()]; ok {
				continue
			}
			fields[fe.Field()] = messageFor(fe)
		}
		return &apperrors.ValidationError{Fields: fields}
	}
	return err
}
