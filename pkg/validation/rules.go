package validation

import (
	"github.com/go-playground/validator/v10"

	"ticket-system/pkg/fileutil"
)

// registerRules регистрирует теги правил для вложений.
func registerRules(v *validator.Validate) error {
	if err := v.RegisterValidation("attached_file", isAttachedFile); err != nil {
		return err
	}
	if err := v.RegisterValidation("attach_size", hasAllowedSize); err != nil {
		return err
	}
	if err := v.RegisterValidation("attach_type", hasAllowedType); err != nil {
		return err
	}
	return nil
}

func fileFromField(fl validator.FieldLevel) (*fileutil.File, bool) {
	if f, ok := fl.Field().Interface().(fileutil.File); ok {
		return &f, true
	}
	return nil, false
}

// isAttachedFile - структурная проверка: значение должно быть файлом,
// а не произвольным типом.
func isAttachedFile(fl validator.FieldLevel) bool {
	f, ok := fileFromField(fl)
	return ok && f.Name != ""
}

func hasAllowedSize(fl validator.FieldLevel) bool {
	f, ok := fileFromField(fl)
	if !ok {
		return false
	}
	return fileutil.IsValidSize(f)
}

func hasAllowedType(fl validator.FieldLevel) bool {
	f, ok := fileFromField(fl)
	if !ok {
		return false
	}
	return fileutil.IsValidType(f)
}
