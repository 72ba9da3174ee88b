package validation

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// fieldMessages: "<json-поле>.<тег>" -> сообщение на языке интерфейса.
// Тексты совпадают с сообщениями формы создания тикета.
var fieldMessages = map[string]string{
	"subject.min": "El asunto debe tener al menos 3 caracteres",
	"subject.max": "El asunto no puede exceder 100 caracteres",

	"detail.min": "La descripción debe tener al menos 10 caracteres",
	"detail.max": "La descripción no puede exceder 1000 caracteres",

	"priority.required": "Debes seleccionar una prioridad",
	"priority.oneof":    "Debes seleccionar una prioridad",

	"status.oneof": "Estado no válido",

	"attachment.attached_file": "El adjunto debe ser un archivo",
	"attachment.attach_size":   "El archivo no debe exceder 5MB",
	"attachment.attach_type":   "Tipo de archivo no permitido",
}

func messageFor(fe validator.FieldError) string {
	if msg, ok := fieldMessages[fe.Field()+"."+fe.Tag()]; ok {
		return msg
	}
	return fmt.Sprintf("El campo %s no es válido", fe.Field())
}
