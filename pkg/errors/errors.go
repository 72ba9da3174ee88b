package errors

import "fmt"

var (
	// Репозиторий и хранилище
	ErrTicketNotFound = fmt.Errorf("Ticket not found")
	ErrKeyNotFound    = fmt.Errorf("ключ не найден в хранилище")

	// Кодек вложений
	ErrFileRead = fmt.Errorf("Error reading file")
)

// OperationError - типизированный исход неудачной операции репозитория.
// Статус всегда "CUSTOM_ERROR", наружу уходит только общее сообщение операции,
// внутренние ошибки хранилища не протекают к потребителю.
type OperationError struct {
	Status  string
	Message string
}

func (e *OperationError) Error() string { return e.Message }

func NewOperationError(format string, args ...interface{}) *OperationError {
	return &OperationError{
		Status:  "CUSTOM_ERROR",
		Message: fmt.Sprintf(format, args...),
	}
}

// ValidationError - структурированная ошибка схемы валидации.
// Fields: имя поля (json) -> локализованное сообщение.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("валидация не пройдена: полей с ошибками - %d", len(e.Fields))
}
