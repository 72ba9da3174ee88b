package dto

import (
	"github.com/aarondl/null/v8"

	"ticket-system/internal/entities"
	"ticket-system/pkg/fileutil"
)

// CreateTicketDTO - кандидат создания тикета, каким его отдаёт форма.
// Вложение здесь ещё сырое (до кодека); правила attach_* зеркалят кодек.
type CreateTicketDTO struct {
	Subject    string         `json:"subject" validate:"min=3,max=100"`
	Detail     string         `json:"detail" validate:"min=10,max=1000"`
	Priority   string         `json:"priority" validate:"required,oneof=low medium high"`
	Attachment *fileutil.File `json:"attachment" validate:"omitempty,attached_file,attach_size,attach_type"`
}

// NewTicketDTO - полезная нагрузка создания после кодека вложения,
// вход репозитория. Id, createdAt и status назначает репозиторий.
type NewTicketDTO struct {
	Subject    string
	Detail     string
	Priority   entities.Priority
	Attachment *entities.AttachedFile
}

// UpdateTicketDTO - частичное обновление: применяются только Valid-поля,
// остальные остаются нетронутыми.
type UpdateTicketDTO struct {
	Subject    null.String            `json:"subject" validate:"omitempty,min=3,max=100"`
	Detail     null.String            `json:"detail" validate:"omitempty,min=10,max=1000"`
	Priority   null.String            `json:"priority" validate:"omitempty,oneof=low medium high"`
	Status     null.String            `json:"status" validate:"omitempty,oneof=open in_progress resolved"`
	Attachment *entities.AttachedFile `json:"attachment"`
}

type PaginatedResponse[T any] struct {
	Data       []T    `json:"data"`
	Total      uint64 `json:"total"`
	Page       uint64 `json:"page"`
	TotalPages uint64 `json:"totalPages"`
}
