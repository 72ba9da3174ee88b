package services

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"ticket-system/internal/dto"
	"ticket-system/internal/entities"
	"ticket-system/internal/events"
	"ticket-system/internal/repositories"
	apperrors "ticket-system/pkg/errors"
	"ticket-system/pkg/eventbus"
	"ticket-system/pkg/fileutil"
	"ticket-system/pkg/validation"
)

type TicketServiceInterface interface {
	GetTickets(ctx context.Context, page, limit uint64) (*dto.PaginatedResponse[entities.Ticket], error)
	FindTicket(ctx context.Context, id string) (*entities.Ticket, error)
	CreateTicket(ctx context.Context, createDTO dto.CreateTicketDTO) (*entities.Ticket, error)
	UpdateTicket(ctx context.Context, id string, updateDTO dto.UpdateTicketDTO) (*entities.Ticket, error)
	DeleteTicket(ctx context.Context, id string) error
}

// TicketService - граница операций над тикетами: валидация кандидатов,
// кодирование вложений, публикация инвалидаций после успешных мутаций.
// Неожиданные ошибки наружу не протекают - только типизированные исходы.
type TicketService struct {
	repo      repositories.TicketRepositoryInterface
	bus       *eventbus.Bus
	validator *validation.CustomValidator
	logger    *zap.Logger
}

func NewTicketService(
	repo repositories.TicketRepositoryInterface,
	bus *eventbus.Bus,
	validator *validation.CustomValidator,
	logger *zap.Logger,
) TicketServiceInterface {
	return &TicketService{repo: repo, bus: bus, validator: validator, logger: logger}
}

func (s *TicketService) GetTickets(ctx context.Context, page, limit uint64) (*dto.PaginatedResponse[entities.Ticket], error) {
	if page == 0 {
		page = repositories.DefaultPage
	}
	if limit == 0 {
		limit = repositories.DefaultLimit
	}

	tickets, total, err := s.repo.GetTickets(ctx, page, limit)
	if err != nil {
		s.logger.Error("Не удалось получить список тикетов", zap.Error(err))
		return nil, apperrors.NewOperationError("Failed to fetch tickets")
	}

	// Деление с округлением вверх без слагаемого total+limit-1: оно
	// переполняется на больших limit
	totalPages := total / limit
	if total%limit != 0 {
		totalPages++
	}

	return &dto.PaginatedResponse[entities.Ticket]{
		Data:       tickets,
		Total:      total,
		Page:       page,
		TotalPages: totalPages,
	}, nil
}

func (s *TicketService) FindTicket(ctx context.Context, id string) (*entities.Ticket, error) {
	ticket, err := s.repo.FindTicket(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrTicketNotFound) {
			return nil, apperrors.NewOperationError("Ticket not found")
		}
		s.logger.Error("Не удалось получить тикет", zap.String("id", id), zap.Error(err))
		return nil, apperrors.NewOperationError("Failed to fetch ticket")
	}
	return ticket, nil
}

// CreateTicket: кандидат сначала проходит схему, затем вложение - кодек.
// Ошибка чтения файла - отдельный исход, с частичными данными тикет не
// создаётся.
func (s *TicketService) CreateTicket(ctx context.Context, createDTO dto.CreateTicketDTO) (*entities.Ticket, error) {
	if err := s.validator.ValidateStruct(createDTO); err != nil {
		return nil, err
	}

	var attachment *entities.AttachedFile
	if createDTO.Attachment != nil {
		encoded, err := fileutil.Encode(createDTO.Attachment)
		if err != nil {
			s.logger.Error("Не удалось прочитать вложение",
				zap.String("file", createDTO.Attachment.Name),
				zap.Error(err),
			)
			return nil, err
		}
		attachment = encoded
	}

	ticket, err := s.repo.CreateTicket(ctx, dto.NewTicketDTO{
		Subject:    createDTO.Subject,
		Detail:     createDTO.Detail,
		Priority:   entities.Priority(createDTO.Priority),
		Attachment: attachment,
	})
	if err != nil {
		s.logger.Error("Не удалось создать тикет", zap.Error(err))
		return nil, apperrors.NewOperationError("Failed to create ticket")
	}

	s.bus.Publish(ctx, events.TicketCreatedEvent{Ticket: *ticket})
	return ticket, nil
}

func (s *TicketService) UpdateTicket(ctx context.Context, id string, updateDTO dto.UpdateTicketDTO) (*entities.Ticket, error) {
	if err := s.validator.ValidateStruct(updateDTO); err != nil {
		return nil, err
	}

	ticket, err := s.repo.UpdateTicket(ctx, id, updateDTO)
	if err != nil {
		if errors.Is(err, apperrors.ErrTicketNotFound) {
			return nil, apperrors.NewOperationError("Ticket not found")
		}
		s.logger.Error("Не удалось обновить тикет", zap.String("id", id), zap.Error(err))
		return nil, apperrors.NewOperationError("Failed to update ticket")
	}

	s.bus.Publish(ctx, events.TicketUpdatedEvent{ID: id})
	return ticket, nil
}

func (s *TicketService) DeleteTicket(ctx context.Context, id string) error {
	if err := s.repo.DeleteTicket(ctx, id); err != nil {
		s.logger.Error("Не удалось удалить тикет", zap.String("id", id), zap.Error(err))
		return apperrors.NewOperationError("Failed to delete ticket")
	}

	s.bus.Publish(ctx, events.TicketDeletedEvent{ID: id})
	return nil
}
