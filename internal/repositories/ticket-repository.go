package repositories

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"ticket-system/internal/dto"
	"ticket-system/internal/entities"
	apperrors "ticket-system/pkg/errors"
	"ticket-system/pkg/storage"
)

// Единственный ключ хранилища: вся коллекция тикетов одним JSON-массивом.
const ticketsStorageKey = "support-tickets"

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

type TicketRepositoryInterface interface {
	GetTickets(ctx context.Context, page, limit uint64) ([]entities.Ticket, uint64, error)
	AllTickets(ctx context.Context) ([]entities.Ticket, error)
	FindTicket(ctx context.Context, id string) (*entities.Ticket, error)
	CreateTicket(ctx context.Context, payload dto.NewTicketDTO) (*entities.Ticket, error)
	UpdateTicket(ctx context.Context, id string, updateDTO dto.UpdateTicketDTO) (*entities.Ticket, error)
	DeleteTicket(ctx context.Context, id string) error
}

// TicketRepository - единственный писатель коллекции. Каждая операция
// читает коллекцию целиком, меняет копию в памяти и пишет целиком обратно,
// частичных записей нет.
type TicketRepository struct {
	store *storage.Store
}

func NewTicketRepository(store *storage.Store) TicketRepositoryInterface {
	return &TicketRepository{store: store}
}

// readAll: отсутствие сохранённых данных равнозначно пустой коллекции.
func (r *TicketRepository) readAll(ctx context.Context) []entities.Ticket {
	if tickets := storage.Get[[]entities.Ticket](ctx, r.store, ticketsStorageKey); tickets != nil {
		return *tickets
	}
	return []entities.Ticket{}
}

func (r *TicketRepository) writeAll(ctx context.Context, tickets []entities.Ticket) {
	storage.Set(ctx, r.store, ticketsStorageKey, tickets)
}

func sortByCreatedAtDesc(tickets []entities.Ticket) {
	sort.SliceStable(tickets, func(i, j int) bool {
		return tickets[i].CreatedAt.After(tickets[j].CreatedAt)
	})
}

// GetTickets возвращает срез [(page-1)*limit, +limit) отсортированного по
// createdAt (новые первыми) представления и общий размер коллекции.
// Страница за пределами диапазона - пустой срез, а не ошибка.
func (r *TicketRepository) GetTickets(ctx context.Context, page, limit uint64) ([]entities.Ticket, uint64, error) {
	if page == 0 {
		page = DefaultPage
	}
	if limit == 0 {
		limit = DefaultLimit
	}

	tickets := r.readAll(ctx)
	sortByCreatedAtDesc(tickets)

	total := uint64(len(tickets))
	// page-1 > total/limit гарантирует пустую страницу и заодно исключает
	// переполнение при умножении ниже
	if page-1 > total/limit {
		return []entities.Ticket{}, total, nil
	}
	start := (page - 1) * limit
	if start >= total {
		return []entities.Ticket{}, total, nil
	}
	end := start + limit
	if end > total {
		end = total
	}
	return tickets[start:end], total, nil
}

func (r *TicketRepository) AllTickets(ctx context.Context) ([]entities.Ticket, error) {
	tickets := r.readAll(ctx)
	sortByCreatedAtDesc(tickets)
	return tickets, nil
}

func (r *TicketRepository) FindTicket(ctx context.Context, id string) (*entities.Ticket, error) {
	for _, t := range r.readAll(ctx) {
		if t.ID == id {
			return &t, nil
		}
	}
	return nil, apperrors.ErrTicketNotFound
}

// CreateTicket назначает id, createdAt и статус сам; вызывающий их не
// контролирует. Статус нового тикета всегда open.
func (r *TicketRepository) CreateTicket(ctx context.Context, payload dto.NewTicketDTO) (*entities.Ticket, error) {
	tickets := r.readAll(ctx)

	ticket := entities.Ticket{
		ID:         uuid.NewString(),
		Subject:    payload.Subject,
		Priority:   payload.Priority,
		Detail:     payload.Detail,
		Attachment: payload.Attachment,
		CreatedAt:  time.Now().UTC(),
		Status:     entities.StatusOpen,
	}

	r.writeAll(ctx, append(tickets, ticket))
	return &ticket, nil
}

// UpdateTicket накладывает присланные поля поверх существующей записи,
// не присланные остаются нетронутыми. createdAt не обновляется никогда.
func (r *TicketRepository) UpdateTicket(ctx context.Context, id string, updateDTO dto.UpdateTicketDTO) (*entities.Ticket, error) {
	tickets := r.readAll(ctx)

	for i := range tickets {
		if tickets[i].ID != id {
			continue
		}

		if updateDTO.Subject.Valid {
			tickets[i].Subject = updateDTO.Subject.String
		}
		if updateDTO.Detail.Valid {
			tickets[i].Detail = updateDTO.Detail.String
		}
		if updateDTO.Priority.Valid {
			tickets[i].Priority = entities.Priority(updateDTO.Priority.String)
		}
		if updateDTO.Status.Valid {
			tickets[i].Status = entities.Status(updateDTO.Status.String)
		}
		if updateDTO.Attachment != nil {
			tickets[i].Attachment = updateDTO.Attachment
		}

		r.writeAll(ctx, tickets)
		updated := tickets[i]
		return &updated, nil
	}

	return nil, apperrors.ErrTicketNotFound
}

// DeleteTicket идемпотентен: удаление отсутствующего id - не ошибка,
// коллекция сохраняется в обоих случаях.
func (r *TicketRepository) DeleteTicket(ctx context.Context, id string) error {
	tickets := r.readAll(ctx)

	remaining := make([]entities.Ticket, 0, len(tickets))
	for _, t := range tickets {
		if t.ID != id {
			remaining = append(remaining, t)
		}
	}

	r.writeAll(ctx, remaining)
	return nil
}
