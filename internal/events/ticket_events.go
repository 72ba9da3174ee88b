package events

import (
	"ticket-system/internal/entities"
)

// TagTicketList - коллекционный тег: его инвалидация заставляет каждый
// списочный запрос перечитать коллекцию.
const TagTicketList = "Ticket:LIST"

// TagTicket - тег конкретной записи.
func TagTicket(id string) string {
	return "Ticket:" + id
}

// TicketCreatedEvent - возникает после успешного создания тикета.
type TicketCreatedEvent struct {
	Ticket entities.Ticket
}

func (e TicketCreatedEvent) Name() string { return "ticket.created" }

func (e TicketCreatedEvent) InvalidatedTags() []string {
	return []string{TagTicketList}
}

// TicketUpdatedEvent - правка статуса/приоритета не должна молча оставить
// устаревшие строки списка, поэтому инвалидируются и запись, и коллекция.
type TicketUpdatedEvent struct {
	ID string
}

func (e TicketUpdatedEvent) Name() string { return "ticket.updated" }

func (e TicketUpdatedEvent) InvalidatedTags() []string {
	return []string{TagTicket(e.ID), TagTicketList}
}

type TicketDeletedEvent struct {
	ID string
}

func (e TicketDeletedEvent) Name() string { return "ticket.deleted" }

func (e TicketDeletedEvent) InvalidatedTags() []string {
	return []string{TagTicket(e.ID), TagTicketList}
}
