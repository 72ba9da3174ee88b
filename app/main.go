// Файл: main.go

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/aarondl/null/v8"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"ticket-system/config"
	"ticket-system/internal/dto"
	"ticket-system/internal/entities"
	"ticket-system/internal/events"
	"ticket-system/internal/repositories"
	"ticket-system/internal/services"
	apperrors "ticket-system/pkg/errors"
	"ticket-system/pkg/eventbus"
	"ticket-system/pkg/fileutil"
	applogger "ticket-system/pkg/logger"
	"ticket-system/pkg/query"
	"ticket-system/pkg/storage"
	"ticket-system/pkg/validation"
)

func main() {
	logger := applogger.NewLogger()
	defer logger.Sync()

	cfg := config.New()

	// Бэкенд хранилища: redis, если задан адрес, иначе локальные файлы.
	var backend storage.Backend
	if cfg.Redis.Address != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
		})
		if err := client.Ping(context.Background()).Err(); err != nil {
			logger.Fatal("Redis недоступен", zap.String("address", cfg.Redis.Address), zap.Error(err))
		}
		backend = storage.NewRedisBackend(client)
	} else {
		fileBackend, err := storage.NewFileBackend(cfg.Storage.Dir)
		if err != nil {
			logger.Fatal("Не удалось инициализировать файловое хранилище", zap.Error(err))
		}
		backend = fileBackend
	}

	store := storage.NewStore(backend, logger)
	bus := eventbus.New(logger)
	customValidator := validation.New()

	ticketRepo := repositories.NewTicketRepository(store)
	ticketService := services.NewTicketService(ticketRepo, bus, customValidator, logger)
	reportService := services.NewReportService(ticketRepo, cfg.Export.Dir, logger)

	runConsole(ticketService, reportService, bus, logger)
}

// runConsole - минимальный консольный потребитель контракта запросов и
// мутаций (вместо браузерного UI). Списочный запрос держит подписку на
// свои теги и перечитывается после каждой мутации сам.
func runConsole(
	tickets services.TicketServiceInterface,
	reports services.ReportServiceInterface,
	bus *eventbus.Bus,
	logger *zap.Logger,
) {
	ctx := context.Background()
	page := uint64(1)

	listQuery := query.New(bus,
		func(ctx context.Context) (*dto.PaginatedResponse[entities.Ticket], error) {
			return tickets.GetTickets(ctx, page, repositories.DefaultLimit)
		},
		func(data *dto.PaginatedResponse[entities.Ticket]) []string {
			tags := []string{events.TagTicketList}
			if data != nil {
				for _, t := range data.Data {
					tags = append(tags, events.TagTicket(t.ID))
				}
			}
			return tags
		},
	)
	defer listQuery.Close()

	renderList(listQuery.Run(ctx))

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Println("Comandos: list [página] | view <id> | create | update <id> <priority|status> <valor> | delete <id> | export | exit")

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		args := strings.Fields(scanner.Text())
		if len(args) == 0 {
			continue
		}

		switch args[0] {
		case "list":
			if len(args) > 1 {
				if p, err := strconv.ParseUint(args[1], 10, 64); err == nil && p > 0 {
					page = p
				}
			}
			renderList(listQuery.Run(ctx))

		case "view":
			if len(args) < 2 {
				fmt.Println("uso: view <id>")
				continue
			}
			ticket, err := tickets.FindTicket(ctx, args[1])
			if err != nil {
				fmt.Println("Error:", err)
				continue
			}
			renderTicket(ticket)

		case "create":
			createTicket(ctx, scanner, tickets)
			renderList(listQuery.Result())

		case "update":
			if len(args) < 4 {
				fmt.Println("uso: update <id> <priority|status> <valor>")
				continue
			}
			updateDTO := dto.UpdateTicketDTO{}
			switch args[2] {
			case "priority":
				updateDTO.Priority = null.StringFrom(args[3])
			case "status":
				updateDTO.Status = null.StringFrom(args[3])
			default:
				fmt.Println("campo desconocido:", args[2])
				continue
			}
			if _, err := tickets.UpdateTicket(ctx, args[1], updateDTO); err != nil {
				printFailure(err, logger)
				continue
			}
			renderList(listQuery.Result())

		case "delete":
			if len(args) < 2 {
				fmt.Println("uso: delete <id>")
				continue
			}
			fmt.Print("¿Eliminar ticket? (s/n): ")
			if !scanner.Scan() || strings.TrimSpace(scanner.Text()) != "s" {
				continue
			}
			if err := tickets.DeleteTicket(ctx, args[1]); err != nil {
				printFailure(err, logger)
				continue
			}
			renderList(listQuery.Result())

		case "export":
			path, err := reports.ExportTickets(ctx)
			if err != nil {
				printFailure(err, logger)
				continue
			}
			fmt.Println("Reporte guardado en", path)

		case "exit":
			return

		default:
			fmt.Println("comando desconocido:", args[0])
		}
	}
}

func prompt(scanner *bufio.Scanner, label string) string {
	fmt.Print(label)
	if !scanner.Scan() {
		return ""
	}
	return strings.TrimSpace(scanner.Text())
}

func createTicket(ctx context.Context, scanner *bufio.Scanner, tickets services.TicketServiceInterface) {
	createDTO := dto.CreateTicketDTO{
		Subject:  prompt(scanner, "Asunto: "),
		Detail:   prompt(scanner, "Descripción: "),
		Priority: prompt(scanner, "Prioridad (low/medium/high): "),
	}

	if path := prompt(scanner, "Adjunto (ruta, vacío para omitir): "); path != "" {
		file, err := fileutil.FromPath(path)
		if err != nil {
			fmt.Println("Error:", err)
			return
		}
		// Ранняя проверка формы: то же сообщение, что покажет схема
		if msg := fileutil.ValidationError(file); msg != "" {
			fmt.Println(msg)
			return
		}
		createDTO.Attachment = file
	}

	ticket, err := tickets.CreateTicket(ctx, createDTO)
	if err != nil {
		var validationErr *apperrors.ValidationError
		if errors.As(err, &validationErr) {
			for field, msg := range validationErr.Fields {
				fmt.Printf("  %s: %s\n", field, msg)
			}
			return
		}
		fmt.Println("Error:", err)
		return
	}
	fmt.Println("Ticket creado:", ticket.ID)
}

func printFailure(err error, logger *zap.Logger) {
	// Неуспех мутации не валит процесс: сообщение в консоль, детали в лог.
	logger.Warn("Мутация завершилась ошибкой", zap.Error(err))
	fmt.Println("Error:", err)
}

func renderList(result query.Result[dto.PaginatedResponse[entities.Ticket]]) {
	if result.Error != nil {
		fmt.Println("Error:", result.Error)
		return
	}
	if result.Data == nil {
		return
	}

	fmt.Printf("Mis Tickets — página %d de %d (%d en total)\n",
		result.Data.Page, result.Data.TotalPages, result.Data.Total)
	for _, t := range result.Data.Data {
		fmt.Printf("  %s  [%s/%s]  %s\n", t.ID, t.Priority, t.Status, t.Subject)
	}
	if len(result.Data.Data) == 0 {
		fmt.Println("  (sin tickets)")
	}
}

func renderTicket(t *entities.Ticket) {
	fmt.Printf("Asunto:    %s\nPrioridad: %s\nEstado:    %s\nCreado:    %s\n%s\n",
		t.Subject, t.Priority, t.Status, t.CreatedAt.Local().Format("02.01.2006 15:04"), t.Detail)
	if t.Attachment != nil {
		fmt.Printf("Adjunto:   %s (%s, %s)\n",
			t.Attachment.Name, t.Attachment.Type, fileutil.FormatSize(t.Attachment.Size))
	}
}
