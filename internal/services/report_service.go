package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"ticket-system/internal/entities"
	"ticket-system/internal/repositories"
	apperrors "ticket-system/pkg/errors"
	"ticket-system/pkg/fileutil"
)

var reportHeaders = []interface{}{
	"ID", "Asunto", "Descripción", "Prioridad", "Estado", "Creado", "Adjunto",
}

type ReportServiceInterface interface {
	ExportTickets(ctx context.Context) (string, error)
}

// reportService выгружает коллекцию тикетов в xlsx-файл (вид "Mis Reportes"
// в табличной форме).
type reportService struct {
	repo      repositories.TicketRepositoryInterface
	exportDir string
	logger    *zap.Logger
}

func NewReportService(
	repo repositories.TicketRepositoryInterface,
	exportDir string,
	logger *zap.Logger,
) ReportServiceInterface {
	return &reportService{repo: repo, exportDir: exportDir, logger: logger}
}

func rowToSlice(t entities.Ticket) []interface{} {
	const dateFmt = "02.01.2006 15:04"

	attachment := "-"
	if t.Attachment != nil {
		attachment = fmt.Sprintf("%s (%s)", t.Attachment.Name, fileutil.FormatSize(t.Attachment.Size))
	}

	return []interface{}{
		t.ID, t.Subject, t.Detail, string(t.Priority), string(t.Status),
		t.CreatedAt.Local().Format(dateFmt), attachment,
	}
}

// ExportTickets пишет отсортированную коллекцию в exportDir и возвращает
// путь к созданному файлу.
func (s *reportService) ExportTickets(ctx context.Context) (string, error) {
	tickets, err := s.repo.AllTickets(ctx)
	if err != nil {
		s.logger.Error("Не удалось получить тикеты для отчёта", zap.Error(err))
		return "", apperrors.NewOperationError("Failed to fetch tickets")
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Tickets"
	f.SetSheetName("Sheet1", sheet)
	f.SetSheetRow(sheet, "A1", &reportHeaders)
	style, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	f.SetCellStyle(sheet, "A1", "G1", style)

	for i, t := range tickets {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := rowToSlice(t)
		f.SetSheetRow(sheet, cell, &row)
	}
	f.SetColWidth(sheet, "A", "A", 38)
	f.SetColWidth(sheet, "B", "B", 30)
	f.SetColWidth(sheet, "C", "C", 50)
	f.SetColWidth(sheet, "F", "G", 20)

	if err := os.MkdirAll(s.exportDir, 0o755); err != nil {
		s.logger.Error("Не удалось создать директорию отчётов", zap.Error(err))
		return "", apperrors.NewOperationError("Failed to export tickets")
	}

	path := filepath.Join(s.exportDir, fmt.Sprintf("tickets_%s.xlsx", time.Now().Format("2006-01-02")))
	if err := f.SaveAs(path); err != nil {
		s.logger.Error("Не удалось сохранить отчёт", zap.String("path", path), zap.Error(err))
		return "", apperrors.NewOperationError("Failed to export tickets")
	}
	return path, nil
}
