package fileutil

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"math"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"ticket-system/config"
	"ticket-system/internal/entities"
	apperrors "ticket-system/pkg/errors"
)

// File - выбранный пользователем файл до кодирования во вложение.
// Type - MIME-тип, каким его сообщил источник файла.
type File struct {
	Name   string
	Type   string
	Size   int64
	Reader io.Reader
}

func attachmentRules() config.UploadConfig {
	return config.UploadContexts["ticket_attachment"]
}

// IsValidType сверяет MIME-тип со списком разрешённых.
func IsValidType(f *File) bool {
	return slices.Contains(attachmentRules().AllowedMimeTypes, f.Type)
}

// IsValidSize: лимит включительный, файл ровно в 5 MiB валиден.
func IsValidSize(f *File) bool {
	return f.Size <= attachmentRules().MaxSizeBytes
}

// ValidationError возвращает локализованное сообщение или "" для валидного
// файла. Ошибка типа имеет приоритет над ошибкой размера.
func ValidationError(f *File) string {
	if !IsValidType(f) {
		return "Tipo de archivo no permitido. Solo se permiten imágenes (JPG, PNG), PDF y archivos de texto."
	}
	if !IsValidSize(f) {
		return fmt.Sprintf("El archivo es demasiado grande. Tamaño máximo: %s", FormatSize(attachmentRules().MaxSizeBytes))
	}
	return ""
}

// Encode читает файл целиком и строит переносимую запись вложения с
// base64-полезной нагрузкой. При ошибке чтения возвращает ErrFileRead,
// частичные данные наружу не отдаются.
func Encode(f *File) (*entities.AttachedFile, error) {
	if f.Reader == nil {
		return nil, apperrors.ErrFileRead
	}
	raw, err := io.ReadAll(f.Reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrFileRead, err)
	}
	return &entities.AttachedFile{
		Name: f.Name,
		Type: f.Type,
		Size: f.Size,
		Data: base64.StdEncoding.EncodeToString(raw),
	}, nil
}

// FormatSize переводит байты в человекочитаемый вид: Bytes/KB/MB/GB по
// основанию 1024, максимум 2 знака после запятой. Неположительные значения
// сворачиваются в "0 Bytes", иначе логарифм ниже не определён.
func FormatSize(bytes int64) string {
	if bytes <= 0 {
		return "0 Bytes"
	}
	sizes := []string{"Bytes", "KB", "MB", "GB"}
	i := int(math.Floor(math.Log(float64(bytes)) / math.Log(1024)))
	if i >= len(sizes) {
		i = len(sizes) - 1
	}
	v := math.Round(float64(bytes)/math.Pow(1024, float64(i))*100) / 100
	return strconv.FormatFloat(v, 'f', -1, 64) + " " + sizes[i]
}

// FromPath читает локальный файл целиком и определяет его MIME-тип: сначала
// по содержимому, при octet-stream - по расширению. Дескриптор закрывается
// здесь же, наружу уходит буфер в памяти.
func FromPath(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrFileRead, err)
	}

	mimeType := http.DetectContentType(data)
	if mimeType == "application/octet-stream" {
		if byExt := mime.TypeByExtension(filepath.Ext(path)); byExt != "" {
			mimeType = byExt
		}
	}
	// DetectContentType добавляет параметры вида "; charset=utf-8"
	if idx := strings.Index(mimeType, ";"); idx != -1 {
		mimeType = mimeType[:idx]
	}

	return &File{
		Name:   filepath.Base(path),
		Type:   mimeType,
		Size:   int64(len(data)),
		Reader: bytes.NewReader(data),
	}, nil
}
