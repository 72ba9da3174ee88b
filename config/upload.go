package config

type UploadConfig struct {
	AllowedMimeTypes []string
	MaxSizeBytes     int64
}

var UploadContexts = map[string]UploadConfig{
	// Вложение тикета: картинки, PDF и текстовые файлы до 5 MiB включительно.
	"ticket_attachment": {
		AllowedMimeTypes: []string{
			"image/jpg", "image/png", "application/pdf", "text/plain",
		},
		MaxSizeBytes: 5 * 1024 * 1024,
	},
}
