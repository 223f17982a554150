package config

type UploadConfig struct {
	AllowedMimeTypes []string
	MaxSizeMB        int64
	PathPrefix       string
}

// UploadContexts — правила загрузки по категориям файлов сотрудника.
// Ключ передаётся в validation.ValidateFile и в filestorage как префикс пути.
var UploadContexts = map[string]UploadConfig{
	"photo": {
		AllowedMimeTypes: []string{"image/jpeg", "image/png", "image/gif", "image/jpg"},
		MaxSizeMB:        10,
		PathPrefix:       "photos",
	},
	"cv": {
		AllowedMimeTypes: []string{
			"application/pdf",
			"application/msword",
			"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		},
		MaxSizeMB:  10,
		PathPrefix: "documents/cv",
	},
	"id_document": {
		AllowedMimeTypes: []string{"application/pdf", "image/jpeg", "image/png"},
		MaxSizeMB:        10,
		PathPrefix:       "documents/id",
	},
}
