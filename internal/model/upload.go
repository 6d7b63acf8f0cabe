package model

import "time"

type Upload struct {
	UUID             string    `db:"uuid" json:"uuid"`
	OwnerUUID        string    `db:"owner_uuid" json:"owner_uuid"`
	FilenameOriginal string    `db:"filename_original" json:"filename_original"`
	SizeBytes        int64     `db:"size_bytes" json:"size_bytes"`
	MimeType         string    `db:"mime_type" json:"mime_type"`
	StoragePath      string    `db:"storage_path" json:"storage_path"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
}

type UploadResponse struct {
	UUID             string    `json:"uuid"`
	FilenameOriginal string    `json:"filename_original"`
	MimeType         string    `json:"mime_type"`
	PresignedURL     string    `json:"presigned_url"`
	CreatedAt        time.Time `json:"created_at"`
}

type CreateUploadResult struct {
	Upload *Upload
	PutURL string // pre-signed URL для загрузки файла клиентом
}
