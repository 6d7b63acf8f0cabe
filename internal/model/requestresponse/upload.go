package requestresponse

import "volunteer-match-server/internal/model"

// CreateUploadRequest : метаданные загружаемого файла
type CreateUploadRequest struct {
	FilenameOriginal string `json:"filename_original" example:"passport_scan.pdf"`
	SizeBytes        int64  `json:"size_bytes" example:"204800"`
	MimeType         string `json:"mime_type" example:"application/pdf"`
}

// CreateUploadResponse : успешный ответ с pre-signed PUT URL
type CreateUploadResponse struct {
	Response struct {
		UUID   string `json:"uuid"`
		PutURL string `json:"put_url"`
	} `json:"response"`
}

// UploadResponse : успешный ответ с данными файла
type UploadResponse struct {
	Data *model.UploadResponse `json:"data"`
}

// ListUploadsResponse : успешный ответ
type ListUploadsResponse struct {
	Data struct {
		Uploads []model.UploadResponse `json:"uploads"`
	} `json:"data"`
}

// DeleteUploadResponse : успешный ответ на удаление
type DeleteUploadResponse struct {
	Response struct {
		Deleted bool `json:"deleted" example:"true"`
	} `json:"response"`
}
