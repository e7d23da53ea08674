package dto

import "time"

// CreateReceiptRequest body para POST /api/receipts. El documento se sube aparte;
// aquí solo viajan sus metadatos.
type CreateReceiptRequest struct {
	Label       string    `json:"label" validate:"required,max=200"`
	ReceiptAt   time.Time `json:"receipt_at" validate:"required"`
	FileName    string    `json:"file_name,omitempty"`
	ContentType string    `json:"content_type,omitempty"`
	Size        int64     `json:"size,omitempty" validate:"min=0"`
	StorageKey  string    `json:"storage_key,omitempty"`
}

// ReceiptResponse representación de un recibo.
type ReceiptResponse struct {
	ID          string    `json:"id"`
	Label       string    `json:"label"`
	UploadedBy  string    `json:"uploaded_by"`
	FileName    string    `json:"file_name,omitempty"`
	ContentType string    `json:"content_type,omitempty"`
	Size        int64     `json:"size,omitempty"`
	ReceiptAt   time.Time `json:"receipt_at"`
	CreatedAt   time.Time `json:"created_at"`
}
