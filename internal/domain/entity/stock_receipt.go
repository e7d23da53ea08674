package entity

import "time"

// ReceiptDocument metadatos del documento adjunto. Los bytes viven en el almacenamiento de archivos
// externo; el ledger solo guarda la referencia.
type ReceiptDocument struct {
	FileName    string
	ContentType string
	Size        int64
	StorageKey  string
}

// StockReceipt agrupa movimientos de reposición cargados juntos.
// ReceiptAt es la fecha efectiva elegida por el usuario y ordena el historial de reposiciones,
// independientemente de la fecha de carga (CreatedAt).
type StockReceipt struct {
	ID         string
	BusinessID string
	Label      string
	UploadedBy string
	Document   ReceiptDocument
	ReceiptAt  time.Time
	CreatedAt  time.Time
}
