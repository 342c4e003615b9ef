package entity

import "time"

// DocumentKind discrimina el tipo concreto de documento.
type DocumentKind string

const (
	KindGoodsReceipt  DocumentKind = "goods_receipt"
	KindGoodsIssue    DocumentKind = "goods_issue"
	KindInventory     DocumentKind = "inventory"
	KindStorageReport DocumentKind = "storage_report"
)

// Valid indica si el tipo pertenece al catálogo conocido.
func (k DocumentKind) Valid() bool {
	switch k {
	case KindGoodsReceipt, KindGoodsIssue, KindInventory, KindStorageReport:
		return true
	}
	return false
}

// IsSnapshot indica si el documento se llena completo al crearse.
func (k DocumentKind) IsSnapshot() bool {
	return k == KindInventory || k == KindStorageReport
}

// DocumentStatus estado del ciclo de vida de un documento.
type DocumentStatus string

const (
	StatusNew       DocumentStatus = "new"
	StatusLinesOpen DocumentStatus = "lines_open"
	StatusLocated   DocumentStatus = "located"
	StatusIssued    DocumentStatus = "issued"
	StatusClosed    DocumentStatus = "closed"
)

// Valid indica si el estado existe en algún flujo.
func (s DocumentStatus) Valid() bool {
	switch s {
	case StatusNew, StatusLinesOpen, StatusLocated, StatusIssued, StatusClosed:
		return true
	}
	return false
}

// Document registro común a todos los tipos de documento.
// Los campos propios de cada tipo viven en Receipt o Issue según Kind.
type Document struct {
	ID        int64
	Number    string
	Kind      DocumentKind
	Status    DocumentStatus
	AuthorID  int64
	CreatedAt time.Time
	UpdatedAt time.Time
	Receipt   *ReceiptDetails
	Issue     *IssueDetails
}

// ReceiptDetails datos propios de una entrada de mercancía.
type ReceiptDetails struct {
	DeliveryDate time.Time
}

// IssueDetails datos propios de una salida de mercancía.
type IssueDetails struct {
	SaleDate time.Time
}
