package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
)

func TestRenderDocument_Entrada(t *testing.T) {
	delivery := time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC)
	doc := &dto.DocumentResponse{
		DocumentSummary: dto.DocumentSummary{
			ID: 1, Number: "GR-20240315-001", Kind: "goods_receipt", Status: "closed",
			AuthorID: 1, CreatedAt: time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC),
		},
		AuthorName:   "Ana Ríos",
		DeliveryDate: &delivery,
		Lines: []dto.DocumentLineResponse{
			{ID: 1, ArticleNumber: "TOR-001", ProductName: "Tornillo", Quantity: decimal.NewFromInt(10), LocationCode: "A-1-R1-1"},
		},
	}

	out, err := NewMarotoRenderer("Almacén").RenderDocument(context.Background(), doc)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestRenderDocument_ReporteSinLineas(t *testing.T) {
	doc := &dto.DocumentResponse{
		DocumentSummary: dto.DocumentSummary{Number: "SR-20240315-001", Kind: "storage_report", Status: "closed"},
	}
	out, err := NewMarotoRenderer("Almacén").RenderDocument(context.Background(), doc)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}
