package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_Contadores(t *testing.T) {
	c := NewCollector("almacen")

	c.DocumentCreated("goods_receipt")
	c.DocumentCreated("goods_receipt")
	c.TransitionApplied("goods_issue", "closed", "insufficient_stock")
	c.ConflictRetried("create_document")

	families, err := c.Registry().Gather()
	require.NoError(t, err)
	got := make(map[string]float64)
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			if m.GetCounter() != nil {
				got[mf.GetName()] += m.GetCounter().GetValue()
			}
		}
	}
	assert.Equal(t, 2.0, got["almacen_documents_created_total"])
	assert.Equal(t, 1.0, got["almacen_document_transitions_total"])
	assert.Equal(t, 1.0, got["almacen_conflict_retries_total"])
}

func TestCollector_Handler(t *testing.T) {
	c := NewCollector("almacen")
	c.DocumentCreated("inventory")
	c.ObserveRequest("GET", "/api/documents/:id", "200", 0.01)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	text := string(body)
	assert.True(t, strings.Contains(text, `almacen_documents_created_total{kind="inventory"} 1`))
	assert.Contains(t, text, "almacen_http_request_duration_seconds")
	assert.Contains(t, text, "go_goroutines")
}
