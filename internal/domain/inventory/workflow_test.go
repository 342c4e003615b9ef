package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/inventory"
)

func TestWorkflow_Entrada(t *testing.T) {
	wf, err := inventory.WorkflowFor(entity.KindGoodsReceipt)
	require.NoError(t, err)

	assert.Equal(t, entity.StatusNew, wf.Initial())
	assert.Equal(t, inventory.LinesUnique, wf.LinePolicy())
	assert.True(t, wf.AcceptsLines(entity.StatusNew))
	assert.True(t, wf.AcceptsLines(entity.StatusLinesOpen))
	assert.False(t, wf.AcceptsLines(entity.StatusLocated))

	assert.NoError(t, wf.ValidateTransition(entity.StatusLinesOpen, entity.StatusLocated))
	assert.NoError(t, wf.ValidateTransition(entity.StatusLocated, entity.StatusClosed))
	assert.ErrorIs(t, wf.ValidateTransition(entity.StatusNew, entity.StatusLocated), domain.ErrInvalidState)
	assert.ErrorIs(t, wf.ValidateTransition(entity.StatusLinesOpen, entity.StatusClosed), domain.ErrInvalidState)
	assert.ErrorIs(t, wf.ValidateTransition(entity.StatusLocated, entity.StatusIssued), domain.ErrInvalidState)
}

func TestWorkflow_Salida(t *testing.T) {
	wf, err := inventory.WorkflowFor(entity.KindGoodsIssue)
	require.NoError(t, err)

	assert.Equal(t, inventory.LinesMerge, wf.LinePolicy())
	assert.NoError(t, wf.ValidateTransition(entity.StatusNew, entity.StatusIssued))
	assert.NoError(t, wf.ValidateTransition(entity.StatusLinesOpen, entity.StatusIssued))
	assert.NoError(t, wf.ValidateTransition(entity.StatusIssued, entity.StatusClosed))
	assert.ErrorIs(t, wf.ValidateTransition(entity.StatusNew, entity.StatusClosed), domain.ErrInvalidState)
	assert.False(t, wf.AcceptsLines(entity.StatusIssued))
}

func TestWorkflow_CerradoEsTerminal(t *testing.T) {
	for _, kind := range []entity.DocumentKind{
		entity.KindGoodsReceipt, entity.KindGoodsIssue, entity.KindInventory, entity.KindStorageReport,
	} {
		wf, err := inventory.WorkflowFor(kind)
		require.NoError(t, err)
		for _, to := range wf.Statuses() {
			assert.ErrorIs(t, wf.ValidateTransition(entity.StatusClosed, to), domain.ErrInvalidState,
				"%s: closed -> %s debe rechazarse", kind, to)
		}
	}
}

func TestWorkflow_Instantaneas(t *testing.T) {
	wf, err := inventory.WorkflowFor(entity.KindInventory)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusClosed, wf.Initial())
	assert.Equal(t, inventory.LinesNone, wf.LinePolicy())
	assert.False(t, wf.AcceptsLines(entity.StatusClosed))

	_, err = inventory.WorkflowFor("transfer")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
