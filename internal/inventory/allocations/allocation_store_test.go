package allocations

import (
	"testing"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRowLocks(t *testing.T) {
	db := goqu.New("postgres", nil)
	id := uuid.New()

	tests := []struct {
		name  string
		query *goqu.SelectDataset
		table string
	}{
		{"item lock", lockItemQuery(db, id), `FROM "inventory_items"`},
		{"allocation lock", lockAllocationQuery(db, id), `FROM "inventory_allocations"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, _, err := tt.query.ToSQL()
			require.NoError(t, err)

			assert.Contains(t, sql, tt.table)
			assert.Contains(t, sql, `("id" = '`+id.String()+`')`)
			assert.Contains(t, sql, "FOR UPDATE")
		})
	}
}

func TestOpenAllocationsQuerySkipsReturned(t *testing.T) {
	itemID := uuid.New()

	sql, _, err := openAllocationsQuery(goqu.New("postgres", nil), itemID).ToSQL()
	require.NoError(t, err)

	assert.Contains(t, sql, `("item_id" = '`+itemID.String()+`')`)
	assert.Contains(t, sql, `("returned_at" IS NULL)`)
	assert.NotContains(t, sql, "FOR UPDATE")
}

func TestMarkReturnedQueryOnlyClosesOpenAllocation(t *testing.T) {
	id := uuid.New()
	at := time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

	sql, _, err := markReturnedQuery(goqu.New("postgres", nil), id, at).ToSQL()
	require.NoError(t, err)

	assert.Contains(t, sql, `UPDATE "inventory_allocations" SET "returned_at"=`)
	assert.Contains(t, sql, `("id" = '`+id.String()+`')`)
	assert.Contains(t, sql, `("returned_at" IS NULL)`)
}
