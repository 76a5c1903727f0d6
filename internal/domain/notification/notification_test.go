package notification

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadata_Link(t *testing.T) {
	id := uuid.MustParse("11111111-2222-3333-4444-555555555555")
	tests := []struct {
		name     string
		meta     Metadata
		expected string
	}{
		{"contract", ContractMetadata{ContractID: id}, "/contracts/" + id.String()},
		{"tenant", TenantMetadata{TenantID: id}, "/tenants/" + id.String()},
		{"unit", UnitMetadata{UnitID: id}, "/units/" + id.String()},
		{"payable", PayableMetadata{PayableID: id}, "/payables/" + id.String()},
		{"payout", PayoutMetadata{PayoutID: id}, "/payouts/" + id.String()},
		{"expense", ExpenseMetadata{ExpenseID: id}, "/finances/" + id.String()},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.meta.Link())
		})
	}
}

func TestNew_RejectsMismatchedMetadata(t *testing.T) {
	_, err := New(uuid.New(), TypeRentDue, "Rent due", "", PayoutMetadata{PayoutID: uuid.New()})
	assert.Error(t, err)

	n, err := New(uuid.New(), TypeRentDue, "Rent due", "Unit A-1", PayableMetadata{PayableID: uuid.New()})
	require.NoError(t, err)
	assert.False(t, n.IsRead)
	assert.Contains(t, n.Link(), "/payables/")

	_, err = New(uuid.New(), Type("party"), "x", "", nil)
	assert.Error(t, err)

	_, err = New(uuid.Nil, TypeUnitAdded, "x", "", nil)
	assert.Error(t, err)
}

func TestMetadata_RoundTrip(t *testing.T) {
	tenant := uuid.New()
	original := ContractMetadata{ContractID: uuid.New(), TenantID: &tenant}

	raw, err := EncodeMetadata(original)
	require.NoError(t, err)

	decoded, err := DecodeMetadata(TypeContractCreated, raw)
	require.NoError(t, err)
	got, ok := decoded.(ContractMetadata)
	require.True(t, ok)
	assert.Equal(t, original.ContractID, got.ContractID)
	require.NotNil(t, got.TenantID)
	assert.Equal(t, tenant, *got.TenantID)
	assert.Nil(t, got.UnitID)
}

func TestDecodeMetadata_PayableVariant(t *testing.T) {
	pid := uuid.New()
	raw, err := EncodeMetadata(NewPayableMetadata(pid, decimal.RequireFromString("1250.5"), time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	decoded, err := DecodeMetadata(TypeInvoiceIssued, raw)
	require.NoError(t, err)
	pm := decoded.(PayableMetadata)
	assert.Equal(t, pid, pm.PayableID)
	assert.Equal(t, "2026-04-01", pm.DueDate)
	assert.True(t, pm.Amount.Equal(decimal.RequireFromString("1250.5")))
}

func TestDecodeMetadata_Errors(t *testing.T) {
	_, err := DecodeMetadata(Type("unknown"), []byte("{}"))
	assert.Error(t, err)

	_, err = DecodeMetadata(TypeTenantAdded, []byte("not json"))
	assert.Error(t, err)

	m, err := DecodeMetadata(TypeUnitAdded, nil)
	require.NoError(t, err)
	assert.Equal(t, UnitMetadata{}, m)
}

func TestNewFeed(t *testing.T) {
	feed := NewFeed(nil)
	assert.NotNil(t, feed.Items)
	assert.Zero(t, feed.UnreadCount)

	feed = NewFeed([]Notification{{IsRead: true}, {IsRead: false}, {IsRead: false}})
	assert.Equal(t, 2, feed.UnreadCount)
	assert.Len(t, feed.Items, 3)
}

func TestSubjectID(t *testing.T) {
	id := uuid.New()
	assert.Equal(t, id, SubjectID(PayableMetadata{PayableID: id}))
	assert.Equal(t, id, SubjectID(ExpenseMetadata{ExpenseID: id}))
	assert.Equal(t, id, SubjectID(ContractMetadata{ContractID: id}))
	assert.Equal(t, uuid.Nil, SubjectID(nil))
}
