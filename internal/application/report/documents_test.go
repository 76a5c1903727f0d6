package report

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/finance"
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/property"
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/report"
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOffices struct {
	office *property.Office
	err    error
}

func (f *fakeOffices) FindByID(context.Context, uuid.UUID) (*property.Office, error) {
	return f.office, f.err
}

func (f *fakeOffices) FindAllIDs(context.Context) ([]uuid.UUID, error) {
	if f.office == nil {
		return nil, f.err
	}
	return []uuid.UUID{f.office.ID}, f.err
}

type fakeOwners struct {
	owners map[uuid.UUID]*property.Owner
}

func (f *fakeOwners) FindByIDForOffice(_ context.Context, _, id uuid.UUID) (*property.Owner, error) {
	return f.owners[id], nil
}

type recordingRenderer struct {
	got report.Receipt
	err error
}

func (r *recordingRenderer) RenderReceipt(_ context.Context, receipt report.Receipt) ([]byte, error) {
	r.got = receipt
	if r.err != nil {
		return nil, r.err
	}
	return []byte("%PDF-1.7"), nil
}

func TestDocumentService_Receipt(t *testing.T) {
	session := testSession()
	p := payable(t, session.OfficeID, 1500, finance.PayableStatusPaid, day(2026, 3, 1))
	renderer := &recordingRenderer{}
	svc := NewDocumentService(
		&fakePayables{items: []finance.Payable{p}},
		&fakePayouts{},
		&fakeOffices{office: &property.Office{ID: session.OfficeID, Name: "Debrah Realty", CRNumber: "1010"}},
		&fakeOwners{},
		renderer,
		nil,
	)

	file, err := svc.Receipt(context.Background(), session, p.ID)

	require.NoError(t, err)
	assert.Equal(t, "receipt-"+p.ReceiptNumber()+".pdf", file.Filename)
	assert.Equal(t, []byte("%PDF-1.7"), file.Data)
	assert.Equal(t, "Debrah Realty", renderer.got.Office.Name)
	assert.True(t, renderer.got.Paid)
}

func TestDocumentService_Receipt_Failures(t *testing.T) {
	session := testSession()
	p := payable(t, session.OfficeID, 1500, finance.PayableStatusPending, day(2026, 3, 1))
	offices := &fakeOffices{office: &property.Office{ID: session.OfficeID}}

	t.Run("printing disabled", func(t *testing.T) {
		svc := NewDocumentService(&fakePayables{items: []finance.Payable{p}}, &fakePayouts{}, offices, &fakeOwners{}, nil, nil)
		_, err := svc.Receipt(context.Background(), session, p.ID)
		require.Error(t, err)
	})

	t.Run("renderer error is humanized", func(t *testing.T) {
		svc := NewDocumentService(&fakePayables{items: []finance.Payable{p}}, &fakePayouts{}, offices, &fakeOwners{},
			&recordingRenderer{err: errors.New("websocket closed")}, nil)
		_, err := svc.Receipt(context.Background(), session, p.ID)
		require.Error(t, err)
		assert.Equal(t, "We couldn't print the receipt. Please try again", err.Error())
	})

	t.Run("unknown payable", func(t *testing.T) {
		svc := NewDocumentService(&fakePayables{}, &fakePayouts{}, offices, &fakeOwners{}, &recordingRenderer{}, nil)
		_, err := svc.Receipt(context.Background(), session, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestDocumentService_OwnerStatement(t *testing.T) {
	session := testSession()
	ownerID := uuid.New()
	payouts := &fakePayouts{items: []finance.OwnerPayout{
		payout(t, session.OfficeID, 800, day(2026, 2, 5)),
		payout(t, session.OfficeID, 700, day(2026, 3, 5)),
	}}
	svc := NewDocumentService(&fakePayables{}, payouts, &fakeOffices{},
		&fakeOwners{owners: map[uuid.UUID]*property.Owner{ownerID: {ID: ownerID, FullName: "Khalid Saad"}}},
		nil, nil)
	start := day(2026, 1, 1)

	st, err := svc.OwnerStatement(context.Background(), session, ownerID, report.DateRange{Start: &start})

	require.NoError(t, err)
	require.Len(t, payouts.filters, 1)
	assert.Equal(t, &ownerID, payouts.filters[0].OwnerID)
	assert.Equal(t, &start, payouts.filters[0].FromDate)
	assert.True(t, strings.HasPrefix(st.Text, "Statement for Khalid Saad\n"))
	assert.Contains(t, st.Text, "Total Amount: SAR 1,500.00")
	assert.True(t, strings.HasPrefix(st.Filename, "statement-"))
}

func TestDocumentService_OwnerStatement_UnknownOwner(t *testing.T) {
	svc := NewDocumentService(&fakePayables{}, &fakePayouts{}, &fakeOffices{}, &fakeOwners{}, nil, nil)

	_, err := svc.OwnerStatement(context.Background(), testSession(), uuid.New(), report.DateRange{})

	assert.ErrorIs(t, err, shared.ErrNotFound)
}
