package report

import (
	"fmt"
	"strings"

	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/finance"
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/shared"
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// OwnerStatement is the plain-text payout history sent to an owner
type OwnerStatement struct {
	OwnerName     string
	Filename      string
	Text          string
	TotalAmount   decimal.Decimal
	PaidAmount    decimal.Decimal
	PendingAmount decimal.Decimal
}

// BuildOwnerStatement renders the statement for the given payouts. The payouts
// are expected to be filtered to the owner and range already.
func BuildOwnerStatement(ownerName string, payouts []finance.OwnerPayout, r DateRange) OwnerStatement {
	start, end := r.Label()
	st := OwnerStatement{
		OwnerName:     ownerName,
		Filename:      fmt.Sprintf("statement-%s-%s-%s.txt", fileSafe(ownerName), fileSafe(start), fileSafe(end)),
		TotalAmount:   decimal.Zero,
		PaidAmount:    decimal.Zero,
		PendingAmount: decimal.Zero,
	}

	for _, p := range payouts {
		st.TotalAmount = st.TotalAmount.Add(p.Amount)
		switch p.Status {
		case finance.PayoutStatusPaid:
			st.PaidAmount = st.PaidAmount.Add(p.Amount)
		case finance.PayoutStatusPending:
			st.PendingAmount = st.PendingAmount.Add(p.Amount)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Statement for %s\n", ownerName)
	fmt.Fprintf(&b, "Period: %s - %s\n\n", start, end)
	b.WriteString("Summary:\n")
	fmt.Fprintf(&b, "Total Amount: %s\n", valueobject.FormatSAR(st.TotalAmount))
	fmt.Fprintf(&b, "Paid Amount: %s\n", valueobject.FormatSAR(st.PaidAmount))
	fmt.Fprintf(&b, "Pending Amount: %s\n\n", valueobject.FormatSAR(st.PendingAmount))
	b.WriteString("Detailed Transactions:\n")

	for _, p := range payouts {
		b.WriteString("\n")
		fmt.Fprintf(&b, "Date: %s\n", shared.FormatDate(p.PayoutDate))
		fmt.Fprintf(&b, "Amount: %s\n", valueobject.FormatSAR(p.Amount))
		fmt.Fprintf(&b, "Status: %s\n", p.Status)
		fmt.Fprintf(&b, "Type: %s\n", p.PayoutType)
		fmt.Fprintf(&b, "Period: %s - %s\n", shared.FormatDate(p.PeriodStart), shared.FormatDate(p.PeriodEnd))
		if p.Unit != nil {
			fmt.Fprintf(&b, "Unit: %s - Unit %s\n", p.Unit.BuildingName, p.Unit.UnitNumber)
		}
		if p.PaymentMethod != nil {
			fmt.Fprintf(&b, "Payment Method: %s\n", *p.PaymentMethod)
		}
		if p.TransactionRef != "" {
			fmt.Fprintf(&b, "Reference: %s\n", p.TransactionRef)
		}
		if p.Notes != "" {
			fmt.Fprintf(&b, "Notes: %s\n", p.Notes)
		}
	}

	st.Text = b.String()
	return st
}

func fileSafe(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '/', '\\', ':', '"':
			return '-'
		}
		return r
	}, s)
}
