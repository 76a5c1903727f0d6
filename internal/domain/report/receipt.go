package report

import (
	"strings"
	"time"

	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/finance"
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/property"
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/shared/valueobject"
)

const notAvailable = "N/A"

// receiptDateLayout renders dates as "March 4, 2026"
const receiptDateLayout = "January 2, 2006"

// Receipt is the print-ready content of a payable receipt
type Receipt struct {
	Office        ReceiptOffice
	Number        string
	Amount        string
	Category      string
	Type          string
	Status        string
	DueDate       string
	PaymentDate   string
	PaymentMethod string
	Reference     string
	Building      string
	Unit          string
	Tenant        string
	Notes         string
	Paid          bool
}

// ReceiptOffice is the letterhead block
type ReceiptOffice struct {
	Name     string
	LogoURL  string
	Address  string
	City     string
	Phone    string
	Email    string
	CRNumber string
}

// NewReceipt fills the receipt for a payable. Missing values print as N/A.
func NewReceipt(office property.Office, p finance.Payable) Receipt {
	r := Receipt{
		Office: ReceiptOffice{
			Name:     office.Name,
			LogoURL:  office.LogoURL,
			Address:  office.Address,
			City:     office.City,
			Phone:    office.Phone,
			Email:    office.Email,
			CRNumber: office.CRNumber,
		},
		Number:        p.ReceiptNumber(),
		Amount:        valueobject.FormatSAR(p.Amount),
		Category:      p.Category.DisplayName(),
		Type:          capitalize(string(p.Type)),
		Status:        strings.ToUpper(string(p.Status)),
		DueDate:       orNA(longDate(p.DueDate)),
		PaymentDate:   notAvailable,
		PaymentMethod: notAvailable,
		Reference:     orNA(p.TransactionRef),
		Building:      notAvailable,
		Unit:          notAvailable,
		Tenant:        notAvailable,
		Notes:         p.Notes,
		Paid:          p.IsPaid(),
	}
	if p.PaymentDate != nil {
		r.PaymentDate = orNA(longDate(*p.PaymentDate))
	}
	if p.PaymentMethod != nil {
		r.PaymentMethod = orNA(p.PaymentMethod.DisplayName())
	}
	if c := p.Contract; c != nil {
		r.Building = orNA(c.BuildingName)
		r.Unit = orNA(c.UnitNumber)
		r.Tenant = orNA(c.TenantName)
	}
	return r
}

func longDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(receiptDateLayout)
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return notAvailable
	}
	return s
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
