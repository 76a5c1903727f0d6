package notification

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Metadata is the typed payload attached to a notification. Each notification
// type carries exactly one variant, so consumers never probe optional keys.
type Metadata interface {
	// Link is the in-app path the notification points to
	Link() string
	metadata()
}

// ContractMetadata accompanies contract notifications
type ContractMetadata struct {
	ContractID uuid.UUID  `json:"contract_id"`
	TenantID   *uuid.UUID `json:"tenant_id,omitempty"`
	UnitID     *uuid.UUID `json:"unit_id,omitempty"`
}

func (m ContractMetadata) Link() string { return "/contracts/" + m.ContractID.String() }
func (ContractMetadata) metadata()      {}

// TenantMetadata accompanies tenant notifications
type TenantMetadata struct {
	TenantID uuid.UUID `json:"tenant_id"`
}

func (m TenantMetadata) Link() string { return "/tenants/" + m.TenantID.String() }
func (TenantMetadata) metadata()      {}

// UnitMetadata accompanies unit notifications
type UnitMetadata struct {
	UnitID uuid.UUID `json:"unit_id"`
}

func (m UnitMetadata) Link() string { return "/units/" + m.UnitID.String() }
func (UnitMetadata) metadata()      {}

// PayableMetadata accompanies invoice and rent-due notifications
type PayableMetadata struct {
	PayableID uuid.UUID       `json:"payable_id"`
	Amount    decimal.Decimal `json:"amount"`
	DueDate   string          `json:"due_date"`
}

func (m PayableMetadata) Link() string { return "/payables/" + m.PayableID.String() }
func (PayableMetadata) metadata()      {}

// PayoutMetadata accompanies payout notifications
type PayoutMetadata struct {
	PayoutID uuid.UUID       `json:"payout_id"`
	OwnerID  uuid.UUID       `json:"owner_id"`
	Amount   decimal.Decimal `json:"amount"`
}

func (m PayoutMetadata) Link() string { return "/payouts/" + m.PayoutID.String() }
func (PayoutMetadata) metadata()      {}

// ExpenseMetadata accompanies office expense notifications
type ExpenseMetadata struct {
	ExpenseID uuid.UUID       `json:"expense_id"`
	Amount    decimal.Decimal `json:"amount"`
}

func (m ExpenseMetadata) Link() string { return "/finances/" + m.ExpenseID.String() }
func (ExpenseMetadata) metadata()      {}

// NewPayableMetadata builds the payload for invoice_issued and rent_due
func NewPayableMetadata(payableID uuid.UUID, amount decimal.Decimal, due time.Time) PayableMetadata {
	return PayableMetadata{PayableID: payableID, Amount: amount, DueDate: due.Format("2006-01-02")}
}

// SubjectID returns the id of the record a variant points at
func SubjectID(m Metadata) uuid.UUID {
	switch v := m.(type) {
	case ContractMetadata:
		return v.ContractID
	case TenantMetadata:
		return v.TenantID
	case UnitMetadata:
		return v.UnitID
	case PayableMetadata:
		return v.PayableID
	case PayoutMetadata:
		return v.PayoutID
	case ExpenseMetadata:
		return v.ExpenseID
	}
	return uuid.Nil
}

// expectedVariant reports whether m is the variant carried by type t
func expectedVariant(t Type, m Metadata) bool {
	switch m.(type) {
	case ContractMetadata:
		return t == TypeContractCreated
	case TenantMetadata:
		return t == TypeTenantAdded
	case UnitMetadata:
		return t == TypeUnitAdded
	case PayableMetadata:
		return t == TypeInvoiceIssued || t == TypeRentDue
	case PayoutMetadata:
		return t == TypePayoutCreated
	case ExpenseMetadata:
		return t == TypeExpenseAdded
	}
	return false
}

// EncodeMetadata serializes a variant for the metadata column
func EncodeMetadata(m Metadata) ([]byte, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(m)
}

// DecodeMetadata restores the variant for the given notification type
func DecodeMetadata(t Type, raw []byte) (Metadata, error) {
	if len(raw) == 0 {
		raw = []byte("{}")
	}

	var (
		m   Metadata
		err error
	)
	switch t {
	case TypeContractCreated:
		var v ContractMetadata
		err = json.Unmarshal(raw, &v)
		m = v
	case TypeTenantAdded:
		var v TenantMetadata
		err = json.Unmarshal(raw, &v)
		m = v
	case TypeUnitAdded:
		var v UnitMetadata
		err = json.Unmarshal(raw, &v)
		m = v
	case TypeInvoiceIssued, TypeRentDue:
		var v PayableMetadata
		err = json.Unmarshal(raw, &v)
		m = v
	case TypePayoutCreated:
		var v PayoutMetadata
		err = json.Unmarshal(raw, &v)
		m = v
	case TypeExpenseAdded:
		var v ExpenseMetadata
		err = json.Unmarshal(raw, &v)
		m = v
	default:
		return nil, fmt.Errorf("unknown notification type %q", t)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s metadata: %w", t, err)
	}
	return m, nil
}
