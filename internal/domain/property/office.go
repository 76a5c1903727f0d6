package property

import "github.com/google/uuid"

// Office is the agency running the back office. It scopes every record and
// provides the letterhead printed on receipts.
type Office struct {
	ID       uuid.UUID
	Name     string
	LogoURL  string
	Address  string
	City     string
	Phone    string
	Email    string
	CRNumber string
}

// Owner is a landlord whose units the office manages
type Owner struct {
	ID       uuid.UUID
	OfficeID uuid.UUID
	FullName string
	Email    string
	Phone    string
}
