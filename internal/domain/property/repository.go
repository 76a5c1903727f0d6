package property

import (
	"context"

	"github.com/google/uuid"
)

// ContractRepository persists contracts
type ContractRepository interface {
	FindByIDForOffice(ctx context.Context, officeID, id uuid.UUID) (*Contract, error)
	Save(ctx context.Context, contract *Contract) error
	// SaveTermination stores a terminated contract and marks its unit vacant
	// in one transaction
	SaveTermination(ctx context.Context, contract *Contract) error
}

// OfficeRepository reads office letterheads
type OfficeRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Office, error)
	// FindAllIDs lists every office, used by scheduled jobs
	FindAllIDs(ctx context.Context) ([]uuid.UUID, error)
}

// OwnerRepository reads owners
type OwnerRepository interface {
	FindByIDForOffice(ctx context.Context, officeID, id uuid.UUID) (*Owner, error)
}
