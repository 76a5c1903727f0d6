// Package models contains the GORM persistence models of the service. Domain
// entities stay free of ORM tags; repositories convert between the two.
//
// Structure:
//   - base.go: BaseModel, OfficeAggregateModel and the jsonb attachment list
//   - finance.go: payables, owner payouts and office finances
//   - property.go: offices, owners, tenants, buildings, units and contracts
//   - notification.go: the notification feed
package models
