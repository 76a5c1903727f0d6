package finance

import "strings"

// PaymentMethod is how money changed hands
type PaymentMethod string

const (
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodCheck        PaymentMethod = "check"
)

// IsValid checks if the payment method is known
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodBankTransfer, PaymentMethodCash, PaymentMethodCheck:
		return true
	}
	return false
}

func (m PaymentMethod) String() string {
	return string(m)
}

// DisplayName renders "bank_transfer" as "BANK TRANSFER"
func (m PaymentMethod) DisplayName() string {
	return strings.ToUpper(strings.ReplaceAll(string(m), "_", " "))
}

// PayableCategory classifies what a payable is charged for
type PayableCategory string

const (
	PayableCategoryRent           PayableCategory = "rent"
	PayableCategoryMaintenanceFee PayableCategory = "maintenance_fee"
	PayableCategoryUtilityFee     PayableCategory = "utility_fee"
	PayableCategoryInsuranceFee   PayableCategory = "insurance_fee"
	PayableCategoryServiceFee     PayableCategory = "service_fee"
	PayableCategoryDepositFee     PayableCategory = "deposit_fee"
	PayableCategoryOther          PayableCategory = "other"
)

// AllPayableCategories lists the categories in display order
func AllPayableCategories() []PayableCategory {
	return []PayableCategory{
		PayableCategoryRent,
		PayableCategoryMaintenanceFee,
		PayableCategoryUtilityFee,
		PayableCategoryInsuranceFee,
		PayableCategoryServiceFee,
		PayableCategoryDepositFee,
		PayableCategoryOther,
	}
}

// IsValid checks if the category is known
func (c PayableCategory) IsValid() bool {
	for _, v := range AllPayableCategories() {
		if c == v {
			return true
		}
	}
	return false
}

func (c PayableCategory) String() string {
	return string(c)
}

// DisplayName renders "maintenance_fee" as "Maintenance Fee"
func (c PayableCategory) DisplayName() string {
	return titleWords(string(c))
}

// PayableStatus is the lifecycle state of a payable
type PayableStatus string

const (
	PayableStatusPending   PayableStatus = "pending"
	PayableStatusPaid      PayableStatus = "paid"
	PayableStatusOverdue   PayableStatus = "overdue"
	PayableStatusCancelled PayableStatus = "cancelled"
)

// IsValid checks if the status is known
func (s PayableStatus) IsValid() bool {
	switch s {
	case PayableStatusPending, PayableStatusPaid, PayableStatusOverdue, PayableStatusCancelled:
		return true
	}
	return false
}

func (s PayableStatus) String() string {
	return string(s)
}

// IsOpen is true while money is still expected
func (s PayableStatus) IsOpen() bool {
	return s == PayableStatusPending || s == PayableStatusOverdue
}

// PayableType tells whether the office receives or pays the amount
type PayableType string

const (
	PayableTypeIncoming PayableType = "incoming"
	PayableTypeOutgoing PayableType = "outgoing"
)

// IsValid checks if the type is known
func (t PayableType) IsValid() bool {
	return t == PayableTypeIncoming || t == PayableTypeOutgoing
}

func (t PayableType) String() string {
	return string(t)
}

// PayoutStatus is the lifecycle state of an owner payout
type PayoutStatus string

const (
	PayoutStatusPending   PayoutStatus = "pending"
	PayoutStatusPaid      PayoutStatus = "paid"
	PayoutStatusCancelled PayoutStatus = "cancelled"
)

// IsValid checks if the status is known
func (s PayoutStatus) IsValid() bool {
	switch s {
	case PayoutStatusPending, PayoutStatusPaid, PayoutStatusCancelled:
		return true
	}
	return false
}

func (s PayoutStatus) String() string {
	return string(s)
}

// PayoutType classifies what a payout settles
type PayoutType string

const (
	PayoutTypeRent        PayoutType = "rent"
	PayoutTypeMaintenance PayoutType = "maintenance"
	PayoutTypeOther       PayoutType = "other"
)

// IsValid checks if the payout type is known
func (t PayoutType) IsValid() bool {
	switch t {
	case PayoutTypeRent, PayoutTypeMaintenance, PayoutTypeOther:
		return true
	}
	return false
}

func (t PayoutType) String() string {
	return string(t)
}

// FinanceType splits office finances into income and expense
type FinanceType string

const (
	FinanceTypeIncome  FinanceType = "income"
	FinanceTypeExpense FinanceType = "expense"
)

// IsValid checks if the finance type is known
func (t FinanceType) IsValid() bool {
	return t == FinanceTypeIncome || t == FinanceTypeExpense
}

func (t FinanceType) String() string {
	return string(t)
}

// FinanceCategory classifies an office income or expense
type FinanceCategory string

const (
	FinanceCategorySalary      FinanceCategory = "salary"
	FinanceCategoryRent        FinanceCategory = "rent"
	FinanceCategoryUtilities   FinanceCategory = "utilities"
	FinanceCategoryMaintenance FinanceCategory = "maintenance"
	FinanceCategoryMarketing   FinanceCategory = "marketing"
	FinanceCategoryOther       FinanceCategory = "other"
)

// IsValid checks if the category is known
func (c FinanceCategory) IsValid() bool {
	switch c {
	case FinanceCategorySalary, FinanceCategoryRent, FinanceCategoryUtilities,
		FinanceCategoryMaintenance, FinanceCategoryMarketing, FinanceCategoryOther:
		return true
	}
	return false
}

func (c FinanceCategory) String() string {
	return string(c)
}

// DisplayName renders "utilities" as "Utilities"
func (c FinanceCategory) DisplayName() string {
	return titleWords(string(c))
}

// FinanceStatus is the lifecycle state of an office finance entry
type FinanceStatus string

const (
	FinanceStatusPending   FinanceStatus = "pending"
	FinanceStatusCompleted FinanceStatus = "completed"
	FinanceStatusCancelled FinanceStatus = "cancelled"
)

// IsValid checks if the status is known
func (s FinanceStatus) IsValid() bool {
	switch s {
	case FinanceStatusPending, FinanceStatusCompleted, FinanceStatusCancelled:
		return true
	}
	return false
}

func (s FinanceStatus) String() string {
	return string(s)
}

// RecurringFrequency is how often a recurring office finance repeats
type RecurringFrequency string

const (
	FrequencyMonthly   RecurringFrequency = "monthly"
	FrequencyQuarterly RecurringFrequency = "quarterly"
	FrequencyYearly    RecurringFrequency = "yearly"
)

// IsValid checks if the frequency is known
func (f RecurringFrequency) IsValid() bool {
	switch f {
	case FrequencyMonthly, FrequencyQuarterly, FrequencyYearly:
		return true
	}
	return false
}

// Months returns the number of calendar months between occurrences
func (f RecurringFrequency) Months() int {
	switch f {
	case FrequencyQuarterly:
		return 3
	case FrequencyYearly:
		return 12
	default:
		return 1
	}
}

func titleWords(s string) string {
	parts := strings.Split(s, "_")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}
