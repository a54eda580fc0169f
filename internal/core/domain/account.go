package domain

// AccountNature defines which side of the ledger increases an account.
type AccountNature string

const (
	DebitNature  AccountNature = "DEBIT"
	CreditNature AccountNature = "CREDIT"
)

// AccountClass groups accounts by the leading digit of their code.
type AccountClass string

const (
	ClassAsset       AccountClass = "ASSET"
	ClassLiability   AccountClass = "LIABILITY"
	ClassEquity      AccountClass = "EQUITY"
	ClassRevenue     AccountClass = "REVENUE"
	ClassExpense     AccountClass = "EXPENSE"
	ClassCostOfSales AccountClass = "COST_OF_SALES"
	ClassOther       AccountClass = "OTHER"
)

// ClassForCode derives the account class from the leading digit of an
// account code. Codes outside the 1-7 plan fall into ClassOther.
func ClassForCode(code string) AccountClass {
	if code == "" {
		return ClassOther
	}
	switch code[0] {
	case '1':
		return ClassAsset
	case '2':
		return ClassLiability
	case '3':
		return ClassEquity
	case '4':
		return ClassRevenue
	case '5':
		return ClassExpense
	case '6', '7':
		return ClassCostOfSales
	default:
		return ClassOther
	}
}

// Account represents one entry in the chart of accounts. The code is the
// primary key; nature is fixed at creation and never mutated.
type Account struct {
	Code   string        `json:"code"`
	Name   string        `json:"name"`
	Nature AccountNature `json:"nature"`
	Class  AccountClass  `json:"class"`
	AuditFields
}
