package domain

const (
	TransactionStatusPending   = "pending"
	TransactionStatusCompleted = "completed"
	TransactionStatusFailed    = "failed"
)

// Transaction is a credit transaction between a supplier and a retailer.
type Transaction struct {
	ID          int       `json:"id"`
	Supplier    *Identity `json:"supplier,omitempty"`
	Retailer    *Identity `json:"retailer,omitempty"`
	Amount      string    `json:"amount"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	DueDate     string    `json:"due_date"`
	CreatedAt   string    `json:"created_at,omitempty"`
}

// NewTransaction is the creation payload for POST /transactions/.
type NewTransaction struct {
	Retailer    int    `json:"retailer" validate:"required,gt=0"`
	Amount      string `json:"amount" validate:"required"`
	Description string `json:"description" validate:"required"`
	DueDate     string `json:"due_date" validate:"required"`
}
