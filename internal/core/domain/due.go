package domain

const (
	DueStatusPending = "pending"
	DueStatusPaid    = "paid"
	DueStatusOverdue = "overdue"
)

// Due is a supplier-recorded amount owed by a specific retailer.
// Amounts travel as decimal strings, matching the remote serializer.
type Due struct {
	ID            int    `json:"id"`
	Retailer      int    `json:"retailer"`
	RetailerName  string `json:"retailer_name,omitempty"`
	RetailerPhone string `json:"retailer_phone,omitempty"`
	SupplierName  string `json:"supplier_name,omitempty"`
	Amount        string `json:"amount"`
	Description   string `json:"description"`
	PurchaseDate  string `json:"purchase_date"`
	DueDate       string `json:"due_date"`
	Status        string `json:"status"`
	CreatedAt     string `json:"created_at,omitempty"`
}

// NewDue is the creation payload for POST /dues/.
type NewDue struct {
	Retailer     int    `json:"retailer" validate:"required,gt=0"`
	Amount       string `json:"amount" validate:"required"`
	Description  string `json:"description" validate:"required"`
	PurchaseDate string `json:"purchase_date" validate:"required"`
	DueDate      string `json:"due_date" validate:"required"`
}

// DueSummary is the supplier-side aggregate served by GET /dues/summary/.
// All numbers are computed remotely; this process only renders them.
type DueSummary struct {
	TotalOutstanding    float64 `json:"totalOutstanding"`
	DueToday            float64 `json:"dueToday"`
	OverdueAmount       float64 `json:"overdueAmount"`
	ThisMonthCollection float64 `json:"thisMonthCollection"`
	LastMonthCollection float64 `json:"lastMonthCollection"`
	TotalRetailers      int     `json:"totalRetailers"`
}
