package model

type BudgetStatus string

const (
	BudgetDraft    BudgetStatus = "draft"
	BudgetSent     BudgetStatus = "sent"
	BudgetAccepted BudgetStatus = "accepted"
	BudgetRejected BudgetStatus = "rejected"
)

var BudgetStatuses = []BudgetStatus{BudgetDraft, BudgetSent, BudgetAccepted, BudgetRejected}

func (s BudgetStatus) Valid() bool {
	for _, v := range BudgetStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Budget is a quote (presupuesto) handed to a customer.
type Budget struct {
	Model
	OrderID      *string      `gorm:"size:36;index" json:"order_id,omitempty"`
	CustomerName string       `gorm:"size:128" json:"customer_name"`
	Plate        string       `gorm:"size:32" json:"plate"`
	Notes        string       `gorm:"type:text" json:"notes"`
	Status       BudgetStatus `gorm:"size:32;index" json:"status"`
	Items        []BudgetItem `gorm:"foreignKey:BudgetID;constraint:OnDelete:CASCADE" json:"items"`
}

func (Budget) TableName() string {
	return "budgets"
}

// Total is the sum of every line in cents.
func (b *Budget) Total() int64 {
	var total int64
	for _, it := range b.Items {
		total += it.Subtotal()
	}
	return total
}

type BudgetItem struct {
	Model
	BudgetID    string `gorm:"size:36;index" json:"budget_id"`
	Description string `gorm:"size:255" json:"description"`
	Quantity    int    `json:"quantity"`
	// UnitPrice is in cents.
	UnitPrice int64 `json:"unit_price"`
}

func (BudgetItem) TableName() string {
	return "budget_items"
}

func (i BudgetItem) Subtotal() int64 {
	return int64(i.Quantity) * i.UnitPrice
}
