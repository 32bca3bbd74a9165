package vo

import (
	"fmt"
	"time"

	"taller/management/model"
)

type BudgetVo struct {
	ID           string         `json:"id"`
	OrderID      string         `json:"order_id,omitempty"`
	CustomerName string         `json:"customer_name"`
	Plate        string         `json:"plate"`
	Notes        string         `json:"notes"`
	Status       string         `json:"status"`
	Items        []BudgetItemVo `json:"items"`
	Total        int64          `json:"total"`
	CreatedAt    time.Time      `json:"created_at"`
}

type BudgetItemVo struct {
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
	UnitPrice   int64  `json:"unit_price"`
	Subtotal    int64  `json:"subtotal"`
}

func NewBudgetVo(b *model.Budget) *BudgetVo {
	v := &BudgetVo{
		ID:           b.ID,
		CustomerName: b.CustomerName,
		Plate:        b.Plate,
		Notes:        b.Notes,
		Status:       string(b.Status),
		Items:        make([]BudgetItemVo, 0, len(b.Items)),
		Total:        b.Total(),
		CreatedAt:    b.CreatedAt,
	}
	if b.OrderID != nil {
		v.OrderID = *b.OrderID
	}
	for _, it := range b.Items {
		v.Items = append(v.Items, BudgetItemVo{
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Subtotal:    it.Subtotal(),
		})
	}
	return v
}

// Money formats cents as euros, e.g. 12345 -> "123,45 €".
func Money(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d,%02d €", sign, cents/100, cents%100)
}
