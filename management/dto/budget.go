package dto

type BudgetDto struct {
	OrderID      string          `json:"order_id"`
	CustomerName string          `json:"customer_name"`
	Plate        string          `json:"plate"`
	Notes        string          `json:"notes"`
	Items        []BudgetItemDto `json:"items"`
}

type BudgetItemDto struct {
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
	UnitPrice   int64  `json:"unit_price"`
}
