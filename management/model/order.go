package model

type OrderStatus string

const (
	OrderReceived   OrderStatus = "received"
	OrderInProgress OrderStatus = "in_progress"
	OrderReady      OrderStatus = "ready"
	OrderDelivered  OrderStatus = "delivered"
)

var OrderStatuses = []OrderStatus{OrderReceived, OrderInProgress, OrderReady, OrderDelivered}

func (s OrderStatus) Valid() bool {
	for _, v := range OrderStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Order is a repair job on a customer's vehicle, looked up publicly by plate.
type Order struct {
	Model
	Plate        string      `gorm:"size:32;index" json:"plate"`
	CustomerName string      `gorm:"size:128" json:"customer_name"`
	Phone        string      `gorm:"size:32" json:"phone"`
	VehicleModel string      `gorm:"size:128" json:"vehicle_model"`
	Description  string      `gorm:"type:text" json:"description"`
	Status       OrderStatus `gorm:"size:32;index" json:"status"`
}

func (Order) TableName() string {
	return "orders"
}
