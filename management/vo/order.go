package vo

import (
	"time"

	"taller/management/model"
)

type OrderVo struct {
	ID           string    `json:"id"`
	Plate        string    `json:"plate"`
	CustomerName string    `json:"customer_name"`
	Phone        string    `json:"phone,omitempty"`
	VehicleModel string    `json:"vehicle_model"`
	Description  string    `json:"description"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func NewOrderVo(o *model.Order) *OrderVo {
	return &OrderVo{
		ID:           o.ID,
		Plate:        o.Plate,
		CustomerName: o.CustomerName,
		Phone:        o.Phone,
		VehicleModel: o.VehicleModel,
		Description:  o.Description,
		Status:       string(o.Status),
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
}

// Public strips the fields a plate lookup must not expose.
func (o *OrderVo) Public() *OrderVo {
	p := *o
	p.Phone = ""
	p.CustomerName = ""
	return &p
}
