package dto

type OrderDto struct {
	Plate        string `json:"plate"`
	CustomerName string `json:"customer_name"`
	Phone        string `json:"phone"`
	VehicleModel string `json:"vehicle_model"`
	Description  string `json:"description"`
}

type StatusDto struct {
	Status string `json:"status" binding:"required"`
}
