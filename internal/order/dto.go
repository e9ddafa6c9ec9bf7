package order

// UpdateStatusRequest payload de cambio de estado.
// swagger:model UpdateOrderStatusRequest
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required" example:"completed"`
}

// ListResponse respuesta paginada de órdenes.
// swagger:model OrderListResponse
type ListResponse struct {
	Limit  int     `json:"limit"`
	Offset int     `json:"offset"`
	Items  []Order `json:"items"`
}

// Detail orden con sus líneas y pagos.
// swagger:model OrderDetail
type Detail struct {
	Order    Order     `json:"order"`
	Items    []Item    `json:"items"`
	Payments []Payment `json:"payments"`
}
