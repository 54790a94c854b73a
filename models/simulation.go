package models

// SimulationRequest configures a multi-order fulfillment simulation run
type SimulationRequest struct {
	NumOrders      int  `json:"numOrders" binding:"required,min=1,max=20"`
	DetailedReport bool `json:"detailedReport"`
}

// SimulatedOrder tracks one order through a simulation run
type SimulatedOrder struct {
	OrderID       string  `json:"orderId"`
	CustomerID    string  `json:"customerId"`
	CustomerName  string  `json:"customerName"`
	ItemCount     int     `json:"itemCount"`
	TotalAmount   float64 `json:"totalAmount"`
	PaymentMethod string  `json:"paymentMethod"`
	RouteID       string  `json:"routeId,omitempty"`
	RiderID       string  `json:"riderId,omitempty"`
	Status        string  `json:"status"`
	FailureReason string  `json:"failureReason,omitempty"`
}

// SimulationReport summarizes a completed simulation run
type SimulationReport struct {
	RunID                string           `json:"runId"`
	OrdersRequested      int              `json:"ordersRequested"`
	OrdersCreated        int              `json:"ordersCreated"`
	OrdersPacked         int              `json:"ordersPacked"`
	SuccessfulDeliveries int              `json:"successfulDeliveries"`
	FailedDeliveries     int              `json:"failedDeliveries"`
	TotalValue           float64          `json:"totalValue"`
	CashCollected        float64          `json:"cashCollected"`
	Orders               []SimulatedOrder `json:"orders,omitempty"`
	StartedAt            string           `json:"startedAt"`
	FinishedAt           string           `json:"finishedAt"`
}
