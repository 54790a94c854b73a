package models

// Rider statuses
const (
	RiderStatusActive   = "ACTIVE"
	RiderStatusInactive = "INACTIVE"
)

// Rider is a delivery rider record. Partition key riderId, sort key status.
type Rider struct {
	RiderID         string  `json:"riderId" dynamodbav:"riderId"`
	Status          string  `json:"status" dynamodbav:"status"`
	Name            string  `json:"name" dynamodbav:"name"`
	Phone           string  `json:"phone,omitempty" dynamodbav:"phone,omitempty"`
	VehicleNumber   string  `json:"vehicleNumber" dynamodbav:"vehicleNumber"`
	VehicleType     string  `json:"vehicleType" dynamodbav:"vehicleType"`
	CurrentLocation string  `json:"currentLocation,omitempty" dynamodbav:"currentLocation,omitempty"`
	AssignedZone    string  `json:"assignedZone,omitempty" dynamodbav:"assignedZone,omitempty"`
	Rating          float64 `json:"rating" dynamodbav:"rating"`
	TotalDeliveries int     `json:"totalDeliveries" dynamodbav:"totalDeliveries"`
	TotalEarnings   float64 `json:"totalEarnings" dynamodbav:"totalEarnings"`
	Capacity        int     `json:"capacity,omitempty" dynamodbav:"capacity,omitempty"`
	IsAvailable     bool    `json:"isAvailable" dynamodbav:"isAvailable"`
	CreatedAt       string  `json:"createdAt" dynamodbav:"createdAt"`
	UpdatedAt       string  `json:"updatedAt" dynamodbav:"updatedAt"`
}

// Delivery links an order to the rider run that carries it.
// Partition key deliveryId, sort key orderId.
type Delivery struct {
	DeliveryID  string `json:"deliveryId" dynamodbav:"deliveryId"`
	OrderID     string `json:"orderId" dynamodbav:"orderId"`
	RiderID     string `json:"riderId" dynamodbav:"riderId"`
	RouteID     string `json:"routeId,omitempty" dynamodbav:"routeId,omitempty"`
	Address     string `json:"address" dynamodbav:"address"`
	Pincode     string `json:"pincode,omitempty" dynamodbav:"pincode,omitempty"`
	Status      string `json:"status" dynamodbav:"status"`
	StartedAt   string `json:"startedAt,omitempty" dynamodbav:"startedAt,omitempty"`
	CompletedAt string `json:"completedAt,omitempty" dynamodbav:"completedAt,omitempty"`
	FailReason  string `json:"failReason,omitempty" dynamodbav:"failReason,omitempty"`
	CreatedAt   string `json:"createdAt" dynamodbav:"createdAt"`
}

// Delivery statuses
const (
	DeliveryStatusAssigned  = "ASSIGNED"
	DeliveryStatusInTransit = "IN_TRANSIT"
	DeliveryStatusCompleted = "COMPLETED"
	DeliveryStatusFailed    = "FAILED"
)

// Route selection strategies
const (
	RouteStrategyPriority   = "priority"
	RouteStrategyCapacity   = "capacity"
	RouteStrategyTimeWindow = "time_window"
	RouteStrategyValue      = "value"
)

// Runsheet groups dispatch-ready orders for a rider on a given day
type Runsheet struct {
	RunsheetID  string   `json:"runsheetId" dynamodbav:"runsheetId"`
	RiderID     string   `json:"riderId" dynamodbav:"riderId"`
	Date        string   `json:"date" dynamodbav:"date"`
	OrderIDs    []string `json:"orderIds" dynamodbav:"orderIds"`
	TotalOrders int      `json:"totalOrders" dynamodbav:"totalOrders"`
	TotalValue  float64  `json:"totalValue" dynamodbav:"totalValue"`
	Status      string   `json:"status" dynamodbav:"status"`
	CreatedBy   string   `json:"createdBy" dynamodbav:"createdBy"`
	CreatedAt   string   `json:"createdAt" dynamodbav:"createdAt"`
}

// RouteMetrics holds the distance/time/efficiency estimates for a route
type RouteMetrics struct {
	DistanceKM      float64 `json:"distanceKm"`
	TravelTimeHours float64 `json:"travelTimeHours"`
	TotalTimeHours  float64 `json:"totalTimeHours"`
	OrdersPerHour   float64 `json:"ordersPerHour"`
	ValuePerKM      float64 `json:"valuePerKm"`
	EfficiencyScore float64 `json:"efficiencyScore"`
}

// OptimizedRoute is an ordered set of deliveries for one rider
type OptimizedRoute struct {
	RouteID    string       `json:"routeId" dynamodbav:"routeId"`
	RiderID    string       `json:"riderId" dynamodbav:"riderId"`
	RiderName  string       `json:"riderName,omitempty" dynamodbav:"riderName,omitempty"`
	Strategy   string       `json:"strategy" dynamodbav:"strategy"`
	OrderIDs   []string     `json:"orderIds" dynamodbav:"orderIds"`
	TotalValue float64      `json:"totalValue" dynamodbav:"totalValue"`
	Metrics    RouteMetrics `json:"metrics" dynamodbav:"metrics"`
	Status     string       `json:"status" dynamodbav:"status"`
	CreatedAt  string       `json:"createdAt" dynamodbav:"createdAt"`
}

// GenerateRoutesRequest selects the optimization strategy
type GenerateRoutesRequest struct {
	Strategy string `json:"strategy" binding:"required,oneof=priority capacity time_window value"`
	Date     string `json:"date"`
}
