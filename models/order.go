package models

// Order lifecycle states. Transitions outside the graph below are
// rejected with a ValidationError.
const (
	OrderStatusPending          = "PENDING"
	OrderStatusConfirmed        = "CONFIRMED"
	OrderStatusValidated        = "VALIDATED"
	OrderStatusPriced           = "PRICED"
	OrderStatusReserved         = "RESERVED"
	OrderStatusPacked           = "PACKED"
	OrderStatusReadyForDispatch = "READY_FOR_DISPATCH"
	OrderStatusRouteAssigned    = "ROUTE_ASSIGNED"
	OrderStatusAssignedToRider  = "ASSIGNED_TO_RIDER"
	OrderStatusOutForDelivery   = "OUT_FOR_DELIVERY"
	OrderStatusDelivered        = "DELIVERED"
	OrderStatusCompleted        = "COMPLETED"
	OrderStatusCancelled        = "CANCELLED"
)

// Payment methods accepted on orders and collections
const (
	PaymentMethodCash = "CASH"
	PaymentMethodCard = "CARD"
	PaymentMethodUPI  = "UPI"
)

// Order priorities used by route selection
const (
	PriorityUrgent = "URGENT"
	PriorityHigh   = "HIGH"
	PriorityNormal = "NORMAL"
	PriorityLow    = "LOW"
)

// Order is the customer order header. Partition key orderId, sort key
// customerId.
type Order struct {
	OrderID              string      `json:"orderId" dynamodbav:"orderId"`
	CustomerID           string      `json:"customerId" dynamodbav:"customerId"`
	CustomerName         string      `json:"customerName" dynamodbav:"customerName"`
	CustomerPhone        string      `json:"customerPhone,omitempty" dynamodbav:"customerPhone,omitempty"`
	Items                []OrderItem `json:"items" dynamodbav:"items"`
	DeliveryAddress      string      `json:"deliveryAddress" dynamodbav:"deliveryAddress"`
	Pincode              string      `json:"pincode" dynamodbav:"pincode"`
	DeliverySlot         string      `json:"deliverySlot,omitempty" dynamodbav:"deliverySlot,omitempty"`
	SlotID               string      `json:"slotId,omitempty" dynamodbav:"slotId,omitempty"`
	Subtotal             float64     `json:"subtotal" dynamodbav:"subtotal"`
	DeliveryFee          float64     `json:"deliveryFee" dynamodbav:"deliveryFee"`
	PaymentFee           float64     `json:"paymentFee" dynamodbav:"paymentFee"`
	TotalAmount          float64     `json:"totalAmount" dynamodbav:"totalAmount"`
	DiscountAmount       float64     `json:"discountAmount" dynamodbav:"discountAmount"`
	FinalAmount          float64     `json:"finalAmount" dynamodbav:"finalAmount"`
	TotalWeightKG        float64     `json:"totalWeightKg,omitempty" dynamodbav:"totalWeightKg,omitempty"`
	PaymentMethod        string      `json:"paymentMethod" dynamodbav:"paymentMethod"`
	PaymentStatus        string      `json:"paymentStatus" dynamodbav:"paymentStatus"`
	Status               string      `json:"status" dynamodbav:"status"`
	Priority             string      `json:"priority,omitempty" dynamodbav:"priority,omitempty"`
	OrderType            string      `json:"orderType" dynamodbav:"orderType"`
	RiderID              string      `json:"riderId,omitempty" dynamodbav:"riderId,omitempty"`
	RouteID              string      `json:"routeId,omitempty" dynamodbav:"routeId,omitempty"`
	ExpectedDeliveryDate string      `json:"expectedDeliveryDate,omitempty" dynamodbav:"expectedDeliveryDate,omitempty"`
	PackedAt             string      `json:"packedAt,omitempty" dynamodbav:"packedAt,omitempty"`
	PackedBy             string      `json:"packedBy,omitempty" dynamodbav:"packedBy,omitempty"`
	DeliveredAt          string      `json:"deliveredAt,omitempty" dynamodbav:"deliveredAt,omitempty"`
	CreatedAt            string      `json:"createdAt" dynamodbav:"createdAt"`
	UpdatedAt            string      `json:"updatedAt" dynamodbav:"updatedAt"`
}

// OrderItem is one line of an order. Stored inline on the order and as
// its own item under the order_items table (sort key productId#variantId#unitId).
type OrderItem struct {
	ProductID          string  `json:"productId" dynamodbav:"productId"`
	VariantID          string  `json:"variantId,omitempty" dynamodbav:"variantId,omitempty"`
	UnitID             string  `json:"unitId,omitempty" dynamodbav:"unitId,omitempty"`
	Name               string  `json:"name" dynamodbav:"name"`
	Quantity           int     `json:"quantity" dynamodbav:"quantity"`
	UnitPrice          float64 `json:"unitPrice" dynamodbav:"unitPrice"`
	DiscountPercentage float64 `json:"discountPercentage,omitempty" dynamodbav:"discountPercentage,omitempty"`
	DiscountAmount     float64 `json:"discountAmount,omitempty" dynamodbav:"discountAmount,omitempty"`
	FinalPrice         float64 `json:"finalPrice" dynamodbav:"finalPrice"`
	TotalPrice         float64 `json:"totalPrice" dynamodbav:"totalPrice"`
	BatchID            string  `json:"batchId,omitempty" dynamodbav:"batchId,omitempty"`
	WeightKG           float64 `json:"weightKg,omitempty" dynamodbav:"weightKg,omitempty"`
}

// PlaceOrderRequest is the customer checkout payload
type PlaceOrderRequest struct {
	Items []struct {
		ProductID string `json:"productId" binding:"required"`
		Quantity  int    `json:"quantity" binding:"required,gt=0"`
	} `json:"items" binding:"required,min=1,dive"`
	DeliveryAddress string `json:"deliveryAddress" binding:"required"`
	Pincode         string `json:"pincode" binding:"required"`
	SlotID          string `json:"slotId"`
	PaymentMethod   string `json:"paymentMethod" binding:"required,oneof=CASH CARD UPI"`
}

// PackedItem records one item packed by inventory staff
type PackedItem struct {
	ProductID   string `json:"productId" dynamodbav:"productId"`
	Name        string `json:"name" dynamodbav:"name"`
	Quantity    int    `json:"quantity" dynamodbav:"quantity"`
	PackingTime int    `json:"packingTime" dynamodbav:"packingTime"`
	PackedBy    string `json:"packedBy" dynamodbav:"packedBy"`
	PackedAt    string `json:"packedAt" dynamodbav:"packedAt"`
}

// PackOrderRequest is the inventory staff packing payload
type PackOrderRequest struct {
	CustomerID string `json:"customerId" binding:"required"`
	Items      []struct {
		ProductID   string `json:"productId" binding:"required"`
		Quantity    int    `json:"quantity" binding:"required,gt=0"`
		PackingTime int    `json:"packingTime"`
		QualityOK   bool   `json:"qualityOk"`
	} `json:"items" binding:"required,min=1,dive"`
	AllowPartial bool `json:"allowPartial"`
}
