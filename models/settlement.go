package models

// Cash collection statuses
const (
	CollectionStatusCompleted         = "COMPLETED"
	CollectionStatusPendingSettlement = "PENDING_SETTLEMENT"
)

// CashCollection records cash taken by a rider at the doorstep.
// Partition key collectionId, sort key riderId.
type CashCollection struct {
	CollectionID    string  `json:"collectionId" dynamodbav:"collectionId"`
	RiderID         string  `json:"riderId" dynamodbav:"riderId"`
	OrderID         string  `json:"orderId" dynamodbav:"orderId"`
	AmountCollected float64 `json:"amountCollected" dynamodbav:"amountCollected"`
	PaymentMethod   string  `json:"paymentMethod" dynamodbav:"paymentMethod"`
	Status          string  `json:"status" dynamodbav:"status"`
	CollectedAt     string  `json:"collectedAt" dynamodbav:"collectedAt"`
}

// CollectCashRequest is the rider's collection payload
type CollectCashRequest struct {
	OrderID       string `json:"orderId" binding:"required"`
	PaymentMethod string `json:"paymentMethod" binding:"required,oneof=CASH CARD UPI"`
}

// CashVerificationReport is the auditor's collection review
type CashVerificationReport struct {
	TotalCollections int              `json:"totalCollections"`
	TotalAmount      float64          `json:"totalAmount"`
	AverageAmount    float64          `json:"averageAmount"`
	ZeroAmount       []CashCollection `json:"zeroAmount,omitempty"`
	NegativeAmount   []CashCollection `json:"negativeAmount,omitempty"`
	InvalidPayment   []CashCollection `json:"invalidPayment,omitempty"`
	FlaggedCount     int              `json:"flaggedCount"`
	GeneratedAt      string           `json:"generatedAt"`
}

// OrderVerificationReport is the auditor's transaction review
type OrderVerificationReport struct {
	TotalOrders     int            `json:"totalOrders"`
	TotalValue      float64        `json:"totalValue"`
	AverageValue    float64        `json:"averageValue"`
	HighValueOrders []Order        `json:"highValueOrders,omitempty"`
	NegativeAmounts []Order        `json:"negativeAmounts,omitempty"`
	StatusBreakdown map[string]int `json:"statusBreakdown"`
	FlaggedCount    int            `json:"flaggedCount"`
	GeneratedAt     string         `json:"generatedAt"`
}
