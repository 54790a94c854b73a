package models

// Discount types
const (
	DiscountTypePercentage = "PERCENTAGE"
	DiscountTypeFlat       = "FLAT"
)

// Discount is a promotion applicable at pricing time. Partition key
// discountId, sort key discountType.
type Discount struct {
	DiscountID           string   `json:"discountId" dynamodbav:"discountId"`
	DiscountType         string   `json:"discountType" dynamodbav:"discountType"`
	Name                 string   `json:"name" dynamodbav:"name"`
	DiscountValue        float64  `json:"discountValue" dynamodbav:"discountValue"`
	MinOrderAmount       float64  `json:"minOrderAmount" dynamodbav:"minOrderAmount"`
	MaxDiscountAmount    float64  `json:"maxDiscountAmount" dynamodbav:"maxDiscountAmount"`
	ApplicableProducts   []string `json:"applicableProducts,omitempty" dynamodbav:"applicableProducts,omitempty"`
	ApplicableCategories []string `json:"applicableCategories,omitempty" dynamodbav:"applicableCategories,omitempty"`
	CustomerTypes        []string `json:"customerTypes,omitempty" dynamodbav:"customerTypes,omitempty"`
	UsageLimit           int      `json:"usageLimit" dynamodbav:"usageLimit"`
	UsedCount            int      `json:"usedCount" dynamodbav:"usedCount"`
	ValidFrom            string   `json:"validFrom,omitempty" dynamodbav:"validFrom,omitempty"`
	ValidTo              string   `json:"validTo,omitempty" dynamodbav:"validTo,omitempty"`
	Status               string   `json:"status" dynamodbav:"status"`
}

// DeliverySlot is a bookable delivery window for a pincode. Partition
// key pincode, sort key slotKey (slotId#date).
type DeliverySlot struct {
	Pincode        string  `json:"pincode" dynamodbav:"pincode"`
	SlotKey        string  `json:"slotKey" dynamodbav:"slotKey"`
	SlotID         string  `json:"slotId" dynamodbav:"slotId"`
	SlotName       string  `json:"slotName" dynamodbav:"slotName"`
	TimeRange      string  `json:"timeRange" dynamodbav:"timeRange"`
	Date           string  `json:"date" dynamodbav:"date"`
	DeliveryCharge float64 `json:"deliveryCharge" dynamodbav:"deliveryCharge"`
	Capacity       int     `json:"capacity" dynamodbav:"capacity"`
	BookedCount    int     `json:"bookedCount" dynamodbav:"bookedCount"`
	Status         string  `json:"status" dynamodbav:"status"`
}

// AuditLog records every mutating persona operation. Partition key
// auditId, sort key timestamp.
type AuditLog struct {
	AuditID   string `json:"auditId" dynamodbav:"auditId"`
	Timestamp string `json:"timestamp" dynamodbav:"timestamp"`
	Action    string `json:"action" dynamodbav:"action"`
	EntityID  string `json:"entityId" dynamodbav:"entityId"`
	ActorID   string `json:"actorId,omitempty" dynamodbav:"actorId,omitempty"`
	ActorRole string `json:"actorRole,omitempty" dynamodbav:"actorRole,omitempty"`
	Details   string `json:"details,omitempty" dynamodbav:"details,omitempty"`
}
