package models

// Customer is a registered buyer. Partition key customerId, sort key
// customerType (RETAIL, WHOLESALE, ...).
type Customer struct {
	CustomerID   string `json:"customerId" dynamodbav:"customerId"`
	CustomerType string `json:"customerType" dynamodbav:"customerType"`
	Name         string `json:"name" dynamodbav:"name"`
	Email        string `json:"email,omitempty" dynamodbav:"email,omitempty"`
	Phone        string `json:"phone,omitempty" dynamodbav:"phone,omitempty"`
	Address      string `json:"address,omitempty" dynamodbav:"address,omitempty"`
	Pincode      string `json:"pincode,omitempty" dynamodbav:"pincode,omitempty"`
	Status       string `json:"status" dynamodbav:"status"`
	CreatedAt    string `json:"createdAt" dynamodbav:"createdAt"`
}

// Supplier statuses and purchase order states
const (
	SupplierStatusActive = "ACTIVE"

	POStatusPending   = "PENDING"
	POStatusAccepted  = "ACCEPTED"
	POStatusShipped   = "SHIPPED"
	POStatusDelivered = "DELIVERED"
)

// Supplier is a goods supplier. Partition key supplierId, sort key status.
type Supplier struct {
	SupplierID    string `json:"supplierId" dynamodbav:"supplierId"`
	Status        string `json:"status" dynamodbav:"status"`
	Name          string `json:"name" dynamodbav:"name"`
	ContactPerson string `json:"contactPerson,omitempty" dynamodbav:"contactPerson,omitempty"`
	Email         string `json:"email,omitempty" dynamodbav:"email,omitempty"`
	Phone         string `json:"phone,omitempty" dynamodbav:"phone,omitempty"`
	Address       string `json:"address,omitempty" dynamodbav:"address,omitempty"`
	LeadTimeDays  int    `json:"leadTimeDays,omitempty" dynamodbav:"leadTimeDays,omitempty"`
	CreatedAt     string `json:"createdAt" dynamodbav:"createdAt"`
}

// PurchaseOrder is a replenishment order to a supplier. Partition key
// poId, sort key supplierId.
type PurchaseOrder struct {
	POID                 string              `json:"poId" dynamodbav:"poId"`
	SupplierID           string              `json:"supplierId" dynamodbav:"supplierId"`
	Items                []PurchaseOrderItem `json:"items" dynamodbav:"items"`
	TotalAmount          float64             `json:"totalAmount" dynamodbav:"totalAmount"`
	Status               string              `json:"status" dynamodbav:"status"`
	OrderDate            string              `json:"orderDate" dynamodbav:"orderDate"`
	ExpectedDeliveryDate string              `json:"expectedDeliveryDate,omitempty" dynamodbav:"expectedDeliveryDate,omitempty"`
	AcceptedAt           string              `json:"acceptedAt,omitempty" dynamodbav:"acceptedAt,omitempty"`
	ShippedAt            string              `json:"shippedAt,omitempty" dynamodbav:"shippedAt,omitempty"`
	DeliveredAt          string              `json:"deliveredAt,omitempty" dynamodbav:"deliveredAt,omitempty"`
	CreatedBy            string              `json:"createdBy" dynamodbav:"createdBy"`
	UpdatedAt            string              `json:"updatedAt" dynamodbav:"updatedAt"`
}

// PurchaseOrderItem is one replenishment line
type PurchaseOrderItem struct {
	ProductID string  `json:"productId" dynamodbav:"productId"`
	Name      string  `json:"name" dynamodbav:"name"`
	Quantity  int     `json:"quantity" dynamodbav:"quantity"`
	UnitCost  float64 `json:"unitCost" dynamodbav:"unitCost"`
	Location  string  `json:"location,omitempty" dynamodbav:"location,omitempty"`
}

// CreatePurchaseOrderRequest is the warehouse manager's replenishment payload
type CreatePurchaseOrderRequest struct {
	SupplierID string `json:"supplierId" binding:"required"`
	Items      []struct {
		ProductID string `json:"productId" binding:"required"`
		Quantity  int    `json:"quantity" binding:"required,gt=0"`
		Location  string `json:"location"`
	} `json:"items" binding:"required,min=1,dive"`
	ExpectedDeliveryDate string `json:"expectedDeliveryDate"`
}
