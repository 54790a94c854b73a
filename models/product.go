package models

// Product represents a catalog product. Partition key is productId,
// sort key is category so category listings stay cheap.
type Product struct {
	ProductID       string  `json:"productId" dynamodbav:"productId"`
	Category        string  `json:"category" dynamodbav:"category"`
	Name            string  `json:"name" dynamodbav:"name"`
	Brand           string  `json:"brand,omitempty" dynamodbav:"brand,omitempty"`
	BaseUnit        string  `json:"baseUnit" dynamodbav:"baseUnit"`
	HasVariants     bool    `json:"hasVariants" dynamodbav:"hasVariants"`
	CostPrice       float64 `json:"costPrice" dynamodbav:"costPrice"`
	SellingPrice    float64 `json:"sellingPrice" dynamodbav:"sellingPrice"`
	MinStock        int     `json:"minStock" dynamodbav:"minStock"`
	ReorderPoint    int     `json:"reorderPoint" dynamodbav:"reorderPoint"`
	SupplierID      string  `json:"supplierId,omitempty" dynamodbav:"supplierId,omitempty"`
	ExpiryTracking  bool    `json:"expiryTracking" dynamodbav:"expiryTracking"`
	BatchRequired   bool    `json:"batchRequired" dynamodbav:"batchRequired"`
	StorageLocation string  `json:"storageLocation,omitempty" dynamodbav:"storageLocation,omitempty"`
	Status          string  `json:"status" dynamodbav:"status"`
	CreatedAt       string  `json:"createdAt" dynamodbav:"createdAt"`
	UpdatedAt       string  `json:"updatedAt" dynamodbav:"updatedAt"`
}

// Batch tracks a received lot of a product, used for expiry management.
type Batch struct {
	BatchID      string  `json:"batchId" dynamodbav:"batchId"`
	ProductID    string  `json:"productId" dynamodbav:"productId"`
	Quantity     int     `json:"quantity" dynamodbav:"quantity"`
	CostPrice    float64 `json:"costPrice" dynamodbav:"costPrice"`
	ReceivedDate string  `json:"receivedDate" dynamodbav:"receivedDate"`
	ExpiryDate   string  `json:"expiryDate,omitempty" dynamodbav:"expiryDate,omitempty"`
	SupplierID   string  `json:"supplierId,omitempty" dynamodbav:"supplierId,omitempty"`
	Status       string  `json:"status" dynamodbav:"status"`
}

// CreateProductRequest is the admin payload for adding a catalog product
type CreateProductRequest struct {
	Name            string  `json:"name" binding:"required"`
	Category        string  `json:"category" binding:"required"`
	Brand           string  `json:"brand"`
	BaseUnit        string  `json:"baseUnit" binding:"required"`
	CostPrice       float64 `json:"costPrice" binding:"required,gt=0"`
	SellingPrice    float64 `json:"sellingPrice" binding:"required,gt=0"`
	MinStock        int     `json:"minStock"`
	ReorderPoint    int     `json:"reorderPoint"`
	SupplierID      string  `json:"supplierId"`
	ExpiryTracking  bool    `json:"expiryTracking"`
	BatchRequired   bool    `json:"batchRequired"`
	StorageLocation string  `json:"storageLocation"`
	InitialStock    int     `json:"initialStock"`
	StockLocation   string  `json:"stockLocation"`
}

// UpdateProductRequest carries the mutable product fields
type UpdateProductRequest struct {
	Name            *string  `json:"name,omitempty"`
	Brand           *string  `json:"brand,omitempty"`
	CostPrice       *float64 `json:"costPrice,omitempty"`
	SellingPrice    *float64 `json:"sellingPrice,omitempty"`
	MinStock        *int     `json:"minStock,omitempty"`
	ReorderPoint    *int     `json:"reorderPoint,omitempty"`
	StorageLocation *string  `json:"storageLocation,omitempty"`
	Status          *string  `json:"status,omitempty"`
}
