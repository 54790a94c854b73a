package models

// StockLevel is the per-location stock record for a product. Partition
// key productId, sort key location.
type StockLevel struct {
	ProductID      string `json:"productId" dynamodbav:"productId"`
	Location       string `json:"location" dynamodbav:"location"`
	TotalStock     int    `json:"totalStock" dynamodbav:"totalStock"`
	AvailableStock int    `json:"availableStock" dynamodbav:"availableStock"`
	ReservedStock  int    `json:"reservedStock" dynamodbav:"reservedStock"`
	DamagedStock   int    `json:"damagedStock" dynamodbav:"damagedStock"`
	ExpiredStock   int    `json:"expiredStock" dynamodbav:"expiredStock"`
	LastUpdated    string `json:"lastUpdated" dynamodbav:"lastUpdated"`
}

// StockAdjustmentRequest records damage/expiry corrections made by
// inventory staff
type StockAdjustmentRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Location  string `json:"location" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
	Reason    string `json:"reason" binding:"required,oneof=DAMAGED EXPIRED RECOUNT"`
	Notes     string `json:"notes"`
}

// Stock classification buckets for the optimization review
const (
	StockClassLow       = "LOW"
	StockClassOverstock = "OVERSTOCK"
	StockClassOptimal   = "OPTIMAL"
)

// DemandForecast is the deterministic short-horizon demand estimate
type DemandForecast struct {
	Next7Days  int    `json:"next7Days"`
	Next30Days int    `json:"next30Days"`
	Trend      string `json:"trend"`
}

// StockOptimizationItem is one analyzed stock record in the
// warehouse manager's optimization review
type StockOptimizationItem struct {
	ProductID           string         `json:"productId"`
	Location            string         `json:"location"`
	Available           int            `json:"available"`
	Total               int            `json:"total"`
	Reserved            int            `json:"reserved"`
	Damaged             int            `json:"damaged"`
	AvailablePercentage float64        `json:"availablePercentage"`
	ReorderPoint        int            `json:"reorderPoint"`
	MinStock            int            `json:"minStock"`
	Classification      string         `json:"classification"`
	RecommendedOrderQty int            `json:"recommendedOrderQty,omitempty"`
	ReductionQty        int            `json:"reductionQty,omitempty"`
	TurnoverDays        int            `json:"turnoverDays"`
	DemandForecast      DemandForecast `json:"demandForecast"`
}

// StockOptimizationReport summarizes the full review
type StockOptimizationReport struct {
	LowStock       []StockOptimizationItem `json:"lowStock"`
	Overstock      []StockOptimizationItem `json:"overstock"`
	Optimal        []StockOptimizationItem `json:"optimal"`
	OptimalPct     float64                 `json:"optimalPct"`
	LowStockPct    float64                 `json:"lowStockPct"`
	OverstockPct   float64                 `json:"overstockPct"`
	OverstockValue float64                 `json:"overstockValue"`
	GeneratedAt    string                  `json:"generatedAt"`
}
