package services

import (
	"context"
	"testing"

	"grocerflow-backend/models"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type InventoryServiceTestSuite struct {
	suite.Suite
	ctx          context.Context
	mockOrders   *MockOrderRepo
	mockProducts *MockProductRepo
	mockStock    *MockStockRepo
	service      *InventoryService
}

func (suite *InventoryServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.mockOrders = &MockOrderRepo{}
	suite.mockProducts = &MockProductRepo{}
	suite.mockStock = &MockStockRepo{}
	suite.service = NewInventoryService(
		suite.mockOrders, suite.mockProducts, suite.mockStock,
		newMockAuditRepo(), newMockLogger(),
	)
}

func (suite *InventoryServiceTestSuite) TearDownTest() {
	suite.mockOrders.AssertExpectations(suite.T())
	suite.mockProducts.AssertExpectations(suite.T())
	suite.mockStock.AssertExpectations(suite.T())
}

func (suite *InventoryServiceTestSuite) TestListOrdersToPack() {
	confirmed := []*models.Order{{OrderID: "ORD-1", Status: models.OrderStatusConfirmed}}
	reserved := []*models.Order{{OrderID: "ORD-2", Status: models.OrderStatusReserved}}
	suite.mockOrders.On("ListByStatus", suite.ctx, models.OrderStatusConfirmed).Return(confirmed, nil)
	suite.mockOrders.On("ListByStatus", suite.ctx, models.OrderStatusReserved).Return(reserved, nil)

	orders, err := suite.service.ListOrdersToPack(suite.ctx)

	suite.NoError(err)
	suite.Len(orders, 2)
}

func (suite *InventoryServiceTestSuite) TestCheckAvailability_ReportsShortage() {
	items := []models.OrderItem{
		{ProductID: "PRD-001", Name: "Basmati Rice", Quantity: 10},
		{ProductID: "PRD-006", Name: "Dish Soap", Quantity: 2},
	}
	suite.mockStock.On("ListStockForProduct", suite.ctx, "PRD-001").Return([]*models.StockLevel{
		{ProductID: "PRD-001", Location: "MAIN", AvailableStock: 3, ReservedStock: 2},
		{ProductID: "PRD-001", Location: "COLD", AvailableStock: 1},
	}, nil)
	suite.mockStock.On("ListStockForProduct", suite.ctx, "PRD-006").Return([]*models.StockLevel{
		{ProductID: "PRD-006", Location: "MAIN", AvailableStock: 50},
	}, nil)

	issues, err := suite.service.CheckAvailability(suite.ctx, items)

	suite.NoError(err)
	suite.Len(issues, 1)
	suite.Equal("Basmati Rice", issues[0].Product)
	suite.Equal(10, issues[0].Required)
	suite.Equal(6, issues[0].Available)
	suite.Equal(4, issues[0].Shortage)
}

func packLine(productID string, qty, packingTime int, qualityOK bool) struct {
	ProductID   string `json:"productId" binding:"required"`
	Quantity    int    `json:"quantity" binding:"required,gt=0"`
	PackingTime int    `json:"packingTime"`
	QualityOK   bool   `json:"qualityOk"`
} {
	return struct {
		ProductID   string `json:"productId" binding:"required"`
		Quantity    int    `json:"quantity" binding:"required,gt=0"`
		PackingTime int    `json:"packingTime"`
		QualityOK   bool   `json:"qualityOk"`
	}{productID, qty, packingTime, qualityOK}
}

func (suite *InventoryServiceTestSuite) TestPackOrder_WrongStatus() {
	suite.mockOrders.On("GetOrder", suite.ctx, "ORD-1").
		Return(&models.Order{OrderID: "ORD-1", Status: models.OrderStatusPacked}, nil)

	req := &models.PackOrderRequest{CustomerID: "CUST-001"}
	req.Items = append(req.Items, packLine("PRD-001", 1, 5, true))

	order, packed, err := suite.service.PackOrder(suite.ctx, "ORD-1", req, "staff-1")

	suite.Error(err)
	suite.Nil(order)
	suite.Nil(packed)
	suite.Contains(err.Error(), "cannot be packed from status PACKED")
}

func (suite *InventoryServiceTestSuite) TestPackOrder_ShortageWithoutPartial() {
	order := &models.Order{
		OrderID:    "ORD-1",
		CustomerID: "CUST-001",
		Status:     models.OrderStatusConfirmed,
		Items:      []models.OrderItem{{ProductID: "PRD-001", Name: "Basmati Rice", Quantity: 10}},
	}
	suite.mockOrders.On("GetOrder", suite.ctx, "ORD-1").Return(order, nil)
	suite.mockStock.On("ListStockForProduct", suite.ctx, "PRD-001").Return([]*models.StockLevel{
		{ProductID: "PRD-001", Location: "MAIN", AvailableStock: 2},
	}, nil)

	req := &models.PackOrderRequest{CustomerID: "CUST-001", AllowPartial: false}
	req.Items = append(req.Items, packLine("PRD-001", 10, 5, true))

	_, _, err := suite.service.PackOrder(suite.ctx, "ORD-1", req, "staff-1")

	suite.Error(err)
	suite.Contains(err.Error(), "partial packing not allowed")
}

func (suite *InventoryServiceTestSuite) TestPackOrder_ReservedOrderDeductsReserved() {
	order := &models.Order{
		OrderID:    "ORD-1",
		CustomerID: "CUST-001",
		Status:     models.OrderStatusReserved,
		Items:      []models.OrderItem{{ProductID: "PRD-001", Name: "Basmati Rice", Quantity: 2}},
	}
	suite.mockOrders.On("GetOrder", suite.ctx, "ORD-1").Return(order, nil)
	suite.mockStock.On("ListStockForProduct", suite.ctx, "PRD-001").Return([]*models.StockLevel{
		{ProductID: "PRD-001", Location: "MAIN", AvailableStock: 0, ReservedStock: 5},
	}, nil)
	suite.mockProducts.On("GetProduct", suite.ctx, "PRD-001").
		Return(&models.Product{ProductID: "PRD-001", Name: "Basmati Rice", StorageLocation: "MAIN"}, nil)
	suite.mockStock.On("DeductReserved", suite.ctx, "PRD-001", "MAIN", 2).Return(nil)
	suite.mockOrders.On("UpdateStatus", suite.ctx, "ORD-1", "CUST-001",
		models.OrderStatusReserved, models.OrderStatusPacked, mock.Anything).Return(nil)

	req := &models.PackOrderRequest{CustomerID: "CUST-001"}
	req.Items = append(req.Items, packLine("PRD-001", 2, 0, true))

	result, packed, err := suite.service.PackOrder(suite.ctx, "ORD-1", req, "staff-1")

	suite.NoError(err)
	suite.Equal(models.OrderStatusPacked, result.Status)
	suite.Len(packed, 1)
	// Zero packing time falls back to the 5 minute default
	suite.Equal(5, packed[0].PackingTime)
	suite.Equal("staff-1", packed[0].PackedBy)
}

func (suite *InventoryServiceTestSuite) TestPackOrder_QualityFailureSkipsLine() {
	order := &models.Order{
		OrderID:    "ORD-1",
		CustomerID: "CUST-001",
		Status:     models.OrderStatusConfirmed,
		Items: []models.OrderItem{
			{ProductID: "PRD-001", Name: "Basmati Rice", Quantity: 2},
			{ProductID: "PRD-005", Name: "Bananas", Quantity: 3},
		},
	}
	suite.mockOrders.On("GetOrder", suite.ctx, "ORD-1").Return(order, nil)
	suite.mockStock.On("ListStockForProduct", suite.ctx, "PRD-001").Return([]*models.StockLevel{
		{ProductID: "PRD-001", Location: "MAIN", AvailableStock: 10},
	}, nil)
	suite.mockStock.On("ListStockForProduct", suite.ctx, "PRD-005").Return([]*models.StockLevel{
		{ProductID: "PRD-005", Location: "MAIN", AvailableStock: 10},
	}, nil)
	suite.mockProducts.On("GetProduct", suite.ctx, "PRD-001").
		Return(&models.Product{ProductID: "PRD-001", Name: "Basmati Rice"}, nil)
	suite.mockStock.On("DeductAvailable", suite.ctx, "PRD-001", "MAIN", 2).Return(nil)
	suite.mockOrders.On("UpdateStatus", suite.ctx, "ORD-1", "CUST-001",
		models.OrderStatusConfirmed, models.OrderStatusPacked, mock.Anything).Return(nil)

	req := &models.PackOrderRequest{CustomerID: "CUST-001"}
	req.Items = append(req.Items,
		packLine("PRD-001", 2, 4, true),
		packLine("PRD-005", 3, 2, false),
	)

	_, packed, err := suite.service.PackOrder(suite.ctx, "ORD-1", req, "staff-1")

	suite.NoError(err)
	suite.Len(packed, 1)
	suite.Equal("PRD-001", packed[0].ProductID)
}

func (suite *InventoryServiceTestSuite) TestPackOrder_NothingPacked() {
	order := &models.Order{
		OrderID:    "ORD-1",
		CustomerID: "CUST-001",
		Status:     models.OrderStatusConfirmed,
		Items:      []models.OrderItem{{ProductID: "PRD-005", Name: "Bananas", Quantity: 3}},
	}
	suite.mockOrders.On("GetOrder", suite.ctx, "ORD-1").Return(order, nil)
	suite.mockStock.On("ListStockForProduct", suite.ctx, "PRD-005").Return([]*models.StockLevel{
		{ProductID: "PRD-005", Location: "MAIN", AvailableStock: 10},
	}, nil)

	req := &models.PackOrderRequest{CustomerID: "CUST-001"}
	req.Items = append(req.Items, packLine("PRD-005", 3, 2, false))

	_, _, err := suite.service.PackOrder(suite.ctx, "ORD-1", req, "staff-1")

	suite.Error(err)
	suite.Equal("no items were packed", err.Error())
}

func (suite *InventoryServiceTestSuite) TestPrepareDispatch_RequiresPacked() {
	suite.mockOrders.On("GetOrder", suite.ctx, "ORD-1").
		Return(&models.Order{OrderID: "ORD-1", Status: models.OrderStatusConfirmed}, nil)

	order, err := suite.service.PrepareDispatch(suite.ctx, "ORD-1", "staff-1")

	suite.Error(err)
	suite.Nil(order)
	suite.Contains(err.Error(), "must be packed before dispatch")
}

func (suite *InventoryServiceTestSuite) TestPrepareDispatch_Success() {
	suite.mockOrders.On("GetOrder", suite.ctx, "ORD-1").
		Return(&models.Order{OrderID: "ORD-1", CustomerID: "CUST-001", Status: models.OrderStatusPacked}, nil)
	suite.mockOrders.On("UpdateStatus", suite.ctx, "ORD-1", "CUST-001",
		models.OrderStatusPacked, models.OrderStatusReadyForDispatch, mock.Anything).Return(nil)

	order, err := suite.service.PrepareDispatch(suite.ctx, "ORD-1", "staff-1")

	suite.NoError(err)
	suite.Equal(models.OrderStatusReadyForDispatch, order.Status)
}

func (suite *InventoryServiceTestSuite) TestAdjustStock_Reasons() {
	suite.mockStock.On("MarkDamaged", suite.ctx, "PRD-001", "MAIN", 3).Return(nil)
	suite.mockStock.On("MarkExpired", suite.ctx, "PRD-003", "COLD", 2).Return(nil)
	suite.mockStock.On("AddStock", suite.ctx, "PRD-005", "MAIN", 7).Return(nil)

	suite.NoError(suite.service.AdjustStock(suite.ctx,
		&models.StockAdjustmentRequest{ProductID: "PRD-001", Location: "MAIN", Quantity: 3, Reason: "DAMAGED"}, "staff-1"))
	suite.NoError(suite.service.AdjustStock(suite.ctx,
		&models.StockAdjustmentRequest{ProductID: "PRD-003", Location: "COLD", Quantity: 2, Reason: "EXPIRED"}, "staff-1"))
	suite.NoError(suite.service.AdjustStock(suite.ctx,
		&models.StockAdjustmentRequest{ProductID: "PRD-005", Location: "MAIN", Quantity: 7, Reason: "RECOUNT"}, "staff-1"))

	err := suite.service.AdjustStock(suite.ctx,
		&models.StockAdjustmentRequest{ProductID: "PRD-001", Location: "MAIN", Quantity: 1, Reason: "SHRINKAGE"}, "staff-1")
	suite.Error(err)
	suite.Contains(err.Error(), "unknown adjustment reason")
}

func TestInventoryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InventoryServiceTestSuite))
}
