package services

import (
	"context"
	"errors"
	"testing"

	"grocerflow-backend/models"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type SimulationServiceTestSuite struct {
	suite.Suite
	ctx             context.Context
	mockOrders      *MockOrderRepo
	mockProducts    *MockProductRepo
	mockStock       *MockStockRepo
	mockCustomers   *MockCustomerRepo
	mockRiders      *MockRiderRepo
	mockDeliveries  *MockDeliveryRepo
	mockCollections *MockCashCollectionRepo
	service         *SimulationService
}

func (suite *SimulationServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.mockOrders = &MockOrderRepo{}
	suite.mockProducts = &MockProductRepo{}
	suite.mockStock = &MockStockRepo{}
	suite.mockCustomers = &MockCustomerRepo{}
	suite.mockRiders = &MockRiderRepo{}
	suite.mockDeliveries = &MockDeliveryRepo{}
	suite.mockCollections = &MockCashCollectionRepo{}

	config := &models.Config{
		DeliveryFee:        25.0,
		CODPaymentFee:      10.0,
		RiderCommissionPct: 5.0,
	}
	suite.service = NewSimulationService(
		suite.mockOrders, suite.mockProducts, suite.mockStock, suite.mockCustomers,
		suite.mockRiders, suite.mockDeliveries, suite.mockCollections,
		newMockAuditRepo(), config, newMockLogger(),
	)
}

func (suite *SimulationServiceTestSuite) TearDownTest() {
	suite.mockOrders.AssertExpectations(suite.T())
	suite.mockProducts.AssertExpectations(suite.T())
	suite.mockCustomers.AssertExpectations(suite.T())
	suite.mockRiders.AssertExpectations(suite.T())
}

func (suite *SimulationServiceTestSuite) TestRunMultiOrder_BoundsCheck() {
	for _, n := range []int{0, -1, 21, 100} {
		report, err := suite.service.RunMultiOrder(suite.ctx,
			&models.SimulationRequest{NumOrders: n}, "admin-1")
		suite.Error(err)
		suite.Nil(report)
		suite.Contains(err.Error(), "numOrders must be between 1 and 20")
	}
}

func (suite *SimulationServiceTestSuite) TestRunMultiOrder_EmptyCatalog() {
	suite.mockProducts.On("ListProducts", suite.ctx).Return([]*models.Product{}, nil)

	report, err := suite.service.RunMultiOrder(suite.ctx,
		&models.SimulationRequest{NumOrders: 3}, "admin-1")

	suite.Error(err)
	suite.Nil(report)
	suite.Contains(err.Error(), "catalog is empty")
}

func (suite *SimulationServiceTestSuite) TestRunMultiOrder_NoCustomers() {
	suite.mockProducts.On("ListProducts", suite.ctx).
		Return([]*models.Product{{ProductID: "PRD-001", SellingPrice: 80, Status: "ACTIVE"}}, nil)
	suite.mockCustomers.On("ListCustomers", suite.ctx).Return([]*models.Customer{}, nil)

	report, err := suite.service.RunMultiOrder(suite.ctx,
		&models.SimulationRequest{NumOrders: 3}, "admin-1")

	suite.Error(err)
	suite.Nil(report)
	suite.Contains(err.Error(), "no customers available")
}

func (suite *SimulationServiceTestSuite) TestRunMultiOrder_PacksWithoutRiders() {
	products := []*models.Product{
		{ProductID: "PRD-001", Name: "Basmati Rice", BaseUnit: "KG", SellingPrice: 80, Status: "ACTIVE"},
	}
	customers := []*models.Customer{
		{CustomerID: "CUST-001", Name: "Priya Menon", Address: "12 MG Road", Pincode: "560001"},
	}
	suite.mockProducts.On("ListProducts", suite.ctx).Return(products, nil)
	suite.mockCustomers.On("ListCustomers", suite.ctx).Return(customers, nil)
	suite.mockRiders.On("ListAvailable", suite.ctx, riderMinRating).Return([]*models.Rider{}, nil)
	suite.mockProducts.On("GetProduct", suite.ctx, "PRD-001").Return(products[0], nil)
	suite.mockOrders.On("CreateOrder", suite.ctx, mock.Anything).
		Return(&models.Order{OrderID: "ORD-SIM"}, nil)
	suite.mockStock.On("Reserve", suite.ctx, "PRD-001", "MAIN", mock.Anything).Return(nil)
	suite.mockStock.On("DeductReserved", suite.ctx, "PRD-001", "MAIN", mock.Anything).Return(nil)
	suite.mockOrders.On("UpdateStatus", suite.ctx, mock.Anything, "CUST-001",
		models.OrderStatusConfirmed, models.OrderStatusPacked, mock.Anything).Return(nil)

	report, err := suite.service.RunMultiOrder(suite.ctx,
		&models.SimulationRequest{NumOrders: 2, DetailedReport: true}, "admin-1")

	suite.NoError(err)
	suite.Equal(2, report.OrdersRequested)
	suite.Equal(2, report.OrdersCreated)
	suite.Equal(2, report.OrdersPacked)
	suite.Equal(0, report.SuccessfulDeliveries)
	suite.Equal(0, report.FailedDeliveries)
	suite.Len(report.Orders, 2)
	for _, sim := range report.Orders {
		suite.Equal(models.OrderStatusPacked, sim.Status)
		suite.Equal("no available riders", sim.FailureReason)
	}
}

func (suite *SimulationServiceTestSuite) TestRunMultiOrder_InsufficientStockCancels() {
	products := []*models.Product{
		{ProductID: "PRD-001", Name: "Basmati Rice", BaseUnit: "KG", SellingPrice: 80, Status: "ACTIVE"},
	}
	customers := []*models.Customer{
		{CustomerID: "CUST-001", Name: "Priya Menon", Address: "12 MG Road", Pincode: "560001"},
	}
	suite.mockProducts.On("ListProducts", suite.ctx).Return(products, nil)
	suite.mockCustomers.On("ListCustomers", suite.ctx).Return(customers, nil)
	suite.mockRiders.On("ListAvailable", suite.ctx, riderMinRating).Return([]*models.Rider{}, nil)
	suite.mockProducts.On("GetProduct", suite.ctx, "PRD-001").Return(products[0], nil)
	suite.mockOrders.On("CreateOrder", suite.ctx, mock.Anything).
		Return(&models.Order{OrderID: "ORD-SIM"}, nil)
	suite.mockStock.On("Reserve", suite.ctx, "PRD-001", "MAIN", mock.Anything).
		Return(errors.New("conditional check failed"))
	suite.mockOrders.On("UpdateFields", suite.ctx, mock.Anything, "CUST-001",
		mock.MatchedBy(func(updates map[string]interface{}) bool {
			return updates["status"] == models.OrderStatusCancelled
		})).Return(nil)

	report, err := suite.service.RunMultiOrder(suite.ctx,
		&models.SimulationRequest{NumOrders: 1, DetailedReport: true}, "admin-1")

	suite.NoError(err)
	suite.Equal(1, report.OrdersCreated)
	suite.Equal(0, report.OrdersPacked)
	suite.Len(report.Orders, 1)
	suite.Equal(models.OrderStatusCancelled, report.Orders[0].Status)
	suite.Contains(report.Orders[0].FailureReason, "insufficient stock")
}

func TestSimulationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SimulationServiceTestSuite))
}
