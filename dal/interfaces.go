package dal

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// DatabaseClientInterface defines the contract for database operations
type DatabaseClientInterface interface {
	// Core CRUD operations
	GetItem(ctx context.Context, tableName string, key map[string]string, result interface{}) error
	PutItem(ctx context.Context, tableName string, item interface{}) error
	PutItemIfAbsent(ctx context.Context, tableName, pkName string, item interface{}) error
	UpdateItem(ctx context.Context, tableName string, key map[string]string, updates map[string]interface{}) error
	UpdateItemConditional(ctx context.Context, tableName string, key map[string]string, update expression.UpdateBuilder, cond expression.ConditionBuilder) error
	DeleteItem(ctx context.Context, tableName string, key map[string]string) error

	// Query and Scan operations
	Query(ctx context.Context, tableName, pkName, pkValue string, results interface{}) error
	QueryByPrefix(ctx context.Context, tableName, pkName, pkValue, skName, skPrefix string, results interface{}) error
	QueryByIndex(ctx context.Context, tableName, indexName, keyName, keyValue string, results interface{}) error
	Scan(ctx context.Context, tableName string, results interface{}) error
	ScanWithFilter(ctx context.Context, tableName string, filter expression.ConditionBuilder, results interface{}) error

	// Table management operations
	CreateTable(ctx context.Context, input *dynamodb.CreateTableInput) error
	DescribeTable(ctx context.Context, tableName string) (*dynamodb.DescribeTableOutput, error)
	DeleteTable(ctx context.Context, input *dynamodb.DeleteTableInput) error
}
