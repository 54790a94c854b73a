package worker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/smithy-go"

	"grocerflow-backend/dal"
	"grocerflow-backend/infrastructure"
	"grocerflow-backend/models"
	"grocerflow-backend/utils"
	"grocerflow-backend/utils/logger"
)

// TableAdmin is the narrow slice of the database client the provisioner
// needs. dal.DynamoDBClient satisfies it.
type TableAdmin interface {
	CreateTable(ctx context.Context, input *dynamodb.CreateTableInput) error
	DescribeTable(ctx context.Context, tableName string) (*dynamodb.DescribeTableOutput, error)
	DeleteTable(ctx context.Context, input *dynamodb.DeleteTableInput) error
}

var _ TableAdmin = (*dal.DynamoDBClient)(nil)

// InfrastructureSetup provisions and tears down the DynamoDB tables the
// application depends on.
type InfrastructureSetup struct {
	config *models.Config
	logger logger.Logger
	db     TableAdmin
}

// NewInfrastructureSetup creates a provisioner backed by a fresh DynamoDB client.
func NewInfrastructureSetup(cfg *models.Config, log logger.Logger) (*InfrastructureSetup, error) {
	dbClient, err := dal.NewDynamoDBClient(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create DynamoDB client: %w", err)
	}
	return &InfrastructureSetup{config: cfg, logger: log, db: dbClient}, nil
}

// Execute creates all required tables, waits for them to become active and
// validates the result. Status transitions are persisted through sm so the
// API can report progress.
func (is *InfrastructureSetup) Execute(ctx context.Context, sm *StatusManager, skipValidation bool) error {
	is.logger.Info("Starting infrastructure setup...")

	tableDetails := is.getTableDetails()
	is.logger.Debugf("Tables to process: %s", utils.PrintPrettyJSON(tableDetails))

	if err := sm.UpdateProgress(models.StatusCreatingTables, "Table Creation", nil); err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	// Create tables sequentially to avoid throttling
	for _, tableInfo := range tableDetails {
		if err := is.createTableWithRetry(ctx, tableInfo); err != nil {
			is.logger.Errorf("Failed to create table %s: %v", tableInfo.Name, err)
			return fmt.Errorf("failed to create table %s: %w", tableInfo.Name, err)
		}

		if err := sm.AddTableCreated(models.TableStatus{
			Name:            tableInfo.Name,
			Status:          "CREATING",
			CreatedAt:       time.Now(),
			ExpectedIndexes: tableInfo.IndexCount,
			BillingMode:     tableInfo.BillingMode,
			Tags:            tableInfo.Tags,
		}); err != nil {
			is.logger.Warnf("Failed to record table creation for %s: %v", tableInfo.Name, err)
		}
		is.logger.Infof("✅ Table creation issued: %s", tableInfo.Name)
	}

	if err := sm.UpdateProgress(models.StatusWaitingForTables, "Table Activation", nil); err != nil {
		is.logger.Errorf("Failed to update status: %v", err)
	}
	if err := is.waitForTablesActive(ctx, tableDetails, sm); err != nil {
		return err
	}

	if skipValidation {
		is.logger.Warn("Skipping infrastructure validation")
		return nil
	}

	if err := sm.UpdateProgress(models.StatusValidating, "Validation", nil); err != nil {
		is.logger.Errorf("Failed to update status: %v", err)
	}
	if err := is.validateInfrastructure(ctx, tableDetails); err != nil {
		return err
	}

	is.logger.Info("Infrastructure setup finished, all tables active")
	return nil
}

func (is *InfrastructureSetup) getTableDetails() []*models.TableInfo {
	var tableDetails []*models.TableInfo

	for _, tableName := range is.config.Tables {
		indexes := is.getTableIndexes(tableName)

		tableDetails = append(tableDetails, &models.TableInfo{
			Name:   is.config.DynamoDBTablePrefix + "_" + tableName,
			Status: "CREATING",
			Tags: map[string]string{
				"Environment": is.config.AppEnv,
				"Application": is.config.AppName,
				"TableType":   tableName,
				"CreatedBy":   "infrastructure-worker",
				"Version":     is.config.AppVersion,
				"Service":     "GrocerFlow",
			},
			CreatedAt:   time.Now(),
			IndexCount:  len(indexes),
			Indexes:     indexes,
			BillingMode: "PAY_PER_REQUEST",
			ParseName:   tableName,
		})
	}

	return tableDetails
}

// getTableIndexes lists the GSI names declared in table_schema.json per table.
// Kept in sync by hand, validateInfrastructure checks the count against AWS.
func (is *InfrastructureSetup) getTableIndexes(tableName string) []string {
	switch tableName {
	case "products":
		return []string{"CategoryIndex"}
	case "batches":
		return []string{"ProductIndex"}
	case "riders":
		return []string{"StatusIndex"}
	case "orders":
		return []string{"CustomerIndex", "StatusIndex"}
	case "deliveries":
		return []string{"OrderIndex"}
	case "purchase_orders":
		return []string{"SupplierIndex"}
	case "cash_collections":
		return []string{"RiderIndex"}
	case "journeys":
		return []string{"GSI1"}
	case "users":
		return []string{"EmailIndex", "UsernameIndex"}
	case "audit_logs":
		return []string{"EntityIndex"}
	default:
		return []string{}
	}
}

// createTableWithRetry creates a table with retry logic
func (is *InfrastructureSetup) createTableWithRetry(ctx context.Context, tableInfo *models.TableInfo) error {
	maxRetries := 3
	baseDelay := 5 * time.Second

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			delay := time.Duration(attempt) * baseDelay
			is.logger.Infof("Retrying table creation for %s in %v (attempt %d/%d)", tableInfo.Name, delay, attempt+1, maxRetries+1)

			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		if exists, err := is.tableExists(ctx, tableInfo.Name); err != nil {
			is.logger.Errorf("Failed to check if table exists: %v", err)
			continue
		} else if exists {
			is.logger.Infof("✅ Table %s already exists, skipping creation", tableInfo.Name)
			return nil
		}

		if err := is.createTableFromEmbeddedJSON(ctx, tableInfo.Name); err != nil {
			is.logger.Errorf("Attempt %d failed to create table %s: %v", attempt+1, tableInfo.Name, err)

			if attempt == maxRetries {
				return fmt.Errorf("failed to create table %s after %d attempts: %w", tableInfo.Name, maxRetries+1, err)
			}
			continue
		}

		return nil
	}

	return fmt.Errorf("exhausted all retry attempts for table %s", tableInfo.Name)
}

func (is *InfrastructureSetup) createTableFromEmbeddedJSON(ctx context.Context, tableName string) error {
	input, err := infrastructure.GetTables(tableName)
	if err != nil {
		return fmt.Errorf("failed to get table input: %w", err)
	}
	if err := is.db.CreateTable(ctx, input); err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}
	return nil
}

// isTableNotFoundError checks if error indicates table not found
func isTableNotFoundError(err error) bool {
	if err == nil {
		return false
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode() == "ResourceNotFoundException"
	}

	// Fallback to string matching for other error types
	errorStr := err.Error()
	return strings.Contains(errorStr, "ResourceNotFoundException") ||
		strings.Contains(errorStr, "Table not found") ||
		strings.Contains(errorStr, "Requested resource not found")
}

// tableExists checks if a table already exists
func (is *InfrastructureSetup) tableExists(ctx context.Context, tableName string) (bool, error) {
	_, err := is.db.DescribeTable(ctx, tableName)
	if err != nil {
		if isTableNotFoundError(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// waitForTablesActive polls until every table reports ACTIVE, recording
// index availability along the way.
func (is *InfrastructureSetup) waitForTablesActive(ctx context.Context, tables []*models.TableInfo, sm *StatusManager) error {
	timeout := 10 * time.Minute
	checkInterval := 10 * time.Second

	timeoutCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	pending := make(map[string]*models.TableInfo, len(tables))
	for _, table := range tables {
		pending[table.Name] = table
	}

	for len(pending) > 0 {
		for name, table := range pending {
			desc, err := is.db.DescribeTable(timeoutCtx, name)
			if err != nil {
				is.logger.Debugf("Table %s not describable yet: %v", name, err)
				continue
			}
			if string(desc.Table.TableStatus) != "ACTIVE" {
				is.logger.Debugf("Table %s status: %s", name, desc.Table.TableStatus)
				continue
			}

			for _, indexName := range table.Indexes {
				if err := sm.AddIndexCreated(models.IndexStatus{
					Name:      name + "/" + indexName,
					Status:    "ACTIVE",
					CreatedAt: time.Now(),
				}); err != nil {
					is.logger.Warnf("Failed to record index %s: %v", indexName, err)
				}
			}
			is.logger.Infof("Table %s is active", name)
			delete(pending, name)
		}

		if len(pending) == 0 {
			break
		}

		select {
		case <-timeoutCtx.Done():
			names := make([]string, 0, len(pending))
			for name := range pending {
				names = append(names, name)
			}
			return fmt.Errorf("timeout waiting for tables to become active: %s", strings.Join(names, ", "))
		case <-time.After(checkInterval):
		}
	}

	return nil
}

// validateInfrastructure verifies each table is ACTIVE with the expected GSIs.
func (is *InfrastructureSetup) validateInfrastructure(ctx context.Context, tables []*models.TableInfo) error {
	is.logger.Info("Validating infrastructure setup")

	for _, table := range tables {
		desc, err := is.db.DescribeTable(ctx, table.Name)
		if err != nil {
			return fmt.Errorf("table %s validation failed: %w", table.Name, err)
		}

		if string(desc.Table.TableStatus) != "ACTIVE" {
			return fmt.Errorf("table %s is not active: %s", table.Name, desc.Table.TableStatus)
		}

		expectedIndexes := table.IndexCount
		actualIndexes := len(desc.Table.GlobalSecondaryIndexes)
		if actualIndexes != expectedIndexes {
			return fmt.Errorf("table %s has %d indexes, expected %d", table.Name, actualIndexes, expectedIndexes)
		}

		is.logger.Infof("Table %s validation passed", table.Name)
	}

	is.logger.Info("Infrastructure validation completed successfully")
	return nil
}

// deleteTableWithRetry deletes a table with retry logic
func (is *InfrastructureSetup) deleteTableWithRetry(ctx context.Context, tableName string) error {
	maxRetries := 3
	baseDelay := 5 * time.Second

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			delay := time.Duration(attempt) * baseDelay
			is.logger.Infof("Retrying table deletion for %s in %v (attempt %d/%d)", tableName, delay, attempt+1, maxRetries+1)

			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		exists, err := is.tableExists(ctx, tableName)
		if err != nil {
			is.logger.Errorf("Failed to check if table exists: %v", err)
			continue
		} else if !exists {
			is.logger.Infof("✅ Table %s does not exist, skipping deletion", tableName)
			return nil
		}

		if err := is.deleteTable(ctx, tableName); err != nil {
			is.logger.Errorf("Attempt %d failed to delete table %s: %v", attempt+1, tableName, err)

			if attempt == maxRetries {
				return fmt.Errorf("failed to delete table %s after %d attempts: %w", tableName, maxRetries+1, err)
			}
			continue
		}

		return nil
	}

	return fmt.Errorf("exhausted all retry attempts for table %s deletion", tableName)
}

func (is *InfrastructureSetup) deleteTable(ctx context.Context, tableName string) error {
	is.logger.Warnf("Deleting table: %s", tableName)

	input := &dynamodb.DeleteTableInput{
		TableName: aws.String(tableName),
	}
	return is.db.DeleteTable(ctx, input)
}

// waitForTablesDeleted waits for all tables to disappear
func (is *InfrastructureSetup) waitForTablesDeleted(ctx context.Context, tables []*models.TableInfo, sm *StatusManager) error {
	timeout := 10 * time.Minute
	checkInterval := 10 * time.Second

	timeoutCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	for {
		allDeleted := true
		for _, table := range tables {
			exists, err := is.tableExists(timeoutCtx, table.Name)
			if err != nil {
				is.logger.Errorf("Failed to check table %s existence: %v", table.Name, err)
				allDeleted = false
				break
			}
			if exists {
				is.logger.Debugf("Table %s still exists", table.Name)
				allDeleted = false
				break
			}
		}

		if allDeleted {
			is.logger.Info("All tables have been deleted")
			return nil
		}

		if err := sm.UpdateProgress(models.StatusDeleting, "Waiting for tables to be deleted", nil); err != nil {
			is.logger.Errorf("Failed to update status: %v", err)
		}

		select {
		case <-timeoutCtx.Done():
			return fmt.Errorf("timeout waiting for tables to be deleted")
		case <-time.After(checkInterval):
		}
	}
}

// ExecuteDelete tears down every provisioned table.
func (is *InfrastructureSetup) ExecuteDelete(ctx context.Context, sm *StatusManager) error {
	is.logger.Warn("Starting infrastructure deletion execution")

	if err := sm.UpdateProgress(models.StatusDeleting, "Starting infrastructure deletion", nil); err != nil {
		is.logger.Errorf("Failed to update status: %v", err)
	}

	tables := is.getTableDetails()

	// Delete tables sequentially
	for _, tableInfo := range tables {
		if err := is.deleteTableWithRetry(ctx, tableInfo.Name); err != nil {
			is.logger.Errorf("Failed to delete table %s: %v", tableInfo.Name, err)
			sm.UpdateProgress(models.StatusDeletionFailed, fmt.Sprintf("Failed to delete table %s: %v", tableInfo.Name, err), nil)
			return err
		}
		is.logger.Warnf("🗑️ Successfully deleted table: %s", tableInfo.Name)
	}

	if err := is.waitForTablesDeleted(ctx, tables, sm); err != nil {
		sm.UpdateProgress(models.StatusDeletionFailed, fmt.Sprintf("Tables failed to be deleted: %v", err), nil)
		return err
	}

	if err := sm.UpdateProgress(models.StatusDeleted, "Infrastructure deletion completed", map[string]interface{}{
		"deleted_tables": len(tables),
		"completed_at":   time.Now(),
	}); err != nil {
		is.logger.Errorf("Failed to mark deletion as completed: %v", err)
	}

	is.logger.Warn("🗑️ Infrastructure deletion completed, all tables removed")
	return nil
}
