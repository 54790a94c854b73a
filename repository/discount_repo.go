package repository

import (
	"context"

	"grocerflow-backend/dal"
	"grocerflow-backend/models"
	"grocerflow-backend/utils/logger"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
)

// DiscountRepository handles the discounts and delivery_slots tables
type DiscountRepository struct {
	db     dal.DatabaseClientInterface
	config *models.Config
	logger logger.Logger
}

func NewDiscountRepository(db dal.DatabaseClientInterface, cfg *models.Config, log logger.Logger) *DiscountRepository {
	return &DiscountRepository{
		db:     db,
		config: cfg,
		logger: log,
	}
}

func (r *DiscountRepository) table() string {
	return r.config.DynamoDBTablePrefix + "_discounts"
}

func (r *DiscountRepository) slotsTable() string {
	return r.config.DynamoDBTablePrefix + "_delivery_slots"
}

func (r *DiscountRepository) CreateDiscount(ctx context.Context, discount *models.Discount) error {
	if discount.Status == "" {
		discount.Status = "ACTIVE"
	}
	return r.db.PutItemIfAbsent(ctx, r.table(), "discountId", discount)
}

func (r *DiscountRepository) ListActive(ctx context.Context) ([]*models.Discount, error) {
	filter := expression.Name("status").Equal(expression.Value("ACTIVE"))

	var discounts []*models.Discount
	if err := r.db.ScanWithFilter(ctx, r.table(), filter, &discounts); err != nil {
		return nil, err
	}
	return discounts, nil
}

// IncrementUsage burns one use of the discount. The guard keeps
// usedCount under the usage limit.
func (r *DiscountRepository) IncrementUsage(ctx context.Context, discountID, discountType string) error {
	update := expression.Set(
		expression.Name("usedCount"),
		expression.Name("usedCount").Plus(expression.Value(1)),
	)
	cond := expression.Name("usedCount").LessThan(expression.Name("usageLimit"))

	key := map[string]string{"discountId": discountID, "discountType": discountType}
	return r.db.UpdateItemConditional(ctx, r.table(), key, update, cond)
}

func (r *DiscountRepository) PutSlot(ctx context.Context, slot *models.DeliverySlot) error {
	if slot.Status == "" {
		slot.Status = "OPEN"
	}
	return r.db.PutItem(ctx, r.slotsTable(), slot)
}

func (r *DiscountRepository) ListSlotsByPincode(ctx context.Context, pincode string) ([]*models.DeliverySlot, error) {
	var slots []*models.DeliverySlot
	if err := r.db.Query(ctx, r.slotsTable(), "pincode", pincode, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

// BookSlot takes one unit of slot capacity. The guard rejects the
// booking once the slot is full.
func (r *DiscountRepository) BookSlot(ctx context.Context, pincode, slotKey string) error {
	update := expression.Set(
		expression.Name("bookedCount"),
		expression.Name("bookedCount").Plus(expression.Value(1)),
	)
	cond := expression.Name("bookedCount").LessThan(expression.Name("capacity"))

	key := map[string]string{"pincode": pincode, "slotKey": slotKey}
	err := r.db.UpdateItemConditional(ctx, r.slotsTable(), key, update, cond)
	if err != nil && dal.IsConditionFailed(err) {
		r.logger.Warnf("Slot %s at %s is full", slotKey, pincode)
	}
	return err
}
