package models

// UserRole identifies one of the portal personas
type UserRole string

const (
	RoleCustomer          UserRole = "customer"
	RoleInventoryStaff    UserRole = "inventory_staff"
	RoleWarehouseManager  UserRole = "warehouse_manager"
	RoleLogisticsManager  UserRole = "logistics_manager"
	RoleDeliveryPersonnel UserRole = "delivery_personnel"
	RoleSupplier          UserRole = "supplier"
	RoleAuditor           UserRole = "auditor"
	RoleSuperAdmin        UserRole = "super_admin"
)

// UserStatus represents the status of a user account
type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusInactive  UserStatus = "inactive"
	UserStatusSuspended UserStatus = "suspended"
)

// User is a portal account. Partition key userId, sort key role.
type User struct {
	UserID       string     `json:"userId" dynamodbav:"userId"`
	Role         UserRole   `json:"role" dynamodbav:"role"`
	Email        string     `json:"email" dynamodbav:"email"`
	Username     string     `json:"username" dynamodbav:"username"`
	PasswordHash string     `json:"-" dynamodbav:"passwordHash"`
	Name         string     `json:"name" dynamodbav:"name"`
	Phone        string     `json:"phone,omitempty" dynamodbav:"phone,omitempty"`
	Permissions  []string   `json:"permissions" dynamodbav:"permissions"`
	Status       UserStatus `json:"status" dynamodbav:"status"`
	// Persona links: customers map to a customer record, suppliers to a
	// supplier record, delivery personnel to a rider record.
	CustomerID string `json:"customerId,omitempty" dynamodbav:"customerId,omitempty"`
	SupplierID string `json:"supplierId,omitempty" dynamodbav:"supplierId,omitempty"`
	RiderID    string `json:"riderId,omitempty" dynamodbav:"riderId,omitempty"`
	CreatedAt  string `json:"createdAt" dynamodbav:"createdAt"`
	UpdatedAt  string `json:"updatedAt" dynamodbav:"updatedAt"`
	LastLogin  string `json:"lastLogin,omitempty" dynamodbav:"lastLogin,omitempty"`
}

// CreateUserRequest is the admin payload for provisioning an account
type CreateUserRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Username   string `json:"username" binding:"required"`
	Password   string `json:"password" binding:"required,min=8"`
	Name       string `json:"name" binding:"required"`
	Phone      string `json:"phone"`
	Role       string `json:"role" binding:"required,oneof=customer inventory_staff warehouse_manager logistics_manager delivery_personnel supplier auditor super_admin"`
	CustomerID string `json:"customerId"`
	SupplierID string `json:"supplierId"`
	RiderID    string `json:"riderId"`
}

// DefaultPermissions maps a role to the operations it can perform.
// Unknown roles get nothing.
func DefaultPermissions(role UserRole) []string {
	switch role {
	case RoleCustomer:
		return []string{"catalog:read", "orders:create", "orders:read", "slots:read", "slots:book"}
	case RoleInventoryStaff:
		return []string{"orders:read", "orders:pack", "stock:read", "stock:adjust"}
	case RoleWarehouseManager:
		return []string{"stock:read", "stock:optimize", "purchase_orders:create", "batches:manage"}
	case RoleLogisticsManager:
		return []string{"orders:read", "runsheets:create", "routes:create", "riders:assign"}
	case RoleDeliveryPersonnel:
		return []string{"deliveries:read", "deliveries:update", "cash:collect"}
	case RoleSupplier:
		return []string{"purchase_orders:read", "purchase_orders:update"}
	case RoleAuditor:
		return []string{"audit:read", "cash:verify", "orders:verify"}
	case RoleSuperAdmin:
		return []string{"*"}
	default:
		return nil
	}
}
