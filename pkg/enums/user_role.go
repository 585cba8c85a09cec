package enums

// UserRole names the marketplace roles. Roles are persisted as free text.
type UserRole string

const (
	UserRoleFarmer      UserRole = "Farmer"
	UserRoleRetailer    UserRole = "Retailer"
	UserRoleConsumer    UserRole = "Consumer"
	UserRoleDistributor UserRole = "Distributor"
)

// String implements fmt.Stringer.
func (r UserRole) String() string {
	return string(r)
}
