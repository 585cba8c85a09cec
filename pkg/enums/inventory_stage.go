package enums

// Common inventory stage labels. Stage is free text; only the default is enforced.
const (
	InventoryStageHarvested     = "harvested"
	InventoryStageAtDistributor = "at_distributor"
	InventoryStageAtRetailer    = "at_retailer"
)
