package entity

// ServiceCategory groups catalog entries the way the site lists them.
type ServiceCategory string

const (
	ServiceCategoryCleaning ServiceCategory = "cleaning"
	ServiceCategoryHandyman ServiceCategory = "handyman"
)

// PriceUnit says what one unit of quantity buys.
type PriceUnit string

const (
	PriceUnitJob  PriceUnit = "job"
	PriceUnitHour PriceUnit = "hour"
)

// ServiceOption is an immutable catalog entry. UnitPrice is in minor units (cents).
type ServiceOption struct {
	ID        string
	Label     string
	Category  ServiceCategory
	Unit      PriceUnit
	UnitPrice int64
}

// DefaultServiceOptions is the published price list, in display order.
var DefaultServiceOptions = []ServiceOption{
	{ID: "basic", Label: "Basic Shine Package", Category: ServiceCategoryCleaning, Unit: PriceUnitJob, UnitPrice: 8500},
	{ID: "deluxe", Label: "Deep Clean Deluxe", Category: ServiceCategoryCleaning, Unit: PriceUnitJob, UnitPrice: 16000},
	{ID: "moveout", Label: "Move-In / Move-Out", Category: ServiceCategoryCleaning, Unit: PriceUnitJob, UnitPrice: 22000},
	{ID: "carpet", Label: "Carpet Shampoo", Category: ServiceCategoryCleaning, Unit: PriceUnitJob, UnitPrice: 4000},
	{ID: "windows", Label: "Window Cleaning", Category: ServiceCategoryCleaning, Unit: PriceUnitJob, UnitPrice: 5000},
	{ID: "carpentry", Label: "Carpentry & Repairs", Category: ServiceCategoryHandyman, Unit: PriceUnitHour, UnitPrice: 6000},
	{ID: "drywall", Label: "Drywall & Painting", Category: ServiceCategoryHandyman, Unit: PriceUnitHour, UnitPrice: 7500},
	{ID: "fixtures", Label: "Fixtures & Electrical", Category: ServiceCategoryHandyman, Unit: PriceUnitHour, UnitPrice: 7500},
	{ID: "assembly", Label: "Furniture Assembly", Category: ServiceCategoryHandyman, Unit: PriceUnitHour, UnitPrice: 6000},
	{ID: "plumbing", Label: "Plumbing Basics", Category: ServiceCategoryHandyman, Unit: PriceUnitHour, UnitPrice: 6000},
	{ID: "seasonal", Label: "Seasonal Maintenance", Category: ServiceCategoryHandyman, Unit: PriceUnitHour, UnitPrice: 7500},
}
