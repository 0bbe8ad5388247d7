package model

// Category is the fixed set of maintenance task categories.
type Category string

const (
	CategoryHVAC       Category = "HVAC"
	CategorySafety     Category = "Safety"
	CategoryPlumbing   Category = "Plumbing"
	CategoryLaundry    Category = "Laundry"
	CategoryKitchen    Category = "Kitchen"
	CategoryExterior   Category = "Exterior"
	CategorySeasonal   Category = "Seasonal"
	CategoryEquipment  Category = "Equipment"
	CategoryElectrical Category = "Electrical"
)

// Categories in canonical display order.
var Categories = []Category{
	CategoryHVAC,
	CategorySafety,
	CategoryPlumbing,
	CategoryKitchen,
	CategoryLaundry,
	CategoryExterior,
	CategorySeasonal,
	CategoryEquipment,
	CategoryElectrical,
}

func (c Category) Valid() bool {
	for _, k := range Categories {
		if c == k {
			return true
		}
	}
	return false
}
