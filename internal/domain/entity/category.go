package entity

// Category is the fixed set of property types a listing can advertise.
type Category string

const (
	CategoryHouses  Category = "Houses"
	CategoryLands   Category = "Lands"
	CategoryShops   Category = "Shops"
	CategoryParking Category = "Parking"
)

// String returns the string representation of the Category.
func (c Category) String() string {
	return string(c)
}

// IsValid checks if the Category is one of the enumerated values.
func (c Category) IsValid() bool {
	switch c {
	case CategoryHouses, CategoryLands, CategoryShops, CategoryParking:
		return true
	default:
		return false
	}
}

// Categories lists every valid category, in display order.
func Categories() []Category {
	return []Category{CategoryHouses, CategoryLands, CategoryShops, CategoryParking}
}
