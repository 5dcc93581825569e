package entity

const (
	DefaultInventoryUnit    = "unidades"
	DefaultInventoryMinimum = 5
)

// InventoryItem is matched to ordered items by Name, not by id.
type InventoryItem struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	Name     string  `gorm:"not null;index" json:"nombre"`
	Quantity float64 `gorm:"not null" json:"cantidad"`
	Unit     string  `gorm:"not null" json:"unidad"`
	Minimum  float64 `gorm:"not null" json:"minimo"`
}

func (i *InventoryItem) LowStock() bool {
	return i.Quantity <= i.Minimum
}
