package entity

// OrderLine stores the item name and price as they were when ordered; there is no
// foreign key to MenuItem.
type OrderLine struct {
	ID       uint    `gorm:"primaryKey" json:"-"`
	OrderID  uint    `gorm:"index;not null" json:"-"`
	Name     string  `gorm:"not null" json:"nombre"`
	Price    float64 `gorm:"not null" json:"precio"`
	Quantity int     `gorm:"not null" json:"cantidad"`
}
