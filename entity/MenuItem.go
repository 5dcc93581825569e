package entity

import "time"

// Category is free text in storage; only Dish and Beverage get report buckets.
type Category string

const (
	CategoryDish     Category = "Platillo"
	CategoryBeverage Category = "Bebida"
)

type MenuItem struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null;index" json:"nombre"`
	Price       float64   `gorm:"not null" json:"precio"`
	Category    Category  `gorm:"type:varchar(64);not null" json:"categoria"`
	TaxIncluded bool      `gorm:"not null" json:"impuesto_incluido"`
	Image       *string   `json:"imagen"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}
