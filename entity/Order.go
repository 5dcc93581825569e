package entity

import (
	"time"
)

type OrderStatus string

const (
	OrderPending OrderStatus = "Pendiente"
	OrderReady   OrderStatus = "Lista"
)

// Order totals are written once at creation; Total = Subtotal + Tax.
type Order struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	Subtotal  float64     `gorm:"not null" json:"subtotal"`
	Tax       float64     `gorm:"column:isv;not null" json:"isv"`
	Total     float64     `gorm:"not null" json:"total"`
	CreatedAt time.Time   `gorm:"index;not null" json:"fecha"`
	Status    OrderStatus `gorm:"type:varchar(16);index;not null" json:"estado"`

	Lines []OrderLine `gorm:"constraint:OnDelete:CASCADE" json:"items,omitempty"`
}
