package models

import (
	"gorm.io/gorm"
)

type Listing struct {
	gorm.Model

	Title       string `json:"title" gorm:"type:varchar(255)"`
	Description string `json:"description" gorm:"type:text"`
	Address     string `json:"address" gorm:"type:varchar(255)"`
	City        string `json:"city" gorm:"type:varchar(100);index"`
	Country     string `json:"country" gorm:"type:varchar(100)"`

	PricePerNight float64 `json:"price_per_night" gorm:"column:price_per_night"`
	Bedrooms      int     `json:"bedrooms"`
	Bathrooms     int     `json:"bathrooms"`
	MaxGuests     int     `json:"max_guests" gorm:"column:max_guests"`

	HostID      uint `json:"host_id" gorm:"column:host_id;index"`
	IsAvailable bool `json:"is_available" gorm:"column:is_available;default:true"`

	Host    User     `json:"host,omitempty" gorm:"foreignKey:HostID"`
	Reviews []Review `json:"reviews,omitempty" gorm:"foreignKey:ListingID"`
}
