package models

import (
	"gorm.io/gorm"
)

type Review struct {
	gorm.Model

	ListingID uint   `json:"listing_id" gorm:"column:listing_id;index"`
	UserID    uint   `json:"user_id" gorm:"column:user_id;index"`
	Rating    int    `json:"rating" gorm:"check:rating >= 1 AND rating <= 5"`
	Comment   string `json:"comment" gorm:"type:text"`

	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
