package models

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model

	Username string `json:"username" gorm:"column:username;uniqueIndex;type:varchar(150)"`
	Email    string `json:"email" gorm:"column:email;type:varchar(255)"`
	Password string `json:"-" gorm:"column:password;type:varchar(255)"`

	// Staff users bypass per-guest booking scoping.
	IsStaff bool `json:"is_staff" gorm:"column:is_staff;default:false"`
}
