package models

import "gorm.io/gorm"

type PaymentMethod struct {
	gorm.Model
	UserID    uint   `json:"userId" gorm:"not null;index"`
	Kind      string `json:"kind" gorm:"not null"`
	Label     string `json:"label" gorm:"not null"`
	LastFour  string `json:"lastFour"`
	IsDefault bool   `json:"isDefault" gorm:"default:false"`
}
