package models

import "gorm.io/gorm"

// DriverProfile holds the driver application and aggregates. A user has at
// most one profile; rides may only be created once Approved is set by an
// admin.
type DriverProfile struct {
	gorm.Model
	UserID            uint    `json:"userId" gorm:"not null;uniqueIndex"`
	User              User    `json:"user"`
	LicenseNumber     string  `json:"licenseNumber" gorm:"not null"`
	LicenseDocURL     string  `json:"licenseDocUrl"`
	InsuranceProvider string  `json:"insuranceProvider"`
	InsuranceDocURL   string  `json:"insuranceDocUrl"`
	VehicleMake       string  `json:"vehicleMake"`
	VehiclePlate      string  `json:"vehiclePlate"`
	SeatCapacity      int     `json:"seatCapacity" gorm:"not null"`
	Approved          bool    `json:"approved" gorm:"default:false"`
	TotalEarnings     float64 `json:"totalEarnings" gorm:"default:0"`
	RatingSum         int     `json:"-" gorm:"default:0"`
	RatingCount       int     `json:"ratingCount" gorm:"default:0"`
}

// AverageRating returns the aggregate rating, 0 when unrated.
func (p *DriverProfile) AverageRating() float64 {
	if p.RatingCount == 0 {
		return 0
	}
	return float64(p.RatingSum) / float64(p.RatingCount)
}

// AddRating folds a new score into the aggregate.
func (p *DriverProfile) AddRating(score int) {
	p.RatingSum += score
	p.RatingCount++
}
