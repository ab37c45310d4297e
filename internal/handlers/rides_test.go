package handlers_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/AlexYeap93/ridealong-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvailableRidesTimeWindow(t *testing.T) {
	db := setupDB(t)
	r := setupRouter(db)

	driver := createApprovedDriver(t, db, "driver1", 4)
	near := createRide(t, db, driver.ID, 4, "10:25 AM")
	far := createRide(t, db, driver.ID, 4, "10:35 AM")
	rider := createUser(t, db, "rider1", models.UserTypeRider)

	date := near.Date.Format("2006-01-02")
	w := doRequest(r, "GET",
		"/api/rides/available?destination=University&date="+date+"&time=10:00%20AM",
		authToken(t, rider), nil)
	requireStatus(t, w, 200)

	body := decodeBody(t, w)
	data, ok := body["data"].([]interface{})
	require.True(t, ok)
	require.Len(t, data, 1)

	entry := data[0].(map[string]interface{})
	assert.Equal(t, float64(near.ID), entry["id"])
	assert.Equal(t, "10:25 AM", entry["departureTime"])
	assert.NotEqual(t, float64(far.ID), entry["id"])
}

func TestAvailableRidesAnnotations(t *testing.T) {
	db := setupDB(t)
	r := setupRouter(db)

	driver := createApprovedDriver(t, db, "driver1", 4)
	require.NoError(t, db.Model(&models.DriverProfile{}).
		Where("user_id = ?", driver.ID).
		Updates(map[string]interface{}{"rating_sum": 9, "rating_count": 2}).Error)

	ride := createRide(t, db, driver.ID, 4, "10:00 AM")
	rider := createUser(t, db, "rider1", models.UserTypeRider)

	booking := models.Booking{
		RiderID:        rider.ID,
		RideID:         ride.ID,
		SeatNumber:     1,
		PickupLocation: "Main St",
		Status:         models.BookingStatusConfirmed,
	}
	require.NoError(t, db.Create(&booking).Error)

	w := doRequest(r, "GET", "/api/rides/available", authToken(t, rider), nil)
	requireStatus(t, w, 200)

	body := decodeBody(t, w)
	data := body["data"].([]interface{})
	require.Len(t, data, 1)

	entry := data[0].(map[string]interface{})
	assert.Equal(t, "driver1", entry["driverName"])
	assert.Equal(t, 4.5, entry["driverRating"])
	assert.Equal(t, float64(3), entry["remainingSeats"])
}

func TestCompleteRideCascades(t *testing.T) {
	db := setupDB(t)
	r := setupRouter(db)

	driver := createApprovedDriver(t, db, "driver1", 4)
	ride := createRide(t, db, driver.ID, 4, "10:00 AM")
	rider := createUser(t, db, "rider1", models.UserTypeRider)
	rider2 := createUser(t, db, "rider2", models.UserTypeRider)

	extra := 5.0
	confirmed := models.Booking{
		RiderID: rider.ID, RideID: ride.ID, SeatNumber: 1,
		PickupLocation: "Main St", Status: models.BookingStatusConfirmed,
		AdditionalAmount: &extra, NegotiationStatus: models.NegotiationAccepted,
	}
	cancelled := models.Booking{
		RiderID: rider2.ID, RideID: ride.ID, SeatNumber: 2,
		PickupLocation: "Elm Ave", Status: models.BookingStatusCancelled,
	}
	require.NoError(t, db.Create(&confirmed).Error)
	require.NoError(t, db.Create(&cancelled).Error)

	w := doRequest(r, "POST", fmt.Sprintf("/api/rides/%d/complete", ride.ID), authToken(t, driver), nil)
	requireStatus(t, w, 200)

	var updatedRide models.Ride
	require.NoError(t, db.First(&updatedRide, ride.ID).Error)
	assert.Equal(t, models.RideStatusCompleted, updatedRide.Status)

	var b1, b2 models.Booking
	require.NoError(t, db.First(&b1, confirmed.ID).Error)
	require.NoError(t, db.First(&b2, cancelled.ID).Error)
	assert.Equal(t, models.BookingStatusCompleted, b1.Status)
	// Cancelled bookings are unaffected by completion
	assert.Equal(t, models.BookingStatusCancelled, b2.Status)

	// Seat price plus the accepted additional amount is credited
	var profile models.DriverProfile
	require.NoError(t, db.Where("user_id = ?", driver.ID).First(&profile).Error)
	assert.Equal(t, 15.0, profile.TotalEarnings)

	// Completing twice is rejected
	w = doRequest(r, "POST", fmt.Sprintf("/api/rides/%d/complete", ride.ID), authToken(t, driver), nil)
	requireStatus(t, w, 400)
}

func TestCancelRideCascades(t *testing.T) {
	db := setupDB(t)
	r := setupRouter(db)

	driver := createApprovedDriver(t, db, "driver1", 4)
	ride := createRide(t, db, driver.ID, 4, "10:00 AM")
	rider := createUser(t, db, "rider1", models.UserTypeRider)

	booking := models.Booking{
		RiderID: rider.ID, RideID: ride.ID, SeatNumber: 1,
		PickupLocation: "Main St", Status: models.BookingStatusConfirmed,
	}
	require.NoError(t, db.Create(&booking).Error)

	// Only the ride's driver may cancel it
	w := doRequest(r, "POST", fmt.Sprintf("/api/rides/%d/cancel", ride.ID), authToken(t, rider), nil)
	requireStatus(t, w, 403)

	w = doRequest(r, "POST", fmt.Sprintf("/api/rides/%d/cancel", ride.ID), authToken(t, driver), nil)
	requireStatus(t, w, 200)

	var updatedRide models.Ride
	require.NoError(t, db.First(&updatedRide, ride.ID).Error)
	assert.Equal(t, models.RideStatusCancelled, updatedRide.Status)

	var updatedBooking models.Booking
	require.NoError(t, db.First(&updatedBooking, booking.ID).Error)
	assert.Equal(t, models.BookingStatusCancelled, updatedBooking.Status)
}

func TestCreateRideRequiresApproval(t *testing.T) {
	db := setupDB(t)
	r := setupRouter(db)

	driver := createUser(t, db, "driver1", models.UserTypeDriver)
	profile := models.DriverProfile{
		UserID:        driver.ID,
		LicenseNumber: "DL-1",
		SeatCapacity:  4,
		Approved:      false,
	}
	require.NoError(t, db.Create(&profile).Error)

	body := payload{
		"origin":         "Downtown",
		"destination":    "University Campus",
		"date":           time.Now().Add(48 * time.Hour).Format(time.RFC3339),
		"departureTime":  "10:00 AM",
		"pricePerSeat":   10,
		"availableSeats": 3,
	}

	w := doRequest(r, "POST", "/api/rides", authToken(t, driver), body)
	requireStatus(t, w, 403)

	require.NoError(t, db.Model(&profile).Update("approved", true).Error)

	w = doRequest(r, "POST", "/api/rides", authToken(t, driver), body)
	requireStatus(t, w, 201)

	// Seats beyond the vehicle capacity are rejected
	body["availableSeats"] = 9
	w = doRequest(r, "POST", "/api/rides", authToken(t, driver), body)
	requireStatus(t, w, 400)
}

func TestCancelledRideCannotComplete(t *testing.T) {
	db := setupDB(t)
	r := setupRouter(db)

	driver := createApprovedDriver(t, db, "driver1", 4)
	ride := createRide(t, db, driver.ID, 4, "10:00 AM")

	w := doRequest(r, "POST", fmt.Sprintf("/api/rides/%d/cancel", ride.ID), authToken(t, driver), nil)
	requireStatus(t, w, 200)

	// The transaction re-reads the ride, so the stale active status the
	// handler loaded first cannot be written back
	w = doRequest(r, "POST", fmt.Sprintf("/api/rides/%d/complete", ride.ID), authToken(t, driver), nil)
	requireStatus(t, w, 400)

	w = doRequest(r, "POST", fmt.Sprintf("/api/rides/%d/cancel", ride.ID), authToken(t, driver), nil)
	requireStatus(t, w, 400)
}

func TestCompleteRideSkipsBookingCancelledViaAPI(t *testing.T) {
	db := setupDB(t)
	r := setupRouter(db)

	driver := createApprovedDriver(t, db, "driver1", 4)
	ride := createRide(t, db, driver.ID, 4, "10:00 AM")
	rider := createUser(t, db, "rider1", models.UserTypeRider)

	booking := seedBooking(t, db, rider.ID, ride.ID, models.BookingStatusConfirmed)

	w := doRequest(r, "POST", fmt.Sprintf("/api/bookings/%d/cancel", booking.ID), authToken(t, rider), nil)
	requireStatus(t, w, 200)

	w = doRequest(r, "POST", fmt.Sprintf("/api/rides/%d/complete", ride.ID), authToken(t, driver), nil)
	requireStatus(t, w, 200)

	// The cancellation survives completion and earns the driver nothing
	var updated models.Booking
	require.NoError(t, db.First(&updated, booking.ID).Error)
	assert.Equal(t, models.BookingStatusCancelled, updated.Status)

	var profile models.DriverProfile
	require.NoError(t, db.Where("user_id = ?", driver.ID).First(&profile).Error)
	assert.Equal(t, 0.0, profile.TotalEarnings)
}
