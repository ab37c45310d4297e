package handlers_test

import (
	"fmt"
	"testing"

	"github.com/AlexYeap93/ridealong-backend/internal/models"
	"github.com/AlexYeap93/ridealong-backend/internal/services"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndListPayments(t *testing.T) {
	db := setupDB(t)
	r := setupRouter(db)

	driver := createApprovedDriver(t, db, "driver1", 4)
	ride := createRide(t, db, driver.ID, 4, "10:00 AM")
	rider := createUser(t, db, "rider1", models.UserTypeRider)

	booking := seedBooking(t, db, rider.ID, ride.ID, models.BookingStatusConfirmed)

	w := doRequest(r, "POST", "/api/payments", authToken(t, rider), payload{
		"bookingId": booking.ID,
		"amount":    10.0,
		"method":    "card",
	})
	requireStatus(t, w, 201)

	var payment models.Payment
	require.NoError(t, db.Where("booking_id = ?", booking.ID).First(&payment).Error)
	assert.Equal(t, models.PaymentStatusCompleted, payment.Status)
	assert.Equal(t, 10.0, payment.Amount)

	// Both parties can read the payment trail
	for _, user := range []*models.User{rider, driver} {
		w = doRequest(r, "GET", fmt.Sprintf("/api/payments/booking/%d", booking.ID), authToken(t, user), nil)
		requireStatus(t, w, 200)
		body := decodeBody(t, w)
		assert.Len(t, body["data"], 1)
	}
}

func TestPaymentOwnershipChecks(t *testing.T) {
	db := setupDB(t)
	r := setupRouter(db)

	driver := createApprovedDriver(t, db, "driver1", 4)
	ride := createRide(t, db, driver.ID, 4, "10:00 AM")
	rider := createUser(t, db, "rider1", models.UserTypeRider)
	stranger := createUser(t, db, "stranger", models.UserTypeRider)

	booking := seedBooking(t, db, rider.ID, ride.ID, models.BookingStatusConfirmed)

	// Only the booking's rider can pay
	w := doRequest(r, "POST", "/api/payments", authToken(t, stranger), payload{
		"bookingId": booking.ID,
		"amount":    10.0,
		"method":    "card",
	})
	requireStatus(t, w, 403)

	// Strangers cannot read the payment trail either
	w = doRequest(r, "GET", fmt.Sprintf("/api/payments/booking/%d", booking.ID), authToken(t, stranger), nil)
	requireStatus(t, w, 403)

	// Zero and negative amounts are rejected
	for _, amount := range []float64{0, -5} {
		w = doRequest(r, "POST", "/api/payments", authToken(t, rider), payload{
			"bookingId": booking.ID,
			"amount":    amount,
			"method":    "card",
		})
		requireStatus(t, w, 400)
	}
}

func TestPaymentDuplicateSubmitRejected(t *testing.T) {
	mr := miniredis.RunT(t)
	services.RedisClient = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { services.RedisClient = nil })

	db := setupDB(t)
	r := setupRouter(db)

	driver := createApprovedDriver(t, db, "driver1", 4)
	ride := createRide(t, db, driver.ID, 4, "10:00 AM")
	rider := createUser(t, db, "rider1", models.UserTypeRider)

	booking := seedBooking(t, db, rider.ID, ride.ID, models.BookingStatusConfirmed)

	body := payload{
		"bookingId": booking.ID,
		"amount":    10.0,
		"method":    "card",
	}

	w := doRequest(r, "POST", "/api/payments", authToken(t, rider), body)
	requireStatus(t, w, 201)

	// Replaying the same (booking, amount) pair conflicts
	w = doRequest(r, "POST", "/api/payments", authToken(t, rider), body)
	requireStatus(t, w, 409)

	var count int64
	require.NoError(t, db.Model(&models.Payment{}).
		Where("booking_id = ?", booking.ID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)

	// A different amount is a different submission, not a replay
	body["amount"] = 5.0
	w = doRequest(r, "POST", "/api/payments", authToken(t, rider), body)
	requireStatus(t, w, 201)
}

func TestPaymentGuardDegradesWithoutRedis(t *testing.T) {
	services.RedisClient = nil

	db := setupDB(t)
	r := setupRouter(db)

	driver := createApprovedDriver(t, db, "driver1", 4)
	ride := createRide(t, db, driver.ID, 4, "10:00 AM")
	rider := createUser(t, db, "rider1", models.UserTypeRider)

	booking := seedBooking(t, db, rider.ID, ride.ID, models.BookingStatusConfirmed)

	body := payload{
		"bookingId": booking.ID,
		"amount":    10.0,
		"method":    "card",
	}

	// Without Redis the claim always succeeds; both submits are recorded
	w := doRequest(r, "POST", "/api/payments", authToken(t, rider), body)
	requireStatus(t, w, 201)
	w = doRequest(r, "POST", "/api/payments", authToken(t, rider), body)
	requireStatus(t, w, 201)

	var count int64
	require.NoError(t, db.Model(&models.Payment{}).
		Where("booking_id = ?", booking.ID).
		Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestPaymentMethodsLifecycle(t *testing.T) {
	db := setupDB(t)
	r := setupRouter(db)

	rider := createUser(t, db, "rider1", models.UserTypeRider)

	w := doRequest(r, "POST", "/api/payment-methods", authToken(t, rider), payload{
		"kind":      "card",
		"label":     "Personal Visa",
		"lastFour":  "4242",
		"isDefault": true,
	})
	requireStatus(t, w, 201)

	w = doRequest(r, "POST", "/api/payment-methods", authToken(t, rider), payload{
		"kind":  "mobile_money",
		"label": "Campus Wallet",
	})
	requireStatus(t, w, 201)

	w = doRequest(r, "GET", "/api/payment-methods", authToken(t, rider), nil)
	requireStatus(t, w, 200)
	body := decodeBody(t, w)
	require.Len(t, body["data"], 2)

	var second models.PaymentMethod
	require.NoError(t, db.Where("user_id = ? AND kind = ?", rider.ID, "mobile_money").First(&second).Error)

	// Switching the default clears the old one
	w = doRequest(r, "PATCH", fmt.Sprintf("/api/payment-methods/%d/default", second.ID), authToken(t, rider), nil)
	requireStatus(t, w, 200)

	var defaults int64
	require.NoError(t, db.Model(&models.PaymentMethod{}).
		Where("user_id = ? AND is_default = ?", rider.ID, true).
		Count(&defaults).Error)
	assert.Equal(t, int64(1), defaults)

	w = doRequest(r, "DELETE", fmt.Sprintf("/api/payment-methods/%d", second.ID), authToken(t, rider), nil)
	requireStatus(t, w, 200)

	// Other users cannot touch the remaining method
	other := createUser(t, db, "other", models.UserTypeRider)
	var first models.PaymentMethod
	require.NoError(t, db.Where("user_id = ?", rider.ID).First(&first).Error)
	w = doRequest(r, "DELETE", fmt.Sprintf("/api/payment-methods/%d", first.ID), authToken(t, other), nil)
	requireStatus(t, w, 403)
}
