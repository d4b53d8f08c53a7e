package domain

import "time"

// AgreementStatus represents the current status of an agreement.
type AgreementStatus string

const (
	AgreementStatusPending  AgreementStatus = "pending"
	AgreementStatusAccepted AgreementStatus = "accepted"
	AgreementStatusRejected AgreementStatus = "rejected"
)

// Agreement is a confirmation between a passenger and a driver for a ride.
// Either party may resolve it; the row does not record which one did.
type Agreement struct {
	ID          string
	PassengerID string
	DriverID    string
	RideID      string
	Status      AgreementStatus
	CreatedAt   time.Time
}

// Involves reports whether userID is the passenger or the driver.
func (a *Agreement) Involves(userID string) bool {
	return userID != "" && (a.PassengerID == userID || a.DriverID == userID)
}
