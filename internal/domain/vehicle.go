package domain

// Vehicle is a car registered by a driver.
type Vehicle struct {
	ID       string
	DriverID string
	Make     string
	Model    string
	Plate    string
	Seats    int
}
