package nhtsa

import "strings"

// Vehicle type categories reported by vPIC that get a friendlier name.
const (
	categoryTruck = "TRUCK"
	categoryMPV   = "MULTIPURPOSE PASSENGER VEHICLE (MPV)"
)

// VehicleType derives a display category from the raw BodyClass and
// VehicleType values. Categories without a rule are returned unchanged.
func VehicleType(bodyClass, vehicleType string) string {
	switch vehicleType {
	case categoryTruck:
		if strings.Contains(bodyClass, "Van") {
			return "Van"
		}
		return "Truck"
	case categoryMPV:
		if strings.Contains(bodyClass, "Sport Utility Vehicle (SUV)") {
			return "SUV"
		}
	}
	return vehicleType
}
