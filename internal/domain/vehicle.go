package domain

// VehicleProfile describes the cost assumptions and routing constraints for
// one vehicle class. The profile is communicated to the optimizer as context;
// none of the constraints are enforced algorithmically here.
type VehicleProfile struct {
	Label              string
	FuelLitersPer100Km float64
	TollRatePerKm      float64
	Constraints        string
}

var vehicleProfiles = []VehicleProfile{
	{
		Label:              "motorbike",
		FuelLitersPer100Km: 2.5,
		TollRatePerKm:      0,
		Constraints:        "can use alleys and narrow streets, exempt from road tolls",
	},
	{
		Label:              "van",
		FuelLitersPer100Km: 9,
		TollRatePerKm:      1500,
		Constraints:        "restricted from inner-city streets during rush hours",
	},
	{
		Label:              "truck",
		FuelLitersPer100Km: 16,
		TollRatePerKm:      3000,
		Constraints:        "must stay on truck-permitted roads, higher toll class",
	},
}

// ProfileByLabel resolves a vehicle profile by its label.
func ProfileByLabel(label string) (VehicleProfile, bool) {
	for _, p := range vehicleProfiles {
		if p.Label == label {
			return p, true
		}
	}
	return VehicleProfile{}, false
}

// DefaultProfile is used when no vehicle was selected.
func DefaultProfile() VehicleProfile { return vehicleProfiles[0] }

// VehicleProfiles returns the catalogue of selectable profiles.
func VehicleProfiles() []VehicleProfile {
	out := make([]VehicleProfile, len(vehicleProfiles))
	copy(out, vehicleProfiles)
	return out
}
