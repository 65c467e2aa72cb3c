package bootstrap

import "github.com/Mokshithanaidu/goreservee/internal/core/domain"

// SampleFleet returns the transports the system is seeded with on every
// start. Persisted seat availability is applied on top of this fleet;
// persisted state for unknown transport ids is dropped.
func SampleFleet() []*domain.Transport {
	return []*domain.Transport{
		domain.NewBus("BUS001", "Mumbai", "Pune", 40, 500.0, "AC"),
		domain.NewBus("BUS002", "Delhi", "Jaipur", 35, 600.0, "Sleeper"),
		domain.NewBus("BUS003", "Bangalore", "Chennai", 45, 550.0, "Non-AC"),
		domain.NewTrain("TRN001", "Mumbai", "Delhi", 72, 800.0, "3A"),
		domain.NewTrain("TRN002", "Kolkata", "Chennai", 80, 900.0, "2A"),
		domain.NewTrain("TRN003", "Bangalore", "Hyderabad", 60, 700.0, "SL"),
	}
}
