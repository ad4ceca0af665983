package decode

import "github.com/zedbridge/gnssgateway/internal/events"

// fixLabel computes the human-readable fix label from (fixType, diffSoln,
// carrSoln) per the priority-ordered table in spec.md §4.3: first match
// wins, and the table is a total function over the full cross product of
// fixType ∈ {0..5}, diffSoln ∈ {false,true}, carrSoln ∈ {0,1,2}.
func fixLabel(fixType events.FixType, diffSoln bool, carrSoln events.CarrierSolution) string {
	switch {
	case fixType == events.FixNoFix:
		return "No Fix"
	case carrSoln == events.CarrierFixed && fixType == events.Fix2D:
		return "RTK Fix 2D"
	case carrSoln == events.CarrierFixed:
		return "RTK Fix"
	case carrSoln == events.CarrierFloat && fixType == events.Fix2D:
		return "RTK Float 2D"
	case carrSoln == events.CarrierFloat:
		return "RTK Float"
	case diffSoln && fixType == events.Fix2D:
		return "DGPS 2D"
	case diffSoln:
		return "DGPS"
	case fixType == events.Fix2D:
		return "Single 2D"
	case fixType == events.Fix3D:
		return "Single 3D"
	case fixType == events.FixDeadReckoning:
		return "Dead Reckoning"
	case fixType == events.FixGnssDR:
		return "GNSS+DR"
	case fixType == events.FixTimeOnly:
		return "Time Only"
	default:
		return "Unknown"
	}
}
