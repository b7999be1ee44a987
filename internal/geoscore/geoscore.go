package geoscore

import (
	"fmt"
	"math"
)

const (
	// MaxScore is awarded for guesses within PerfectRadiusKm of the target.
	MaxScore = 5000

	// PerfectRadiusKm is the distance under which a guess counts as perfect.
	PerfectRadiusKm = 1.0

	// ZeroScoreKm is the distance at and beyond which a guess scores nothing.
	ZeroScoreKm = 1000.0
)

// DistanceKm returns the Haversine great-circle distance (kilometers) between
// two WGS84 lat/lon points given in degrees. Earth is treated as a sphere of
// radius 6371 km.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	const R = 6371.0 // mean Earth radius (km)
	φ1 := lat1 * math.Pi / 180.0
	φ2 := lat2 * math.Pi / 180.0
	dφ := (lat2 - lat1) * math.Pi / 180.0
	dλ := (lon2 - lon1) * math.Pi / 180.0

	sinDφ := math.Sin(dφ / 2)
	sinDλ := math.Sin(dλ / 2)

	a := sinDφ*sinDφ + math.Cos(φ1)*math.Cos(φ2)*sinDλ*sinDλ
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return R * c
}

// Score converts a guess distance (kilometers) into an integer score in
// [0, MaxScore] using a logarithmic decay, so close guesses are rewarded
// much more steeply than a linear falloff would:
//   - d <= 1 km    -> 5000
//   - d >= 1000 km -> 0
//   - otherwise    round(5000 * (1 - log10(d)/log10(1000))^2.5)
//
// Monotonically non-increasing in distance.
func Score(distanceKm float64) int {
	if distanceKm >= ZeroScoreKm {
		return 0
	}
	if distanceKm <= PerfectRadiusKm {
		return MaxScore
	}

	normalized := math.Log10(distanceKm) / math.Log10(ZeroScoreKm)
	raw := MaxScore * math.Pow(1-normalized, 2.5)

	score := int(math.Round(raw))
	if score < 0 {
		return 0
	}
	if score > MaxScore {
		return MaxScore
	}
	return score
}

// Tier is a presentational bucket for a guess distance.
type Tier struct {
	Label       string `json:"label"`
	Description string `json:"description"`
}

// TierFor maps a distance (kilometers) to its display tier. Thresholds are
// contiguous and cover [0, +Inf).
func TierFor(distanceKm float64) Tier {
	switch {
	case distanceKm <= 0.1:
		return Tier{Label: "Perfect!", Description: "Incredible accuracy!"}
	case distanceKm <= 1:
		return Tier{Label: "Excellent", Description: "Outstanding guess!"}
	case distanceKm <= 5:
		return Tier{Label: "Great", Description: "Very close!"}
	case distanceKm <= 25:
		return Tier{Label: "Good", Description: "Nice try!"}
	case distanceKm <= 100:
		return Tier{Label: "Fair", Description: "Getting warmer..."}
	case distanceKm <= 500:
		return Tier{Label: "Poor", Description: "Not quite there"}
	default:
		return Tier{Label: "Miss", Description: "Better luck next time!"}
	}
}

// FormatDistance formats a distance in a human-readable way.
func FormatDistance(km float64) string {
	if km < 1 {
		return fmt.Sprintf("%.0fm", km*1000)
	}
	return fmt.Sprintf("%.2fkm", km)
}
