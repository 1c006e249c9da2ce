package vector_math

import "math"

// ToRad is a helper function to turn degree to radians
func ToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// NormalizeAngle folds an angle in radians into (-Pi, Pi].
func NormalizeAngle(rad float64) float64 {
	r := math.Mod(rad, 2*math.Pi)
	if r > math.Pi {
		r -= 2 * math.Pi
	} else if r <= -math.Pi {
		r += 2 * math.Pi
	}
	return r
}
