package score

import "math"

func logNat(x float64) float64 { return math.Log(x) }
