package donation

// Minimum bounds for blood donation eligibility. Both are inclusive and there
// is no upper bound on either value.
const (
	MinAge      = 18
	MinWeightKg = 60.0
)

// Eligible reports whether a donor of the given age (years) and weight (kg)
// may donate blood.
func Eligible(age int, weightKg float64) bool {
	return age >= MinAge && weightKg >= MinWeightKg
}
