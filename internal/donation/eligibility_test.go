package donation

import "testing"

func TestEligible(t *testing.T) {
	cases := []struct {
		name   string
		age    int
		weight float64
		want   bool
	}{
		{"both at boundary", 18, 60, true},
		{"well above", 45, 82.5, true},
		{"age below boundary", 17, 60, false},
		{"weight just below boundary", 18, 59.9, false},
		{"both below", 16, 50, false},
		{"age high no upper bound", 120, 60, true},
		{"weight high no upper bound", 18, 200, true},
		{"zero values", 0, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Eligible(tc.age, tc.weight); got != tc.want {
				t.Fatalf("Eligible(%d, %v) = %v, want %v", tc.age, tc.weight, got, tc.want)
			}
		})
	}
}
