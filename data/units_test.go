package data

import "testing"

func TestMillimeterToMicrometer(t *testing.T) {
	cases := []struct {
		mm   Millimeter
		want Micrometer
	}{
		{0, 0},
		{1, 1000},
		{0.2, 200},
		{-1.5, -1500},
	}
	for _, c := range cases {
		if got := c.mm.ToMicrometer(); got != c.want {
			t.Errorf("Millimeter(%v).ToMicrometer() = %d, want %d", c.mm, got, c.want)
		}
	}
}

func TestMicrometerAbs(t *testing.T) {
	if got := Micrometer(-42).Abs(); got != 42 {
		t.Errorf("Abs(-42) = %d, want 42", got)
	}
	if got := Micrometer(42).Abs(); got != 42 {
		t.Errorf("Abs(42) = %d, want 42", got)
	}
}

func TestToRadians(t *testing.T) {
	if got := ToRadians(180); got < 3.14159 || got > 3.14160 {
		t.Errorf("ToRadians(180) = %v, want ~pi", got)
	}
	if got := ToRadians(0); got != 0 {
		t.Errorf("ToRadians(0) = %v, want 0", got)
	}
}
