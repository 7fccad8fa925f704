package parcel

import (
	"math"
	"strings"

	"pickdrop/internal/pkg/errs"
)

// Dimensions in centimetres. A zero side means "not provided"; any side may be
// omitted on its own.
type Dimensions struct {
	LengthCm float64 `json:"lengthCm"`
	WidthCm  float64 `json:"widthCm"`
	HeightCm float64 `json:"heightCm"`
}

// IsComplete reports whether all three sides are provided.
func (d Dimensions) IsComplete() bool {
	return d.LengthCm > 0 && d.WidthCm > 0 && d.HeightCm > 0
}

// VolumeCm3 is 0 unless the dimensions are complete.
func (d Dimensions) VolumeCm3() float64 {
	if !d.IsComplete() {
		return 0
	}
	return d.LengthCm * d.WidthCm * d.HeightCm
}

// PackageSpec is the sender's description of a parcel. DeclaredValue is in the
// smallest currency unit.
type PackageSpec struct {
	WeightKg      float64    `json:"weightKg"`
	Dimensions    Dimensions `json:"dimensions"`
	Fragile       bool       `json:"fragile"`
	Perishable    bool       `json:"perishable"`
	LiquidContent bool       `json:"liquidContent"`
	DeclaredValue int64      `json:"declaredValue"`
	Insured       bool       `json:"insured"`
	Designation   string     `json:"designation"`
}

// Validate checks the invariants required to leave the draft step and lists every
// failing field.
func (p PackageSpec) Validate() error {
	failed := errs.NewValidationFailedError()

	switch {
	case math.IsNaN(p.WeightKg) || math.IsInf(p.WeightKg, 0):
		failed.Add("weight", "must be a finite number")
	case p.WeightKg <= 0:
		failed.Add("weight", "must be greater than 0")
	}

	sides := []struct {
		field string
		value float64
	}{
		{"dimensions.length", p.Dimensions.LengthCm},
		{"dimensions.width", p.Dimensions.WidthCm},
		{"dimensions.height", p.Dimensions.HeightCm},
	}
	for _, s := range sides {
		if math.IsNaN(s.value) || math.IsInf(s.value, 0) || s.value < 0 {
			failed.Add(s.field, "must be a non-negative finite number")
		}
	}

	switch {
	case p.DeclaredValue < 0:
		failed.Add("declaredValue", "must not be negative")
	case p.Insured && p.DeclaredValue == 0:
		failed.Add("declaredValue", "is required when the parcel is insured")
	}

	return failed.OrNil()
}

// Normalized trims the designation. Everything else is kept as entered.
func (p PackageSpec) Normalized() PackageSpec {
	p.Designation = strings.TrimSpace(p.Designation)
	return p
}
