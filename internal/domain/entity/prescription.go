package entity

import (
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Optica-api/internal/domain"
)

// EyeRx graduación de un ojo.
type EyeRx struct {
	Sphere   decimal.Decimal `json:"sphere"`
	Cylinder decimal.Decimal `json:"cylinder"`
	Axis     int             `json:"axis"` // 0..180
	Add      decimal.Decimal `json:"add"`
}

// Prescription receta óptica adjunta a una línea de venta (se persiste como JSON).
type Prescription struct {
	Right             EyeRx           `json:"right"`
	Left              EyeRx           `json:"left"`
	PupillaryDistance decimal.Decimal `json:"pupillary_distance"`
	Notes             string          `json:"notes,omitempty"`
}

var (
	maxSphere   = decimal.NewFromInt(30)
	maxCylinder = decimal.NewFromInt(10)
	maxAdd      = decimal.NewFromInt(4)
)

// Validate rangos clínicos razonables de la receta.
func (p *Prescription) Validate() (v domain.Violations) {
	checkEye := func(prefix string, e EyeRx) {
		if e.Sphere.Abs().GreaterThan(maxSphere) {
			v.Add(prefix+".sphere", "fuera de rango (±30)")
		}
		if e.Cylinder.Abs().GreaterThan(maxCylinder) {
			v.Add(prefix+".cylinder", "fuera de rango (±10)")
		}
		if e.Axis < 0 || e.Axis > 180 {
			v.Add(prefix+".axis", "debe estar entre 0 y 180")
		}
		if e.Add.IsNegative() || e.Add.GreaterThan(maxAdd) {
			v.Add(prefix+".add", "debe estar entre 0 y 4")
		}
	}
	checkEye("right", p.Right)
	checkEye("left", p.Left)
	if p.PupillaryDistance.IsNegative() {
		v.Add("pupillary_distance", "no puede ser negativa")
	}
	return v
}
