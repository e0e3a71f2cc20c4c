package enrich

import (
	"github.com/rotisserie/eris"
)

// Geometry generation modes for the places enricher.
const (
	DispatchTime     = "TIME"     // isochrone
	DispatchDistance = "DISTANCE" // isoline
	DispatchRadius   = "RADIUS"   // buffer
)

// Locomotion modes. Only meaningful when the dispatch type is TIME.
const (
	LocomotionWalk = "WALK"
	LocomotionCar  = "CAR"
)

// Displacement directions relative to the point.
const (
	DirectionIn  = "IN"
	DirectionOut = "OUT"
)

// Params holds the enrichment parameters shared by every record in a run.
type Params struct {
	// DispatchType selects how the places-enricher geometry is generated:
	// TIME, DISTANCE or RADIUS.
	DispatchType string

	// Locomotion is WALK or CAR; only used when DispatchType is TIME.
	Locomotion string

	// Direction is IN or OUT, relative to the point.
	Direction string

	// Value parameterizes the geometry: minutes for TIME, meters for
	// DISTANCE, radius for RADIUS.
	Value float64

	// Radius in meters for the x-ray enrichers (consumption potential and
	// sociodemography).
	Radius float64

	// Categories lists the consumption-potential category identifiers.
	Categories []string
}

// DefaultParams returns the parameter set used when nothing is overridden.
func DefaultParams() Params {
	return Params{
		DispatchType: DispatchTime,
		Locomotion:   LocomotionWalk,
		Direction:    DirectionOut,
		Value:        5,
		Radius:       100,
		Categories: []string{
			"pacote_de_telefone_tv_e_internet",
			"telefone_celular",
			"telefone_fixo",
		},
	}
}

// Validate checks the enum-valued fields.
func (p Params) Validate() error {
	switch p.DispatchType {
	case DispatchTime, DispatchDistance, DispatchRadius:
	default:
		return eris.Errorf("enrich: invalid dispatch type %q (want TIME, DISTANCE or RADIUS)", p.DispatchType)
	}

	switch p.Locomotion {
	case LocomotionWalk, LocomotionCar:
	default:
		return eris.Errorf("enrich: invalid locomotion %q (want WALK or CAR)", p.Locomotion)
	}

	switch p.Direction {
	case DirectionIn, DirectionOut:
	default:
		return eris.Errorf("enrich: invalid direction %q (want IN or OUT)", p.Direction)
	}

	if p.Value <= 0 {
		return eris.Errorf("enrich: geometry value must be positive, got %v", p.Value)
	}
	if p.Radius <= 0 {
		return eris.Errorf("enrich: radius must be positive, got %v", p.Radius)
	}
	if len(p.Categories) == 0 {
		return eris.New("enrich: at least one consumption-potential category is required")
	}

	return nil
}
