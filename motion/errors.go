package motion

import "errors"

var (
	// ErrInvalidMaxSlides is returned when the slide iteration cap is not
	// strictly positive.
	ErrInvalidMaxSlides = errors.New("motion: max slides must be positive")

	// ErrInvalidMargin is returned for a non-positive safety margin.
	ErrInvalidMargin = errors.New("motion: safe margin must be positive")

	// ErrInvalidFloorAngle is returned for a floor angle outside [0, pi].
	ErrInvalidFloorAngle = errors.New("motion: floor max angle out of range")

	// ErrInvalidDelta is returned for a negative or non-finite time step.
	ErrInvalidDelta = errors.New("motion: delta must be a finite, non-negative duration")

	// ErrSlideIndex is returned when a slide collision is read past the
	// number of contacts recorded this frame.
	ErrSlideIndex = errors.New("motion: slide collision index out of range")

	// ErrDetached is returned when motion is resolved for a body that has no
	// simulation context to query.
	ErrDetached = errors.New("motion: body is not attached to a physics space")
)
