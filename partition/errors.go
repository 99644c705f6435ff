package partition

import "errors"

var (
	// ErrDuplicateShot is returned by PlaceShot when the cell already holds a shot.
	ErrDuplicateShot = errors.New("duplicate shot")
	// ErrEmptyPartition is returned by LargestRegion when no region remains.
	ErrEmptyPartition = errors.New("partition has no regions")
	// ErrInvalidDimensions is returned by New for a non-positive width or height.
	ErrInvalidDimensions = errors.New("grid dimensions must be positive")
)
