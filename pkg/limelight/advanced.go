package limelight

import (
	"fmt"
	"strconv"
)

const (
	maxContourIndex   = 2
	maxCrosshairIndex = 1
)

// Advanced exposes the raw, ungrouped contour entries and the calibrated
// crosshairs on top of the regular accessors.
type Advanced struct {
	*Limelight
}

// NewAdvanced wraps an already opened table.
func NewAdvanced(t Table) *Advanced {
	return &Advanced{Limelight: New(t)}
}

// OpenAdvanced acquires the named table, or DefaultTableName when name is empty.
func OpenAdvanced(o Opener, name string) (*Advanced, error) {
	base, err := Open(o, name)
	if err != nil {
		return nil, err
	}
	return &Advanced{Limelight: base}, nil
}

// RawScreenspaceX of contour i (0 to 2).
func (a *Advanced) RawScreenspaceX(i int) (float64, error) {
	return a.rawContour(KeyHorizontalOff, i)
}

// RawScreenspaceY of contour i (0 to 2).
func (a *Advanced) RawScreenspaceY(i int) (float64, error) {
	return a.rawContour(KeyVerticalOff, i)
}

// RawArea of contour i (0 to 2).
func (a *Advanced) RawArea(i int) (float64, error) {
	return a.rawContour(KeyArea, i)
}

// RawSkew of contour i (0 to 2).
func (a *Advanced) RawSkew(i int) (float64, error) {
	return a.rawContour(KeySkew, i)
}

// RawCrosshairX of crosshair i (0 or 1).
func (a *Advanced) RawCrosshairX(i int) (float64, error) {
	return a.rawCrosshair(KeyCrosshairX, i)
}

// RawCrosshairY of crosshair i (0 or 1).
func (a *Advanced) RawCrosshairY(i int) (float64, error) {
	return a.rawCrosshair(KeyCrosshairY, i)
}

func (a *Advanced) rawContour(prefix string, index int) (float64, error) {
	if err := checkRange(fmt.Sprintf("%s contour index", prefix), index, 0, maxContourIndex); err != nil {
		return 0, err
	}
	return a.GetNumber(prefix + strconv.Itoa(index)), nil
}

func (a *Advanced) rawCrosshair(prefix string, index int) (float64, error) {
	if err := checkRange(fmt.Sprintf("%s crosshair index", prefix), index, 0, maxCrosshairIndex); err != nil {
		return 0, err
	}
	return a.GetNumber(prefix + strconv.Itoa(index)), nil
}
