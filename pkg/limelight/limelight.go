package limelight

import "fmt"

// Entry keys published or consumed by the camera firmware.
const (
	KeyValidTargets   = "tv"
	KeyHorizontalOff  = "tx"
	KeyVerticalOff    = "ty"
	KeyArea           = "ta"
	KeySkew           = "ts"
	KeyLatency        = "tl"
	KeyShortSide      = "tshort"
	KeyLongSide       = "tlong"
	KeyHorizontalSide = "thor"
	KeyVerticalSide   = "tvert"
	KeyActivePipeline = "getpipe"
	KeyCamTran        = "camtran"
	KeyLEDMode        = "ledMode"
	KeyCameraMode     = "camMode"
	KeyPipeline       = "pipeline"
	KeyStream         = "stream"
	KeySnapshot       = "snapshot"
	KeyCrosshairX     = "cx"
	KeyCrosshairY     = "cy"
)

// Inclusive bounds accepted by SetPipeline.
const (
	MinPipeline = 0
	MaxPipeline = 9
)

// Limelight reads and writes the documented entries of one camera table.
// It holds no state besides the table, so it is as safe for concurrent use as
// the Table it wraps.
type Limelight struct {
	table Table
}

// New wraps an already opened table.
func New(t Table) *Limelight {
	return &Limelight{table: t}
}

// Open acquires the named table, or DefaultTableName when name is empty.
func Open(o Opener, name string) (*Limelight, error) {
	if o == nil {
		return nil, fmt.Errorf("limelight: opener is nil")
	}
	if name == "" {
		name = DefaultTableName
	}
	t, err := o.Open(name)
	if err != nil {
		return nil, fmt.Errorf("limelight: open table %q: %w", name, err)
	}
	return New(t), nil
}

// GetNumber returns the value published under key, or 0 if there is none.
func (l *Limelight) GetNumber(key string) float64 {
	return l.table.GetNumber(key)
}

// SetNumber publishes value under key.
func (l *Limelight) SetNumber(key string, value float64) {
	l.table.SetNumber(key, value)
}

// HasValidTargets reports whether the camera currently sees any target.
func (l *Limelight) HasValidTargets() bool {
	return l.GetNumber(KeyValidTargets) == 1
}

// HorizontalOffset from crosshair to target, in degrees. Limelight 1 reports
// -27 to 27, Limelight 2 reports -29.8 to 29.8.
func (l *Limelight) HorizontalOffset() float64 {
	return l.GetNumber(KeyHorizontalOff)
}

// VerticalOffset from crosshair to target, in degrees. Limelight 1 reports
// -20.5 to 20.5, Limelight 2 reports -24.85 to 24.85.
func (l *Limelight) VerticalOffset() float64 {
	return l.GetNumber(KeyVerticalOff)
}

// TargetArea is the share of the image covered by the target, 0 to 100.
func (l *Limelight) TargetArea() float64 {
	return l.GetNumber(KeyArea)
}

// Skew is the target rotation, -90 to 0 degrees.
func (l *Limelight) Skew() float64 {
	return l.GetNumber(KeySkew)
}

// PipelineLatency is the pipeline's contribution in milliseconds. Add at
// least 11ms for image capture.
func (l *Limelight) PipelineLatency() float64 {
	return l.GetNumber(KeyLatency)
}

// ShortSideLength of the fitted bounding box, in pixels.
func (l *Limelight) ShortSideLength() float64 {
	return l.GetNumber(KeyShortSide)
}

// LongSideLength of the fitted bounding box, in pixels.
func (l *Limelight) LongSideLength() float64 {
	return l.GetNumber(KeyLongSide)
}

// HorizontalSideLength of the rough bounding box, 0 to 320 pixels.
func (l *Limelight) HorizontalSideLength() float64 {
	return l.GetNumber(KeyHorizontalSide)
}

// VerticalSideLength of the rough bounding box, 0 to 320 pixels.
func (l *Limelight) VerticalSideLength() float64 {
	return l.GetNumber(KeyVerticalSide)
}

// Pipe is the true active pipeline index, 0 to 9.
func (l *Limelight) Pipe() int {
	return int(l.GetNumber(KeyActivePipeline))
}

// CamTran returns the camtran entry of the 3D position solution.
func (l *Limelight) CamTran() float64 {
	return l.GetNumber(KeyCamTran)
}

// Snapshot reads every scalar entry once. Entries are read one by one, so the
// result is not an atomic view of the table.
func (l *Limelight) Snapshot() Targets {
	return Targets{
		Valid:                l.HasValidTargets(),
		HorizontalOffset:     l.HorizontalOffset(),
		VerticalOffset:       l.VerticalOffset(),
		Area:                 l.TargetArea(),
		Skew:                 l.Skew(),
		PipelineLatency:      l.PipelineLatency(),
		ShortSideLength:      l.ShortSideLength(),
		LongSideLength:       l.LongSideLength(),
		HorizontalSideLength: l.HorizontalSideLength(),
		VerticalSideLength:   l.VerticalSideLength(),
		Pipe:                 l.Pipe(),
		CamTran:              l.CamTran(),
	}
}

// SetLEDMode sets the LED state. Undeclared modes are ignored.
func (l *Limelight) SetLEDMode(mode LEDMode) {
	if !mode.Valid() {
		return
	}
	l.SetNumber(KeyLEDMode, float64(mode))
}

// SetCameraMode switches between vision processing and driver camera.
// Undeclared modes are ignored.
func (l *Limelight) SetCameraMode(mode CameraMode) {
	if !mode.Valid() {
		return
	}
	l.SetNumber(KeyCameraMode, float64(mode))
}

// SetPipeline selects pipeline 0 to 9. Nothing is written for other values.
func (l *Limelight) SetPipeline(pipeline int) error {
	if err := checkRange("pipeline", pipeline, MinPipeline, MaxPipeline); err != nil {
		return err
	}
	l.SetNumber(KeyPipeline, float64(pipeline))
	return nil
}

// SetStreamMode sets the streaming layout. Undeclared modes are ignored.
func (l *Limelight) SetStreamMode(mode StreamMode) {
	if !mode.Valid() {
		return
	}
	l.SetNumber(KeyStream, float64(mode))
}

// EnableSnapshots starts (two per second) or stops taking snapshots.
func (l *Limelight) EnableSnapshots(enabled bool) {
	var v float64
	if enabled {
		v = 1
	}
	l.SetNumber(KeySnapshot, v)
}
