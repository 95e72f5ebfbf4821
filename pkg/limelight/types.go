package limelight

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultTableName is the table the camera firmware publishes to unless its
// hostname was changed.
const DefaultTableName = "limelight"

// Table is the minimal capability the accessors need from the table store.
// Reads of an entry that was never published return 0.
type Table interface {
	GetNumber(key string) float64
	SetNumber(key string, value float64)
}

// Opener acquires a Table by name.
type Opener interface {
	Open(name string) (Table, error)
}

// ErrOutOfRange is returned when an index or pipeline number falls outside its
// documented inclusive bound.
var ErrOutOfRange = errors.New("limelight: value out of range")

// RangeError carries the offending value of a rejected argument.
type RangeError struct {
	Name  string
	Value int
	Min   int
	Max   int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("limelight: %s %d out of range, must be %d - %d", e.Name, e.Value, e.Min, e.Max)
}

// Unwrap allows errors.Is(err, ErrOutOfRange).
func (e *RangeError) Unwrap() error { return ErrOutOfRange }

func checkRange(name string, value, min, max int) error {
	if value < min || value > max {
		return &RangeError{Name: name, Value: value, Min: min, Max: max}
	}
	return nil
}

// LEDMode is the state of the camera's LED array.
type LEDMode int

const (
	LEDPipelineCurrent LEDMode = iota
	LEDForceOff
	LEDForceBlink
	LEDForceOn
)

var ledModeNames = []string{"pipeline", "off", "blink", "on"}

// Valid reports whether m is one of the declared LED modes.
func (m LEDMode) Valid() bool { return m >= LEDPipelineCurrent && m <= LEDForceOn }

func (m LEDMode) String() string {
	if !m.Valid() {
		return fmt.Sprintf("LEDMode(%d)", int(m))
	}
	return ledModeNames[m]
}

// ParseLEDMode accepts the names printed by String.
func ParseLEDMode(s string) (LEDMode, error) {
	idx, err := parseName("led mode", s, ledModeNames)
	return LEDMode(idx), err
}

// CameraMode selects between vision processing and a plain driver feed.
type CameraMode int

const (
	CameraVision CameraMode = iota
	CameraDriver
)

var cameraModeNames = []string{"vision", "driver"}

// Valid reports whether m is one of the declared camera modes.
func (m CameraMode) Valid() bool { return m == CameraVision || m == CameraDriver }

func (m CameraMode) String() string {
	if !m.Valid() {
		return fmt.Sprintf("CameraMode(%d)", int(m))
	}
	return cameraModeNames[m]
}

// ParseCameraMode accepts the names printed by String.
func ParseCameraMode(s string) (CameraMode, error) {
	idx, err := parseName("camera mode", s, cameraModeNames)
	return CameraMode(idx), err
}

// StreamMode controls how a secondary webcam stream is composed.
//
//   - StreamStandard: side-by-side streams.
//   - StreamPiPMain: secondary stream in the lower-right corner of the primary.
//   - StreamPiPSecondary: primary stream in the lower-right corner of the secondary.
type StreamMode int

const (
	StreamStandard StreamMode = iota
	StreamPiPMain
	StreamPiPSecondary
)

var streamModeNames = []string{"standard", "pip-main", "pip-secondary"}

// Valid reports whether m is one of the declared stream modes.
func (m StreamMode) Valid() bool { return m >= StreamStandard && m <= StreamPiPSecondary }

func (m StreamMode) String() string {
	if !m.Valid() {
		return fmt.Sprintf("StreamMode(%d)", int(m))
	}
	return streamModeNames[m]
}

// ParseStreamMode accepts the names printed by String.
func ParseStreamMode(s string) (StreamMode, error) {
	idx, err := parseName("stream mode", s, streamModeNames)
	return StreamMode(idx), err
}

func parseName(kind, s string, names []string) (int, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for i, name := range names {
		if name == needle {
			return i, nil
		}
	}
	return -1, fmt.Errorf("limelight: unknown %s %q (valid: %s)", kind, s, strings.Join(names, ", "))
}

// Targets is a point-in-time read of every scalar entry.
type Targets struct {
	Valid                bool    `json:"valid"`
	HorizontalOffset     float64 `json:"tx"`
	VerticalOffset       float64 `json:"ty"`
	Area                 float64 `json:"ta"`
	Skew                 float64 `json:"ts"`
	PipelineLatency      float64 `json:"tl"`
	ShortSideLength      float64 `json:"tshort"`
	LongSideLength       float64 `json:"tlong"`
	HorizontalSideLength float64 `json:"thor"`
	VerticalSideLength   float64 `json:"tvert"`
	Pipe                 int     `json:"getpipe"`
	CamTran              float64 `json:"camtran"`
}
