package dto

import (
	"encoding/base64"
	"time"

	"github.com/raceboard/backend/internal/lib/utils"
)

const (
	// LapTimeWidth is the fixed width lap times are padded to, so that
	// lexical order of "m:ss.ffff" strings matches numeric order.
	LapTimeWidth = 9

	// TiresPlaceholder replaces a missing tires name.
	TiresPlaceholder = "N/A"

	// DateLayout is the wire format of calendar dates.
	DateLayout = "2006-01-02"
)

// PadLapTime right-pads a lap time with '0' to LapTimeWidth.
// A nil lap time stays nil.
func PadLapTime(lapTime *string) *string {
	if lapTime == nil {
		return nil
	}
	padded := *lapTime
	if padded != "" {
		padded = utils.PadEnd(padded, LapTimeWidth, '0')
	}
	return &padded
}

// TiresName returns name, or TiresPlaceholder when it is nil or empty.
func TiresName(name *string) string {
	if name == nil || *name == "" {
		return TiresPlaceholder
	}
	return *name
}

// EncodeBinary renders bytes as standard base64. Empty input yields "".
func EncodeBinary(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return base64.StdEncoding.EncodeToString(b)
}

// DecodeBinary is the inverse of EncodeBinary.
func DecodeBinary(s string) ([]byte, error) {
	if s == "" {
		return nil, nil
	}
	return base64.StdEncoding.DecodeString(s)
}

// FormatDate renders a date as YYYY-MM-DD. Nil stays nil.
func FormatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(DateLayout)
	return &s
}

// ParseDate parses a YYYY-MM-DD date. Nil stays nil.
func ParseDate(s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// seconds renders a duration as whole seconds for the wire.
func seconds(d time.Duration) int {
	return int(d / time.Second)
}
