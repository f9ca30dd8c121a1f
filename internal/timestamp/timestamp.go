// Package timestamp converts CUE MM:SS:FF timestamps to durations.
package timestamp

import (
	"fmt"
	"strconv"
	"time"

	"github.com/simonhull/cuesheet/internal/types"
)

// FramesPerSecond is the number of CD frames (sectors) in one second.
const FramesPerSecond = 75

// ParseFrames parses an MM:SS:FF timestamp into a frame count.
//
// The input must be exactly two ASCII digits per field separated by ':'.
// Minutes and seconds are taken as written, so 99:99:99 is accepted.
func ParseFrames(s string) (int64, error) {
	if len(s) != 8 ||
		!isDigit(s[0]) || !isDigit(s[1]) ||
		s[2] != ':' ||
		!isDigit(s[3]) || !isDigit(s[4]) ||
		s[5] != ':' ||
		!isDigit(s[6]) || !isDigit(s[7]) {
		return 0, types.NewParseError(fmt.Sprintf("invalid timestamp %q: want MM:SS:FF", s))
	}

	mm, err := strconv.ParseInt(s[0:2], 10, 64)
	if err != nil {
		return 0, types.NewParseError(fmt.Sprintf("invalid timestamp: %v", err))
	}
	ss, err := strconv.ParseInt(s[3:5], 10, 64)
	if err != nil {
		return 0, types.NewParseError(fmt.Sprintf("invalid timestamp: %v", err))
	}
	ff, err := strconv.ParseInt(s[6:8], 10, 64)
	if err != nil {
		return 0, types.NewParseError(fmt.Sprintf("invalid timestamp: %v", err))
	}

	return (mm*60+ss)*FramesPerSecond + ff, nil
}

// Parse parses an MM:SS:FF timestamp into a duration.
//
// The whole seconds are minutes*60 + seconds + frames/75; the remaining
// frames become nanoseconds, truncated.
func Parse(s string) (time.Duration, error) {
	frames, err := ParseFrames(s)
	if err != nil {
		return 0, err
	}
	return FramesToDuration(frames), nil
}

// FramesToDuration converts a frame count to a duration, truncating to the
// nanosecond.
func FramesToDuration(frames int64) time.Duration {
	secs := frames / FramesPerSecond
	nanos := (frames % FramesPerSecond) * int64(time.Second) / FramesPerSecond
	return time.Duration(secs)*time.Second + time.Duration(nanos)
}

// DurationToFrames converts a duration to whole frames, rounding down.
func DurationToFrames(d time.Duration) int64 {
	if d < 0 {
		return 0
	}
	secs := int64(d / time.Second)
	rem := int64(d % time.Second)
	// FramesToDuration truncates; padding by FramesPerSecond-1 recovers the
	// exact frame count from a truncated value.
	return secs*FramesPerSecond + (rem*FramesPerSecond+FramesPerSecond-1)/int64(time.Second)
}

// Format renders a duration as MM:SS:FF for display.
//
// Minutes grow past two digits for long durations. This is not guaranteed
// to round-trip through Parse for out-of-range input such as 99:99:99.
func Format(d time.Duration) string {
	frames := DurationToFrames(d)
	ff := frames % FramesPerSecond
	total := frames / FramesPerSecond
	return fmt.Sprintf("%02d:%02d:%02d", total/60, total%60, ff)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
