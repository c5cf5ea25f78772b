package types

import (
	"fmt"
	"strings"
	"time"
)

// AudioProperties are the read-only stream properties an adapter reports.
// Values come straight from the decoder; zero means unknown.
type AudioProperties struct {
	Length     time.Duration
	Bitrate    int // kb/s
	SampleRate int // Hz
	Channels   int
}

// LengthSeconds returns Length truncated to whole seconds.
func (a AudioProperties) LengthSeconds() int {
	return int(a.Length / time.Second)
}

// String returns a summary such as "3:25 44.1kHz stereo 320kbps".
func (a AudioProperties) String() string {
	parts := []string{formatLength(a.Length)}
	if a.SampleRate > 0 {
		parts = append(parts, fmt.Sprintf("%.1fkHz", float64(a.SampleRate)/1000))
	}
	if ch := channelDescription(a.Channels); ch != "" {
		parts = append(parts, ch)
	}
	if a.Bitrate > 0 {
		parts = append(parts, fmt.Sprintf("%dkbps", a.Bitrate))
	}
	return strings.Join(parts, " ")
}

func formatLength(d time.Duration) string {
	total := int(d / time.Second)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// channelDescription returns a human-readable channel description.
func channelDescription(channels int) string {
	switch channels {
	case 0:
		return ""
	case 1:
		return "mono"
	case 2:
		return "stereo"
	case 4:
		return "quad"
	case 6:
		return "5.1"
	case 8:
		return "7.1"
	default:
		return fmt.Sprintf("%dch", channels)
	}
}
