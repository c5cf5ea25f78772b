package flac

import (
	"fmt"
	"time"

	"github.com/simonhull/tagbridge/internal/types"
)

const streamInfoLength = 34

// parseStreamInfo extracts audio properties from a STREAMINFO block body.
// fileSize is used for the average bitrate, since FLAC has no nominal one.
func parseStreamInfo(data []byte, fileSize int64) (types.AudioProperties, error) {
	if len(data) != streamInfoLength {
		return types.AudioProperties{}, fmt.Errorf("invalid STREAMINFO size: %d (expected %d)", len(data), streamInfoLength)
	}

	// Bytes 10-17: sample rate (20 bits), channels-1 (3 bits),
	// bits per sample-1 (5 bits), total samples (36 bits).
	packed := uint64(data[10])<<56 | uint64(data[11])<<48 | uint64(data[12])<<40 | uint64(data[13])<<32 |
		uint64(data[14])<<24 | uint64(data[15])<<16 | uint64(data[16])<<8 | uint64(data[17])

	sampleRate := (packed >> 44) & 0xFFFFF
	channels := ((packed >> 41) & 0x7) + 1
	totalSamples := packed & 0xFFFFFFFFF

	props := types.AudioProperties{
		SampleRate: int(sampleRate),
		Channels:   int(channels),
	}
	if sampleRate > 0 {
		props.Length = time.Duration(float64(totalSamples) / float64(sampleRate) * float64(time.Second))
	}
	if seconds := props.Length.Seconds(); seconds > 0 {
		props.Bitrate = int(float64(fileSize) * 8 / seconds / 1000)
	}
	return props, nil
}
