package mpeg

import (
	"encoding/binary"
	"fmt"
	"io"
	"time"

	binutil "github.com/simonhull/tagbridge/internal/binary"
	"github.com/simonhull/tagbridge/internal/types"
)

// Layer III bitrate tables in kb/s, indexed by the header's bitrate index.
var (
	bitrateTableV1 = []int{0, 32, 40, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320, 0}
	bitrateTableV2 = []int{0, 8, 16, 24, 32, 40, 48, 56, 64, 80, 96, 112, 128, 144, 160, 0}
)

// MPEG1 sample rates in Hz. MPEG2 halves them and MPEG2.5 quarters them.
var sampleRateTable = []int{44100, 48000, 32000, 0}

// How far past the tag to look for the first frame.
const frameSearchWindow = 64 * 1024

// frameHeader is a decoded Layer III frame header.
type frameHeader struct {
	version    uint32 // 3 = MPEG1, 2 = MPEG2, 0 = MPEG2.5
	bitrate    int    // kb/s
	sampleRate int
	channels   int
}

func (h frameHeader) samplesPerFrame() int {
	if h.version == 3 {
		return 1152
	}
	return 576
}

// sideInfoSize is the distance from the end of the frame header to where
// a Xing/Info header would start.
func (h frameHeader) sideInfoSize() int64 {
	switch {
	case h.version == 3 && h.channels == 1:
		return 17
	case h.version == 3:
		return 32
	case h.channels == 1:
		return 9
	default:
		return 17
	}
}

// readAudioProperties derives stream properties from the first MPEG frame
// and, if present, its Xing/Info or VBRI header.
func readAudioProperties(r io.ReaderAt, size int64, path string) (types.AudioProperties, error) {
	sr := binutil.NewSafeReader(r, size, path)
	tagSize, _ := binutil.ID3v2Size(sr)

	limit := min(size-4, tagSize+frameSearchWindow)
	for offset := tagSize; offset < limit; offset++ {
		raw, err := binutil.Read[uint32](sr, offset, "MPEG frame header")
		if err != nil {
			break
		}
		h, ok := parseFrameHeader(raw)
		if !ok {
			continue
		}

		props := types.AudioProperties{
			Bitrate:    h.bitrate,
			SampleRate: h.sampleRate,
			Channels:   h.channels,
		}
		audioSize := size - offset
		if frames, ok := vbrFrameCount(sr, offset, h); ok && frames > 0 {
			props.Length = framesDuration(frames, h)
			if seconds := props.Length.Seconds(); seconds > 0 {
				props.Bitrate = int(float64(audioSize) * 8 / seconds / 1000)
			}
		} else {
			props.Length = time.Duration(float64(audioSize*8) / float64(h.bitrate*1000) * float64(time.Second))
		}
		return props, nil
	}

	return types.AudioProperties{}, fmt.Errorf("%s: no valid MPEG frame found", path)
}

// parseFrameHeader validates a Layer III frame header.
func parseFrameHeader(header uint32) (frameHeader, bool) {
	if header&0xFFE00000 != 0xFFE00000 {
		return frameHeader{}, false
	}

	version := (header >> 19) & 0x3
	layer := (header >> 17) & 0x3
	if version == 1 || layer != 1 {
		return frameHeader{}, false
	}

	bitrateIdx := (header >> 12) & 0xF
	sampleRateIdx := (header >> 10) & 0x3

	h := frameHeader{version: version}
	if version == 3 {
		h.bitrate = bitrateTableV1[bitrateIdx]
	} else {
		h.bitrate = bitrateTableV2[bitrateIdx]
	}
	h.sampleRate = sampleRateTable[sampleRateIdx]
	switch version {
	case 2:
		h.sampleRate /= 2
	case 0:
		h.sampleRate /= 4
	}
	if h.bitrate == 0 || h.sampleRate == 0 {
		return frameHeader{}, false
	}

	if (header>>6)&0x3 == 3 {
		h.channels = 1
	} else {
		h.channels = 2
	}
	return h, true
}

// vbrFrameCount reads the frame count from a Xing/Info or VBRI header.
func vbrFrameCount(sr *binutil.SafeReader, frameOffset int64, h frameHeader) (uint32, bool) {
	xingOffset := frameOffset + 4 + h.sideInfoSize()
	if buf, err := sr.Bytes(xingOffset, 12, "Xing header"); err == nil {
		if tag := string(buf[0:4]); tag == "Xing" || tag == "Info" {
			flags := binary.BigEndian.Uint32(buf[4:8])
			if flags&0x0001 != 0 {
				return binary.BigEndian.Uint32(buf[8:12]), true
			}
			return 0, false
		}
	}

	// VBRI always sits 32 bytes after the frame header.
	if buf, err := sr.Bytes(frameOffset+36, 18, "VBRI header"); err == nil && string(buf[0:4]) == "VBRI" {
		return binary.BigEndian.Uint32(buf[14:18]), true
	}
	return 0, false
}

func framesDuration(frames uint32, h frameHeader) time.Duration {
	totalSamples := uint64(frames) * uint64(h.samplesPerFrame())
	return time.Duration(float64(totalSamples) / float64(h.sampleRate) * float64(time.Second))
}
