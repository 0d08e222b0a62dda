package sound

import (
	"encoding/binary"
	"math"

	"github.com/gopxl/beep"
)

// bytesPerFrame is 16-bit signed little-endian stereo, the layout
// Ebitengine's audio players expect.
const bytesPerFrame = 4

// Render drains a finite streamer into PCM bytes. maxFrames bounds runaway
// streams; 0 means no bound.
func Render(s beep.Streamer, maxFrames int) []byte {
	buf := make([][2]float64, 512)
	out := make([]byte, 0, 64*1024)
	frames := 0
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			if maxFrames > 0 && frames >= maxFrames {
				return out
			}
			out = binary.LittleEndian.AppendUint16(out, uint16(toInt16(buf[i][0])))
			out = binary.LittleEndian.AppendUint16(out, uint16(toInt16(buf[i][1])))
			frames++
		}
		if !ok {
			return out
		}
	}
}

func toInt16(v float64) int16 {
	v = math.Max(-1, math.Min(1, v))
	return int16(v * math.MaxInt16)
}

// Frames reports how many stereo frames a PCM buffer holds.
func Frames(pcm []byte) int {
	return len(pcm) / bytesPerFrame
}
