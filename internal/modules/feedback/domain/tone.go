package domain

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	apperrors "lifeos/internal/platform/errors"
)

type Event string

const (
	EventSuccess Event = "success"
	EventLevelUp Event = "level-up"
	EventDelete  Event = "delete"
)

func Events() []Event { return []Event{EventSuccess, EventLevelUp, EventDelete} }

func ParseEvent(s string) (Event, error) {
	for _, e := range Events() {
		if string(e) == s {
			return e, nil
		}
	}
	return "", fmt.Errorf("%w: unknown sound %q", apperrors.ErrInvalidInput, s)
}

const (
	SampleRate = 22050
	peakGain   = 0.1
	floorGain  = 0.01
)

// voice is one oscillator: a frequency glide and a gain envelope over
// [offset, offset+length) seconds.
type voice struct {
	offset, length float64
	from, to       float64
	glide          float64 // seconds spent gliding from -> to
	linearFade     bool
}

func (v voice) sample(t float64, phase *float64) float64 {
	local := t - v.offset
	if local < 0 || local >= v.length {
		return 0
	}
	freq := v.to
	if v.glide > 0 && local < v.glide {
		freq = v.from * math.Pow(v.to/v.from, local/v.glide)
	}
	*phase += 2 * math.Pi * freq / SampleRate
	var gain float64
	if v.linearFade {
		gain = peakGain * (1 - local/v.length)
	} else {
		gain = peakGain * math.Pow(floorGain/peakGain, local/v.length)
	}
	return gain * math.Sin(*phase)
}

func voices(e Event) []voice {
	switch e {
	case EventSuccess:
		return []voice{{length: 0.5, from: 500, to: 1000, glide: 0.1}}
	case EventLevelUp:
		notes := []float64{440, 554, 659, 880}
		out := make([]voice, len(notes))
		for i, f := range notes {
			out[i] = voice{offset: float64(i) * 0.1, length: 0.5, from: f, to: f}
		}
		return out
	case EventDelete:
		return []voice{{length: 0.3, from: 150, to: 50, glide: 0.3, linearFade: true}}
	}
	return nil
}

// Duration is the length of the rendered cue in seconds.
func Duration(e Event) float64 {
	var end float64
	for _, v := range voices(e) {
		end = math.Max(end, v.offset+v.length)
	}
	return end
}

// Synthesize renders the cue for e as a 16-bit mono PCM WAV file.
func Synthesize(e Event) ([]byte, error) {
	vs := voices(e)
	if len(vs) == 0 {
		return nil, fmt.Errorf("%w: unknown sound %q", apperrors.ErrInvalidInput, e)
	}
	n := int(math.Round(Duration(e) * SampleRate))
	phases := make([]float64, len(vs))
	pcm := make([]int16, n)
	for i := range pcm {
		t := float64(i) / SampleRate
		var mix float64
		for j, v := range vs {
			mix += v.sample(t, &phases[j])
		}
		mix = math.Max(-1, math.Min(1, mix))
		pcm[i] = int16(mix * math.MaxInt16)
	}
	return encodeWAV(pcm), nil
}

func encodeWAV(pcm []int16) []byte {
	const (
		channels      = 1
		bitsPerSample = 16
	)
	dataSize := uint32(len(pcm) * 2)
	buf := &bytes.Buffer{}
	buf.Grow(44 + int(dataSize))
	buf.WriteString("RIFF")
	_ = binary.Write(buf, binary.LittleEndian, 36+dataSize)
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	_ = binary.Write(buf, binary.LittleEndian, struct {
		Size          uint32
		Format        uint16
		Channels      uint16
		SampleRate    uint32
		ByteRate      uint32
		BlockAlign    uint16
		BitsPerSample uint16
	}{16, 1, channels, SampleRate, SampleRate * channels * bitsPerSample / 8, channels * bitsPerSample / 8, bitsPerSample})
	buf.WriteString("data")
	_ = binary.Write(buf, binary.LittleEndian, dataSize)
	_ = binary.Write(buf, binary.LittleEndian, pcm)
	return buf.Bytes()
}
