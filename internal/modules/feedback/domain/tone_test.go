package domain_test

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"lifeos/internal/modules/feedback/domain"
	apperrors "lifeos/internal/platform/errors"
)

func TestSynthesizeWritesPCMHeader(t *testing.T) {
	t.Parallel()
	for _, e := range domain.Events() {
		wav, err := domain.Synthesize(e)
		require.NoError(t, err, e)
		require.Equal(t, "RIFF", string(wav[0:4]))
		require.Equal(t, "WAVE", string(wav[8:12]))
		require.Equal(t, uint16(1), binary.LittleEndian.Uint16(wav[20:22]), "PCM")
		require.Equal(t, uint16(1), binary.LittleEndian.Uint16(wav[22:24]), "mono")
		require.Equal(t, uint32(domain.SampleRate), binary.LittleEndian.Uint32(wav[24:28]))
		require.Equal(t, uint16(16), binary.LittleEndian.Uint16(wav[34:36]))

		samples := int(math.Round(domain.Duration(e) * domain.SampleRate))
		require.Equal(t, uint32(samples*2), binary.LittleEndian.Uint32(wav[40:44]))
		require.Len(t, wav, 44+samples*2)
	}
}

func TestDurations(t *testing.T) {
	t.Parallel()
	require.InDelta(t, 0.5, domain.Duration(domain.EventSuccess), 1e-9)
	require.InDelta(t, 0.8, domain.Duration(domain.EventLevelUp), 1e-9)
	require.InDelta(t, 0.3, domain.Duration(domain.EventDelete), 1e-9)
}

func TestDeleteFadesToSilence(t *testing.T) {
	t.Parallel()
	wav, err := domain.Synthesize(domain.EventDelete)
	require.NoError(t, err)
	pcm := wav[44:]
	peak := func(from, to int) int {
		m := 0
		for i := from; i < to; i += 2 {
			v := int(int16(binary.LittleEndian.Uint16(pcm[i:])))
			if v < 0 {
				v = -v
			}
			m = max(m, v)
		}
		return m
	}
	head, tail := peak(0, 2000), peak(len(pcm)-200, len(pcm))
	require.Greater(t, head, 1000)
	require.Less(t, tail, head/10)
}

func TestUnknownEvent(t *testing.T) {
	t.Parallel()
	_, err := domain.ParseEvent("fanfare")
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)
	_, err = domain.Synthesize("fanfare")
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestAppendTranscript(t *testing.T) {
	t.Parallel()
	require.Equal(t, "buy milk", domain.AppendTranscript("", " buy milk "))
	require.Equal(t, "call mom buy milk", domain.AppendTranscript("call mom ", "buy milk"))
	require.Equal(t, "call mom", domain.AppendTranscript("call mom", "   "))
}
