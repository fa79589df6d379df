package corpus

import (
	"context"
	"math"
)

// StaticSource serves an in-memory corpus. Used by the demo mode and by
// tests; it never fails.
type StaticSource struct {
	SourceName string
	Samples    []Sample
}

func (s *StaticSource) Name() string {
	if s.SourceName != "" {
		return s.SourceName
	}
	return "static"
}

func (s *StaticSource) Load(_ context.Context, count int) ([]Sample, error) {
	if count < 0 {
		count = 0
	}
	if count > len(s.Samples) {
		count = len(s.Samples)
	}
	out := make([]Sample, count)
	for i := 0; i < count; i++ {
		out[i] = s.Samples[i]
		out[i].ID = i
	}
	return out, nil
}

// demoReferences are real ATC phraseology ground truths used when running
// without network or model dependencies.
var demoReferences = []string{
	"cleared for takeoff runway two seven",
	"descend and maintain four thousand",
}

// DemoSource builds the embedded demo corpus: each reference paired with a
// short synthesized tone standing in for radio audio.
func DemoSource() *StaticSource {
	samples := make([]Sample, len(demoReferences))
	for i, ref := range demoReferences {
		samples[i] = Sample{
			ID:         i,
			Audio:      sineWave(440.0+float64(i)*110.0, 16000, 0.5),
			SampleRate: 16000,
			Reference:  ref,
		}
	}
	return &StaticSource{SourceName: "static:demo", Samples: samples}
}

func sineWave(freq float64, sampleRate int, seconds float64) []float64 {
	n := int(float64(sampleRate) * seconds)
	wave := make([]float64, n)
	for i := range wave {
		wave[i] = 0.5 * math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate))
	}
	return wave
}
