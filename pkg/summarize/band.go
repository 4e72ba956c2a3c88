package summarize

import "math"

// Band is a summary length range in model tokens.
type Band struct {
	Min, Max int
}

// Ratio limits and the default.
const (
	DefaultRatio = 0.10
	MinRatio     = 0.05
	MaxRatio     = 0.30
)

// tokensPerWord approximates English BPE tokenization.
const tokensPerWord = 1.35

// TargetBand maps a fraction of the input word count to a token band the
// models handle well.
func TargetBand(totalWords int, ratio float64) Band {
	ratio = math.Max(MinRatio, math.Min(ratio, MaxRatio))
	targetWords := max(50, int(math.RoundToEven(float64(totalWords)*ratio)))
	targetTokens := int(math.RoundToEven(float64(targetWords) * tokensPerWord))
	lo := max(48, int(float64(targetTokens)*0.9))
	hi := min(256, max(int(float64(targetTokens)*1.1), lo+12))
	return Band{Min: lo, Max: hi}
}

// IntermediateBand is used for per-chunk summaries, where coverage matters
// more than length.
func IntermediateBand() Band {
	return Band{Min: 80, Max: 140}
}

// Bounded clamps Max to [48, 256] and Min to [24, Max-12].
func (b Band) Bounded() Band {
	hi := max(48, min(b.Max, 256))
	lo := max(24, min(b.Min, hi-12))
	return Band{Min: lo, Max: hi}
}

// Words converts the band to an approximate word range.
func (b Band) Words() (lo, hi int) {
	return int(float64(b.Min) / tokensPerWord), int(math.Ceil(float64(b.Max) / tokensPerWord))
}
