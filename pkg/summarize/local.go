package summarize

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/dtnitsch/smart-reader/pkg/analytics"
	"github.com/dtnitsch/smart-reader/pkg/mapreduce"
	"github.com/pemistahl/lingua-go"
)

// detectable are the languages the local backend tells apart. Only English
// gets stopword filtering.
var detectable = []lingua.Language{
	lingua.English,
	lingua.French,
	lingua.German,
	lingua.Spanish,
	lingua.Portuguese,
	lingua.Italian,
	lingua.Dutch,
}

// Local is an extractive summarizer: it scores sentences by the document
// frequency of their words and keeps the best ones in original order.
type Local struct {
	logger   *slog.Logger
	detector lingua.LanguageDetector
}

func NewLocal(logger *slog.Logger) *Local {
	if logger == nil {
		logger = slog.Default()
	}
	return &Local{
		logger:   logger,
		detector: lingua.NewLanguageDetectorBuilder().FromLanguages(detectable...).Build(),
	}
}

func (l *Local) Name() string  { return ModeLocal }
func (l *Local) Model() string { return "extractive" }

// English reports whether text is detected as English.
func (l *Local) English(text string) bool {
	lang, ok := l.detector.DetectLanguageOf(text)
	return ok && lang == lingua.English
}

type scored struct {
	idx   int
	score float64
	words int
}

func (l *Local) SummarizeOnce(ctx context.Context, text string, band Band, _ bool) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	sents := SplitSentences(strings.TrimSpace(text))
	if len(sents) == 0 {
		return "", nil
	}

	a := &analytics.Analytics{KeepStopwords: !l.English(text)}
	perSentence := mapreduce.MapAll(sents, a)
	totals := mapreduce.Reduce(perSentence)
	l.logger.Debug("Local summarizer keywords", "top", mapreduce.TopKeywords(totals, 5, 3), "stopwords", !a.KeepStopwords)

	ranked := make([]scored, len(sents))
	for i, counts := range perSentence {
		words := len(analytics.Tokens(sents[i]))
		var sum float64
		for w := range counts {
			sum += float64(totals[w])
		}
		score := 0.0
		if words > 0 {
			score = sum / float64(words)
		}
		ranked[i] = scored{idx: i, score: score, words: words}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })

	lo, hi := band.Words()
	picked := make([]bool, len(sents))
	total := 0
	for _, s := range ranked {
		if total >= lo {
			break
		}
		if total+s.words > hi && total > 0 {
			continue
		}
		picked[s.idx] = true
		total += s.words
	}

	var out []string
	for i, ok := range picked {
		if ok {
			out = append(out, strings.TrimSpace(sents[i]))
		}
	}
	summary := strings.Join(out, " ")
	if fields := strings.Fields(summary); len(fields) > hi {
		summary = strings.Join(fields[:hi], " ")
	}
	return summary, nil
}
