package melody

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/RyanBlaney/melos-sonar/logging"
)

// CountMethod selects which n-gram lengths are counted: CountAll for every
// length from 1 up to each sequence's length, or a fixed positive length.
type CountMethod int

// CountAll counts n-grams of every length.
const CountAll CountMethod = 0

// ParseCountMethod parses the configuration surface for a count method:
// the literal "all" or a positive integer.
func ParseCountMethod(s string) (CountMethod, error) {
	if s == "all" {
		return CountAll, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("melody: invalid n-gram method %q: must be \"all\" or a positive integer", s)
	}
	return CountMethod(n), nil
}

// NGramCounter accumulates one n-gram frequency table across the token
// sequences of one melody and derives lexical-diversity statistics from
// it. Keys are the space-joined token strings of each n-gram. Statistics
// are valid only after a completed count pass; a counter is owned by a
// single caller and never shared across goroutines.
type NGramCounter struct {
	counts  map[string]int
	lengths map[int]bool
	counted bool

	logger logging.Logger
}

// NewNGramCounter creates an empty counter. Statistics error until Count
// or CountTokens has run.
func NewNGramCounter() *NGramCounter {
	return &NGramCounter{
		counts:  make(map[string]int),
		lengths: make(map[int]bool),
		logger: logging.WithFields(logging.Fields{
			"component": "ngram_counter",
		}),
	}
}

// CountTokens counts n-grams over token sequences, one sequence per
// phrase.
func (nc *NGramCounter) CountTokens(sequences [][]Token, method CountMethod) error {
	symbolSeqs := make([][]string, len(sequences))
	for i, seq := range sequences {
		symbols := make([]string, len(seq))
		for j, tok := range seq {
			symbols[j] = tok.String()
		}
		symbolSeqs[i] = symbols
	}
	return nc.Count(symbolSeqs, method)
}

// Count counts n-grams over plain symbol sequences. The method must be
// CountAll or a positive length no greater than the longest sequence;
// anything else is a validation error. Empty sequences are skipped with a
// warning and never abort the pass. A new call replaces the previous
// table.
func (nc *NGramCounter) Count(sequences [][]string, method CountMethod) error {
	if method != CountAll && method < 1 {
		return fmt.Errorf("melody: invalid n-gram length %d: must be a positive integer or CountAll", method)
	}
	maxLen := 0
	for _, seq := range sequences {
		if len(seq) > maxLen {
			maxLen = len(seq)
		}
	}
	if method != CountAll && maxLen > 0 && int(method) > maxLen {
		return fmt.Errorf("melody: n-gram length %d exceeds longest token sequence length %d", method, maxLen)
	}

	nc.counts = make(map[string]int)
	nc.lengths = make(map[int]bool)
	for i, seq := range sequences {
		if len(seq) == 0 {
			nc.logger.Warn("skipping empty token sequence", logging.Fields{
				"sequence": i,
			})
			continue
		}
		lo, hi := int(method), int(method)
		if method == CountAll {
			lo, hi = 1, len(seq)
		}
		if hi > len(seq) {
			hi = len(seq)
		}
		for n := lo; n <= hi; n++ {
			for j := 0; j+n <= len(seq); j++ {
				nc.counts[strings.Join(seq[j:j+n], " ")]++
				nc.lengths[n] = true
			}
		}
	}
	nc.counted = true
	return nil
}

// Counts returns a copy of the frequency table.
func (nc *NGramCounter) Counts() map[string]int {
	counts := make(map[string]int, len(nc.counts))
	for k, v := range nc.counts {
		counts[k] = v
	}
	return counts
}

// TotalTokens returns N, the sum of all counts in the table.
func (nc *NGramCounter) TotalTokens() int {
	total := 0
	for _, c := range nc.counts {
		total += c
	}
	return total
}

// DistinctTypes returns V, the number of distinct n-gram types.
func (nc *NGramCounter) DistinctTypes() int {
	return len(nc.counts)
}

// LengthCount returns the number of distinct n-gram lengths represented in
// the table.
func (nc *NGramCounter) LengthCount() int {
	return len(nc.lengths)
}
