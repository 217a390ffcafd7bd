package melody

// M-Type tokenization after the FANTASTIC feature set (Müllensiefen 2009):
// each adjacent note pair becomes a (pitch-interval class, duration-ratio
// class) token. Class tables and thresholds are literal constants from the
// reference model.

// IntervalClass is the symbolic pitch-interval class of a note pair.
// Downward intervals are d*, upward u*, the unison s1 and the tritones
// dt/ut. Major and minor variants of the same diatonic size share a label.
type IntervalClass string

const (
	IntervalNone IntervalClass = ""
	IntervalD8   IntervalClass = "d8"
	IntervalD7   IntervalClass = "d7"
	IntervalD6   IntervalClass = "d6"
	IntervalD5   IntervalClass = "d5"
	IntervalDT   IntervalClass = "dt"
	IntervalD4   IntervalClass = "d4"
	IntervalD3   IntervalClass = "d3"
	IntervalD2   IntervalClass = "d2"
	IntervalS1   IntervalClass = "s1"
	IntervalU2   IntervalClass = "u2"
	IntervalU3   IntervalClass = "u3"
	IntervalU4   IntervalClass = "u4"
	IntervalUT   IntervalClass = "ut"
	IntervalU5   IntervalClass = "u5"
	IntervalU6   IntervalClass = "u6"
	IntervalU7   IntervalClass = "u7"
	IntervalU8   IntervalClass = "u8"
)

// intervalBySemitones maps a clamped signed semitone interval to its class;
// index is semitones + 12.
var intervalBySemitones = [25]IntervalClass{
	IntervalD8, // -12
	IntervalD7, // -11
	IntervalD7, // -10
	IntervalD6, // -9
	IntervalD6, // -8
	IntervalD5, // -7
	IntervalDT, // -6
	IntervalD4, // -5
	IntervalD3, // -4
	IntervalD3, // -3
	IntervalD2, // -2
	IntervalD2, // -1
	IntervalS1, // 0
	IntervalU2, // +1
	IntervalU2, // +2
	IntervalU3, // +3
	IntervalU3, // +4
	IntervalU4, // +5
	IntervalUT, // +6
	IntervalU5, // +7
	IntervalU6, // +8
	IntervalU6, // +9
	IntervalU7, // +10
	IntervalU7, // +11
	IntervalU8, // +12
}

// ClassifyInterval maps a signed semitone interval to its class, clamping
// to one octave in either direction. A nil interval classifies to
// IntervalNone.
func ClassifyInterval(semitones *int) IntervalClass {
	if semitones == nil {
		return IntervalNone
	}
	st := *semitones
	if st < -12 {
		st = -12
	}
	if st > 12 {
		st = 12
	}
	return intervalBySemitones[st+12]
}

// DurationClass is the symbolic class of the ratio between two successive
// inter-onset intervals.
type DurationClass string

const (
	DurationNone    DurationClass = ""
	DurationQuicker DurationClass = "q"
	DurationEqual   DurationClass = "e"
	DurationLonger  DurationClass = "l"
)

// Duration-ratio class boundaries from the reference model. These are
// literal constants, not derived quantities.
const (
	quickerUpperBound = 0.8118987
	equalUpperBound   = 1.4945858
)

// ClassifyDurationRatio maps an IOI ratio to its duration class. A nil
// ratio classifies to DurationNone.
func ClassifyDurationRatio(ratio *float64) DurationClass {
	if ratio == nil {
		return DurationNone
	}
	switch r := *ratio; {
	case r < quickerUpperBound:
		return DurationQuicker
	case r < equalUpperBound:
		return DurationEqual
	default:
		return DurationLonger
	}
}

// Token is one M-Type: an immutable (interval class, duration class) pair.
// Tokens with equal labels are the same token for counting purposes.
type Token struct {
	Interval IntervalClass `json:"interval"`
	Duration DurationClass `json:"duration"`
}

// String renders the token as the interval label followed by the duration
// label, with "_" standing in for an absent class, e.g. "d2e" or "u7_".
func (t Token) String() string {
	iv, d := string(t.Interval), string(t.Duration)
	if iv == "" {
		iv = "_"
	}
	if d == "" {
		d = "_"
	}
	return iv + d
}
