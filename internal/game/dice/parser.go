package dice

import (
	"fmt"
	"math"
	"math/bits"
	"regexp"
	"strconv"
	"strings"
)

// MaxDice is the largest dice count a single dice part may roll, and the
// largest explosion count per die.
const MaxDice = 100

// Modifier identifies the dice-pool modifier suffix of a dice part.
type Modifier int

const (
	ModNone        Modifier = iota
	ModKeepHighest          // K<n>: keep the n highest dice
	ModKeepLowest           // KL<n>: keep the n lowest dice
	ModDropHighest          // H<n>: drop the n highest dice
	ModDropLowest           // L<n>: drop the n lowest dice
	ModExplode              // !<n>: each maximum face adds n more dice
	ModReroll               // R<target>: reroll every die showing target once
)

var modifierSuffix = map[Modifier]string{
	ModNone:        "",
	ModKeepHighest: "K",
	ModKeepLowest:  "KL",
	ModDropHighest: "H",
	ModDropLowest:  "L",
	ModExplode:     "!",
	ModReroll:      "R",
}

// Term is a single operand of an additive chain: either a dice part or a
// non-negative integer constant.
type Term struct {
	Negative bool // subtracted from the running total
	Constant int  // value when Count == 0
	Count    int  // number of dice; 0 for a constant
	Sides    int  // faces per die
	Modifier Modifier
	ModValue int // n for keep/drop/explode, target face for reroll
}

// IsDice reports whether t rolls dice.
func (t Term) IsDice() bool {
	return t.Count > 0
}

// String returns the canonical text of t, e.g. "4d6K3", "1d20" or "5".
func (t Term) String() string {
	if !t.IsDice() {
		return strconv.Itoa(t.Constant)
	}
	s := fmt.Sprintf("%dd%d", t.Count, t.Sides)
	if t.Modifier != ModNone {
		s += modifierSuffix[t.Modifier] + strconv.Itoa(t.ModValue)
	}
	return s
}

// Scalar is one "*n" or "/n" step of a multiplicative chain.
type Scalar struct {
	Op      byte // '*' or '/'
	Operand int
}

// Expression represents a parsed dice formula ready to be rolled.
//
// Invariant: len(Terms) >= 1; when len(Scalars) > 0, len(Terms) == 1 and the
// term is not negative.
type Expression struct {
	Raw     string   // original input string
	Terms   []Term   // additive chain, left to right
	Scalars []Scalar // multiplicative chain applied to the single term
}

// dicePart matches a whitespace-free, lower-cased dice part. "kl" precedes "k"
// so that the longer modifier wins.
var dicePart = regexp.MustCompile(`^(\d*)d(\d+)(?:(kl|k|h|l|!|r)(\d*))?$`)

// Parse parses a dice formula into an Expression.
//
// Supported forms: "7", "d20", "3d6", "2d6+3", "1d8+1d4-1", "4d6K3", "2d20KL1",
// "4d6L", "3d6!", "2d6R1", "1d6*1000", "3d6/2". Whitespace is ignored and
// modifier letters are case-insensitive.
//
// Precondition: none; any string may be passed.
// Postcondition: Returns a valid Expression or an *InvalidFormulaError. Every
// roll of a valid Expression fits in an int.
func Parse(formula string) (Expression, error) {
	s := strings.ToLower(strings.Join(strings.Fields(formula), ""))
	if s == "" {
		return Expression{}, invalidf(formula, "empty formula")
	}
	var (
		e   Expression
		err error
	)
	if strings.ContainsAny(s, "*/") {
		e, err = parseMultiplicative(formula, s)
	} else {
		e, err = parseAdditive(formula, s)
	}
	if err != nil {
		return Expression{}, err
	}
	if !e.fitsInt() {
		return Expression{}, invalidf(formula, "largest possible result overflows int")
	}
	return e, nil
}

// fitsInt reports whether every intermediate value of a roll of e is bounded
// by math.MaxInt in magnitude. Division only shrinks the running total, so
// only sums and multiplications are bounded.
func (e Expression) fitsInt() bool {
	var bound uint64
	for _, t := range e.Terms {
		tb, ok := t.maxMagnitude()
		if !ok {
			return false
		}
		var carry uint64
		if bound, carry = bits.Add64(bound, tb, 0); carry != 0 || bound > math.MaxInt {
			return false
		}
	}
	for _, sc := range e.Scalars {
		if sc.Op != '*' {
			continue
		}
		hi, lo := bits.Mul64(bound, uint64(sc.Operand))
		if hi != 0 || lo > math.MaxInt {
			return false
		}
		bound = lo
	}
	return true
}

// maxMagnitude is the largest subtotal t can produce. An exploding part rolls
// at most Count*(1+ModValue) dice since explosions do not chain.
func (t Term) maxMagnitude() (uint64, bool) {
	if !t.IsDice() {
		return uint64(t.Constant), true
	}
	n := uint64(t.Count)
	if t.Modifier == ModExplode {
		n += uint64(t.Count) * uint64(t.ModValue)
	}
	hi, lo := bits.Mul64(n, uint64(t.Sides))
	return lo, hi == 0 && lo <= math.MaxInt
}

// MustParse parses formula and panics on error. Useful for package-level values.
//
// Precondition: formula must be a valid dice formula.
func MustParse(formula string) Expression {
	e, err := Parse(formula)
	if err != nil {
		panic("dice: MustParse failed for formula " + formula + ": " + err.Error())
	}
	return e
}

func parseAdditive(raw, s string) (Expression, error) {
	var terms []Term
	negative := false
	start := 0
	for i := 0; i <= len(s); i++ {
		if i < len(s) && s[i] != '+' && s[i] != '-' {
			continue
		}
		tok := s[start:i]
		if tok == "" {
			return Expression{}, invalidf(raw, "missing operand at position %d", i)
		}
		t, err := parseTerm(raw, tok)
		if err != nil {
			return Expression{}, err
		}
		t.Negative = negative
		terms = append(terms, t)
		if i < len(s) {
			negative = s[i] == '-'
		}
		start = i + 1
	}
	return Expression{Raw: raw, Terms: terms}, nil
}

func parseMultiplicative(raw, s string) (Expression, error) {
	if strings.ContainsAny(s, "+-") {
		return Expression{}, invalidf(raw, "cannot mix + or - with * or /")
	}
	opIdx := strings.IndexAny(s, "*/")
	head := s[:opIdx]
	if head == "" {
		return Expression{}, invalidf(raw, "missing operand before %q", s[opIdx])
	}
	t, err := parseTerm(raw, head)
	if err != nil {
		return Expression{}, err
	}

	var scalars []Scalar
	rest := s[opIdx:]
	for rest != "" {
		op := rest[0]
		rest = rest[1:]
		end := strings.IndexAny(rest, "*/")
		if end < 0 {
			end = len(rest)
		}
		tok := rest[:end]
		rest = rest[end:]
		if !isDigits(tok) {
			return Expression{}, invalidf(raw, "operand after %q must be a non-negative integer, got %q", op, tok)
		}
		n, err := strconv.Atoi(tok)
		if err != nil {
			return Expression{}, invalidf(raw, "operand %q out of range", tok)
		}
		if op == '/' && n == 0 {
			return Expression{}, invalidf(raw, "division by zero")
		}
		scalars = append(scalars, Scalar{Op: op, Operand: n})
	}
	return Expression{Raw: raw, Terms: []Term{t}, Scalars: scalars}, nil
}

func parseTerm(raw, tok string) (Term, error) {
	if isDigits(tok) {
		n, err := strconv.Atoi(tok)
		if err != nil {
			return Term{}, invalidf(raw, "constant %q out of range", tok)
		}
		return Term{Constant: n}, nil
	}

	m := dicePart.FindStringSubmatch(tok)
	if m == nil {
		return Term{}, invalidf(raw, "unrecognised dice part %q", tok)
	}

	count := 1
	if m[1] != "" {
		var err error
		if count, err = strconv.Atoi(m[1]); err != nil {
			return Term{}, invalidf(raw, "dice count %q out of range", m[1])
		}
	}
	if count <= 0 {
		return Term{}, invalidf(raw, "dice count must be at least 1, got %d", count)
	}
	if count > MaxDice {
		return Term{}, invalidf(raw, "dice count must not exceed %d, got %d", MaxDice, count)
	}

	sides, err := strconv.Atoi(m[2])
	if err != nil {
		return Term{}, invalidf(raw, "die sides %q out of range", m[2])
	}
	if sides <= 0 {
		return Term{}, invalidf(raw, "die must have at least 1 side, got %d", sides)
	}

	t := Term{Count: count, Sides: sides}
	if m[3] == "" {
		return t, nil
	}

	value := -1
	if m[4] != "" {
		if value, err = strconv.Atoi(m[4]); err != nil {
			return Term{}, invalidf(raw, "modifier value %q out of range", m[4])
		}
	}
	if err := applyModifier(raw, &t, m[3], value); err != nil {
		return Term{}, err
	}
	return t, nil
}

// applyModifier validates the modifier against the pool size. value is -1
// when the suffix carried no number.
func applyModifier(raw string, t *Term, suffix string, value int) error {
	orDefault := func(def int) int {
		if value < 0 {
			return def
		}
		return value
	}

	switch suffix {
	case "k":
		t.Modifier, t.ModValue = ModKeepHighest, orDefault(t.Count-1)
		if t.ModValue < 1 || t.ModValue > t.Count {
			return invalidf(raw, "keep count must be between 1 and %d, got %d", t.Count, t.ModValue)
		}
	case "kl":
		t.Modifier, t.ModValue = ModKeepLowest, orDefault(1)
		if t.ModValue < 1 || t.ModValue > t.Count {
			return invalidf(raw, "keep count must be between 1 and %d, got %d", t.Count, t.ModValue)
		}
	case "h", "l":
		t.Modifier, t.ModValue = ModDropHighest, orDefault(1)
		if suffix == "l" {
			t.Modifier = ModDropLowest
		}
		if t.ModValue >= t.Count {
			return invalidf(raw, "drop count must be less than the dice count %d, got %d", t.Count, t.ModValue)
		}
	case "!":
		t.Modifier, t.ModValue = ModExplode, orDefault(1)
		if t.ModValue < 1 || t.ModValue > MaxDice {
			return invalidf(raw, "explode count must be between 1 and %d, got %d", MaxDice, t.ModValue)
		}
	case "r":
		t.Modifier, t.ModValue = ModReroll, orDefault(1)
		if t.ModValue < 1 || t.ModValue > t.Sides {
			return invalidf(raw, "reroll target must be between 1 and %d, got %d", t.Sides, t.ModValue)
		}
	default:
		return invalidf(raw, "unknown modifier %q", suffix)
	}
	return nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
