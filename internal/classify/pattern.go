package classify

import (
	"fmt"

	"ledgerscope/internal/model"
)

// OpKind is a pattern operator over bundle-name sequences.
type OpKind string

const (
	// OpLiteral consumes exactly one bundle whose name is in the set.
	OpLiteral OpKind = "."
	// OpOptional consumes one matching bundle if present, else nothing.
	OpOptional OpKind = "?"
	// OpOneOrMore consumes a maximal nonempty run of matching bundles.
	OpOneOrMore OpKind = "+"
	// OpZeroOrMore consumes a maximal, possibly empty, run.
	OpZeroOrMore OpKind = "*"
	// OpNotEnd consumes nothing and succeeds only when the bundle list has
	// ended or the next bundle's name is outside the set. Must be last.
	OpNotEnd OpKind = "!$"
)

// PatternOp is one operator with its set of allowed bundle names.
type PatternOp struct {
	Op    OpKind
	Names []string
}

func (op PatternOp) allows(name string) bool {
	for _, n := range op.Names {
		if n == name {
			return true
		}
	}
	return false
}

// validatePattern rejects table rows the engine cannot execute.
func validatePattern(ops []PatternOp) error {
	if len(ops) == 0 {
		return fmt.Errorf("empty pattern")
	}
	consuming := false
	for i, op := range ops {
		switch op.Op {
		case OpLiteral, OpOneOrMore:
			consuming = true
		case OpOptional, OpZeroOrMore:
		case OpNotEnd:
			if i != len(ops)-1 {
				return fmt.Errorf("%s must be the last op", OpNotEnd)
			}
		default:
			return fmt.Errorf("unknown op %q", op.Op)
		}
	}
	// Without a mandatory op the pattern could match zero bundles, which
	// would emit an empty transaction type and stall the untyped frontier.
	if !consuming {
		return fmt.Errorf("pattern has no %s or %s op", OpLiteral, OpOneOrMore)
	}
	return nil
}

// matchPattern attempts the pattern at each candidate start position from
// start onward, returning the matched half-open bundle range. Quantifiers
// consume maximally and the engine does not backtrack inside a consumed
// run; failures advance the candidate start by one instead.
func matchPattern(bundles []*model.Bundle, start int, ops []PatternOp) (matchStart, matchEnd int, ok bool) {
	for s := start; s < len(bundles); s++ {
		if end, ok := matchHere(bundles, s, ops); ok {
			return s, end, true
		}
	}
	return 0, 0, false
}

func matchHere(bundles []*model.Bundle, i int, ops []PatternOp) (int, bool) {
	if len(ops) == 0 {
		return i, true
	}

	op := ops[0]
	switch op.Op {
	case OpLiteral:
		if i >= len(bundles) || !op.allows(bundles[i].Name) {
			return 0, false
		}
		return matchHere(bundles, i+1, ops[1:])
	case OpOptional:
		if i < len(bundles) && op.allows(bundles[i].Name) {
			i++
		}
		return matchHere(bundles, i, ops[1:])
	case OpOneOrMore:
		if i >= len(bundles) || !op.allows(bundles[i].Name) {
			return 0, false
		}
		return matchHere(bundles, consumeRun(bundles, i, op), ops[1:])
	case OpZeroOrMore:
		return matchHere(bundles, consumeRun(bundles, i, op), ops[1:])
	case OpNotEnd:
		if i < len(bundles) && op.allows(bundles[i].Name) {
			return 0, false
		}
		return i, true
	}
	return 0, false
}

func consumeRun(bundles []*model.Bundle, i int, op PatternOp) int {
	for i < len(bundles) && op.allows(bundles[i].Name) {
		i++
	}
	return i
}
