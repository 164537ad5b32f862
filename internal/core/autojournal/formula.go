// Package autojournal turns auto-journal patterns into candidate journal entries.
package autojournal

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/shopspring/decimal"
)

var (
	identifierFormula = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)$`)
	binaryFormula     = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)\s*([-+*/])\s*(\d+(?:\.\d+)?)$`)
)

// AmountFormulaEvaluator resolves pattern item formulas. Only two shapes are accepted:
// a bare parameter name, or "name <op> constant" with op one of + - * /.
// Multiplication and division round to whole units, half away from zero.
type AmountFormulaEvaluator struct{}

// Evaluate computes formula against params.
func (AmountFormulaEvaluator) Evaluate(formula string, params map[string]decimal.Decimal) (decimal.Decimal, error) {
	f := strings.TrimSpace(formula)

	if m := identifierFormula.FindStringSubmatch(f); m != nil {
		return lookup(m[1], params)
	}

	m := binaryFormula.FindStringSubmatch(f)
	if m == nil {
		return decimal.Zero, fmt.Errorf("%w: %q", apperrors.ErrUnsupportedFormula, formula)
	}

	left, err := lookup(m[1], params)
	if err != nil {
		return decimal.Zero, err
	}
	constant, err := decimal.NewFromString(m[3])
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: bad constant in %q", apperrors.ErrUnsupportedFormula, formula)
	}

	switch m[2] {
	case "+":
		return left.Add(constant), nil
	case "-":
		return left.Sub(constant), nil
	case "*":
		return left.Mul(constant).Round(0), nil
	case "/":
		if constant.IsZero() {
			return decimal.Zero, fmt.Errorf("%w: %q", apperrors.ErrDivisionByZero, formula)
		}
		return left.DivRound(constant, 0), nil
	}
	return decimal.Zero, fmt.Errorf("%w: %q", apperrors.ErrUnsupportedFormula, formula)
}

func lookup(name string, params map[string]decimal.Decimal) (decimal.Decimal, error) {
	v, ok := params[name]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s", apperrors.ErrMissingParameter, name)
	}
	return v, nil
}

// Parameter reports the parameter a formula reads, rejecting shapes Evaluate would
// refuse for every input.
func (AmountFormulaEvaluator) Parameter(formula string) (string, error) {
	f := strings.TrimSpace(formula)
	if m := identifierFormula.FindStringSubmatch(f); m != nil {
		return m[1], nil
	}
	m := binaryFormula.FindStringSubmatch(f)
	if m == nil {
		return "", fmt.Errorf("%w: %q", apperrors.ErrUnsupportedFormula, formula)
	}
	if m[2] == "/" {
		if c, err := decimal.NewFromString(m[3]); err == nil && c.IsZero() {
			return "", fmt.Errorf("%w: %q", apperrors.ErrDivisionByZero, formula)
		}
	}
	return m[1], nil
}
