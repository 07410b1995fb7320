package listing

import (
	"errors"
	"strings"

	"github.com/Knetic/govaluate"

	domain "github.com/loanlink/loanlink/internal/domain/listing"
)

// DefaultRiskExpression is used when no expression is configured: the
// declared risk factor dampened by the collateral on offer.
const DefaultRiskExpression = "risk_factor - (mortgage_value + guarantee_amount) / (max_amount * 10)"

// EvaluateRisk computes a borrow listing's total risk factor from a
// configurable expression over its numeric fields. An empty expression
// falls back to the declared risk factor unchanged.
func EvaluateRisk(expression string, b *domain.Borrow) (float64, error) {
	expr := strings.TrimSpace(expression)
	if expr == "" {
		return b.RiskFactor, nil
	}
	parsed, err := govaluate.NewEvaluableExpression(expr)
	if err != nil {
		return 0, err
	}
	result, err := parsed.Evaluate(riskParams(b))
	if err != nil {
		return 0, err
	}
	switch v := result.(type) {
	case float64:
		return v, nil
	default:
		return 0, errors.New("risk expression did not evaluate to a number")
	}
}

func riskParams(b *domain.Borrow) map[string]interface{} {
	return map[string]interface{}{
		"max_amount":       float64(b.MaxAmount),
		"max_rate":         b.MaxRate,
		"risk_factor":      b.RiskFactor,
		"mortgage_value":   b.MortgageValue,
		"guarantee_amount": b.GuaranteeAmount,
	}
}
