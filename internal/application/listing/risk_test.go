package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/loanlink/loanlink/internal/domain/listing"
)

func TestEvaluateRiskDefaultExpression(t *testing.T) {
	b := &domain.Borrow{
		MaxAmount:       10000,
		RiskFactor:      5,
		MortgageValue:   40000,
		GuaranteeAmount: 10000,
	}
	// 5 - (40000+10000)/(10000*10) = 4.5
	score, err := EvaluateRisk(DefaultRiskExpression, b)
	require.NoError(t, err)
	assert.InDelta(t, 4.5, score, 1e-9)
}

func TestEvaluateRiskEmptyExpressionKeepsDeclaredFactor(t *testing.T) {
	b := &domain.Borrow{RiskFactor: 3.2}
	score, err := EvaluateRisk("", b)
	require.NoError(t, err)
	assert.Equal(t, 3.2, score)
}

func TestEvaluateRiskRejectsBadExpression(t *testing.T) {
	b := &domain.Borrow{RiskFactor: 1}
	_, err := EvaluateRisk("risk_factor +", b)
	require.Error(t, err)

	_, err = EvaluateRisk("risk_factor > 0", b)
	require.Error(t, err, "boolean result is not a score")
}

func TestParseDeadline(t *testing.T) {
	d, err := ParseDeadline("2026-06-01")
	require.NoError(t, err)
	assert.Equal(t, 2026, d.Year())

	d, err = ParseDeadline("2026-06-01T12:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, 12, d.Hour())

	_, err = ParseDeadline("")
	require.Error(t, err)
	_, err = ParseDeadline("june 1st")
	require.Error(t, err)
}
