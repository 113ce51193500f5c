package compliance

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mandate/internal/platform/config"
	id "mandate/pkg/domain"
	dErrors "mandate/pkg/domain-errors"
)

func TestThresholdsEvaluate(t *testing.T) {
	th := DefaultThresholds()
	tests := []struct {
		name    string
		rate    int
		overdue int
		want    Status
	}{
		{"full completion nothing overdue", 100, 0, StatusReady},
		{"exactly ready rate", 80, 0, StatusReady},
		{"ready rate with one overdue", 80, 1, StatusNeedsAttention},
		{"just below ready", 79, 0, StatusNeedsAttention},
		{"overdue at the limit", 90, 5, StatusNeedsAttention},
		{"overdue above the limit", 90, 6, StatusAtRisk},
		{"rate below at-risk", 49, 0, StatusAtRisk},
		{"rate at at-risk boundary", 50, 0, StatusNeedsAttention},
		{"empty org", 0, 0, StatusAtRisk},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, th.Evaluate(tt.rate, tt.overdue))
		})
	}
}

func TestThresholdsValidate(t *testing.T) {
	assert.NoError(t, DefaultThresholds().Validate())

	bad := []Thresholds{
		{ReadyMinRate: 101, AtRiskMinRate: 50},
		{ReadyMinRate: 80, AtRiskMinRate: -1},
		{ReadyMinRate: 40, AtRiskMinRate: 50},
		{ReadyMinRate: 80, AtRiskMinRate: 50, AtRiskMaxOverdue: -1},
	}
	for _, th := range bad {
		err := th.Validate()
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	}
}

func TestPolicyFromConfig(t *testing.T) {
	org := uuid.New()

	t.Run("defaults and overrides", func(t *testing.T) {
		p, err := PolicyFromConfig(config.ComplianceConfig{
			Thresholds: config.ThresholdsConfig{ReadyMinRate: 80, AtRiskMinRate: 50, AtRiskMaxOverdue: 5},
			OrgOverrides: map[string]config.ThresholdsConfig{
				org.String(): {ReadyMinRate: 95, AtRiskMinRate: 70, AtRiskMaxOverdue: 0},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, 95, p.For(id.OrgID(org)).ReadyMinRate)
		assert.Equal(t, DefaultThresholds(), p.For(id.OrgID(uuid.New())))
	})

	t.Run("override key must be an org id", func(t *testing.T) {
		_, err := PolicyFromConfig(config.ComplianceConfig{
			Thresholds:   config.ThresholdsConfig{ReadyMinRate: 80, AtRiskMinRate: 50, AtRiskMaxOverdue: 5},
			OrgOverrides: map[string]config.ThresholdsConfig{"acme": {ReadyMinRate: 80}},
		})
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("invalid default", func(t *testing.T) {
		_, err := PolicyFromConfig(config.ComplianceConfig{
			Thresholds: config.ThresholdsConfig{ReadyMinRate: 10, AtRiskMinRate: 50},
		})
		assert.Error(t, err)
	})
}
