package compliance

import (
	"fmt"

	"mandate/internal/platform/config"
	id "mandate/pkg/domain"
	dErrors "mandate/pkg/domain-errors"
)

// Status is the org-level compliance verdict.
type Status string

const (
	StatusReady          Status = "ready"
	StatusNeedsAttention Status = "needs_attention"
	StatusAtRisk         Status = "at_risk"
)

// Thresholds decide an org's Status from its completion rate and overdue
// count. Ready is checked first, then AtRisk.
type Thresholds struct {
	ReadyMinRate     int `json:"ready_min_rate"`
	AtRiskMinRate    int `json:"at_risk_min_rate"`
	AtRiskMaxOverdue int `json:"at_risk_max_overdue"`
}

func DefaultThresholds() Thresholds {
	return Thresholds{ReadyMinRate: 80, AtRiskMinRate: 50, AtRiskMaxOverdue: 5}
}

func (t Thresholds) Validate() error {
	if t.ReadyMinRate < 0 || t.ReadyMinRate > 100 {
		return dErrors.New(dErrors.CodeInvalidInput, "ready_min_rate must be within 0..100")
	}
	if t.AtRiskMinRate < 0 || t.AtRiskMinRate > 100 {
		return dErrors.New(dErrors.CodeInvalidInput, "at_risk_min_rate must be within 0..100")
	}
	if t.AtRiskMinRate > t.ReadyMinRate {
		return dErrors.New(dErrors.CodeInvalidInput, "at_risk_min_rate must not exceed ready_min_rate")
	}
	if t.AtRiskMaxOverdue < 0 {
		return dErrors.New(dErrors.CodeInvalidInput, "at_risk_max_overdue must not be negative")
	}
	return nil
}

// Evaluate maps a completion rate and overdue count to a Status.
//
//	Ready:          overdue == 0 and rate >= ReadyMinRate
//	AtRisk:         overdue > AtRiskMaxOverdue or rate < AtRiskMinRate
//	NeedsAttention: otherwise
func (t Thresholds) Evaluate(rate, overdue int) Status {
	if overdue == 0 && rate >= t.ReadyMinRate {
		return StatusReady
	}
	if overdue > t.AtRiskMaxOverdue || rate < t.AtRiskMinRate {
		return StatusAtRisk
	}
	return StatusNeedsAttention
}

// Policy holds the default thresholds and per-org overrides.
type Policy struct {
	Default Thresholds
	Orgs    map[id.OrgID]Thresholds
}

func DefaultPolicy() Policy {
	return Policy{Default: DefaultThresholds()}
}

// For returns the thresholds that apply to orgID.
func (p Policy) For(orgID id.OrgID) Thresholds {
	if t, ok := p.Orgs[orgID]; ok {
		return t
	}
	return p.Default
}

// PolicyFromConfig validates and converts the compliance config section.
func PolicyFromConfig(cfg config.ComplianceConfig) (Policy, error) {
	p := Policy{
		Default: thresholdsFromConfig(cfg.Thresholds),
		Orgs:    make(map[id.OrgID]Thresholds, len(cfg.OrgOverrides)),
	}
	if err := p.Default.Validate(); err != nil {
		return Policy{}, err
	}
	for raw, tc := range cfg.OrgOverrides {
		orgID, err := id.ParseOrgID(raw)
		if err != nil {
			return Policy{}, dErrors.Wrap(err, dErrors.CodeInvalidInput, fmt.Sprintf("threshold override key %q", raw))
		}
		t := thresholdsFromConfig(tc)
		if err := t.Validate(); err != nil {
			return Policy{}, dErrors.Wrap(err, dErrors.CodeInvalidInput, fmt.Sprintf("thresholds for org %s", raw))
		}
		p.Orgs[orgID] = t
	}
	return p, nil
}

func thresholdsFromConfig(tc config.ThresholdsConfig) Thresholds {
	return Thresholds{
		ReadyMinRate:     tc.ReadyMinRate,
		AtRiskMinRate:    tc.AtRiskMinRate,
		AtRiskMaxOverdue: tc.AtRiskMaxOverdue,
	}
}
