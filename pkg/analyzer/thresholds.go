package analyzer

import (
	"github.com/samber/lo"

	"github.com/braunma/switchport-audit/internal/constants"
)

// Thresholds holds the tunable numeric limits of the analysis. Zero or
// negative counts fall back to the defaults; the VLAN override trigger is a
// pointer so that 0 ("flag every override trunk") can be set explicitly.
type Thresholds struct {
	VlanOverrideTrigger       *int `yaml:"vlan_override_trigger,omitempty" json:"vlan_override_trigger,omitempty"`
	MinClusterSize            int  `yaml:"min_cluster_size" json:"min_cluster_size"`
	DisabledPortThreshold     int  `yaml:"disabled_port_threshold" json:"disabled_port_threshold"`
	AccessPortThreshold       int  `yaml:"access_port_threshold" json:"access_port_threshold"`
	RecommendationPortCount   int  `yaml:"recommendation_port_count" json:"recommendation_port_count"`
	RecommendationExtendCount int  `yaml:"recommendation_extend_count" json:"recommendation_extend_count"`
}

// DefaultThresholds returns the built-in limits
func DefaultThresholds() Thresholds {
	return Thresholds{
		VlanOverrideTrigger:       lo.ToPtr(constants.VlanOverrideTrigger),
		MinClusterSize:            constants.MinClusterSize,
		DisabledPortThreshold:     constants.DisabledPortThreshold,
		AccessPortThreshold:       constants.AccessPortThreshold,
		RecommendationPortCount:   constants.RecommendationPortCount,
		RecommendationExtendCount: constants.RecommendationExtendCount,
	}
}

// Merge returns t with every unset or non-positive count replaced by the default.
// The minimum cluster size never drops below 2.
func (t Thresholds) Merge() Thresholds {
	d := DefaultThresholds()
	pick := func(v, def int) int {
		if v > 0 {
			return v
		}
		return def
	}
	out := Thresholds{
		VlanOverrideTrigger:       d.VlanOverrideTrigger,
		MinClusterSize:            pick(t.MinClusterSize, d.MinClusterSize),
		DisabledPortThreshold:     pick(t.DisabledPortThreshold, d.DisabledPortThreshold),
		AccessPortThreshold:       pick(t.AccessPortThreshold, d.AccessPortThreshold),
		RecommendationPortCount:   pick(t.RecommendationPortCount, d.RecommendationPortCount),
		RecommendationExtendCount: pick(t.RecommendationExtendCount, d.RecommendationExtendCount),
	}
	if t.VlanOverrideTrigger != nil && *t.VlanOverrideTrigger >= 0 {
		out.VlanOverrideTrigger = lo.ToPtr(*t.VlanOverrideTrigger)
	}
	if out.MinClusterSize < constants.MinClusterSize {
		out.MinClusterSize = constants.MinClusterSize
	}
	return out
}

// OverrideTrigger returns the VLAN count above which a profile-less trunk is flagged
func (t Thresholds) OverrideTrigger() int {
	if t.VlanOverrideTrigger == nil {
		return constants.VlanOverrideTrigger
	}
	return *t.VlanOverrideTrigger
}

// severityFor grades a suggestion by how many ports it touches
func (t Thresholds) severityFor(kind SuggestionType, affected, notUsing int) Severity {
	switch kind {
	case SuggestionExtendUsage:
		if notUsing >= t.RecommendationExtendCount {
			return SeverityRecommendation
		}
	default:
		if affected >= t.RecommendationPortCount {
			return SeverityRecommendation
		}
	}
	return SeverityInfo
}
