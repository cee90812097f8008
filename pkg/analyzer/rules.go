package analyzer

import (
	"fmt"

	"github.com/braunma/switchport-audit/internal/constants"
)

// PortRule is one entry of the ordered port rule list. Match returns a
// finding (without ID) when the rule applies to the port.
type PortRule struct {
	Name  string
	Match func(port EffectivePort, universe Universe) (PortFinding, bool)
}

// Rule names
const (
	RuleTrunkVlanOverride     = "trunk-vlan-override"
	RuleDisabledPortPoE       = "disabled-port-poe"
	RuleCustomizeBlocksTagged = "customize-blocks-tagged"
)

// DefaultPortRules returns the built-in rule list. New rules are appended.
func DefaultPortRules(thresholds Thresholds) []PortRule {
	t := thresholds.Merge()
	return []PortRule{
		{Name: RuleTrunkVlanOverride, Match: trunkVlanOverride(t.OverrideTrigger())},
		{Name: RuleDisabledPortPoE, Match: disabledPortPoE},
		{Name: RuleCustomizeBlocksTagged, Match: customizeBlocksTagged},
	}
}

// EvaluatePortRules runs every rule against every port (all-match) and
// returns findings in port order, then rule order.
func EvaluatePortRules(ports []EffectivePort, universe Universe, rules []PortRule) []PortFinding {
	var out []PortFinding
	for _, p := range ports {
		for _, rule := range rules {
			finding, ok := rule.Match(p, universe)
			if !ok {
				continue
			}
			finding.Rule = rule.Name
			finding.Port = p.Ref
			if finding.Severity == "" {
				finding.Severity = SeverityInfo
			}
			finding.ID = findingID("port", rule.Name, endpointKey(p.Ref))
			out = append(out, finding)
		}
	}
	return out
}

// trunkVlanOverride flags trunks without a profile that carry more than
// trigger VLANs through per-port settings.
func trunkVlanOverride(trigger int) func(EffectivePort, Universe) (PortFinding, bool) {
	return func(p EffectivePort, u Universe) (PortFinding, bool) {
		if p.Profile != nil {
			return PortFinding{}, false
		}
		sig, ok := p.Signature(u)
		if !ok || sig.Len() <= trigger {
			return PortFinding{}, false
		}
		return PortFinding{
			Message: fmt.Sprintf("%s [%s] carries %d VLANs through per-port overrides; a port profile keeps trunks in sync",
				p.Ref.DeviceName, p.Ref.PortName, sig.Len()),
		}, true
	}
}

func disabledPortPoE(p EffectivePort, _ Universe) (PortFinding, bool) {
	if p.Forward != constants.ForwardDisabled || !p.PoE.On() {
		return PortFinding{}, false
	}
	return PortFinding{
		Message: fmt.Sprintf("%s [%s] is disabled but still has PoE enabled", p.Ref.DeviceName, p.Ref.PortName),
	}, true
}

func customizeBlocksTagged(p EffectivePort, _ Universe) (PortFinding, bool) {
	if p.Forward != constants.ForwardCustomize || p.TaggedVlanMgmt != constants.TaggedVlanBlockAll {
		return PortFinding{}, false
	}
	return PortFinding{
		Message: fmt.Sprintf("%s [%s] uses custom forwarding but blocks all tagged VLANs; it behaves as an access port",
			p.Ref.DeviceName, p.Ref.PortName),
	}, true
}
