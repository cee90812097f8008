package analyzer

import (
	"sort"

	"github.com/samber/lo"
)

// transportGroup is a set of ports that one profile can serve: a single
// speed constraint and, unless tagged mixed, a single PoE state.
type transportGroup struct {
	speed SpeedConstraint
	poe   string
	ports []EffectivePort
}

// splitExcluded routes ports a class's main profile could not take. Other
// matching profiles are tried first, best fit first; whatever none of them
// admit is regrouped into new-profile suggestions.
func (c *clusterer) splitExcluded(class portClass, excluded []EffectivePort, tried map[string]bool) []ConsolidationSuggestion {
	var out []ConsolidationSuggestion
	remaining := excluded

	for len(remaining) > 0 {
		profile, admitted, rest := c.bestProfile(class, remaining, tried)
		if profile == nil {
			break
		}
		tried[profile.ID] = true
		c.logger.Debug("Routing %d excluded ports of class %s to profile %q", len(admitted), class.key, profile.Name)
		if s, ok := c.profileSuggestion(class, profile, admitted); ok {
			out = append(out, s)
		}
		remaining = rest
	}

	return append(out, c.regroup(class, remaining)...)
}

// regroup clusters ports with no fitting profile and suggests a new profile
// for every group of at least the minimum cluster size. Smaller groups yield
// nothing. Ports already on a matching profile never seed a new one.
func (c *clusterer) regroup(class portClass, ports []EffectivePort) []ConsolidationSuggestion {
	settled, free := lo.FilterReject(ports, func(p EffectivePort, _ int) bool {
		return settledOn(p, class.matching)
	})
	for _, p := range settled {
		c.logger.Debug("%s [%s] stays on profile %s of class %s", p.Ref.DeviceName, p.Ref.PortName, p.Port.PortProfileID, class.key)
	}

	var out []ConsolidationSuggestion
	for _, group := range partitionTransport(free, c.thresholds.MinClusterSize) {
		if len(group.ports) < c.thresholds.MinClusterSize {
			c.logger.Debug("Dropping %d-port group (%s) of class %s below minimum size", len(group.ports), group.speed, class.key)
			continue
		}
		out = append(out, c.createSuggestion(class, group))
	}
	return out
}

// partitionTransport splits ports by speed constraint (all autoneg ports
// together, forced speeds apart), then by PoE. A PoE split happens only when
// both halves reach minSize; otherwise the bucket stays whole and is tagged mixed.
func partitionTransport(ports []EffectivePort, minSize int) []transportGroup {
	buckets := lo.PartitionBy(ports, func(p EffectivePort) SpeedConstraint {
		if p.Speed.Autoneg {
			return AutoSpeed()
		}
		return p.Speed
	})
	sort.SliceStable(buckets, func(i, j int) bool {
		a, b := buckets[i][0].Speed, buckets[j][0].Speed
		if a.Autoneg != b.Autoneg {
			return a.Autoneg
		}
		return a.Speed < b.Speed
	})

	var groups []transportGroup
	for _, bucket := range buckets {
		speed := bucket[0].Speed
		if speed.Autoneg {
			speed = AutoSpeed()
		}

		on, off := lo.FilterReject(bucket, func(p EffectivePort, _ int) bool { return p.PoE.On() })
		switch {
		case len(on) == 0:
			groups = append(groups, transportGroup{speed: speed, poe: poeTagOff, ports: off})
		case len(off) == 0:
			groups = append(groups, transportGroup{speed: speed, poe: poeTagOn, ports: on})
		case len(on) >= minSize && len(off) >= minSize:
			groups = append(groups,
				transportGroup{speed: speed, poe: poeTagOn, ports: on},
				transportGroup{speed: speed, poe: poeTagOff, ports: off},
			)
		default:
			groups = append(groups, transportGroup{speed: speed, poe: poeTagMixed, ports: bucket})
		}
	}
	return groups
}
