package analyzer

import (
	"fmt"
	"sort"

	"github.com/samber/lo"

	"github.com/braunma/switchport-audit/internal/constants"
	"github.com/braunma/switchport-audit/pkg/models"
)

// DisabledPortSuggestions proposes one shared "disabled" profile for switched-off
// ports. Ports are split by PoE state; each uniform group at or above the
// disabled-port threshold gets a suggestion.
func DisabledPortSuggestions(ports []EffectivePort, profiles ProfileIndex, thresholds Thresholds) []ConsolidationSuggestion {
	t := thresholds.Merge()

	disabled := lo.Filter(ports, func(p EffectivePort, _ int) bool {
		return p.Forward == constants.ForwardDisabled
	})
	on, off := lo.FilterReject(disabled, func(p EffectivePort, _ int) bool { return p.PoE.On() })

	candidates := lo.Filter(profiles.Sorted(), func(p *models.PortProfile, _ int) bool {
		return p.Forward == constants.ForwardDisabled
	})

	var out []ConsolidationSuggestion
	for _, group := range []struct {
		poe   string
		ports []EffectivePort
	}{
		{poe: poeTagOff, ports: off},
		{poe: poeTagOn, ports: on},
	} {
		if len(group.ports) < t.DisabledPortThreshold {
			continue
		}
		groupKey := "disabled|" + group.poe

		fitting := lo.Filter(candidates, func(p *models.PortProfile, _ int) bool {
			return poeModeFits(p.PoEMode, group.poe)
		})
		if profile := mostUsed(fitting, group.ports); profile != nil {
			if s, ok := existingProfileSuggestion(t, CategoryDisabled, groupKey, profile, group.ports, nil); ok {
				out = append(out, s)
			}
			continue
		}

		name := "Disabled"
		if group.poe == poeTagOn {
			name = "Disabled (PoE)"
		}
		s := ConsolidationSuggestion{
			Category:    CategoryDisabled,
			Type:        SuggestionCreateNew,
			Severity:    t.severityFor(SuggestionCreateNew, len(group.ports), len(group.ports)),
			ProfileName: name,
			Ports:       portRefs(group.ports),
			NotUsing:    len(group.ports),
			PoE:         group.poe,
			Message: fmt.Sprintf("%d ports are disabled individually; a shared %q profile keeps them consistent",
				len(group.ports), name),
		}
		s.ID = suggestionID(s, groupKey)
		out = append(out, s)
	}
	return out
}

// AccessPortSuggestions finds access ports on the same native network that
// admit any client MAC. Each network at or above the access-port threshold
// gets its own suggestion.
func AccessPortSuggestions(ports []EffectivePort, profiles ProfileIndex, networks []models.NetworkConfig, thresholds Thresholds) []ConsolidationSuggestion {
	t := thresholds.Merge()

	byID := make(map[string]models.NetworkConfig, len(networks))
	for _, n := range networks {
		if _, exists := byID[n.ID]; !exists {
			byID[n.ID] = n
		}
	}

	access := lo.Filter(ports, func(p EffectivePort, _ int) bool {
		if p.Forward != constants.ForwardNative || p.NativeNetworkID == "" || p.Port.HasMACRestriction() {
			return false
		}
		n, ok := byID[p.NativeNetworkID]
		return ok && !n.IsRoutedOnly()
	})
	groups := lo.GroupBy(access, func(p EffectivePort) string { return p.NativeNetworkID })

	ids := lo.Keys(groups)
	sort.Slice(ids, func(i, j int) bool {
		a, b := byID[ids[i]], byID[ids[j]]
		if a.VlanTag != b.VlanTag {
			return a.VlanTag < b.VlanTag
		}
		return a.ID < b.ID
	})

	var out []ConsolidationSuggestion
	for _, id := range ids {
		group := groups[id]
		if len(group) < t.AccessPortThreshold {
			continue
		}
		network := byID[id]
		ref := NetworkRef{ID: network.ID, Name: network.Name, VlanTag: network.VlanTag}
		groupKey := "access|" + id

		fitting := lo.Filter(profiles.Sorted(), func(p *models.PortProfile, _ int) bool {
			return p.Forward == constants.ForwardNative && p.NativeNetworkID == id
		})
		if profile := mostUsed(fitting, group); profile != nil {
			if s, ok := existingProfileSuggestion(t, CategoryAccessUnrestricted, groupKey, profile, group, []NetworkRef{ref}); ok {
				out = append(out, s)
			}
			continue
		}

		name := "Access - " + network.Name
		s := ConsolidationSuggestion{
			Category:    CategoryAccessUnrestricted,
			Type:        SuggestionCreateNew,
			Severity:    t.severityFor(SuggestionCreateNew, len(group), len(group)),
			ProfileName: name,
			Ports:       portRefs(group),
			NotUsing:    len(group),
			Networks:    []NetworkRef{ref},
			PoE:         poeTag(group),
			Message: fmt.Sprintf("%d access ports on %s accept any client MAC; a shared %q profile can carry a MAC restriction",
				len(group), network.Name, name),
		}
		s.ID = suggestionID(s, groupKey)
		out = append(out, s)
	}
	return out
}

// mostUsed returns the profile referenced by the most ports, or the first
// candidate when none is in use. Nil when there are no candidates.
func mostUsed(candidates []*models.PortProfile, ports []EffectivePort) *models.PortProfile {
	var best *models.PortProfile
	bestUsing := -1
	for _, p := range candidates {
		using := lo.CountBy(ports, func(e EffectivePort) bool { return e.UsesProfile(p.ID) })
		if using > bestUsing {
			best, bestUsing = p, using
		}
	}
	return best
}

// poeModeFits reports whether a profile PoE mode suits a uniform PoE group
func poeModeFits(mode, poe string) bool {
	switch mode {
	case "":
		return true
	case constants.PoEModeOff:
		return poe == poeTagOff
	default:
		return poe == poeTagOn
	}
}
