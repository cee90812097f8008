package analyzer

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/braunma/switchport-audit/internal/constants"
	"github.com/braunma/switchport-audit/pkg/models"
	"github.com/braunma/switchport-audit/pkg/utils"
)

// PoE annotations on suggestions
const (
	poeTagOn    = "poe"
	poeTagOff   = "off"
	poeTagMixed = "mixed"
)

// portClass is one equivalence class of trunk ports: same VLAN signature and forward mode
type portClass struct {
	key       string
	forward   string
	signature VlanSignature
	ports     []EffectivePort
	// profiles whose own signature equals the class signature
	matching []*models.PortProfile
}

// clusterer holds the read-only inputs shared by the clustering steps
type clusterer struct {
	thresholds Thresholds
	universe   Universe
	profiles   []*models.PortProfile
	logger     *utils.Logger
}

// EffectivePorts resolves every port of every device against its profile, in
// input order. A repeated port index on one device keeps its first entry, the
// same port uplink discovery resolves.
func EffectivePorts(devices []models.Device, profiles ProfileIndex) []EffectivePort {
	var out []EffectivePort
	for i := range devices {
		d := &devices[i]
		for j := range d.Ports {
			p := &d.Ports[j]
			if isRepeatedPort(d, j) {
				continue
			}
			out = append(out, ResolveEffective(d, p, profiles.Lookup(p.PortProfileID)))
		}
	}
	return out
}

// isRepeatedPort reports whether an earlier entry of the port table has the same index
func isRepeatedPort(d *models.Device, pos int) bool {
	for k := 0; k < pos; k++ {
		if d.Ports[k].Index == d.Ports[pos].Index {
			return true
		}
	}
	return false
}

// ClusterPortProfiles groups trunk ports by VLAN signature and transport
// settings and suggests extending, applying, or creating a shared profile
// for each group.
func ClusterPortProfiles(ports []EffectivePort, profiles ProfileIndex, universe Universe, thresholds Thresholds, logger *utils.Logger) []ConsolidationSuggestion {
	if universe.Len() == 0 {
		return nil
	}

	c := &clusterer{
		thresholds: thresholds.Merge(),
		universe:   universe,
		profiles:   profiles.Sorted(),
		logger:     logger,
	}

	var out []ConsolidationSuggestion
	for _, class := range c.classes(ports) {
		logger.Debug("Class %s: %d ports, %d matching profiles", class.key, len(class.ports), len(class.matching))
		out = append(out, c.clusterClass(class)...)
	}
	return out
}

// classes partitions trunk candidates into equivalence classes ordered by key
func (c *clusterer) classes(ports []EffectivePort) []portClass {
	byKey := make(map[string]*portClass)
	for _, p := range ports {
		sig, ok := p.Signature(c.universe)
		if !ok || sig.Len() == 0 {
			continue
		}
		key := p.Forward + "|" + sig.Key()
		class, exists := byKey[key]
		if !exists {
			class = &portClass{key: key, forward: p.Forward, signature: sig}
			byKey[key] = class
		}
		class.ports = append(class.ports, p)
	}

	keys := lo.Keys(byKey)
	sort.Strings(keys)

	out := make([]portClass, 0, len(keys))
	for _, key := range keys {
		class := byKey[key]
		class.matching = lo.Filter(c.profiles, func(p *models.PortProfile, _ int) bool {
			sig, ok := ProfileSignature(p, c.universe)
			return ok && p.Forward == class.forward && sig.Equal(class.signature)
		})
		out = append(out, *class)
	}
	return out
}

// clusterClass standardizes a class on its best matching profile and hands
// the ports that profile cannot take to the fallback splitter.
func (c *clusterer) clusterClass(class portClass) []ConsolidationSuggestion {
	tried := make(map[string]bool)

	profile, admitted, excluded := c.bestProfile(class, class.ports, tried)
	if profile == nil {
		return c.regroup(class, class.ports)
	}
	tried[profile.ID] = true

	var out []ConsolidationSuggestion
	if s, ok := c.profileSuggestion(class, profile, admitted); ok {
		out = append(out, s)
	}
	if len(excluded) > 0 {
		c.logger.Debug("Profile %q excludes %d ports of class %s", profile.Name, len(excluded), class.key)
		out = append(out, c.splitExcluded(class, excluded, tried)...)
	}
	return out
}

// bestProfile picks the untried matching profile that admits the most ports
// already using it, then the most ports overall. Ties keep profile name order.
func (c *clusterer) bestProfile(class portClass, ports []EffectivePort, tried map[string]bool) (*models.PortProfile, []EffectivePort, []EffectivePort) {
	var (
		best                 *models.PortProfile
		bestIn, bestOut      []EffectivePort
		bestUsing, bestCount = -1, 0
	)

	for _, profile := range class.matching {
		if tried[profile.ID] {
			continue
		}
		in, out := c.admit(class, profile, ports)
		if len(in) == 0 {
			continue
		}
		using := lo.CountBy(in, func(p EffectivePort) bool { return p.UsesProfile(profile.ID) })
		if using > bestUsing || (using == bestUsing && len(in) > bestCount) {
			best, bestIn, bestOut = profile, in, out
			bestUsing, bestCount = using, len(in)
		}
	}
	return best, bestIn, bestOut
}

// admit splits ports into those compatible with the profile's transport
// settings and those excluded. Ports already settled on another matching
// profile stay where they are.
func (c *clusterer) admit(class portClass, profile *models.PortProfile, ports []EffectivePort) ([]EffectivePort, []EffectivePort) {
	var in, out []EffectivePort
	for _, p := range ports {
		if p.Port.PortProfileID != profile.ID && settledOn(p, class.matching) {
			out = append(out, p)
			continue
		}
		if profile.ForcesSpeed() && p.LinkSpeed != profile.Speed {
			out = append(out, p)
			continue
		}
		if profile.PoEMode == constants.PoEModeOff && p.PoE.On() {
			out = append(out, p)
			continue
		}
		in = append(in, p)
	}

	if profile.PoEMode == "" || profile.PoEMode == constants.PoEModeOff {
		return in, out
	}

	// A powering profile needs the group to agree on PoE.
	on, off := lo.FilterReject(in, func(p EffectivePort, _ int) bool { return p.PoE.On() })
	if len(on) == 0 || len(off) == 0 {
		return in, out
	}
	keep, drop := on, off
	usingOn := lo.CountBy(on, func(p EffectivePort) bool { return p.UsesProfile(profile.ID) })
	usingOff := lo.CountBy(off, func(p EffectivePort) bool { return p.UsesProfile(profile.ID) })
	if usingOff > usingOn || (usingOff == usingOn && len(off) > len(on)) {
		keep, drop = off, on
	}
	return keep, append(out, drop...)
}

// settledOn reports whether a port already uses one of the matching profiles
func settledOn(p EffectivePort, matching []*models.PortProfile) bool {
	return lo.ContainsBy(matching, func(m *models.PortProfile) bool { return p.UsesProfile(m.ID) })
}

// profileSuggestion proposes moving the admitted ports onto an existing profile.
// Nothing is suggested when every admitted port already uses it.
func (c *clusterer) profileSuggestion(class portClass, profile *models.PortProfile, admitted []EffectivePort) (ConsolidationSuggestion, bool) {
	return existingProfileSuggestion(c.thresholds, CategoryTrunk, class.key, profile, admitted, class.signature.Refs(c.universe))
}

// existingProfileSuggestion builds an ExtendUsage or ApplyExisting suggestion
func existingProfileSuggestion(t Thresholds, category SuggestionCategory, groupKey string, profile *models.PortProfile, ports []EffectivePort, networks []NetworkRef) (ConsolidationSuggestion, bool) {
	using := lo.CountBy(ports, func(p EffectivePort) bool { return p.UsesProfile(profile.ID) })
	notUsing := len(ports) - using
	if notUsing == 0 {
		return ConsolidationSuggestion{}, false
	}

	kind := SuggestionApplyExisting
	msg := fmt.Sprintf("Profile %q matches %d %s configured per port; apply it instead of per-port overrides",
		profile.Name, notUsing, pluralPorts(notUsing))
	if using > 0 {
		kind = SuggestionExtendUsage
		msg = fmt.Sprintf("%d of %d ports already use profile %q; apply it to the remaining %d",
			using, len(ports), profile.Name, notUsing)
	}

	s := ConsolidationSuggestion{
		Category:     category,
		Type:         kind,
		Severity:     t.severityFor(kind, len(ports), notUsing),
		ProfileID:    profile.ID,
		ProfileName:  profile.Name,
		Ports:        portRefs(ports),
		AlreadyUsing: using,
		NotUsing:     notUsing,
		Networks:     networks,
		PoE:          poeTag(ports),
		Speed:        profileSpeed(profile),
		Message:      msg,
	}
	s.ID = suggestionID(s, groupKey)
	return s, true
}

// createSuggestion proposes a new profile for a viable group
func (c *clusterer) createSuggestion(class portClass, group transportGroup) ConsolidationSuggestion {
	name := c.proposedName(class.signature, group.poe, group.speed)
	s := ConsolidationSuggestion{
		Category:    CategoryTrunk,
		Type:        SuggestionCreateNew,
		Severity:    c.thresholds.severityFor(SuggestionCreateNew, len(group.ports), len(group.ports)),
		ProfileName: name,
		Ports:       portRefs(group.ports),
		NotUsing:    len(group.ports),
		Networks:    class.signature.Refs(c.universe),
		PoE:         group.poe,
		Speed:       group.speed.String(),
		Message: fmt.Sprintf("%d ports carry the same VLANs (%s) without a shared profile; create %q",
			len(group.ports), utils.JoinLimited(networkNames(class.signature.Refs(c.universe)), 4), name),
	}
	s.ID = suggestionID(s, class.key)
	return s
}

// proposedName derives a profile name from the VLAN set, speed and PoE state
func (c *clusterer) proposedName(sig VlanSignature, poe string, speed SpeedConstraint) string {
	refs := sig.Refs(c.universe)

	var b strings.Builder
	switch {
	case sig.Len() == c.universe.Len():
		b.WriteString("Trunk - All VLANs")
	case c.allPurpose(sig, constants.PurposeGuest):
		b.WriteString("Trunk - Guest VLANs")
	case len(refs) <= 3:
		b.WriteString("Trunk - " + strings.Join(networkNames(refs), " + "))
	default:
		b.WriteString("Trunk - " + strconv.Itoa(len(refs)) + " VLANs")
	}

	if !speed.Autoneg && speed.Speed > 0 {
		b.WriteString(" " + speed.String())
	}

	switch poe {
	case poeTagOn:
		b.WriteString(" (PoE)")
	case poeTagMixed:
		b.WriteString(" (mixed PoE)")
	}
	return b.String()
}

func (c *clusterer) allPurpose(sig VlanSignature, purpose string) bool {
	return lo.EveryBy(sig.IDs(), func(id string) bool {
		n, ok := c.universe.Network(id)
		return ok && n.Purpose == purpose
	})
}

func portRefs(ports []EffectivePort) []PortRef {
	return lo.Map(ports, func(p EffectivePort, _ int) PortRef { return p.Ref })
}

func networkNames(refs []NetworkRef) []string {
	return lo.Map(refs, func(r NetworkRef, _ int) string { return r.Name })
}

func poeTag(ports []EffectivePort) string {
	on := lo.CountBy(ports, func(p EffectivePort) bool { return p.PoE.On() })
	switch {
	case on == 0:
		return poeTagOff
	case on == len(ports):
		return poeTagOn
	default:
		return poeTagMixed
	}
}

func profileSpeed(p *models.PortProfile) string {
	if p.ForcesSpeed() {
		return ForcedSpeed(p.Speed).String()
	}
	return AutoSpeed().String()
}

func pluralPorts(n int) string {
	if n == 1 {
		return "port"
	}
	return "ports"
}

func suggestionID(s ConsolidationSuggestion, groupKey string) string {
	keys := lo.Map(s.Ports, func(r PortRef, _ int) string { return endpointKey(r) })
	return findingID("suggestion", string(s.Category), string(s.Type), s.ProfileID, s.ProfileName, groupKey, strings.Join(keys, ","))
}
