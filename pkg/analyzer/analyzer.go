package analyzer

import (
	"github.com/braunma/switchport-audit/pkg/models"
	"github.com/braunma/switchport-audit/pkg/utils"
)

// Analyzer runs the trunk consistency and profile consolidation checks over a snapshot
type Analyzer struct {
	thresholds Thresholds
	rules      []PortRule
	logger     *utils.Logger
}

// NewAnalyzer creates an analyzer; a nil logger disables debug tracing
func NewAnalyzer(thresholds Thresholds, logger *utils.Logger) *Analyzer {
	t := thresholds.Merge()
	return &Analyzer{
		thresholds: t,
		rules:      DefaultPortRules(t),
		logger:     logger,
	}
}

// Thresholds returns the effective thresholds
func (a *Analyzer) Thresholds() Thresholds {
	return a.thresholds
}

// AddRule appends a rule to the port rule list
func (a *Analyzer) AddRule(rule PortRule) {
	a.rules = append(a.rules, rule)
}

// Analyze produces the findings for one snapshot. It never mutates the
// snapshot and returns an empty result for empty or nil input.
func (a *Analyzer) Analyze(snap *models.Snapshot) *Result {
	result := &Result{}
	if snap == nil {
		return result
	}

	universe := NewUniverse(snap.Networks)
	profiles := IndexProfiles(snap.PortProfiles)
	ports := EffectivePorts(snap.Devices, profiles)

	a.traceRepeatedPorts(snap.Devices)

	// Ports of devices without a MAC never sit on a discovered link.
	signatures := make(SignatureSet)
	trunks := 0
	for _, p := range ports {
		sig, ok := p.Signature(universe)
		if !ok {
			continue
		}
		trunks++
		if p.Ref.DeviceMAC != "" {
			signatures.Add(p.Ref, sig)
		}
	}

	result.Stats = Stats{
		Devices:           len(snap.Devices),
		Ports:             len(ports),
		TrunkCandidates:   trunks,
		CandidateNetworks: universe.Len(),
	}
	a.logger.Debug("Candidate universe: %d networks, %d trunk candidates", universe.Len(), trunks)

	discovery := DiscoverTrunkLinks(snap.Devices, profiles, a.logger)
	result.Links = discovery.Links
	result.Stats.LinksDiscovered = len(discovery.Links)
	result.Stats.UplinksMissingPeer = discovery.MissingPeer
	result.Stats.UplinksNoPeerPort = discovery.NoPeerPort
	result.Stats.UplinksNotTrunk = discovery.NotTrunk

	result.Mismatches = DetectMismatches(discovery.Links, signatures, universe)

	result.Suggestions = append(result.Suggestions, ClusterPortProfiles(ports, profiles, universe, a.thresholds, a.logger)...)
	result.Suggestions = append(result.Suggestions, DisabledPortSuggestions(ports, profiles, a.thresholds)...)
	result.Suggestions = append(result.Suggestions, AccessPortSuggestions(ports, profiles, snap.Networks, a.thresholds)...)

	result.PortFindings = EvaluatePortRules(ports, universe, a.rules)

	return result
}

func (a *Analyzer) traceRepeatedPorts(devices []models.Device) {
	if !a.logger.Verbose() {
		return
	}
	for i := range devices {
		d := &devices[i]
		for j := range d.Ports {
			if isRepeatedPort(d, j) {
				a.logger.Debug("Ignoring repeated port %d on %s", d.Ports[j].Index, d.DisplayName())
			}
		}
	}
}
