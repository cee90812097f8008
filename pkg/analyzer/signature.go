package analyzer

import (
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/braunma/switchport-audit/pkg/models"
)

// Universe is the set of networks eligible for VLAN analysis: VLAN-bearing
// (tag > 0) and not WAN or site-VPN. It is ordered by VLAN tag, then ID.
type Universe struct {
	networks []models.NetworkConfig
	byID     map[string]models.NetworkConfig
}

// NewUniverse filters the snapshot networks down to the candidate universe
func NewUniverse(networks []models.NetworkConfig) Universe {
	candidates := lo.Filter(networks, func(n models.NetworkConfig, _ int) bool {
		return n.ID != "" && n.IsVlanBearing() && !n.IsRoutedOnly()
	})
	candidates = lo.UniqBy(candidates, func(n models.NetworkConfig) string { return n.ID })
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].VlanTag != candidates[j].VlanTag {
			return candidates[i].VlanTag < candidates[j].VlanTag
		}
		return candidates[i].ID < candidates[j].ID
	})

	return Universe{
		networks: candidates,
		byID:     lo.KeyBy(candidates, func(n models.NetworkConfig) string { return n.ID }),
	}
}

// Len returns the number of candidate networks
func (u Universe) Len() int {
	return len(u.networks)
}

// Network returns a candidate network by ID
func (u Universe) Network(id string) (models.NetworkConfig, bool) {
	n, ok := u.byID[id]
	return n, ok
}

// Ref returns the finding reference of a candidate network
func (u Universe) Ref(id string) NetworkRef {
	n, ok := u.byID[id]
	if !ok {
		return NetworkRef{ID: id, Name: id}
	}
	return NetworkRef{ID: n.ID, Name: n.Name, VlanTag: n.VlanTag}
}

// Without returns the universe minus the excluded IDs. Unknown IDs are ignored;
// a nil or empty list means every candidate network is allowed.
func (u Universe) Without(excluded []string) VlanSignature {
	skip := make(map[string]bool, len(excluded))
	for _, id := range excluded {
		skip[id] = true
	}

	ids := make([]string, 0, len(u.networks))
	for _, n := range u.networks {
		if !skip[n.ID] {
			ids = append(ids, n.ID)
		}
	}
	return VlanSignature{ids: ids}
}

// VlanSignature is the set of candidate network IDs a port effectively carries
type VlanSignature struct {
	ids []string
}

// IDs returns a copy of the network IDs in universe order
func (s VlanSignature) IDs() []string {
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

// Len returns the number of networks in the signature
func (s VlanSignature) Len() int {
	return len(s.ids)
}

// Contains reports whether the signature carries the network
func (s VlanSignature) Contains(id string) bool {
	return lo.Contains(s.ids, id)
}

// Key returns a stable string identity for grouping
func (s VlanSignature) Key() string {
	return strings.Join(s.ids, ",")
}

// Equal reports whether both signatures carry the same networks
func (s VlanSignature) Equal(other VlanSignature) bool {
	return s.Key() == other.Key()
}

// Refs returns the finding references of the signature networks
func (s VlanSignature) Refs(u Universe) []NetworkRef {
	return lo.Map(s.ids, func(id string, _ int) NetworkRef { return u.Ref(id) })
}

// Resolve computes the VLAN signature of a port after merging its assigned profile.
// The second return value is false when the port is not a trunk candidate.
func Resolve(device *models.Device, port *models.Port, profiles ProfileIndex, universe Universe) (VlanSignature, bool) {
	eff := ResolveEffective(device, port, profiles.Lookup(port.PortProfileID))
	return eff.Signature(universe)
}

// ProfileSignature computes the VLAN signature a profile would give a port.
// The second return value is false when the profile does not describe a trunk.
func ProfileSignature(profile *models.PortProfile, universe Universe) (VlanSignature, bool) {
	if profile == nil || !isTrunk(profile.Forward, profile.TaggedVlanMgmt) {
		return VlanSignature{}, false
	}
	return universe.Without(profile.ExcludedNetworkIDs), true
}
