package analyzer

import (
	"sort"

	"github.com/braunma/switchport-audit/internal/constants"
	"github.com/braunma/switchport-audit/pkg/models"
	"github.com/braunma/switchport-audit/pkg/utils"
)

// PoEState is the power-delivery state of a port
type PoEState string

const (
	PoEEnabled         PoEState = "enabled"
	PoECapableDisabled PoEState = "capable-disabled"
	PoEIncapable       PoEState = "incapable"
)

// On reports whether the port delivers power. Capable-but-disabled and
// incapable ports are the same for grouping: both need PoE off.
func (s PoEState) On() bool {
	return s == PoEEnabled
}

// SpeedConstraint is either autoneg (any speed) or a forced link speed in Mbps
type SpeedConstraint struct {
	Autoneg bool
	Speed   int
}

// AutoSpeed returns the autoneg constraint
func AutoSpeed() SpeedConstraint {
	return SpeedConstraint{Autoneg: true}
}

// ForcedSpeed returns a fixed-speed constraint
func ForcedSpeed(mbps int) SpeedConstraint {
	return SpeedConstraint{Speed: mbps}
}

// String renders "auto" or the forced speed ("10G")
func (c SpeedConstraint) String() string {
	if c.Autoneg {
		return "auto"
	}
	return utils.FormatSpeed(c.Speed)
}

// Admits reports whether a port currently linked at linkSpeed fits this constraint
func (c SpeedConstraint) Admits(linkSpeed int) bool {
	return c.Autoneg || c.Speed == linkSpeed
}

// ProfileIndex looks up port profiles by ID
type ProfileIndex map[string]*models.PortProfile

// IndexProfiles builds a profile index; later duplicates of an ID are ignored
func IndexProfiles(profiles []models.PortProfile) ProfileIndex {
	idx := make(ProfileIndex, len(profiles))
	for i := range profiles {
		p := &profiles[i]
		if p.ID == "" {
			continue
		}
		if _, exists := idx[p.ID]; !exists {
			idx[p.ID] = p
		}
	}
	return idx
}

// Lookup returns the profile for an ID, or nil when unset or unknown
func (idx ProfileIndex) Lookup(id string) *models.PortProfile {
	if id == "" {
		return nil
	}
	return idx[id]
}

// Sorted returns the profiles ordered by name, then ID
func (idx ProfileIndex) Sorted() []*models.PortProfile {
	out := make([]*models.PortProfile, 0, len(idx))
	for _, p := range idx {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// EffectivePort is a port's configuration after its profile has been merged in
type EffectivePort struct {
	Ref                PortRef
	Port               *models.Port
	Profile            *models.PortProfile
	Forward            string
	TaggedVlanMgmt     string
	NativeNetworkID    string
	ExcludedNetworkIDs []string
	PoE                PoEState
	Speed              SpeedConstraint
	LinkSpeed          int
}

// ResolveEffective merges a port with its assigned profile (nil for none).
// Every setting the profile defines wins over the port's own value. A profile
// that sets the forward mode also owns the excluded-network list.
func ResolveEffective(device *models.Device, port *models.Port, profile *models.PortProfile) EffectivePort {
	eff := EffectivePort{
		Ref: PortRef{
			DeviceMAC:     utils.NormalizeMAC(device.MAC),
			DeviceName:    device.DisplayName(),
			PortIndex:     port.Index,
			PortName:      port.Label(),
			PortProfileID: port.PortProfileID,
		},
		Port:               port,
		Profile:            profile,
		Forward:            port.Forward,
		TaggedVlanMgmt:     port.TaggedVlanMgmt,
		NativeNetworkID:    port.NativeNetworkID,
		ExcludedNetworkIDs: port.ExcludedNetworkIDs,
		LinkSpeed:          port.Speed,
	}

	if port.Autoneg {
		eff.Speed = AutoSpeed()
	} else {
		eff.Speed = ForcedSpeed(port.Speed)
	}

	poeMode := ""
	if profile != nil {
		if profile.Forward != "" {
			eff.Forward = profile.Forward
			eff.ExcludedNetworkIDs = profile.ExcludedNetworkIDs
		} else if profile.ExcludedNetworkIDs != nil {
			eff.ExcludedNetworkIDs = profile.ExcludedNetworkIDs
		}
		if profile.TaggedVlanMgmt != "" {
			eff.TaggedVlanMgmt = profile.TaggedVlanMgmt
		}
		if profile.NativeNetworkID != "" {
			eff.NativeNetworkID = profile.NativeNetworkID
		}
		if profile.DefinesSpeed() {
			if *profile.Autoneg {
				eff.Speed = AutoSpeed()
			} else {
				eff.Speed = ForcedSpeed(profile.Speed)
			}
		}
		poeMode = profile.PoEMode
	}

	switch {
	case !port.PoECapable:
		eff.PoE = PoEIncapable
	case poeMode == constants.PoEModeOff:
		eff.PoE = PoECapableDisabled
	case poeMode != "":
		eff.PoE = PoEEnabled
	case port.PoEEnabled:
		eff.PoE = PoEEnabled
	default:
		eff.PoE = PoECapableDisabled
	}

	return eff
}

// IsTrunkCandidate reports whether the port carries a custom set of tagged VLANs
func (e EffectivePort) IsTrunkCandidate() bool {
	return isTrunk(e.Forward, e.TaggedVlanMgmt)
}

// AllowsAllVlans reports whether the excluded list is empty ("allow all")
func (e EffectivePort) AllowsAllVlans() bool {
	return len(e.ExcludedNetworkIDs) == 0
}

// Signature returns the VLAN signature, or false when the port is not a trunk candidate
func (e EffectivePort) Signature(u Universe) (VlanSignature, bool) {
	if !e.IsTrunkCandidate() {
		return VlanSignature{}, false
	}
	return u.Without(e.ExcludedNetworkIDs), true
}

// UsesProfile reports whether the port currently references the profile
func (e EffectivePort) UsesProfile(id string) bool {
	return id != "" && e.Port.PortProfileID == id
}

func isTrunk(forward, taggedVlanMgmt string) bool {
	return forward == constants.ForwardCustomize && taggedVlanMgmt == constants.TaggedVlanCustom
}
