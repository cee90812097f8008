package analyzer

import (
	"io"

	"github.com/braunma/switchport-audit/internal/constants"
	"github.com/braunma/switchport-audit/pkg/models"
	"github.com/braunma/switchport-audit/pkg/utils"
)

// testNetworks is the shared network set: three candidate VLANs plus
// networks that never enter the universe.
func testNetworks() []models.NetworkConfig {
	return []models.NetworkConfig{
		{ID: "n-default", Name: "Default", Purpose: constants.PurposeCorporate},
		{ID: "n30", Name: "Guest", VlanTag: 30, Purpose: constants.PurposeGuest},
		{ID: "n10", Name: "Corp", VlanTag: 10, Purpose: constants.PurposeCorporate},
		{ID: "n20", Name: "IoT", VlanTag: 20, Purpose: constants.PurposeCorporate},
		{ID: "n-wan", Name: "Internet", VlanTag: 100, Purpose: constants.PurposeWAN},
		{ID: "n-vpn", Name: "Branch", VlanTag: 200, Purpose: constants.PurposeSiteVPN},
	}
}

func trunkPort(idx int, excluded ...string) models.Port {
	return models.Port{
		Index:              idx,
		Forward:            constants.ForwardCustomize,
		TaggedVlanMgmt:     constants.TaggedVlanCustom,
		ExcludedNetworkIDs: excluded,
		Speed:              1000,
		Autoneg:            true,
	}
}

func poePort(p models.Port) models.Port {
	p.PoECapable = true
	p.PoEEnabled = true
	return p
}

func forcedPort(p models.Port, mbps int) models.Port {
	p.Autoneg = false
	p.Speed = mbps
	return p
}

func withProfile(p models.Port, id string) models.Port {
	p.PortProfileID = id
	return p
}

func accessPort(idx int, network string) models.Port {
	return models.Port{
		Index:           idx,
		Forward:         constants.ForwardNative,
		NativeNetworkID: network,
		Speed:           1000,
		Autoneg:         true,
	}
}

func disabledPort(idx int, poeCapable, poeEnabled bool) models.Port {
	return models.Port{
		Index:      idx,
		Forward:    constants.ForwardDisabled,
		PoECapable: poeCapable,
		PoEEnabled: poeEnabled,
	}
}

func device(mac, name string, ports ...models.Port) models.Device {
	return models.Device{MAC: mac, Name: name, Kind: constants.DeviceKindSwitch, Ports: ports}
}

func uplinked(d models.Device, mac string, remotePort int) models.Device {
	d.Uplink = &models.UplinkRef{MAC: mac, RemotePort: remotePort}
	return d
}

func trunkProfile(id, name string, excluded ...string) models.PortProfile {
	return models.PortProfile{
		ID:                 id,
		Name:               name,
		Forward:            constants.ForwardCustomize,
		TaggedVlanMgmt:     constants.TaggedVlanCustom,
		ExcludedNetworkIDs: excluded,
	}
}

func boolPtr(b bool) *bool {
	return &b
}

func effectivePorts(devices []models.Device, profiles []models.PortProfile) []EffectivePort {
	return EffectivePorts(devices, IndexProfiles(profiles))
}

func cluster(devices []models.Device, profiles []models.PortProfile) []ConsolidationSuggestion {
	universe := NewUniverse(testNetworks())
	idx := IndexProfiles(profiles)
	return ClusterPortProfiles(EffectivePorts(devices, idx), idx, universe, DefaultThresholds(), quietLogger())
}

func portIndexes(refs []PortRef) []int {
	out := make([]int, 0, len(refs))
	for _, r := range refs {
		out = append(out, r.PortIndex)
	}
	return out
}

func quietLogger() *utils.Logger {
	return utils.NewLoggerWithWriters(true, io.Discard, io.Discard)
}
