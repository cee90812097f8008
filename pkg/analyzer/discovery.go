package analyzer

import (
	"fmt"
	"sort"

	"github.com/sourcegraph/conc/iter"

	"github.com/braunma/switchport-audit/pkg/models"
	"github.com/braunma/switchport-audit/pkg/utils"
)

// Discovery is the outcome of trunk link discovery
type Discovery struct {
	Links       []TrunkLink
	MissingPeer int
	NoPeerPort  int
	NotTrunk    int
}

type uplinkStatus int

const (
	uplinkNone uplinkStatus = iota
	uplinkFound
	uplinkMissingPeer
	uplinkNoPeerPort
	uplinkNotTrunk
)

type uplinkResult struct {
	status uplinkStatus
	link   TrunkLink
	detail string
}

// DiscoverTrunkLinks pairs each device's uplink port with the port it lands on
// at the upstream device. Devices are resolved in parallel and merged in input
// order; links are deduplicated by their unordered endpoint pair and returned
// sorted by that key.
func DiscoverTrunkLinks(devices []models.Device, profiles ProfileIndex, logger *utils.Logger) Discovery {
	byMAC := make(map[string]*models.Device, len(devices))
	for i := range devices {
		mac := utils.NormalizeMAC(devices[i].MAC)
		if mac == "" {
			continue
		}
		if _, exists := byMAC[mac]; !exists {
			byMAC[mac] = &devices[i]
		}
	}

	results := iter.Map(devices, func(d *models.Device) uplinkResult {
		return resolveUplink(d, byMAC, profiles)
	})

	var out Discovery
	seen := make(map[string]bool)
	for _, r := range results {
		switch r.status {
		case uplinkFound:
			key := r.link.Key()
			if seen[key] {
				logger.Debug("Trunk link %s already discovered from the other side", key)
				continue
			}
			seen[key] = true
			out.Links = append(out.Links, r.link)
		case uplinkMissingPeer:
			out.MissingPeer++
			logger.Debug("Skipping uplink: %s", r.detail)
		case uplinkNoPeerPort:
			out.NoPeerPort++
			logger.Debug("Skipping uplink: %s", r.detail)
		case uplinkNotTrunk:
			out.NotTrunk++
			logger.Debug("Skipping uplink: %s", r.detail)
		}
	}

	sort.Slice(out.Links, func(i, j int) bool {
		return out.Links[i].Key() < out.Links[j].Key()
	})
	return out
}

// resolveUplink finds the trunk link declared by one device, if any
func resolveUplink(d *models.Device, byMAC map[string]*models.Device, profiles ProfileIndex) uplinkResult {
	if d.Uplink == nil {
		return uplinkResult{status: uplinkNone}
	}

	ownMAC := utils.NormalizeMAC(d.MAC)
	if ownMAC == "" {
		return uplinkResult{
			status: uplinkMissingPeer,
			detail: fmt.Sprintf("%s has no MAC address", d.DisplayName()),
		}
	}
	peerMAC := utils.NormalizeMAC(d.Uplink.MAC)
	peer, ok := byMAC[peerMAC]
	if !ok || peerMAC == ownMAC {
		return uplinkResult{
			status: uplinkMissingPeer,
			detail: fmt.Sprintf("%s uplinks to unknown device %q", d.DisplayName(), d.Uplink.MAC),
		}
	}

	local, ok := localUplinkPort(d)
	if !ok {
		return uplinkResult{
			status: uplinkNoPeerPort,
			detail: fmt.Sprintf("%s has no port table", d.DisplayName()),
		}
	}

	remote, ok := peer.PortByIndex(d.Uplink.RemotePort)
	if !ok {
		return uplinkResult{
			status: uplinkNoPeerPort,
			detail: fmt.Sprintf("%s has no port %d (uplink of %s)", peer.DisplayName(), d.Uplink.RemotePort, d.DisplayName()),
		}
	}

	localEff := ResolveEffective(d, local, profiles.Lookup(local.PortProfileID))
	remoteEff := ResolveEffective(peer, remote, profiles.Lookup(remote.PortProfileID))
	if !localEff.IsTrunkCandidate() || !remoteEff.IsTrunkCandidate() {
		return uplinkResult{
			status: uplinkNotTrunk,
			detail: fmt.Sprintf("%s [%s] <-> %s [%s] is not a trunk on both sides",
				d.DisplayName(), local.Label(), peer.DisplayName(), remote.Label()),
		}
	}

	return uplinkResult{
		status: uplinkFound,
		link:   TrunkLink{A: remoteEff.Ref, B: localEff.Ref},
	}
}

// localUplinkPort picks the port a device uses toward its uplink: the port
// flagged as uplink, else one named "uplink", else the highest-index port.
func localUplinkPort(d *models.Device) (*models.Port, bool) {
	if len(d.Ports) == 0 {
		return nil, false
	}

	for i := range d.Ports {
		if d.Ports[i].IsUplink {
			return &d.Ports[i], true
		}
	}

	for i := range d.Ports {
		if utils.ContainsFold(d.Ports[i].Name, "uplink") {
			return &d.Ports[i], true
		}
	}

	highest := &d.Ports[0]
	for i := range d.Ports {
		if d.Ports[i].Index > highest.Index {
			highest = &d.Ports[i]
		}
	}
	return highest, true
}

// endpointKey identifies one end of a link
func endpointKey(r PortRef) string {
	return fmt.Sprintf("%s:%d", r.DeviceMAC, r.PortIndex)
}

// pairKey creates a canonical identifier for a port pair (order-independent)
func pairKey(a, b PortRef) string {
	ids := []string{endpointKey(a), endpointKey(b)}
	sort.Strings(ids)
	return fmt.Sprintf("%s <-> %s", ids[0], ids[1])
}
