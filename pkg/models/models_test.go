package models

import (
	"testing"
)

func TestPortLabel(t *testing.T) {
	tests := []struct {
		name     string
		port     Port
		expected string
	}{
		{
			name:     "named port",
			port:     Port{Index: 3, Name: "Uplink SFP+"},
			expected: "Uplink SFP+",
		},
		{
			name:     "unnamed port",
			port:     Port{Index: 12},
			expected: "Port 12",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.port.Label()
			if result != tt.expected {
				t.Errorf("Port.Label() = %q, expected %q", result, tt.expected)
			}
		})
	}
}

func TestDeviceDisplayName(t *testing.T) {
	tests := []struct {
		name     string
		device   Device
		expected string
	}{
		{
			name:     "named device",
			device:   Device{MAC: "aa:bb:cc:00:00:01", Name: "core-switch"},
			expected: "core-switch",
		},
		{
			name:     "blank name falls back to mac",
			device:   Device{MAC: "aa:bb:cc:00:00:02", Name: "  "},
			expected: "aa:bb:cc:00:00:02",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.device.DisplayName()
			if result != tt.expected {
				t.Errorf("Device.DisplayName() = %q, expected %q", result, tt.expected)
			}
		})
	}
}

func TestDevicePortByIndex(t *testing.T) {
	device := Device{
		MAC:   "aa:bb:cc:00:00:01",
		Ports: []Port{{Index: 1}, {Index: 2, Name: "eth2"}, {Index: 8}},
	}

	port, ok := device.PortByIndex(2)
	if !ok {
		t.Fatal("PortByIndex(2) not found")
	}
	if port.Name != "eth2" {
		t.Errorf("PortByIndex(2).Name = %q, expected %q", port.Name, "eth2")
	}

	if _, ok := device.PortByIndex(5); ok {
		t.Error("PortByIndex(5) should not be found")
	}

	empty := Device{MAC: "aa:bb:cc:00:00:03"}
	if _, ok := empty.PortByIndex(1); ok {
		t.Error("PortByIndex on empty port table should not be found")
	}
}

func TestNetworkConfigVlanBearing(t *testing.T) {
	disabled := false
	tests := []struct {
		name     string
		network  NetworkConfig
		expected bool
	}{
		{
			name:     "tagged network",
			network:  NetworkConfig{ID: "n1", VlanTag: 20},
			expected: true,
		},
		{
			name:     "default untagged network",
			network:  NetworkConfig{ID: "n2", VlanTag: 0},
			expected: false,
		},
		{
			name:     "negative tag",
			network:  NetworkConfig{ID: "n3", VlanTag: -1},
			expected: false,
		},
		{
			name:     "vlan explicitly disabled",
			network:  NetworkConfig{ID: "n4", VlanTag: 30, VlanEnabled: &disabled},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.network.IsVlanBearing()
			if result != tt.expected {
				t.Errorf("NetworkConfig.IsVlanBearing() = %v, expected %v", result, tt.expected)
			}
		})
	}
}

func TestNetworkConfigRoutedOnly(t *testing.T) {
	tests := []struct {
		purpose  string
		expected bool
	}{
		{purpose: "corporate", expected: false},
		{purpose: "guest", expected: false},
		{purpose: "wan", expected: true},
		{purpose: "site-vpn", expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.purpose, func(t *testing.T) {
			n := NetworkConfig{ID: "n", Purpose: tt.purpose, VlanTag: 10}
			if result := n.IsRoutedOnly(); result != tt.expected {
				t.Errorf("NetworkConfig.IsRoutedOnly() = %v, expected %v", result, tt.expected)
			}
		})
	}
}

func TestPortProfileSpeed(t *testing.T) {
	on, off := true, false

	forced := PortProfile{ID: "p1", Autoneg: &off, Speed: 10000}
	if !forced.ForcesSpeed() {
		t.Error("profile with autoneg=false and speed should force speed")
	}

	auto := PortProfile{ID: "p2", Autoneg: &on, Speed: 10000}
	if auto.ForcesSpeed() {
		t.Error("profile with autoneg=true should not force speed")
	}
	if !auto.DefinesSpeed() {
		t.Error("profile with autoneg set should define speed")
	}

	unset := PortProfile{ID: "p3"}
	if unset.DefinesSpeed() || unset.ForcesSpeed() {
		t.Error("profile without autoneg should leave speed to the port")
	}
}

func TestSnapshotPortCount(t *testing.T) {
	snap := Snapshot{
		Devices: []Device{
			{MAC: "a", Ports: []Port{{Index: 1}, {Index: 2}}},
			{MAC: "b"},
			{MAC: "c", Ports: []Port{{Index: 1}}},
		},
	}
	if got := snap.PortCount(); got != 3 {
		t.Errorf("Snapshot.PortCount() = %d, expected %d", got, 3)
	}
}
