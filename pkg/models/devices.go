package models

import (
	"strconv"
	"strings"
)

// UplinkRef points at the device (and its port) that a device uplinks to
type UplinkRef struct {
	MAC        string `yaml:"uplink_mac" json:"uplink_mac"`
	RemotePort int    `yaml:"uplink_remote_port" json:"uplink_remote_port"`
}

// Port represents one entry of a device port table
type Port struct {
	Index              int      `yaml:"port_idx" json:"port_idx" validate:"required"`
	Name               string   `yaml:"name,omitempty" json:"name,omitempty"`
	Forward            string   `yaml:"forward,omitempty" json:"forward,omitempty"`
	TaggedVlanMgmt     string   `yaml:"tagged_vlan_mgmt,omitempty" json:"tagged_vlan_mgmt,omitempty"`
	NativeNetworkID    string   `yaml:"native_networkconf_id,omitempty" json:"native_networkconf_id,omitempty"`
	ExcludedNetworkIDs []string `yaml:"excluded_networkconf_ids,omitempty" json:"excluded_networkconf_ids,omitempty"`
	PortProfileID      string   `yaml:"portconf_id,omitempty" json:"portconf_id,omitempty"`
	PoECapable         bool     `yaml:"port_poe,omitempty" json:"port_poe,omitempty"`
	PoEEnabled         bool     `yaml:"poe_enabled,omitempty" json:"poe_enabled,omitempty"`
	Speed              int      `yaml:"speed,omitempty" json:"speed,omitempty"`
	Autoneg            bool     `yaml:"autoneg,omitempty" json:"autoneg,omitempty"`
	IsUplink           bool     `yaml:"is_uplink,omitempty" json:"is_uplink,omitempty"`
	PortSecurityMACs   []string `yaml:"port_security_mac_address,omitempty" json:"port_security_mac_address,omitempty"`
}

// HasMACRestriction reports whether the port only admits listed client MACs
func (p *Port) HasMACRestriction() bool {
	return len(p.PortSecurityMACs) > 0
}

// Label returns the port name, falling back to "Port <index>"
func (p *Port) Label() string {
	if p.Name != "" {
		return p.Name
	}
	return "Port " + strconv.Itoa(p.Index)
}

// Device represents an adopted network device and its port table
type Device struct {
	MAC    string     `yaml:"mac" json:"mac" validate:"required"`
	Name   string     `yaml:"name,omitempty" json:"name,omitempty"`
	Kind   string     `yaml:"type,omitempty" json:"type,omitempty"`
	Model  string     `yaml:"model,omitempty" json:"model,omitempty"`
	Ports  []Port     `yaml:"port_table,omitempty" json:"port_table,omitempty"`
	Uplink *UplinkRef `yaml:"uplink,omitempty" json:"uplink,omitempty"`
}

// DisplayName returns the device name, falling back to its MAC
func (d *Device) DisplayName() string {
	if strings.TrimSpace(d.Name) != "" {
		return d.Name
	}
	return d.MAC
}

// PortByIndex returns the port with the given index
func (d *Device) PortByIndex(index int) (*Port, bool) {
	for i := range d.Ports {
		if d.Ports[i].Index == index {
			return &d.Ports[i], true
		}
	}
	return nil, false
}
