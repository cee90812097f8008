package models

import (
	"github.com/braunma/switchport-audit/internal/constants"
)

// NetworkConfig represents a controller network (VLAN) definition
type NetworkConfig struct {
	ID          string `yaml:"_id" json:"_id" validate:"required"`
	Name        string `yaml:"name" json:"name" validate:"required"`
	VlanTag     int    `yaml:"vlan,omitempty" json:"vlan,omitempty"`
	Purpose     string `yaml:"purpose,omitempty" json:"purpose,omitempty"`
	VlanEnabled *bool  `yaml:"vlan_enabled,omitempty" json:"vlan_enabled,omitempty"`
}

// IsVlanBearing reports whether the network carries a usable VLAN tag
func (n *NetworkConfig) IsVlanBearing() bool {
	if n.VlanEnabled != nil && !*n.VlanEnabled {
		return false
	}
	return n.VlanTag > 0
}

// IsRoutedOnly reports whether the network purpose keeps it off switch trunks
func (n *NetworkConfig) IsRoutedOnly() bool {
	for _, purpose := range constants.ExcludedPurposes {
		if n.Purpose == purpose {
			return true
		}
	}
	return false
}
