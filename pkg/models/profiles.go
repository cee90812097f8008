package models

// PortProfile represents a reusable port configuration template.
// Empty strings and nil pointers mean the profile leaves that setting to the port.
type PortProfile struct {
	ID                 string   `yaml:"_id" json:"_id" validate:"required"`
	Name               string   `yaml:"name" json:"name" validate:"required"`
	Forward            string   `yaml:"forward,omitempty" json:"forward,omitempty"`
	TaggedVlanMgmt     string   `yaml:"tagged_vlan_mgmt,omitempty" json:"tagged_vlan_mgmt,omitempty"`
	NativeNetworkID    string   `yaml:"native_networkconf_id,omitempty" json:"native_networkconf_id,omitempty"`
	ExcludedNetworkIDs []string `yaml:"excluded_networkconf_ids,omitempty" json:"excluded_networkconf_ids,omitempty"`
	PoEMode            string   `yaml:"poe_mode,omitempty" json:"poe_mode,omitempty"`
	Autoneg            *bool    `yaml:"autoneg,omitempty" json:"autoneg,omitempty"`
	Speed              int      `yaml:"speed,omitempty" json:"speed,omitempty"`
}

// ForcesSpeed reports whether the profile pins a fixed link speed
func (p *PortProfile) ForcesSpeed() bool {
	return p.Autoneg != nil && !*p.Autoneg && p.Speed > 0
}

// DefinesSpeed reports whether the profile overrides the port's speed settings
func (p *PortProfile) DefinesSpeed() bool {
	return p.Autoneg != nil
}
