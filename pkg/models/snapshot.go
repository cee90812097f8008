package models

// Snapshot is one point-in-time export of a site's switching configuration
type Snapshot struct {
	Devices      []Device        `yaml:"devices" json:"devices"`
	PortProfiles []PortProfile   `yaml:"port_profiles" json:"port_profiles"`
	Networks     []NetworkConfig `yaml:"networks" json:"networks"`
}

// PortCount returns the number of ports across all devices
func (s *Snapshot) PortCount() int {
	total := 0
	for _, d := range s.Devices {
		total += len(d.Ports)
	}
	return total
}
