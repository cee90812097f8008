package analyzer

// Confidence grades how likely a trunk mismatch is a misconfiguration
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

func (c Confidence) rank() int {
	switch c {
	case ConfidenceHigh:
		return 2
	case ConfidenceMedium:
		return 1
	default:
		return 0
	}
}

// Severity grades how strongly a suggestion should be acted on
type Severity string

const (
	SeverityInfo           Severity = "info"
	SeverityRecommendation Severity = "recommendation"
)

// SuggestionType is the action a consolidation suggestion proposes
type SuggestionType string

const (
	SuggestionExtendUsage   SuggestionType = "extend-usage"
	SuggestionApplyExisting SuggestionType = "apply-existing"
	SuggestionCreateNew     SuggestionType = "create-new"
)

// SuggestionCategory tells which detector produced a suggestion
type SuggestionCategory string

const (
	CategoryTrunk              SuggestionCategory = "trunk"
	CategoryDisabled           SuggestionCategory = "disabled"
	CategoryAccessUnrestricted SuggestionCategory = "access-unrestricted"
)

// Side names one end of a trunk link
type Side string

const (
	SideA Side = "a"
	SideB Side = "b"
)

// PortRef identifies a port in findings without referencing the snapshot
type PortRef struct {
	DeviceMAC     string `yaml:"device_mac" json:"device_mac"`
	DeviceName    string `yaml:"device_name" json:"device_name"`
	PortIndex     int    `yaml:"port_idx" json:"port_idx"`
	PortName      string `yaml:"port_name" json:"port_name"`
	PortProfileID string `yaml:"portconf_id,omitempty" json:"portconf_id,omitempty"`
}

// TrunkLink is an undirected pairing of two linked trunk ports.
// A is the upstream device (the uplink target), B the device declaring the uplink.
type TrunkLink struct {
	A PortRef `yaml:"a" json:"a"`
	B PortRef `yaml:"b" json:"b"`
}

// Key returns the order-independent identity of the link
func (l TrunkLink) Key() string {
	return pairKey(l.A, l.B)
}

// NetworkRef identifies a network in findings
type NetworkRef struct {
	ID      string `yaml:"id" json:"id"`
	Name    string `yaml:"name" json:"name"`
	VlanTag int    `yaml:"vlan" json:"vlan"`
}

// VlanMismatch is one VLAN carried by only one side of a trunk link
type VlanMismatch struct {
	Network        NetworkRef `yaml:"network" json:"network"`
	MissingOn      Side       `yaml:"missing_on" json:"missing_on"`
	MissingDevice  string     `yaml:"missing_device" json:"missing_device"`
	TrunkShare     float64    `yaml:"trunk_share" json:"trunk_share"`
	Confidence     Confidence `yaml:"confidence" json:"confidence"`
	Recommendation string     `yaml:"recommendation" json:"recommendation"`
}

// MismatchIssue reports asymmetric VLANs on one trunk link
type MismatchIssue struct {
	ID         string         `yaml:"id" json:"id"`
	Link       TrunkLink      `yaml:"link" json:"link"`
	Mismatches []VlanMismatch `yaml:"mismatches" json:"mismatches"`
	Confidence Confidence     `yaml:"confidence" json:"confidence"`
}

// ConsolidationSuggestion proposes a shared port profile for a group of ports
type ConsolidationSuggestion struct {
	ID           string             `yaml:"id" json:"id"`
	Category     SuggestionCategory `yaml:"category" json:"category"`
	Type         SuggestionType     `yaml:"type" json:"type"`
	Severity     Severity           `yaml:"severity" json:"severity"`
	ProfileID    string             `yaml:"profile_id,omitempty" json:"profile_id,omitempty"`
	ProfileName  string             `yaml:"profile_name" json:"profile_name"`
	Ports        []PortRef          `yaml:"ports" json:"ports"`
	AlreadyUsing int                `yaml:"already_using" json:"already_using"`
	NotUsing     int                `yaml:"not_using" json:"not_using"`
	Networks     []NetworkRef       `yaml:"networks,omitempty" json:"networks,omitempty"`
	PoE          string             `yaml:"poe,omitempty" json:"poe,omitempty"`
	Speed        string             `yaml:"speed,omitempty" json:"speed,omitempty"`
	Message      string             `yaml:"message" json:"message"`
}

// PortFinding is a single-port observation produced by the port rule list
type PortFinding struct {
	ID       string   `yaml:"id" json:"id"`
	Rule     string   `yaml:"rule" json:"rule"`
	Port     PortRef  `yaml:"port" json:"port"`
	Severity Severity `yaml:"severity" json:"severity"`
	Message  string   `yaml:"message" json:"message"`
}

// Stats summarizes the inputs and discovery outcome of one run
type Stats struct {
	Devices            int `yaml:"devices" json:"devices"`
	Ports              int `yaml:"ports" json:"ports"`
	TrunkCandidates    int `yaml:"trunk_candidates" json:"trunk_candidates"`
	CandidateNetworks  int `yaml:"candidate_networks" json:"candidate_networks"`
	LinksDiscovered    int `yaml:"links_discovered" json:"links_discovered"`
	UplinksMissingPeer int `yaml:"uplinks_missing_peer" json:"uplinks_missing_peer"`
	UplinksNoPeerPort  int `yaml:"uplinks_no_peer_port" json:"uplinks_no_peer_port"`
	UplinksNotTrunk    int `yaml:"uplinks_not_trunk" json:"uplinks_not_trunk"`
}

// Result is the immutable output of one analysis run
type Result struct {
	Stats        Stats                     `yaml:"stats" json:"stats"`
	Links        []TrunkLink               `yaml:"links" json:"links"`
	Mismatches   []MismatchIssue           `yaml:"mismatches" json:"mismatches"`
	Suggestions  []ConsolidationSuggestion `yaml:"suggestions" json:"suggestions"`
	PortFindings []PortFinding             `yaml:"port_findings" json:"port_findings"`
}
