package constants

// Port forwarding modes
const (
	ForwardNative    = "native"
	ForwardCustomize = "customize"
	ForwardDisabled  = "disabled"
)

// Tagged VLAN management modes
const (
	TaggedVlanBlockAll = "block_all"
	TaggedVlanCustom   = "custom"
)

// Network purposes
const (
	PurposeCorporate = "corporate"
	PurposeGuest     = "guest"
	PurposeWAN       = "wan"
	PurposeSiteVPN   = "site-vpn"
)

// Profile PoE modes
const (
	PoEModeAuto = "auto"
	PoEModeOff  = "off"
)

// Device kinds
const (
	DeviceKindSwitch      = "switch"
	DeviceKindGateway     = "gateway"
	DeviceKindAccessPoint = "access-point"
)

// Analysis thresholds
const (
	// Trunk ports carrying more than this many VLANs via per-port override are flagged.
	VlanOverrideTrigger = 2
	// Smallest group that may become a profile suggestion.
	MinClusterSize = 2
	// Disabled ports needed before a dedicated disabled profile is suggested.
	DisabledPortThreshold = 5
	// Access ports on one network without MAC restriction before a suggestion is raised.
	AccessPortThreshold = 5
	// CreateNew / ApplyExisting groups at or above this size are graded Recommendation.
	RecommendationPortCount = 5
	// ExtendUsage groups with at least this many ports not yet on the profile are graded Recommendation.
	RecommendationExtendCount = 3
)

// Environment variables
const (
	EnvSnapshot = "SWITCHPORT_AUDIT_SNAPSHOT"
)

// Snapshot folders, relative to the snapshot root
const (
	FolderDevices      = "devices"
	FolderPortProfiles = "port_profiles"
	FolderNetworks     = "networks"
)

// Namespace for deterministic finding IDs
const FindingNamespace = "6f1c2a7e-3b8d-5e41-9a0c-2d7b4e8f1a63"

// Networks whose purpose removes them from VLAN analysis
var ExcludedPurposes = []string{
	PurposeWAN,
	PurposeSiteVPN,
}
