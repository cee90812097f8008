package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/braunma/switchport-audit/internal/constants"
	"github.com/braunma/switchport-audit/pkg/models"
)

func TestNewUniverse(t *testing.T) {
	networks := append(testNetworks(),
		models.NetworkConfig{ID: "n10", Name: "Corp duplicate", VlanTag: 10},
		models.NetworkConfig{ID: "n-off", Name: "Disabled VLAN", VlanTag: 50, VlanEnabled: boolPtr(false)},
		models.NetworkConfig{ID: "", Name: "No ID", VlanTag: 60},
	)

	u := NewUniverse(networks)

	assert.Equal(t, 3, u.Len())
	assert.Equal(t, []string{"n10", "n20", "n30"}, u.Without(nil).IDs())

	n, ok := u.Network("n10")
	require.True(t, ok)
	assert.Equal(t, "Corp", n.Name)

	_, ok = u.Network("n-wan")
	assert.False(t, ok, "WAN networks stay out of the universe")
}

func TestUniverseWithout(t *testing.T) {
	u := NewUniverse(testNetworks())

	tests := []struct {
		name     string
		excluded []string
		expected []string
	}{
		{"nil allows all", nil, []string{"n10", "n20", "n30"}},
		{"empty allows all", []string{}, []string{"n10", "n20", "n30"}},
		{"one excluded", []string{"n20"}, []string{"n10", "n30"}},
		{"unknown ignored", []string{"n99", "n-wan"}, []string{"n10", "n20", "n30"}},
		{"untagged ignored", []string{"n-default"}, []string{"n10", "n20", "n30"}},
		{"all excluded", []string{"n30", "n10", "n20"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sig := u.Without(tt.excluded)
			assert.Equal(t, tt.expected, sig.IDs())
		})
	}
}

func TestVlanSignatureEquality(t *testing.T) {
	u := NewUniverse(testNetworks())

	a := u.Without([]string{"n20"})
	b := u.Without([]string{"n20", "n99"})
	c := u.Without([]string{"n30"})

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.True(t, a.Contains("n10"))
	assert.False(t, a.Contains("n20"))
	assert.Equal(t, 2, a.Len())

	refs := a.Refs(u)
	require.Len(t, refs, 2)
	assert.Equal(t, NetworkRef{ID: "n30", Name: "Guest", VlanTag: 30}, refs[1])
}

func TestResolve(t *testing.T) {
	u := NewUniverse(testNetworks())
	profiles := IndexProfiles([]models.PortProfile{
		trunkProfile("p-no-guest", "No Guest", "n30"),
	})

	tests := []struct {
		name      string
		port      models.Port
		trunk     bool
		signature []string
	}{
		{"allow all", trunkPort(1), true, []string{"n10", "n20", "n30"}},
		{"per port exclusion", trunkPort(2, "n10"), true, []string{"n20", "n30"}},
		{"profile exclusion wins", withProfile(trunkPort(3, "n10"), "p-no-guest"), true, []string{"n10", "n20"}},
		{"unknown profile ignored", withProfile(trunkPort(4, "n10"), "p-missing"), true, []string{"n20", "n30"}},
		{"access port", accessPort(5, "n10"), false, nil},
		{"customize block all", models.Port{Index: 6, Forward: constants.ForwardCustomize, TaggedVlanMgmt: constants.TaggedVlanBlockAll}, false, nil},
	}

	d := device("aa:bb:cc:00:00:01", "sw1")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sig, ok := Resolve(&d, &tt.port, profiles, u)
			assert.Equal(t, tt.trunk, ok)
			if tt.trunk {
				assert.Equal(t, tt.signature, sig.IDs())
			}
		})
	}
}

func TestProfileSignature(t *testing.T) {
	u := NewUniverse(testNetworks())

	p := trunkProfile("p1", "Trunk", "n20")
	sig, ok := ProfileSignature(&p, u)
	require.True(t, ok)
	assert.Equal(t, []string{"n10", "n30"}, sig.IDs())

	disabled := models.PortProfile{ID: "p2", Name: "Off", Forward: constants.ForwardDisabled}
	_, ok = ProfileSignature(&disabled, u)
	assert.False(t, ok)

	_, ok = ProfileSignature(nil, u)
	assert.False(t, ok)
}
