package loader

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/braunma/switchport-audit/internal/constants"
	"github.com/braunma/switchport-audit/pkg/utils"
)

func TestDataLoaderInitialization(t *testing.T) {
	logger := utils.NewLogger(false)
	loader := NewDataLoader("/test/path", logger)

	if loader == nil {
		t.Fatal("NewDataLoader() returned nil")
	}

	if loader.logger == nil {
		t.Error("DataLoader logger is nil")
	}
}

// Integration test for the bundled example snapshot
func TestLoadExampleSnapshot(t *testing.T) {
	if _, err := os.Stat("../../example/devices"); os.IsNotExist(err) {
		t.Skip("Skipping integration test - example snapshot directory not found")
	}

	loader := NewDataLoader("../../example", quietLogger())
	snap, err := loader.LoadSnapshot(".")
	require.NoError(t, err)

	assert.Len(t, snap.Devices, 6)
	assert.Len(t, snap.PortProfiles, 3)
	assert.Len(t, snap.Networks, 7)

	t.Run("single object file", func(t *testing.T) {
		found := false
		for _, d := range snap.Devices {
			if d.Name == "gateway" {
				found = true
				assert.Equal(t, constants.DeviceKindGateway, d.Kind)
				assert.Len(t, d.Ports, 2)
			}
		}
		assert.True(t, found, "gateway not loaded")
	})

	t.Run("api envelope file", func(t *testing.T) {
		for _, p := range snap.PortProfiles {
			if p.ID == "prof-core-10g" {
				require.NotNil(t, p.Autoneg)
				assert.False(t, *p.Autoneg)
				assert.Equal(t, 10000, p.Speed)
				assert.True(t, p.ForcesSpeed())
				return
			}
		}
		t.Error("prof-core-10g not loaded")
	})

	t.Run("uplink references", func(t *testing.T) {
		for _, d := range snap.Devices {
			if d.Kind != constants.DeviceKindSwitch && d.Kind != constants.DeviceKindAccessPoint {
				continue
			}
			require.NotNil(t, d.Uplink, "device %s has no uplink", d.Name)
			assert.NotEmpty(t, d.Uplink.MAC)
		}
	})
}

func TestLoadSnapshotFile(t *testing.T) {
	dir := t.TempDir()
	content := `
devices:
  - mac: aa:bb:cc:00:00:01
    name: sw1
    port_table:
      - port_idx: 1
        forward: customize
        tagged_vlan_mgmt: custom
        excluded_networkconf_ids: [net-20]
port_profiles:
  - _id: p1
    name: Trunk
    forward: customize
networks:
  - _id: net-10
    name: Corp
    vlan: 10
  - _id: net-20
    name: IoT
    vlan: 20
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "snapshot.yaml"), []byte(content), 0o644))

	loader := NewDataLoader(dir, quietLogger())
	snap, err := loader.LoadSnapshot("snapshot.yaml")
	require.NoError(t, err)

	require.Len(t, snap.Devices, 1)
	require.Len(t, snap.Devices[0].Ports, 1)
	assert.Equal(t, []string{"net-20"}, snap.Devices[0].Ports[0].ExcludedNetworkIDs)
	assert.Len(t, snap.PortProfiles, 1)
	assert.Len(t, snap.Networks, 2)
}

func TestLoadFromFolderMixedFormats(t *testing.T) {
	dir := t.TempDir()
	networks := filepath.Join(dir, constants.FolderNetworks)
	require.NoError(t, os.MkdirAll(networks, 0o755))

	files := map[string]string{
		"a.yaml": "- _id: n1\n  name: One\n  vlan: 10\n",
		"b.json": `{"data": [{"_id": "n2", "name": "Two", "vlan": 20}]}`,
		"c.yml":  "_id: n3\nname: Three\nvlan: 30\n",
		"d.yaml": "",
		"e.txt":  "ignored",
	}
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(networks, name), []byte(body), 0o644))
	}

	loader := NewDataLoader(dir, quietLogger())
	loaded, err := loader.LoadNetworks(constants.FolderNetworks)
	require.NoError(t, err)

	ids := make([]string, 0, len(loaded))
	for _, n := range loaded {
		ids = append(ids, n.ID)
	}
	assert.Equal(t, []string{"n1", "n2", "n3"}, ids)
}

func TestLoadMissingFolder(t *testing.T) {
	loader := NewDataLoader(t.TempDir(), quietLogger())

	devices, err := loader.LoadDevices("does-not-exist")
	require.NoError(t, err)
	assert.Empty(t, devices)
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	folder := filepath.Join(dir, constants.FolderDevices)
	require.NoError(t, os.MkdirAll(folder, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(folder, "bad.yaml"), []byte("- mac: [unterminated"), 0o644))

	loader := NewDataLoader(dir, quietLogger())
	_, err := loader.LoadDevices(constants.FolderDevices)
	assert.Error(t, err)
}

func TestLoadThresholds(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name        string
		content     string
		wantErr     bool
		minCluster  int
		disabledMin int
		trigger     int
	}{
		{
			name:        "partial override",
			content:     "disabled_port_threshold: 8\n",
			minCluster:  constants.MinClusterSize,
			disabledMin: 8,
			trigger:     constants.VlanOverrideTrigger,
		},
		{
			name:        "empty file keeps defaults",
			content:     "",
			minCluster:  constants.MinClusterSize,
			disabledMin: constants.DisabledPortThreshold,
			trigger:     constants.VlanOverrideTrigger,
		},
		{
			name:        "cluster size never below two",
			content:     "min_cluster_size: 1\n",
			minCluster:  constants.MinClusterSize,
			disabledMin: constants.DisabledPortThreshold,
			trigger:     constants.VlanOverrideTrigger,
		},
		{
			name:        "override trigger can be zero",
			content:     "vlan_override_trigger: 0\n",
			minCluster:  constants.MinClusterSize,
			disabledMin: constants.DisabledPortThreshold,
			trigger:     0,
		},
		{
			name:    "unknown key rejected",
			content: "disabled_threshold: 3\n",
			wantErr: true,
		},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name := filepath.Join("thresholds", string(rune('a'+i))+".yaml")
			require.NoError(t, os.MkdirAll(filepath.Join(dir, "thresholds"), 0o755))
			require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(tt.content), 0o644))

			loader := NewDataLoader(dir, quietLogger())
			th, err := loader.LoadThresholds(name)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.minCluster, th.MinClusterSize)
			assert.Equal(t, tt.disabledMin, th.DisabledPortThreshold)
			assert.Equal(t, tt.trigger, th.OverrideTrigger())
		})
	}
}

func quietLogger() *utils.Logger {
	utils.DisableColor()
	return utils.NewLoggerWithWriters(false, io.Discard, io.Discard)
}
