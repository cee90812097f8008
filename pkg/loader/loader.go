package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/braunma/switchport-audit/internal/constants"
	"github.com/braunma/switchport-audit/pkg/analyzer"
	"github.com/braunma/switchport-audit/pkg/models"
	"github.com/braunma/switchport-audit/pkg/utils"
)

// DataLoader handles loading snapshot exports from YAML or JSON files
type DataLoader struct {
	basePath string
	logger   *utils.Logger
}

// NewDataLoader creates a new data loader
func NewDataLoader(basePath string, logger *utils.Logger) *DataLoader {
	return &DataLoader{
		basePath: basePath,
		logger:   logger,
	}
}

// LoadSnapshot loads a snapshot from a folder (devices/, port_profiles/,
// networks/) or, when the path is a file, from a single combined export.
func (dl *DataLoader) LoadSnapshot(path string) (*models.Snapshot, error) {
	target := filepath.Join(dl.basePath, path)
	info, err := os.Stat(target)
	if err != nil {
		return nil, fmt.Errorf("failed to stat snapshot %s: %w", target, err)
	}
	if !info.IsDir() {
		return dl.LoadSnapshotFile(path)
	}

	devices, err := dl.LoadDevices(filepath.Join(path, constants.FolderDevices))
	if err != nil {
		return nil, err
	}
	profiles, err := dl.LoadPortProfiles(filepath.Join(path, constants.FolderPortProfiles))
	if err != nil {
		return nil, err
	}
	networks, err := dl.LoadNetworks(filepath.Join(path, constants.FolderNetworks))
	if err != nil {
		return nil, err
	}

	return &models.Snapshot{
		Devices:      devices,
		PortProfiles: profiles,
		Networks:     networks,
	}, nil
}

// LoadSnapshotFile loads a combined export with devices, port_profiles and networks keys
func (dl *DataLoader) LoadSnapshotFile(path string) (*models.Snapshot, error) {
	content, err := dl.readFile(filepath.Join(dl.basePath, path))
	if err != nil {
		return nil, err
	}

	var snap models.Snapshot
	if err := yaml.Unmarshal(content, &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot %s: %w", path, err)
	}

	dl.logger.Debug("Loaded snapshot %s: %d devices, %d port profiles, %d networks",
		path, len(snap.Devices), len(snap.PortProfiles), len(snap.Networks))
	return &snap, nil
}

// LoadDevices loads device definitions from a folder
func (dl *DataLoader) LoadDevices(folder string) ([]models.Device, error) {
	var devices []models.Device
	if err := dl.loadFromFolder(folder, &devices); err != nil {
		return nil, err
	}
	dl.logger.Debug("Loaded %d devices from %s", len(devices), folder)
	return devices, nil
}

// LoadPortProfiles loads port profile definitions from a folder
func (dl *DataLoader) LoadPortProfiles(folder string) ([]models.PortProfile, error) {
	var profiles []models.PortProfile
	if err := dl.loadFromFolder(folder, &profiles); err != nil {
		return nil, err
	}
	dl.logger.Debug("Loaded %d port profiles from %s", len(profiles), folder)
	return profiles, nil
}

// LoadNetworks loads network definitions from a folder
func (dl *DataLoader) LoadNetworks(folder string) ([]models.NetworkConfig, error) {
	var networks []models.NetworkConfig
	if err := dl.loadFromFolder(folder, &networks); err != nil {
		return nil, err
	}
	dl.logger.Debug("Loaded %d networks from %s", len(networks), folder)
	return networks, nil
}

// LoadThresholds loads threshold overrides. Unknown keys are rejected.
func (dl *DataLoader) LoadThresholds(path string) (analyzer.Thresholds, error) {
	content, err := dl.readFile(filepath.Join(dl.basePath, path))
	if err != nil {
		return analyzer.Thresholds{}, err
	}

	var t analyzer.Thresholds
	decoder := yaml.NewDecoder(bytes.NewReader(content))
	decoder.KnownFields(true)
	if err := decoder.Decode(&t); err != nil && !errors.Is(err, io.EOF) {
		return analyzer.Thresholds{}, fmt.Errorf("failed to unmarshal thresholds %s: %w", path, err)
	}
	return t.Merge(), nil
}

// loadFromFolder loads YAML/JSON files from a folder and appends them to the target
func (dl *DataLoader) loadFromFolder(folder string, target interface{}) error {
	targetDir := filepath.Join(dl.basePath, folder)

	// Check if directory exists
	if _, err := os.Stat(targetDir); os.IsNotExist(err) {
		dl.logger.Warning("Folder %s not found, skipping", folder)
		return nil
	}

	files, err := dl.findDataFiles(targetDir)
	if err != nil {
		return fmt.Errorf("failed to find data files in %s: %w", targetDir, err)
	}

	if len(files) == 0 {
		dl.logger.Warning("No YAML or JSON files found in %s", folder)
		return nil
	}

	for _, file := range files {
		if err := dl.loadFile(file, target); err != nil {
			return fmt.Errorf("failed to load %s: %w", file, err)
		}
	}

	return nil
}

// loadFile decodes a single file and appends its items to target. A file may
// hold a list, a single object, or an API envelope with a "data" list.
func (dl *DataLoader) loadFile(path string, target interface{}) error {
	content, err := dl.readFile(path)
	if err != nil {
		return err
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return fmt.Errorf("failed to unmarshal YAML: %w", err)
	}
	items := itemsNode(&doc)
	if items == nil {
		return nil
	}

	switch t := target.(type) {
	case *[]models.Device:
		var newItems []models.Device
		if err := items.Decode(&newItems); err != nil {
			return fmt.Errorf("failed to unmarshal devices: %w", err)
		}
		*t = append(*t, newItems...)
	case *[]models.PortProfile:
		var newItems []models.PortProfile
		if err := items.Decode(&newItems); err != nil {
			return fmt.Errorf("failed to unmarshal port profiles: %w", err)
		}
		*t = append(*t, newItems...)
	case *[]models.NetworkConfig:
		var newItems []models.NetworkConfig
		if err := items.Decode(&newItems); err != nil {
			return fmt.Errorf("failed to unmarshal networks: %w", err)
		}
		*t = append(*t, newItems...)
	default:
		return fmt.Errorf("unsupported target type: %T", target)
	}

	return nil
}

// itemsNode returns the sequence of items in a document, or nil when empty
func itemsNode(doc *yaml.Node) *yaml.Node {
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil
	}
	root := doc.Content[0]

	switch root.Kind {
	case yaml.SequenceNode:
		return root
	case yaml.MappingNode:
		for i := 0; i+1 < len(root.Content); i += 2 {
			if root.Content[i].Value == "data" && root.Content[i+1].Kind == yaml.SequenceNode {
				return root.Content[i+1]
			}
		}
		return &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Content: []*yaml.Node{root}}
	default:
		return nil
	}
}

func (dl *DataLoader) readFile(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return content, nil
}

// findDataFiles recursively finds all YAML and JSON files in a directory
func (dl *DataLoader) findDataFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if !info.IsDir() {
			switch filepath.Ext(path) {
			case ".yaml", ".yml", ".json":
				files = append(files, path)
			}
		}

		return nil
	})

	return files, err
}
