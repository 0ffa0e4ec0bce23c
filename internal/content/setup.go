package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Setup creates dir and writes the default data file for every resource
// that does not exist yet. Existing files are left untouched. It returns
// the paths it created.
func Setup(dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	seeds := []struct {
		resource Resource
		records  any
	}{
		{Tips, defaultTips()},
		{Plants, defaultPlants()},
		{Videos, defaultVideos()},
	}

	var created []string
	for _, seed := range seeds {
		path := filepath.Join(dir, seed.resource.FileName())
		_, err := os.Stat(path)
		if err == nil {
			continue
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return created, fmt.Errorf("stat %s: %w", path, err)
		}

		data, err := json.MarshalIndent(seed.records, "", "  ")
		if err != nil {
			return created, fmt.Errorf("encode %s: %w", seed.resource, err)
		}
		if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
			return created, fmt.Errorf("write %s: %w", path, err)
		}
		created = append(created, path)
	}

	return created, nil
}
