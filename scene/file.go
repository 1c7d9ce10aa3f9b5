package scene

import (
	"os"
	"path/filepath"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Load reads a scene from a YAML file.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("reading scene file failed").
			WithTag("path", path).
			Wrap(err)
	}

	var s Scene
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, errors.New("decoding scene file failed").
			WithTag("path", path).
			Wrap(err)
	}
	return &s, nil
}

// Save writes the scene to a YAML file, creating parent directories as
// needed.
func (s *Scene) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.New("creating scene directory failed").
			WithTag("path", path).
			Wrap(err)
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return errors.New("encoding scene failed").
			WithTag("scene", s.Name).
			Wrap(err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("writing scene file failed").
			WithTag("path", path).
			Wrap(err)
	}
	return nil
}
