package business

import (
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/ozleads/lead-engine/internal/config"
)

// profileFile sits next to the context documents.
const profileFile = "profile.yaml"

// Profile carries per-business settings that override the global config.
type Profile struct {
	ServiceArea config.ServiceAreaConfig `yaml:"service_area"`
}

// Profile loads the business's profile.yaml. A missing file returns
// (nil, nil): most businesses run on the global defaults.
func (l *ContextLoader) Profile(businessID string) (*Profile, error) {
	data, err := os.ReadFile(filepath.Join(l.root, businessID, profileFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, eris.Wrapf(err, "business: read profile for %s", businessID)
	}

	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, eris.Wrapf(err, "business: parse profile for %s", businessID)
	}
	return &p, nil
}
