package table

import (
	"github.com/turtacn/ChemDesc-Engine/internal/domain/descriptor/whim"
	"github.com/turtacn/ChemDesc-Engine/pkg/errors"
)

// Settings keys as stored in the host's settings store.
const (
	keyMoleculeColumn = "molecule_column"
	keyComputeProfile = "compute_profile"
	schemeKeyPrefix   = "whim_scheme_"
)

// SettingsStore is the host's string-keyed settings persistence. Get calls
// fail for absent keys.
type SettingsStore interface {
	GetString(key string) (string, error)
	SetString(key, value string)
	GetBool(key string) (bool, error)
	SetBool(key string, value bool)
}

// Settings configures one table node: which column carries the molecules
// and which descriptor outputs to append.
type Settings struct {
	// MoleculeColumn names the input column holding molecule cells.
	// Empty means auto-detect during Configure.
	MoleculeColumn string

	// ComputeProfile enables the scalar descriptor columns.
	ComputeProfile bool

	// WhimSchemes lists the enabled 3D weighting schemes, one DoubleList
	// column each.
	WhimSchemes []whim.Scheme
}

// SaveTo writes every setting to the store, including disabled schemes so
// that LoadFrom round-trips.
func (s *Settings) SaveTo(store SettingsStore) {
	store.SetString(keyMoleculeColumn, s.MoleculeColumn)
	store.SetBool(keyComputeProfile, s.ComputeProfile)
	enabled := make(map[whim.Scheme]bool, len(s.WhimSchemes))
	for _, scheme := range s.WhimSchemes {
		enabled[scheme] = true
	}
	for _, scheme := range whim.Schemes() {
		store.SetBool(schemeKeyPrefix+string(scheme), enabled[scheme])
	}
}

// LoadFrom replaces the settings with the store's content.
func (s *Settings) LoadFrom(store SettingsStore) error {
	column, err := store.GetString(keyMoleculeColumn)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeTableSettingsKey, "missing molecule column setting")
	}
	profile, err := store.GetBool(keyComputeProfile)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeTableSettingsKey, "missing profile setting")
	}

	var schemes []whim.Scheme
	for _, scheme := range whim.Schemes() {
		on, err := store.GetBool(schemeKeyPrefix + string(scheme))
		if err != nil {
			return errors.Wrap(err, errors.ErrCodeTableSettingsKey, "missing scheme setting").
				WithDetail("scheme=" + string(scheme))
		}
		if on {
			schemes = append(schemes, scheme)
		}
	}

	s.MoleculeColumn = column
	s.ComputeProfile = profile
	s.WhimSchemes = schemes
	return nil
}

// Validate rejects settings that name no molecule column or enable no
// output at all.
func (s *Settings) Validate() error {
	if s.MoleculeColumn == "" {
		return errors.New(errors.ErrCodeTableSettingsInvalid, "no molecule column chosen")
	}
	if !s.ComputeProfile && len(s.WhimSchemes) == 0 {
		return errors.New(errors.ErrCodeTableSettingsInvalid, "no descriptor output enabled")
	}
	for _, scheme := range s.WhimSchemes {
		if _, err := whim.ParseScheme(string(scheme)); err != nil {
			return err
		}
	}
	return nil
}
