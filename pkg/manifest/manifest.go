// Package manifest reads and writes the per-pack metadata record
// (pack_metadata.json). Writes are atomic and unknown fields survive a
// read-modify-write round trip untouched.
package manifest

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/gocortexio/spellbook/pkg/errors"
	"github.com/gocortexio/spellbook/pkg/fsutil"
	"github.com/gocortexio/spellbook/pkg/version"
)

// Filename is the metadata file each pack carries at its root.
const Filename = "pack_metadata.json"

// Manifest is a pack's metadata record. Extra holds every key the tool does
// not understand so rewrites never drop fields owned by other tooling.
type Manifest struct {
	Name           string
	Description    string
	Support        string
	CurrentVersion string
	Author         string
	URL            string
	Email          string
	Categories     []string
	Tags           []string
	UseCases       []string
	Keywords       []string
	Marketplaces   []string
	Dependencies   map[string]string

	Extra map[string]json.RawMessage
}

// knownFields are the keys the tool owns inside pack_metadata.json.
var knownFields = []string{
	"name", "description", "support", "currentVersion", "author", "url",
	"email", "categories", "tags", "useCases", "keywords", "marketplaces",
	"dependencies",
}

type manifestFields struct {
	Name           string            `json:"name"`
	Description    string            `json:"description"`
	Support        string            `json:"support"`
	CurrentVersion string            `json:"currentVersion"`
	Author         string            `json:"author"`
	URL            string            `json:"url"`
	Email          string            `json:"email"`
	Categories     []string          `json:"categories"`
	Tags           []string          `json:"tags"`
	UseCases       []string          `json:"useCases"`
	Keywords       []string          `json:"keywords"`
	Marketplaces   []string          `json:"marketplaces"`
	Dependencies   map[string]string `json:"dependencies,omitempty"`
}

// UnmarshalJSON decodes the known field set and stashes everything else in Extra.
func (m *Manifest) UnmarshalJSON(data []byte) error {
	var fields manifestFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, key := range knownFields {
		delete(raw, key)
	}
	if len(raw) == 0 {
		raw = nil
	}

	*m = Manifest{
		Name:           fields.Name,
		Description:    fields.Description,
		Support:        fields.Support,
		CurrentVersion: fields.CurrentVersion,
		Author:         fields.Author,
		URL:            fields.URL,
		Email:          fields.Email,
		Categories:     fields.Categories,
		Tags:           fields.Tags,
		UseCases:       fields.UseCases,
		Keywords:       fields.Keywords,
		Marketplaces:   fields.Marketplaces,
		Dependencies:   fields.Dependencies,
		Extra:          raw,
	}
	return nil
}

// MarshalJSON merges the known fields with the preserved unknown keys.
func (m Manifest) MarshalJSON() ([]byte, error) {
	fields := manifestFields{
		Name:           m.Name,
		Description:    m.Description,
		Support:        m.Support,
		CurrentVersion: m.CurrentVersion,
		Author:         m.Author,
		URL:            m.URL,
		Email:          m.Email,
		Categories:     m.Categories,
		Tags:           m.Tags,
		UseCases:       m.UseCases,
		Keywords:       m.Keywords,
		Marketplaces:   m.Marketplaces,
		Dependencies:   m.Dependencies,
	}

	encoded, err := json.Marshal(fields)
	if err != nil {
		return nil, err
	}

	var merged map[string]json.RawMessage
	if err := json.Unmarshal(encoded, &merged); err != nil {
		return nil, err
	}
	for key, value := range m.Extra {
		merged[key] = value
	}
	return json.Marshal(merged)
}

// Version parses the manifest's currentVersion.
func (m *Manifest) Version() (version.Version, error) {
	return version.Parse(m.CurrentVersion)
}

// Path returns the manifest file location for a pack root.
func Path(packRoot string) string {
	return filepath.Join(packRoot, Filename)
}

// Read loads the manifest for the pack rooted at packRoot. It returns
// ErrMissing when no metadata file exists and ErrMalformed when the file
// cannot be decoded or declares unusable dependency constraints.
func Read(packRoot string) (*Manifest, error) {
	path := Path(packRoot)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(ErrMissing, "%s", path)
		}
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}

	// Metadata files exported from Windows tooling occasionally carry a BOM.
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.Wrapf(ErrMalformed, "%s: file is empty", path)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrapf(ErrMalformed, "%s: %v", path, err)
	}

	for dep, constraint := range m.Dependencies {
		if err := version.ValidateConstraint(constraint); err != nil {
			return nil, errors.Wrapf(ErrMalformed, "%s: dependency %s: %v", path, dep, err)
		}
	}

	return &m, nil
}

// Write persists the manifest for the pack rooted at packRoot. The write is
// an atomic replace so a crash mid-write never leaves a half-written manifest.
func Write(packRoot string, m *Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to encode manifest")
	}
	data = append(data, '\n')

	if err := fsutil.WriteFileAtomic(Path(packRoot), data, fsutil.FileModeDefault); err != nil {
		return errors.Wrapf(err, "failed to write manifest for %s", packRoot)
	}
	return nil
}
