package config

import (
	"fmt"

	"github.com/uesim/tracegraph/internal/artifact"
)

// Model is the unified, format-agnostic representation of the entire
// locator and script catalog configuration.
type Model struct {
	Artifacts map[string]*ArtifactDefinition
	Accessors map[string]*AccessorDefinition
	Scripts   map[string]*ScriptDefinition
}

// NewModel creates an empty model with all maps initialized.
func NewModel() *Model {
	return &Model{
		Artifacts: make(map[string]*ArtifactDefinition),
		Accessors: make(map[string]*AccessorDefinition),
		Scripts:   make(map[string]*ScriptDefinition),
	}
}

// ArtifactDefinition is the format-agnostic representation of an
// `artifact` block: one named location contract.
type ArtifactDefinition struct {
	// Name is the definition label accessors reference, not the file name.
	Name     string
	Category string
	Template string
	Kind     artifact.Kind
}

// Ref converts the definition into the artifact value type.
func (d *ArtifactDefinition) Ref() artifact.Ref {
	return artifact.Ref{Category: d.Category, Name: d.Template, Kind: d.Kind}
}

// AccessorDefinition is the format-agnostic representation of an
// `accessor` block: a named binding of one artifact to one direction.
type AccessorDefinition struct {
	Name     string
	Artifact string
	Mode     artifact.Mode
}

// ScriptDefinition is the format-agnostic representation of a `script`
// block from a module manifest.
type ScriptDefinition struct {
	Name        string
	Description string
	// Run names the registered Go handler executed under trace
	// interception. Parity between manifests and Go registrations is
	// checked at startup by the registry.
	Run string
}

// AddArtifact merges one artifact definition, rejecting duplicates.
func (m *Model) AddArtifact(def *ArtifactDefinition) error {
	if _, exists := m.Artifacts[def.Name]; exists {
		return fmt.Errorf("duplicate artifact definition %q", def.Name)
	}
	m.Artifacts[def.Name] = def
	return nil
}

// AddAccessor merges one accessor definition, rejecting duplicates.
func (m *Model) AddAccessor(def *AccessorDefinition) error {
	if _, exists := m.Accessors[def.Name]; exists {
		return fmt.Errorf("duplicate accessor definition %q", def.Name)
	}
	m.Accessors[def.Name] = def
	return nil
}

// AddScript merges one script definition, rejecting duplicates.
func (m *Model) AddScript(def *ScriptDefinition) error {
	if _, exists := m.Scripts[def.Name]; exists {
		return fmt.Errorf("duplicate script definition %q", def.Name)
	}
	m.Scripts[def.Name] = def
	return nil
}

// Validate cross-checks the assembled model: every accessor must reference
// a defined artifact, and every script must name a run handler.
func (m *Model) Validate() error {
	for name, acc := range m.Accessors {
		if _, ok := m.Artifacts[acc.Artifact]; !ok {
			return fmt.Errorf("accessor %q references undefined artifact %q", name, acc.Artifact)
		}
	}
	for name, s := range m.Scripts {
		if s.Run == "" {
			return fmt.Errorf("script %q declares no run handler", name)
		}
	}
	return nil
}
