package manifest

import (
	"fmt"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Section names recognized at the top of a manifest.
const (
	SectionSave   = "save"
	SectionExport = "export"
)

// StripSpec names the groups and keys to remove from one copied file.
type StripSpec struct {
	Groups []string `mapstructure:"groups"`
	Keys   []string `mapstructure:"keys"`
}

// Entry is one named unit within a section: a location and the files or
// folders under it to copy.
type Entry struct {
	Name string

	// RawLocation is the location exactly as written in the manifest. It is
	// retained for serialization and never rewritten.
	RawLocation string

	// Location is the token-expanded form of RawLocation, derived once at
	// parse time. All I/O uses it.
	Location string

	// Entries lists the relative file and folder names to copy.
	Entries []string

	stripNames []string
	strips     map[string]StripSpec
}

// Strip returns the strip spec declared for the named file, if any. A spec
// declared for a file that is not among Entries is inert; it is still
// reachable here but nothing ever applies it.
func (e *Entry) Strip(name string) (StripSpec, bool) {
	spec, ok := e.strips[name]
	return spec, ok
}

// StripNames returns the file names with strip specs, in manifest order.
func (e *Entry) StripNames() []string {
	return e.stripNames
}

// Section is an ordered collection of entries keyed by name.
type Section struct {
	Name string

	names  []string
	byName map[string]*Entry
}

// Names returns the entry names in manifest order.
func (s *Section) Names() []string {
	return s.names
}

// Get looks up an entry by name.
func (s *Section) Get(name string) (*Entry, bool) {
	entry, ok := s.byName[name]
	return entry, ok
}

// All returns the entries in manifest order.
func (s *Section) All() []*Entry {
	out := make([]*Entry, 0, len(s.names))
	for _, name := range s.names {
		out = append(out, s.byName[name])
	}
	return out
}

// Manifest is the parsed manifest plus the path it was loaded from. It is
// immutable once built; one Manifest is constructed per command invocation.
type Manifest struct {
	Path   string
	Save   *Section
	Export *Section
}

// Load reads and parses the manifest at path.
func Load(fs billy.Basic, path string, exp *Expander) (*Manifest, error) {
	data, err := util.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}
	return Parse(data, path, exp)
}

// Parse builds a Manifest from raw manifest text. Every entry's location is
// expanded through exp immediately, so a resolution failure surfaces here
// rather than at copy time.
func Parse(data []byte, path string, exp *Expander) (*Manifest, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedManifest, err)
	}

	// An empty input leaves the document node zero-valued.
	root := &tree{kind: kindNull}
	var err error
	if doc.Kind != 0 {
		if root, err = fromYAML(&doc); err != nil {
			return nil, err
		}
	}
	root = root.normalized()

	m := &Manifest{Path: path}
	if m.Save, err = parseSection(SectionSave, root, exp); err != nil {
		return nil, err
	}
	if m.Export, err = parseSection(SectionExport, root, exp); err != nil {
		return nil, err
	}
	return m, nil
}

func parseSection(name string, root *tree, exp *Expander) (*Section, error) {
	section := &Section{Name: name, byName: map[string]*Entry{}}

	if root.kind != kindMap {
		if root.kind == kindList && len(root.list) == 0 {
			return section, nil // empty document
		}
		return nil, fmt.Errorf("%w: top level must be a mapping", ErrMalformedManifest)
	}

	t, ok := root.children[name]
	if !ok {
		return section, nil
	}
	if t.kind != kindMap {
		if t.kind == kindList && len(t.list) == 0 {
			return section, nil // null section normalized away
		}
		return nil, fmt.Errorf("%w: section %q must be a mapping", ErrMalformedManifest, name)
	}

	for _, entryName := range t.keys {
		entry, err := parseEntry(entryName, t.children[entryName], exp)
		if err != nil {
			return nil, fmt.Errorf("section %q: %w", name, err)
		}
		section.names = append(section.names, entryName)
		section.byName[entryName] = entry
	}
	return section, nil
}

func parseEntry(name string, t *tree, exp *Expander) (*Entry, error) {
	if t.kind != kindMap {
		return nil, fmt.Errorf("%w: entry %q must be a mapping", ErrMalformedManifest, name)
	}

	location, ok := t.children["location"]
	if !ok || location.kind != kindScalar {
		return nil, fmt.Errorf("%w: entry %q has no location", ErrMalformedManifest, name)
	}

	resolved, err := exp.Expand(location.scalar)
	if err != nil {
		return nil, fmt.Errorf("entry %q: %w", name, err)
	}

	entry := &Entry{
		Name:        name,
		RawLocation: location.scalar,
		Location:    resolved,
		Entries:     []string{},
		strips:      map[string]StripSpec{},
	}

	if items, ok := t.children["entries"]; ok {
		if entry.Entries, err = items.stringList(); err != nil {
			return nil, fmt.Errorf("entry %q: %w", name, err)
		}
	}

	if strip, ok := t.children["strip"]; ok {
		if err := parseStrips(entry, strip); err != nil {
			return nil, fmt.Errorf("entry %q: %w", name, err)
		}
	}
	return entry, nil
}

func parseStrips(entry *Entry, t *tree) error {
	if t.kind == kindList && len(t.list) == 0 {
		return nil // null strip block normalized away
	}
	if t.kind != kindMap {
		return fmt.Errorf("%w: strip block must be a mapping", ErrMalformedManifest)
	}

	for _, fileName := range t.keys {
		var spec StripSpec
		if err := mapstructure.Decode(t.children[fileName].flatten(), &spec); err != nil {
			return fmt.Errorf("%w: strip spec for %q: %v", ErrMalformedManifest, fileName, err)
		}
		if spec.Groups == nil {
			spec.Groups = []string{}
		}
		if spec.Keys == nil {
			spec.Keys = []string{}
		}
		entry.stripNames = append(entry.stripNames, fileName)
		entry.strips[fileName] = spec
	}
	return nil
}

// Marshal serializes the manifest back to its interchange form. Locations
// are emitted as written (RawLocation, never the resolved form), entry order
// is preserved, and the strip key is omitted entirely when an entry has no
// strip specs. Parsing the output and re-serializing yields identical bytes.
func (m *Manifest) Marshal() ([]byte, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	appendPair(root, SectionSave, m.Save.yamlNode())
	appendPair(root, SectionExport, m.Export.yamlNode())

	out, err := yaml.Marshal(root)
	if err != nil {
		return nil, fmt.Errorf("serializing manifest: %w", err)
	}
	return out, nil
}

func (s *Section) yamlNode() *yaml.Node {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, entry := range s.All() {
		appendPair(node, entry.Name, entry.yamlNode())
	}
	return node
}

func (e *Entry) yamlNode() *yaml.Node {
	node := &yaml.Node{Kind: yaml.MappingNode}
	appendPair(node, "location", scalarNode(e.RawLocation))
	appendPair(node, "entries", sequenceNode(e.Entries))

	if len(e.stripNames) == 0 {
		return node
	}

	strip := &yaml.Node{Kind: yaml.MappingNode}
	for _, fileName := range e.stripNames {
		spec := e.strips[fileName]
		specNode := &yaml.Node{Kind: yaml.MappingNode}
		appendPair(specNode, "groups", sequenceNode(spec.Groups))
		appendPair(specNode, "keys", sequenceNode(spec.Keys))
		appendPair(strip, fileName, specNode)
	}
	appendPair(node, "strip", strip)
	return node
}

func appendPair(mapping *yaml.Node, key string, value *yaml.Node) {
	mapping.Content = append(mapping.Content, scalarNode(key), value)
}

func scalarNode(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}

func sequenceNode(values []string) *yaml.Node {
	node := &yaml.Node{Kind: yaml.SequenceNode}
	for _, v := range values {
		node.Content = append(node.Content, scalarNode(v))
	}
	return node
}
