// Package driver loads sketch project configuration and installs the
// script libraries a sketch depends on.
package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Default canvas dimensions used when the manifest omits them.
const (
	DefaultCanvasWidth  = 600
	DefaultCanvasHeight = 600
)

// Manifest represents the parsed contents of sketch.yml.
type Manifest struct {
	Path         string
	Name         string
	Version      string
	Authors      []string
	Canvas       CanvasSpec
	Sketches     map[string]*SketchSpec
	SketchOrder  []string
	Dependencies map[string]*DependencySpec

	sketchEntries []manifestSketchEntry
}

// CanvasSpec is the output image size in pixels.
type CanvasSpec struct {
	Width  int
	Height int
}

// SketchSpec describes one runnable sketch: a script entry point and the
// image it renders to.
type SketchSpec struct {
	Name         string
	OriginalName string
	Entry        string
	Output       string
}

type manifestSketchEntry struct {
	sanitized string
	spec      *SketchSpec
}

// DependencySpec describes a script library source. A git source may pin a
// rev, tag, or branch; a path source points at a local directory.
type DependencySpec struct {
	Git    string
	Rev    string
	Tag    string
	Branch string
	Path   string
}

// ValidationError aggregates manifest validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "manifest: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("manifest validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// LoadManifest parses sketch.yml from disk, returning a validated manifest.
func LoadManifest(path string) (*Manifest, error) {
	if path == "" {
		return nil, fmt.Errorf("manifest: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("manifest: open %s: %w", absPath, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var raw manifestFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("manifest: %s is empty", absPath)
		}
		return nil, fmt.Errorf("manifest: parse %s: %w", absPath, err)
	}

	manifest := raw.toManifest(absPath)
	if err := manifest.validate(); err != nil {
		return nil, err
	}
	return manifest, nil
}

func (m *Manifest) validate() error {
	var errs ValidationError
	if m.Name == "" {
		errs.Issues = append(errs.Issues, "name must be provided")
	}
	for i, author := range m.Authors {
		if author == "" {
			errs.Issues = append(errs.Issues, fmt.Sprintf("authors[%d] must be a non-empty string", i))
		}
	}
	if m.Canvas.Width <= 0 {
		errs.Issues = append(errs.Issues, fmt.Sprintf("canvas width must be positive, got %d", m.Canvas.Width))
	}
	if m.Canvas.Height <= 0 {
		errs.Issues = append(errs.Issues, fmt.Sprintf("canvas height must be positive, got %d", m.Canvas.Height))
	}

	sketchNames := make(map[string]string, len(m.sketchEntries))
	for _, entry := range m.sketchEntries {
		if entry.spec == nil {
			continue
		}
		sketch := entry.spec
		if sketch.OriginalName == "" {
			errs.Issues = append(errs.Issues, "sketches must not use empty keys")
			continue
		}
		if other, exists := sketchNames[entry.sanitized]; exists {
			errs.Issues = append(errs.Issues, fmt.Sprintf("sketches %q and %q collide after sanitization", other, sketch.OriginalName))
		} else {
			sketchNames[entry.sanitized] = sketch.OriginalName
		}
		if sketch.Entry == "" {
			errs.Issues = append(errs.Issues, fmt.Sprintf("sketch %q requires an entry script", sketch.OriginalName))
		}
		if sketch.Output != "" && !strings.HasSuffix(sketch.Output, ".svg") {
			errs.Issues = append(errs.Issues, fmt.Sprintf("sketch %q output must end in .svg, got %q", sketch.OriginalName, sketch.Output))
		}
	}

	for depName, dep := range m.Dependencies {
		if dep == nil {
			continue
		}
		for _, issue := range dep.validate() {
			errs.Issues = append(errs.Issues, fmt.Sprintf("dependencies.%s: %s", depName, issue))
		}
	}

	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

var ErrNoSketch = errors.New("manifest: no sketches defined")

// DefaultSketch returns the first sketch in manifest order.
func (m *Manifest) DefaultSketch() (*SketchSpec, error) {
	if m == nil {
		return nil, ErrNoSketch
	}
	for _, entry := range m.sketchEntries {
		if entry.spec != nil {
			return entry.spec, nil
		}
	}
	return nil, ErrNoSketch
}

// FindSketch looks up a sketch by sanitized or original name.
func (m *Manifest) FindSketch(name string) (*SketchSpec, bool) {
	if m == nil {
		return nil, false
	}
	key := sanitizeSegment(strings.TrimSpace(name))
	if key != "" {
		if sketch, ok := m.Sketches[key]; ok && sketch != nil {
			return sketch, true
		}
	}
	for _, entry := range m.sketchEntries {
		if entry.spec == nil {
			continue
		}
		if strings.EqualFold(entry.spec.OriginalName, strings.TrimSpace(name)) {
			return entry.spec, true
		}
	}
	return nil, false
}

func (d *DependencySpec) validate() []string {
	var errs []string
	if d == nil {
		return errs
	}
	if d.Git == "" && d.Path == "" {
		errs = append(errs, "must specify git or path")
	}
	if d.Git != "" && d.Path != "" {
		errs = append(errs, "git and path sources are mutually exclusive")
	}
	pins := 0
	for _, pin := range []string{d.Rev, d.Tag, d.Branch} {
		if pin != "" {
			pins++
		}
	}
	if pins > 1 {
		errs = append(errs, "rev, tag, and branch are mutually exclusive")
	}
	if d.Path != "" && pins > 0 {
		errs = append(errs, "path sources cannot pin rev, tag, or branch")
	}
	return errs
}

func sanitizeSegment(seg string) string {
	seg = strings.TrimSpace(seg)
	seg = strings.ReplaceAll(seg, "-", "_")
	return seg
}

type manifestFile struct {
	Name         string        `yaml:"name"`
	Version      string        `yaml:"version"`
	Authors      stringList    `yaml:"authors"`
	Canvas       *canvasYAML   `yaml:"canvas"`
	Sketches     sketchMap     `yaml:"sketches"`
	Dependencies dependencyMap `yaml:"dependencies"`
}

type canvasYAML struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type sketchYAML struct {
	Entry  string `yaml:"entry"`
	Output string `yaml:"output"`
}

type sketchMap struct {
	items []sketchMapEntry
}

type sketchMapEntry struct {
	name string
	spec *sketchYAML
}

func (sm *sketchMap) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == 0 {
		sm.items = nil
		return nil
	}
	if value.Kind == yaml.ScalarNode && value.Tag == "!!null" {
		sm.items = nil
		return nil
	}
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("manifest: sketches must be a mapping")
	}
	items := make([]sketchMapEntry, 0, len(value.Content)/2)
	for i := 0; i < len(value.Content); i += 2 {
		keyNode := value.Content[i]
		valueNode := value.Content[i+1]

		var key string
		if err := keyNode.Decode(&key); err != nil {
			return err
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return fmt.Errorf("manifest: sketches must not use empty keys")
		}
		entry := new(sketchYAML)
		if err := valueNode.Decode(entry); err != nil {
			return fmt.Errorf("manifest: sketch %q: %w", key, err)
		}
		items = append(items, sketchMapEntry{name: key, spec: entry})
	}
	sm.items = items
	return nil
}

type dependencyMap map[string]*DependencySpec

type stringList []string

func (mf manifestFile) toManifest(path string) *Manifest {
	sketchCapacity := len(mf.Sketches.items)
	result := &Manifest{
		Path:          path,
		Name:          sanitizeSegment(strings.TrimSpace(mf.Name)),
		Version:       strings.TrimSpace(mf.Version),
		Authors:       mf.Authors.Clone(),
		Canvas:        CanvasSpec{Width: DefaultCanvasWidth, Height: DefaultCanvasHeight},
		Sketches:      make(map[string]*SketchSpec, sketchCapacity),
		SketchOrder:   make([]string, 0, sketchCapacity),
		Dependencies:  cloneDependencyMap(mf.Dependencies),
		sketchEntries: make([]manifestSketchEntry, 0, sketchCapacity),
	}
	if mf.Canvas != nil {
		result.Canvas = CanvasSpec{Width: mf.Canvas.Width, Height: mf.Canvas.Height}
	}

	seen := make(map[string]struct{}, sketchCapacity)
	for _, item := range mf.Sketches.items {
		sketch := item.spec
		if sketch == nil {
			continue
		}
		original := strings.TrimSpace(item.name)
		if original == "" {
			continue
		}
		sanitized := sanitizeSegment(original)
		spec := &SketchSpec{
			Name:         sanitized,
			OriginalName: original,
			Entry:        strings.TrimSpace(sketch.Entry),
			Output:       strings.TrimSpace(sketch.Output),
		}
		if _, exists := result.Sketches[sanitized]; !exists {
			result.Sketches[sanitized] = spec
		}
		if _, exists := seen[sanitized]; !exists {
			result.SketchOrder = append(result.SketchOrder, sanitized)
			seen[sanitized] = struct{}{}
		}
		result.sketchEntries = append(result.sketchEntries, manifestSketchEntry{
			sanitized: sanitized,
			spec:      spec,
		})
	}
	return result
}

func cloneDependencyMap(src dependencyMap) map[string]*DependencySpec {
	if len(src) == 0 {
		return map[string]*DependencySpec{}
	}
	out := make(map[string]*DependencySpec, len(src))
	for name, dep := range src {
		if dep == nil {
			continue
		}
		out[name] = dep.clone()
	}
	return out
}

func (d *DependencySpec) clone() *DependencySpec {
	if d == nil {
		return nil
	}
	copy := *d
	return &copy
}

func (l stringList) Clone() []string {
	if len(l) == 0 {
		return nil
	}
	out := make([]string, 0, len(l))
	for _, item := range l {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}

func (l *stringList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Tag == "!!null" || strings.TrimSpace(value.Value) == "" {
			*l = nil
			return nil
		}
		*l = stringList{strings.TrimSpace(value.Value)}
		return nil
	case yaml.SequenceNode:
		items := make([]string, 0, len(value.Content))
		for _, node := range value.Content {
			var str string
			if err := node.Decode(&str); err != nil {
				return err
			}
			str = strings.TrimSpace(str)
			if str == "" {
				continue
			}
			items = append(items, str)
		}
		*l = stringList(items)
		return nil
	case yaml.AliasNode:
		return l.UnmarshalYAML(value.Alias)
	case 0:
		*l = nil
		return nil
	default:
		return fmt.Errorf("manifest: expected string or sequence for list but found %s", value.ShortTag())
	}
}

func (dm *dependencyMap) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == 0 {
		*dm = make(dependencyMap)
		return nil
	}
	if value.Kind == yaml.ScalarNode && value.Tag == "!!null" {
		*dm = make(dependencyMap)
		return nil
	}
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("manifest: dependencies must be a mapping")
	}
	result := make(dependencyMap, len(value.Content)/2)
	for i := 0; i < len(value.Content); i += 2 {
		keyNode := value.Content[i]
		valNode := value.Content[i+1]

		var key string
		if err := keyNode.Decode(&key); err != nil {
			return err
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return fmt.Errorf("manifest: dependency names must be non-empty")
		}
		var dep DependencySpec
		if err := dep.unmarshalYAML(valNode); err != nil {
			return fmt.Errorf("manifest: dependency %q: %w", key, err)
		}
		result[key] = dep.clone()
	}
	*dm = result
	return nil
}

// A scalar dependency is shorthand for a git source with no pin.
func (d *DependencySpec) unmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Tag == "!!null" || strings.TrimSpace(value.Value) == "" {
			*d = DependencySpec{}
			return nil
		}
		*d = DependencySpec{Git: strings.TrimSpace(value.Value)}
		return nil
	case yaml.MappingNode:
		var raw struct {
			Git    string `yaml:"git"`
			Rev    string `yaml:"rev"`
			Tag    string `yaml:"tag"`
			Branch string `yaml:"branch"`
			Path   string `yaml:"path"`
		}
		if err := value.Decode(&raw); err != nil {
			return err
		}
		*d = DependencySpec{
			Git:    strings.TrimSpace(raw.Git),
			Rev:    strings.TrimSpace(raw.Rev),
			Tag:    strings.TrimSpace(raw.Tag),
			Branch: strings.TrimSpace(raw.Branch),
			Path:   strings.TrimSpace(raw.Path),
		}
		return nil
	case yaml.AliasNode:
		return d.unmarshalYAML(value.Alias)
	default:
		return fmt.Errorf("expected string or mapping, found %s", value.ShortTag())
	}
}
