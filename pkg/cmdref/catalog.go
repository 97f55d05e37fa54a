package cmdref

import (
	"embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/agnivade/levenshtein"
	"gopkg.in/yaml.v3"

	cnuerrors "github.com/1mrobas/cisco-network-node-utils/pkg/errors"
)

//go:embed data/*.yaml
var embeddedDocs embed.FS

// templateKey is the reserved document key holding the file-level base
// spec every attribute in the file merges on top of.
const templateKey = "_template"

// Document is one in-memory template document, keyed by attribute name.
type Document struct {
	// Feature is the feature name, normally derived from the file name.
	Feature string
	// Source labels the document in diagnostics. Defaults to Feature.
	Source string
	// Data is the raw YAML payload.
	Data []byte
}

// Option is a functional option for configuring Catalog construction.
type Option func(*Catalog)

// WithProductID returns an Option that sets the product identifier the
// /pattern/ keys are matched against (e.g. "N9K-C9396PX").
func WithProductID(id string) Option {
	return func(c *Catalog) {
		c.productID = id
	}
}

// WithPlatform returns an Option that sets the platform name the filter
// keys are matched against (e.g. "nexus").
func WithPlatform(platform string) Option {
	return func(c *Catalog) {
		c.platform = platform
	}
}

// WithCLI returns an Option that marks the caller as driving the device
// CLI, enabling cli_-prefixed filter branches.
func WithCLI(cli bool) Option {
	return func(c *Catalog) {
		c.cli = cli
	}
}

// WithSourceDir returns an Option that loads template documents from a
// directory instead of the embedded defaults.
func WithSourceDir(dir string) Option {
	return func(c *Catalog) {
		c.sourceDir = dir
	}
}

// WithDocuments returns an Option that supplies an explicit document
// list, bypassing directory discovery and filename filtering. Intended
// for tests.
func WithDocuments(docs ...Document) Option {
	return func(c *Catalog) {
		c.docs = docs
	}
}

// WithLogger returns an Option that sets the logger used during
// construction and lookup.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Catalog) {
		c.logger = logger
	}
}

// Catalog is the registry mapping (feature, attribute) to resolved
// reference entries. It is built once and read-only afterwards;
// targeting a different product requires a new Catalog.
type Catalog struct {
	productID string
	platform  string
	cli       bool
	sourceDir string
	docs      []Document
	logger    *slog.Logger

	entries map[string]map[string]*Entry
}

// New builds a Catalog from the configured document sources. Any
// malformed document aborts construction; no partial catalog is
// returned.
func New(opts ...Option) (*Catalog, error) {
	start := time.Now()
	defer func() {
		catalogBuildDuration.Observe(time.Since(start).Seconds())
	}()

	c := &Catalog{
		logger:  slog.Default(),
		entries: make(map[string]map[string]*Entry),
	}
	for _, opt := range opts {
		opt(c)
	}

	docs := c.docs
	if docs == nil {
		var err error
		if c.sourceDir != "" {
			docs, err = discoverDocuments(c.sourceDir, c.platform)
		} else {
			docs, err = embeddedDocuments(c.platform)
		}
		if err != nil {
			catalogBuildTotal.WithLabelValues("error").Inc()
			return nil, err
		}
	}

	for _, doc := range docs {
		if err := c.loadDocument(doc); err != nil {
			catalogBuildTotal.WithLabelValues("error").Inc()
			return nil, err
		}
	}

	// Sanity check: every entry must know its own identity.
	for feature, attrs := range c.entries {
		for name, entry := range attrs {
			if entry.Feature() == "" && entry.Name() == "" {
				catalogBuildTotal.WithLabelValues("error").Inc()
				return nil, cnuerrors.Newf(cnuerrors.ErrCodeConstruction,
					"incomplete entry for %s, %s", feature, name)
			}
		}
	}

	catalogBuildTotal.WithLabelValues("success").Inc()
	c.logger.Debug("command reference catalog built",
		"features", len(c.entries),
		"product", c.productID,
		"platform", c.platform,
		"cli", c.cli)
	return c, nil
}

// loadDocument parses, validates, merges and registers one document.
func (c *Catalog) loadDocument(doc Document) error {
	source := doc.Source
	if source == "" {
		source = doc.Feature
	}

	var root yaml.Node
	if err := yaml.Unmarshal(doc.Data, &root); err != nil {
		return cnuerrors.Wrapf(cnuerrors.ErrCodeLoad, err, "%s: parse failed", source)
	}
	if err := validateDocument(&root, source); err != nil {
		return err
	}

	mapping := &root
	if mapping.Kind == yaml.DocumentNode {
		if len(mapping.Content) == 0 {
			c.logger.Warn("empty template document", "source", source)
			return nil
		}
		mapping = mapping.Content[0]
	}
	docSpec, err := specFromNode(mapping)
	if err != nil {
		return cnuerrors.Wrapf(cnuerrors.ErrCodeLoad, err, "%s", source)
	}

	tgt := target{productID: c.productID, platform: c.platform, cli: c.cli}

	base := NewSpec()
	if raw, ok := docSpec.Get(templateKey); ok {
		tmpl, err := branchSpec(templateKey, raw)
		if err != nil {
			return cnuerrors.Wrapf(cnuerrors.ErrCodeLoad, err, "%s: %s", source, templateKey)
		}
		base, err = mergeSpec(tmpl, nil, tgt)
		if err != nil {
			return cnuerrors.Wrapf(cnuerrors.ErrCodeLoad, err, "%s: %s", source, templateKey)
		}
	}

	attrs := c.entries[doc.Feature]
	if attrs == nil {
		attrs = make(map[string]*Entry)
		c.entries[doc.Feature] = attrs
	}

	for _, name := range docSpec.Keys() {
		if name == templateKey {
			continue
		}
		raw, _ := docSpec.Get(name)
		if raw == nil {
			return cnuerrors.Newf(cnuerrors.ErrCodeLoad,
				"%s: empty definition for %s, %s", source, doc.Feature, name)
		}
		spec, ok := raw.(*Spec)
		if !ok {
			return cnuerrors.Newf(cnuerrors.ErrCodeConstruction,
				"%s: %s, %s: attribute spec must be a mapping", source, doc.Feature, name)
		}
		resolved, err := mergeSpec(spec, base, tgt)
		if err != nil {
			return cnuerrors.Wrapf(cnuerrors.ErrCodeLoad, err,
				"%s: %s, %s", source, doc.Feature, name)
		}
		entry, err := newEntry(doc.Feature, name, resolved, source)
		if err != nil {
			return err
		}
		attrs[name] = entry
	}
	return nil
}

// Lookup returns the resolved entry for (feature, attribute). Misses
// fail with a "no such entry" error; there is no partial matching, but
// the error suggests the nearest known name when one is close.
func (c *Catalog) Lookup(feature, attribute string) (*Entry, error) {
	attrs, ok := c.entries[feature]
	if !ok {
		catalogLookupTotal.WithLabelValues("miss").Inc()
		return nil, cnuerrors.Newf(cnuerrors.ErrCodeNotFound,
			"no such feature %q%s", feature, suggest(feature, c.Features()))
	}
	entry, ok := attrs[attribute]
	if !ok {
		catalogLookupTotal.WithLabelValues("miss").Inc()
		names := make([]string, 0, len(attrs))
		for name := range attrs {
			names = append(names, name)
		}
		return nil, cnuerrors.Newf(cnuerrors.ErrCodeNotFound,
			"no such entry %q for feature %q%s", attribute, feature, suggest(attribute, names))
	}
	catalogLookupTotal.WithLabelValues("hit").Inc()
	return entry, nil
}

// Features returns the known feature names, sorted.
func (c *Catalog) Features() []string {
	out := make([]string, 0, len(c.entries))
	for feature := range c.entries {
		out = append(out, feature)
	}
	sort.Strings(out)
	return out
}

// Attributes returns the attribute names of a feature, sorted.
func (c *Catalog) Attributes(feature string) ([]string, error) {
	attrs, ok := c.entries[feature]
	if !ok {
		return nil, cnuerrors.Newf(cnuerrors.ErrCodeNotFound,
			"no such feature %q%s", feature, suggest(feature, c.Features()))
	}
	out := make([]string, 0, len(attrs))
	for name := range attrs {
		out = append(out, name)
	}
	sort.Strings(out)
	return out, nil
}

// ProductID returns the product identifier the catalog was built for.
func (c *Catalog) ProductID() string { return c.productID }

// Platform returns the platform the catalog was built for.
func (c *Catalog) Platform() string { return c.platform }

// CLI reports whether the catalog was built for CLI access.
func (c *Catalog) CLI() bool { return c.cli }

// String summarizes the catalog for diagnostics.
func (c *Catalog) String() string {
	total := 0
	for _, attrs := range c.entries {
		total += len(attrs)
	}
	return fmt.Sprintf("command reference for product %q platform %q (cli=%v): %d features, %d entries",
		c.productID, c.platform, c.cli, len(c.entries), total)
}

// suggestThreshold bounds how far a suggestion may be from the queried
// name before it is more confusing than helpful.
const suggestThreshold = 3

// suggest returns a " (did you mean ...)" fragment for the closest
// candidate within the edit-distance threshold, or an empty string.
func suggest(name string, candidates []string) string {
	best := ""
	bestDist := suggestThreshold + 1
	for _, candidate := range candidates {
		if d := levenshtein.ComputeDistance(name, candidate); d < bestDist {
			best, bestDist = candidate, d
		}
	}
	if best == "" {
		return ""
	}
	return fmt.Sprintf(" (did you mean %q?)", best)
}

// discoverDocuments collects the *.yaml documents of a source
// directory. A file named <feature>.<platform>.yaml is only included
// when the catalog targets that platform, and loads after the
// unqualified <feature>.yaml it refines.
func discoverDocuments(dir, platform string) ([]Document, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, cnuerrors.Wrapf(cnuerrors.ErrCodeLoad, err, "bad source directory %q", dir)
	}
	if len(paths) == 0 {
		return nil, cnuerrors.Newf(cnuerrors.ErrCodeLoad, "no template documents in %q", dir)
	}
	sort.Strings(paths)

	docs := make([]Document, 0, len(paths))
	for _, path := range paths {
		feature, tag := splitDocumentName(filepath.Base(path))
		if tag != "" && tag != platform {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, cnuerrors.Wrapf(cnuerrors.ErrCodeLoad, err, "unreadable document %q", path)
		}
		docs = append(docs, Document{Feature: feature, Source: path, Data: data})
	}
	sortDocuments(docs)
	return docs, nil
}

// embeddedDocuments returns the default document set shipped with the
// package, filtered the same way directory discovery filters.
func embeddedDocuments(platform string) ([]Document, error) {
	names, err := embeddedDocs.ReadDir("data")
	if err != nil {
		return nil, cnuerrors.Wrap(cnuerrors.ErrCodeInternal, err, "embedded documents unavailable")
	}
	docs := make([]Document, 0, len(names))
	for _, info := range names {
		feature, tag := splitDocumentName(info.Name())
		if tag != "" && tag != platform {
			continue
		}
		data, err := embeddedDocs.ReadFile("data/" + info.Name())
		if err != nil {
			return nil, cnuerrors.Wrapf(cnuerrors.ErrCodeInternal, err, "embedded document %q", info.Name())
		}
		docs = append(docs, Document{Feature: feature, Source: info.Name(), Data: data})
	}
	sortDocuments(docs)
	return docs, nil
}

// sortDocuments orders documents by feature, with each unqualified
// document ahead of the platform-qualified documents refining it. Plain
// lexicographic order gets this wrong: "ntp.nexus.yaml" sorts before
// "ntp.yaml", which would let the base document win over the refinement.
func sortDocuments(docs []Document) {
	sort.SliceStable(docs, func(i, j int) bool {
		if docs[i].Feature != docs[j].Feature {
			return docs[i].Feature < docs[j].Feature
		}
		_, ti := splitDocumentName(filepath.Base(docs[i].Source))
		_, tj := splitDocumentName(filepath.Base(docs[j].Source))
		return ti == "" && tj != ""
	})
}

// splitDocumentName derives (feature, platform tag) from a document
// file name: "bgp_af.yaml" has no tag, "bgp_af.nexus.yaml" is the
// nexus-qualified document for feature bgp_af.
func splitDocumentName(base string) (feature, tag string) {
	name := strings.TrimSuffix(base, ".yaml")
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[:i], name[i+1:]
	}
	return name, ""
}
