// Package registry holds the local catalog of downloadable packages: a
// mapping from package name to the entry needed to locate and check its
// artifact.
package registry

import (
	"encoding/json"
	"sort"

	"lab47.dev/dpm/pkg/data"
	"lab47.dev/dpm/pkg/errdefs"
	"lab47.dev/dpm/pkg/jsonio"
)

// Registry owns its entries outright. It is not safe for concurrent
// mutation; callers wanting that serialize access themselves.
type Registry struct {
	packages map[string]*data.PackageEntry
}

func New() *Registry {
	return &Registry{
		packages: make(map[string]*data.PackageEntry),
	}
}

func (r *Registry) Has(name string) bool {
	_, ok := r.packages[name]
	return ok
}

func (r *Registry) Get(name string) (*data.PackageEntry, error) {
	pkg, ok := r.packages[name]
	if !ok {
		return nil, errdefs.NotFound(name)
	}

	return pkg, nil
}

// Add inserts an entry under name, replacing any prior entry wholesale.
// No shape validation is done on any field at this layer.
func (r *Registry) Add(name, url, fileName, version, hash string, deps []data.Dependency, entry, description string) {
	r.packages[name] = &data.PackageEntry{
		URL:          url,
		FileName:     fileName,
		Version:      version,
		Hash:         hash,
		Dependencies: deps,
		Entry:        entry,
		Description:  description,
	}
}

// AddEntry is Add for a record that already exists in structural form,
// such as one returned from a fetch.
func (r *Registry) AddEntry(name string, e *data.PackageEntry) {
	r.packages[name] = e
}

// Remove detaches the entry for name and hands it to the caller.
func (r *Registry) Remove(name string) (*data.PackageEntry, error) {
	pkg, ok := r.packages[name]
	if !ok {
		return nil, errdefs.NotFound(name)
	}

	delete(r.packages, name)

	return pkg, nil
}

// UpdateFields carries the fields an Update call wants to change. A nil
// pointer leaves the existing value alone. Dependencies, when non-nil,
// replaces the whole list.
type UpdateFields struct {
	URL         *string
	FileName    *string
	Version     *string
	Hash        *string
	Entry       *string
	Description *string

	Dependencies []data.Dependency
}

// Update merges fields into the entry for name. A missing name creates a
// new entry from whatever fields were supplied, empty strings for the
// rest, and no dependency list.
func (r *Registry) Update(name string, f UpdateFields) {
	pkg, ok := r.packages[name]
	if !ok {
		r.packages[name] = &data.PackageEntry{
			URL:         strOr(f.URL),
			FileName:    strOr(f.FileName),
			Version:     strOr(f.Version),
			Hash:        strOr(f.Hash),
			Entry:       strOr(f.Entry),
			Description: strOr(f.Description),
		}

		return
	}

	if f.URL != nil {
		pkg.URL = *f.URL
	}

	if f.FileName != nil {
		pkg.FileName = *f.FileName
	}

	if f.Version != nil {
		pkg.Version = *f.Version
	}

	if f.Hash != nil {
		pkg.Hash = *f.Hash
	}

	if f.Dependencies != nil {
		pkg.Dependencies = f.Dependencies
	}

	if f.Entry != nil {
		pkg.Entry = *f.Entry
	}

	if f.Description != nil {
		pkg.Description = *f.Description
	}
}

func (r *Registry) Len() int {
	return len(r.packages)
}

func (r *Registry) Names() []string {
	var names []string

	for name := range r.packages {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Entries exposes the package map for read access only.
func (r *Registry) Entries() map[string]*data.PackageEntry {
	return r.packages
}

// ReplaceAll swaps in a whole new entry set, dropping every prior entry.
func (r *Registry) ReplaceAll(entries map[string]*data.PackageEntry) {
	if entries == nil {
		entries = make(map[string]*data.PackageEntry)
	}

	r.packages = entries
}

// Str points at s, for filling UpdateFields.
func Str(s string) *string {
	return &s
}

func strOr(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}

type registryDoc struct {
	Packages map[string]*data.PackageEntry `json:"packages"`
}

func (r *Registry) MarshalJSON() ([]byte, error) {
	return json.Marshal(registryDoc{Packages: r.packages})
}

func (r *Registry) UnmarshalJSON(b []byte) error {
	var doc registryDoc

	err := json.Unmarshal(b, &doc)
	if err != nil {
		return err
	}

	if doc.Packages == nil {
		doc.Packages = make(map[string]*data.PackageEntry)
	}

	r.packages = doc.Packages

	return nil
}

// Load reads a registry document from a local manifest file.
func Load(path string) (*Registry, error) {
	return jsonio.LoadFromPath[Registry](path)
}

// Parse reads a registry document from in-memory JSON.
func Parse(text string) (*Registry, error) {
	return jsonio.ParseText[Registry](text)
}

// Save writes the registry as a pretty-printed manifest file.
func (r *Registry) Save(path string) error {
	return jsonio.SaveToPath(r, path)
}
