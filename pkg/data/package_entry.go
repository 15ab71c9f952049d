package data

// PackageEntry is what the catalog knows about a package without fetching
// its full descriptor: where the artifact lives and how to check it.
//
// Entry and Description are only populated on catalogs built for consumers
// and are left out of serialized output when empty.
type PackageEntry struct {
	URL      string `json:"url"`
	FileName string `json:"file_name"`
	Version  string `json:"version"`
	Hash     string `json:"hash"`

	Dependencies []Dependency `json:"dependencies"`

	Entry       string `json:"entry,omitempty"`
	Description string `json:"description,omitempty"`
}
