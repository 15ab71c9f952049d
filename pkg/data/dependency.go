package data

// Dependency names another package this one requires. Dependencies are
// recorded in the catalog but never resolved here.
type Dependency struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

func NewDependency(name, version string) Dependency {
	return Dependency{
		Name:    name,
		Version: version,
	}
}
