package data

// PackageInfo is the full descriptor for one package artifact. It is
// published as its own JSON document next to the artifact and describes
// exactly one version.
type PackageInfo struct {
	PackageName string `json:"package_name"`
	FileName    string `json:"file_name"`
	Version     string `json:"version"`
	Description string `json:"description"`
	Hash        string `json:"hash"`

	Dependencies []Dependency `json:"dependencies"`
}

func NewPackageInfo(name, fileName, version, description, hash string, deps []Dependency) *PackageInfo {
	return &PackageInfo{
		PackageName:  name,
		FileName:     fileName,
		Version:      version,
		Description:  description,
		Hash:         hash,
		Dependencies: deps,
	}
}
