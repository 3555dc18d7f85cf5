package cache

import "fmt"

// Keyer derives cache keys.
type Keyer interface {
	// TableKey identifies the MaxWhite table of a tree for an algorithm.
	TableKey(treeHash, algorithm string) string

	// ArtifactKey identifies a rendered coloring of a tree.
	ArtifactKey(treeHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts holds the parameters that change a rendered artifact.
type ArtifactKeyOpts struct {
	Format    string `json:"format"`
	Black     int    `json:"black"`
	White     int    `json:"white"`
	Algorithm string `json:"algorithm"`
	Detailed  bool   `json:"detailed,omitempty"`
}

// DefaultKeyer produces "table:<sha256>" and "artifact:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// TableKey implements [Keyer].
func (DefaultKeyer) TableKey(treeHash, algorithm string) string {
	return hashKey("table", treeHash, algorithm)
}

// ArtifactKey implements [Keyer].
func (DefaultKeyer) ArtifactKey(treeHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", treeHash, opts)
}

// TreeKey is a short human-readable form of a tree hash for logs.
func TreeKey(treeHash string) string {
	if len(treeHash) > 12 {
		return fmt.Sprintf("%s…", treeHash[:12])
	}
	return treeHash
}
