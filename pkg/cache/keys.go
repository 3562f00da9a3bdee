package cache

// ArtifactKeyOpts holds the render options that change an export artifact.
type ArtifactKeyOpts struct {
	Format     string  `json:"format"` // "drawio", "svg", "png", "pdf"
	FilePrefix string  `json:"file_prefix,omitempty"`
	WrapWidth  int     `json:"wrap_width,omitempty"`
	LegendGap  float64 `json:"legend_gap,omitempty"`
	Page       string  `json:"page,omitempty"` // previews render a single page
	Detailed   bool    `json:"detailed,omitempty"`
}

// Keyer generates cache keys.
type Keyer interface {
	// ArtifactKey returns the key of a rendered artifact.
	ArtifactKey(docHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer produces unprefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ArtifactKey returns "artifact:<sha256>" over the document hash and options.
func (DefaultKeyer) ArtifactKey(docHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", docHash, opts)
}

// ScopedKeyer wraps a Keyer with a prefix, so several deployments can share
// one Redis or MongoDB without seeing each other's entries.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "c4export:staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner keyer uses
// [DefaultKeyer].
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(docHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(docHash, opts)
}
