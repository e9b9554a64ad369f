package cache

// Keyer builds cache keys for each cached item.
type Keyer interface {
	// NetworkKey identifies a built network by input content and entry.
	NetworkKey(inputHash, entry string) string

	// ResultKey identifies a solve result for a network.
	ResultKey(networkHash string, opts ResultKeyOpts) string
}

// ResultKeyOpts holds the options that change a solve result.
type ResultKeyOpts struct {
	Budget int `json:"budget"`
	Top    int `json:"top"`
}

// DefaultKeyer produces keys of the form "<kind>:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer creates a keyer with no prefix.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// NetworkKey generates a key for network caching. Valve IDs are
// case-sensitive, so the entry is hashed exactly as given.
func (DefaultKeyer) NetworkKey(inputHash, entry string) string {
	return hashKey("network", inputHash, entry)
}

// ResultKey generates a key for result caching.
func (DefaultKeyer) ResultKey(networkHash string, opts ResultKeyOpts) string {
	return hashKey("result", networkHash, opts)
}
