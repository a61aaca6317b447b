package vox

// Limits bounds the resources a single decode may consume. Zero fields take
// their default.
type Limits struct {
	MaxContainerDepth int    // nesting of containers below MAIN
	MaxSceneDepth     int    // transform/group levels walked from node 0
	MaxChunks         int    // top-level chunks under MAIN; also caps resolved scene nodes
	MaxLayers         int    // highest LAYR id accepted, plus one
	MaxUncompressed   uint64 // bytes read from an io.Reader or a compressed envelope
}

func defaultLimits() Limits {
	return Limits{
		MaxContainerDepth: 64,
		MaxSceneDepth:     4096,
		MaxChunks:         1 << 20,
		MaxLayers:         1 << 16,
		MaxUncompressed:   1 << 30, // 1 GiB
	}
}

func (l Limits) withDefaults() Limits {
	d := defaultLimits()
	if l.MaxContainerDepth == 0 {
		l.MaxContainerDepth = d.MaxContainerDepth
	}
	if l.MaxSceneDepth == 0 {
		l.MaxSceneDepth = d.MaxSceneDepth
	}
	if l.MaxChunks == 0 {
		l.MaxChunks = d.MaxChunks
	}
	if l.MaxLayers == 0 {
		l.MaxLayers = d.MaxLayers
	}
	if l.MaxUncompressed == 0 {
		l.MaxUncompressed = d.MaxUncompressed
	}
	return l
}

// DefaultLimits returns the limits applied when none are configured.
func DefaultLimits() Limits { return defaultLimits() }
