package ir

// DefaultPrefix is the boundary prefix used when none is configured.
const DefaultPrefix = "__swift_bridge__"

// Namer derives the two boundary names of a bridged function. Owner is
// empty for free functions.
type Namer struct {
	Prefix string
}

func NewNamer(prefix string) Namer {
	if len(prefix) == 0 {
		prefix = DefaultPrefix
	}
	return Namer{Prefix: prefix}
}

// LinkSymbol returns the external link name: {prefix}${owner}${fn}, or
// {prefix}${fn} for free functions.
func (n Namer) LinkSymbol(owner, fn string) string {
	if len(owner) > 0 {
		return n.Prefix + "$" + owner + "$" + fn
	}
	return n.Prefix + "$" + fn
}

// PrefixedIdent returns the local identifier of the transfer function:
// {prefix}{owner}_{fn}, or {prefix}{fn} for free functions.
func (n Namer) PrefixedIdent(owner, fn string) string {
	if len(owner) > 0 {
		return n.Prefix + owner + "_" + fn
	}
	return n.Prefix + fn
}
