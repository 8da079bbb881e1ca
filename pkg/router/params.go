package router

// Param is a single URL parameter, consisting of a key and a value.
type Param struct {
	Key   string
	Value string
}

// Params is an ordered Param slice, as produced by a successful route match.
// The first URL parameter in the pattern is also the first slice value, so
// values can safely be read by index. Duplicate keys are legal; ByName
// returns the first match.
type Params []Param

// ByName returns the value of the first Param whose key matches the given
// name. If no matching Param is found, an empty string is returned.
func (ps Params) ByName(name string) string {
	for _, p := range ps {
		if p.Key == name {
			return p.Value
		}
	}
	return ""
}
