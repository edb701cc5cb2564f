package common

// UnknownStr is the String() fallback for unrecognised enum values.
const UnknownStr = "unknown"

// JoinPath joins a parent target path and a field name with a dot.
func JoinPath(parent, name string) string {
	if parent == "" {
		return name
	}

	return parent + "." + name
}
