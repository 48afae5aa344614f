package filter

// DefaultFileGlobs lists generated Dart sources that are excluded by default.
// Code generators overwrite them, so migrating them is pointless.
var DefaultFileGlobs = []string{
	// json_serializable, built_value, riverpod_generator
	"*.g.dart",
	// freezed
	"*.freezed.dart",
	// mockito
	"*.mocks.dart",
	// intl_utils / flutter_gen
	"*.gen.dart",
}

// GetDefaults returns the default exclusion globs.
func GetDefaults() []string {
	// Return a copy to prevent mutation of the global slice
	dst := make([]string, len(DefaultFileGlobs))
	copy(dst, DefaultFileGlobs)
	return dst
}
