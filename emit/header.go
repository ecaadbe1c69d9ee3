package emit

// generatedMarker is the normalized version marker placed in every emitted
// file's header comment (spec §4.5 "normalized so that version bumps do
// not churn golden-file tests"): a fixed string rather than this package's
// actual build version, so a golden-file test's expected output never goes
// stale just because the compiler was rebuilt.
const generatedMarker = "incan-emit"

// fileHeader returns the header comment prefixed to every emitted source
// file, grounded on the teacher's "Code generated ... DO NOT EDIT" line
// convention (see experimental/ast/predeclared/predeclared.go).
func fileHeader() string {
	return "// Code generated by " + generatedMarker + ". DO NOT EDIT.\n"
}
