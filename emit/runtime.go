package emit

// Runtime-policy message strings (spec §4.5). These are emitted verbatim
// into generated code as panic/error message literals; golden-file tests
// pin their exact wording, so changing one here is a wire-format change to
// every generated project, not a cosmetic tweak.
const (
	msgZeroDivision     = "ZeroDivisionError: division by zero"
	msgParseFailure     = "ValueError: cannot convert '{}' to {}"
	msgIndexOutOfBounds = "IndexError: index {} out of range for list of length {}"
	msgKeyMissing       = "KeyError: '{}' not found in dict"
	msgSliceStepZero    = "ValueError: slice step cannot be zero"
	msgJSONDecodeFail   = "JSONDecodeError: {}"
)
