package dialect

// Advice is the rendered teaching hint for a dominant foreign language.
// All three strings are single-line so diagnostic renderers can place
// them as a message plus notes without reflowing.
type Advice struct {
	// Summary becomes the primary diagnostic message.
	Summary string
	// Counsel says how the same idea is spelled in the teaching dialect.
	Counsel string
	// Example is a one-line valid program fragment.
	Example string
}

// AdviceFor returns the canned advice for a detected language. The second
// result is false for Unknown and anything out of range.
func AdviceFor(k Kind) (Advice, bool) {
	switch k {
	case Python:
		return Advice{
			Summary: "this file reads like Python, not like the C subset",
			Counsel: "functions need a return type and braces instead of `def` and `:`",
			Example: "Int twice(Int x) { return 2 * x; }",
		}, true
	case Cpp:
		return Advice{
			Summary: "this file reads like C++, not like the C subset",
			Counsel: "there are no `::` paths or `cout <<` streams here; print via the stdio family",
			Example: "printf(\"%d\\n\", x);",
		}, true
	case Java:
		return Advice{
			Summary: "this file reads like Java, not like the C subset",
			Counsel: "there are no classes; the entry point is a plain function",
			Example: "Int main() { return 0; }",
		}, true
	case JavaScript:
		return Advice{
			Summary: "this file reads like JavaScript, not like the C subset",
			Counsel: "declare functions with a return type instead of `function` or `=>`",
			Example: "Int add(Int a, Int b) { return a + b; }",
		}, true
	default:
		return Advice{}, false
	}
}
