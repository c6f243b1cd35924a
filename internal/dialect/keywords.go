package dialect

import (
	"strings"

	"tci/internal/source"
)

type keywordSignal struct {
	Kind   Kind
	Score  int
	Reason string
}

// Слова, которых в учебном C нет, но которые выдают исходный язык.
// Общие с C слова (if, while, return) сигналом не являются и в таблицу
// не входят; слова из двух языков несут по записи на каждый.
var keywordSignals = map[string][]keywordSignal{
	// Python-ish
	"def":    {{Kind: Python, Score: 6, Reason: "python keyword `def`"}},
	"elif":   {{Kind: Python, Score: 6, Reason: "python keyword `elif`"}},
	"lambda": {{Kind: Python, Score: 5, Reason: "python keyword `lambda`"}},
	"yield":  {{Kind: Python, Score: 5, Reason: "python keyword `yield`"}},
	"None":   {{Kind: Python, Score: 5, Reason: "python `None`"}},
	"self":   {{Kind: Python, Score: 3, Reason: "python `self`"}},
	"pass":   {{Kind: Python, Score: 4, Reason: "python keyword `pass`"}},
	"True":   {{Kind: Python, Score: 2, Reason: "python `True`"}},
	"False":  {{Kind: Python, Score: 2, Reason: "python `False`"}},
	"print":  {{Kind: Python, Score: 1, Reason: "python `print`"}},
	"not":    {{Kind: Python, Score: 1, Reason: "python keyword `not`"}},

	// C++-ish
	"template":  {{Kind: Cpp, Score: 6, Reason: "c++ keyword `template`"}},
	"typename":  {{Kind: Cpp, Score: 6, Reason: "c++ keyword `typename`"}},
	"cout":      {{Kind: Cpp, Score: 6, Reason: "c++ `cout`"}},
	"cin":       {{Kind: Cpp, Score: 5, Reason: "c++ `cin`"}},
	"endl":      {{Kind: Cpp, Score: 5, Reason: "c++ `endl`"}},
	"nullptr":   {{Kind: Cpp, Score: 5, Reason: "c++ keyword `nullptr`"}},
	"namespace": {{Kind: Cpp, Score: 5, Reason: "c++ keyword `namespace`"}},
	"using":     {{Kind: Cpp, Score: 4, Reason: "c++ keyword `using`"}},
	"std":       {{Kind: Cpp, Score: 4, Reason: "c++ `std` namespace"}},
	"virtual":   {{Kind: Cpp, Score: 4, Reason: "c++ keyword `virtual`"}},
	"delete":    {{Kind: Cpp, Score: 3, Reason: "c++ keyword `delete`"}},
	"bool":      {{Kind: Cpp, Score: 2, Reason: "c++ keyword `bool`"}},

	// Java-ish
	"System":     {{Kind: Java, Score: 5, Reason: "java `System`"}},
	"boolean":    {{Kind: Java, Score: 5, Reason: "java keyword `boolean`"}},
	"implements": {{Kind: Java, Score: 5, Reason: "java keyword `implements`"}},
	"instanceof": {{Kind: Java, Score: 5, Reason: "java keyword `instanceof`"}},
	"extends":    {{Kind: Java, Score: 4, Reason: "java keyword `extends`"}},
	"throws":     {{Kind: Java, Score: 4, Reason: "java keyword `throws`"}},
	"println":    {{Kind: Java, Score: 4, Reason: "java `println`"}},
	"String":     {{Kind: Java, Score: 3, Reason: "java `String`"}},
	"Scanner":    {{Kind: Java, Score: 3, Reason: "java `Scanner`"}},
	"final":      {{Kind: Java, Score: 2, Reason: "java keyword `final`"}},
	"package":    {{Kind: Java, Score: 2, Reason: "java keyword `package`"}},

	// JavaScript-ish
	"function":  {{Kind: JavaScript, Score: 6, Reason: "javascript keyword `function`"}},
	"console":   {{Kind: JavaScript, Score: 6, Reason: "javascript `console`"}},
	"undefined": {{Kind: JavaScript, Score: 5, Reason: "javascript `undefined`"}},
	"document":  {{Kind: JavaScript, Score: 4, Reason: "javascript `document`"}},
	"let":       {{Kind: JavaScript, Score: 3, Reason: "javascript keyword `let`"}},
	"typeof":    {{Kind: JavaScript, Score: 3, Reason: "javascript keyword `typeof`"}},
	"async":     {{Kind: JavaScript, Score: 3, Reason: "javascript keyword `async`"}},
	"await":     {{Kind: JavaScript, Score: 3, Reason: "javascript keyword `await`"}},
	"require":   {{Kind: JavaScript, Score: 3, Reason: "javascript `require`"}},
	"var":       {{Kind: JavaScript, Score: 2, Reason: "javascript keyword `var`"}},

	// Двухязычные слова.
	"class": {
		{Kind: Cpp, Score: 2, Reason: "c++ keyword `class`"},
		{Kind: Java, Score: 2, Reason: "java keyword `class`"},
	},
	"import": {
		{Kind: Python, Score: 2, Reason: "python keyword `import`"},
		{Kind: Java, Score: 2, Reason: "java keyword `import`"},
	},
	"public": {
		{Kind: Cpp, Score: 1, Reason: "c++ keyword `public`"},
		{Kind: Java, Score: 2, Reason: "java keyword `public`"},
	},
	"private": {
		{Kind: Cpp, Score: 1, Reason: "c++ keyword `private`"},
		{Kind: Java, Score: 2, Reason: "java keyword `private`"},
	},
	"new": {
		{Kind: Cpp, Score: 1, Reason: "c++ keyword `new`"},
		{Kind: Java, Score: 1, Reason: "java keyword `new`"},
		{Kind: JavaScript, Score: 1, Reason: "javascript keyword `new`"},
	},
}

// RecordIdent collects keyword evidence for one scanned word. It tries an
// exact match first, then a lowercased one for shouty spellings ("DEF").
func RecordIdent(e *Evidence, ident string, span source.Span) {
	if e == nil || ident == "" {
		return
	}
	recordIdentKey(e, ident, span)
	if lower := strings.ToLower(ident); lower != ident {
		recordIdentKey(e, lower, span)
	}
}

func recordIdentKey(e *Evidence, ident string, span source.Span) {
	for _, sig := range keywordSignals[ident] {
		e.Add(Hint{
			Kind:   sig.Kind,
			Score:  sig.Score,
			Reason: sig.Reason,
			Span:   span,
		})
	}
}
