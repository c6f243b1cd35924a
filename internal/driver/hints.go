package driver

import (
	"tci/internal/diag"
	"tci/internal/dialect"
)

// Порог включения подсказки «это не C» и отрыв от второго места.
// Ниже порога молчим: пара случайных слов вроде `print` ещё ничего
// не доказывает.
const (
	alienHintMinScore  = 8
	alienHintMinLead   = 4
	alienHintMaxLabels = 3
)

// emitAlienHint добавляет одну info-диагностику, когда файл с ошибками
// по уликам похож на Python/C++/Java/JavaScript. Без ошибок подсказка
// не нужна: файл и так принят.
func emitAlienHint(bag *diag.Bag, evidence *dialect.Evidence) {
	if bag == nil || evidence == nil || !bag.HasErrors() {
		return
	}

	cl := (dialect.Classifier{}).Classify(evidence)
	if cl.Kind == dialect.Unknown || cl.Score < alienHintMinScore {
		return
	}
	if cl.Score-cl.RunnerUpScore < alienHintMinLead {
		return
	}
	advice, ok := dialect.AdviceFor(cl.Kind)
	if !ok {
		return
	}

	// Якорь — самая сильная улика доминирующего языка.
	var top dialect.Hint
	for _, h := range evidence.Hints() {
		if h.Kind == cl.Kind && h.Score > top.Score {
			top = h
		}
	}

	d := diag.New(diag.SevInfo, alienCode(cl.Kind), top.Span, advice.Summary)
	d = d.WithNote(top.Span, top.Reason)
	seen := map[string]struct{}{top.Reason: {}}
	for _, h := range evidence.Hints() {
		if len(seen) >= alienHintMaxLabels {
			break
		}
		if h.Kind != cl.Kind {
			continue
		}
		if _, dup := seen[h.Reason]; dup {
			continue
		}
		seen[h.Reason] = struct{}{}
		d = d.WithNote(h.Span, h.Reason)
	}
	d = d.WithNote(top.Span, advice.Counsel+", e.g. "+advice.Example)
	bag.Add(d)
}

func alienCode(k dialect.Kind) diag.Code {
	switch k {
	case dialect.Python:
		return diag.AlnPythonSource
	case dialect.Cpp:
		return diag.AlnCppSource
	case dialect.Java:
		return diag.AlnJavaSource
	case dialect.JavaScript:
		return diag.AlnJavaScriptSource
	default:
		return diag.UnknownCode
	}
}
