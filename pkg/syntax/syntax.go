// Package syntax splits pseudocode lines into highlight tokens. It is used for
// rendering only and never affects formatting.
package syntax

import "regexp"

// Kind is the highlight class of a token. The names match the token names
// used by theme rules.
type Kind string

const (
	Text       Kind = ""
	Step       Kind = "step"
	Keyword    Kind = "keyword"
	Type       Kind = "type"
	Predefined Kind = "predefined"
	Constant   Kind = "constant"
	Operator   Kind = "operator"
	Number     Kind = "number"
	String     Kind = "string"
	Comment    Kind = "comment"
	Identifier Kind = "identifier"
)

// Kinds lists every highlighted kind in rule order.
var Kinds = []Kind{Step, Keyword, Type, Predefined, Constant, Operator, Number, String, Comment, Identifier}

// Token is a run of text with a single kind.
type Token struct {
	Text string
	Kind Kind
}

type rule struct {
	re *regexp.Regexp
	// wordStart rules only match where the previous byte is not a word byte.
	wordStart bool
	kind      Kind
}

// Rules are tried in order at every position; the first match wins.
var rules = []rule{
	{regexp.MustCompile(`^A\d+\.`), true, Step},
	{regexp.MustCompile(`^(?i:ALGORITMO|INICIO|FIN|SI|ENTONCES|SINO|FIN_SI|MIENTRAS|HACER|FIN_MIENTRAS|PARA|DESDE|HASTA|PASO|FIN_PARA|REPETIR|HASTA_QUE|SEGUN|CASO|FIN_SEGUN)\b`), true, Keyword},
	{regexp.MustCompile(`^(?i:ENTERO|REAL|CARACTER|CADENA|LOGICO|BOOLEANO)\b`), true, Type},
	{regexp.MustCompile(`^(?i:ESCRIBIR|LEER|MOSTRAR)\b`), true, Predefined},
	{regexp.MustCompile(`^(?i:VERDADERO|FALSO)\b`), true, Constant},
	{regexp.MustCompile(`^(?i:Y|O|NO)\b`), true, Operator},
	{regexp.MustCompile(`^\d+`), false, Number},
	{regexp.MustCompile(`^"[^"]*"`), false, String},
	{regexp.MustCompile(`^//.*`), false, Comment},
	{regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*`), false, Identifier},
}

func isWord(b byte) bool {
	return b == '_' || '0' <= b && b <= '9' || 'a' <= b && b <= 'z' || 'A' <= b && b <= 'Z'
}

// Tokenize splits a single line into tokens. Text no rule matches becomes
// Text tokens; adjacent tokens of the same kind are merged. Joining the
// token texts gives back line.
func Tokenize(line string) []Token {
	var out []Token
	emit := func(text string, kind Kind) {
		if n := len(out); n > 0 && out[n-1].Kind == kind {
			out[n-1].Text += text
			return
		}
		out = append(out, Token{Text: text, Kind: kind})
	}

	for pos := 0; pos < len(line); {
		matched := false
		for _, r := range rules {
			if r.wordStart && pos > 0 && isWord(line[pos-1]) {
				continue
			}
			loc := r.re.FindStringIndex(line[pos:])
			if loc == nil || loc[1] == 0 {
				continue
			}
			emit(line[pos:pos+loc[1]], r.kind)
			pos += loc[1]
			matched = true
			break
		}
		if !matched {
			emit(line[pos:pos+1], Text)
			pos++
		}
	}
	return out
}
