// Package engine implements the class-script host: a small dynamically
// compiled class language whose loaded classes carry hidden companion slot
// tables, one mutable call slot per method. All method dispatch goes through
// the slots, which is what makes them a viable interception point.
package engine

import (
	"fmt"
	"strings"
	"unicode"
)

// tokenKind enumerates lexical token categories.
type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNewline
	tokIdent
	tokInt
	tokFloat
	tokString

	tokLBrace // {
	tokRBrace // }
	tokLParen // (
	tokRParen // )
	tokComma  // ,
	tokSemi   // ;

	tokAssign // =
	tokEq     // ==
	tokNotEq  // !=
	tokLess
	tokLessEq
	tokGreater
	tokGreaterEq
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokPercent
	tokAnd  // &&
	tokOr   // ||
	tokBang // !

	// Keywords
	tokClass
	tokVar
	tokFn
	tokReturn
	tokIf
	tokElse
	tokTrue
	tokFalse
	tokNil
)

var keywords = map[string]tokenKind{
	"class":  tokClass,
	"var":    tokVar,
	"fn":     tokFn,
	"return": tokReturn,
	"if":     tokIf,
	"else":   tokElse,
	"true":   tokTrue,
	"false":  tokFalse,
	"nil":    tokNil,
}

// token is one lexical unit with its source line for diagnostics.
type token struct {
	kind tokenKind
	text string
	line int
}

func (t token) String() string {
	if t.kind == tokEOF {
		return "end of input"
	}
	if t.kind == tokNewline {
		return "newline"
	}
	return fmt.Sprintf("%q", t.text)
}

// lex tokenizes the whole input. Newlines are significant (statement
// terminators), so they are emitted as tokens; consecutive ones collapse.
func lex(src string) ([]token, error) {
	var tokens []token

	line := 1

	emit := func(kind tokenKind, text string) {
		if kind == tokNewline && len(tokens) > 0 && tokens[len(tokens)-1].kind == tokNewline {
			return
		}

		tokens = append(tokens, token{kind: kind, text: text, line: line})
	}

	runes := []rune(src)
	i := 0

	for i < len(runes) {
		ch := runes[i]

		switch {
		case ch == '\n':
			emit(tokNewline, "\n")
			line++
			i++
		case ch == ' ' || ch == '\t' || ch == '\r':
			i++
		case ch == '/' && i+1 < len(runes) && runes[i+1] == '/':
			for i < len(runes) && runes[i] != '\n' {
				i++
			}
		case isIdentStart(ch):
			start := i
			for i < len(runes) && isIdentPart(runes[i]) {
				i++
			}

			word := string(runes[start:i])
			if kw, ok := keywords[word]; ok {
				emit(kw, word)
			} else {
				emit(tokIdent, word)
			}
		case unicode.IsDigit(ch):
			start := i
			isFloat := false

			for i < len(runes) && (unicode.IsDigit(runes[i]) || runes[i] == '.') {
				if runes[i] == '.' {
					if isFloat {
						return nil, fmt.Errorf("line %d: malformed number", line)
					}

					isFloat = true
				}
				i++
			}

			text := string(runes[start:i])
			if strings.HasSuffix(text, ".") {
				return nil, fmt.Errorf("line %d: malformed number %q", line, text)
			}

			if isFloat {
				emit(tokFloat, text)
			} else {
				emit(tokInt, text)
			}
		case ch == '"':
			text, next, err := lexString(runes, i, line)
			if err != nil {
				return nil, err
			}

			emit(tokString, text)
			i = next
		default:
			kind, width, err := lexOperator(runes, i, line)
			if err != nil {
				return nil, err
			}

			emit(kind, string(runes[i:i+width]))
			i += width
		}
	}

	emit(tokNewline, "\n")
	emit(tokEOF, "")

	return tokens, nil
}

// lexString scans a double-quoted string starting at the opening quote.
// Supports \" \\ \n \t escapes. Returns the decoded text and the index just
// past the closing quote.
func lexString(runes []rune, start, line int) (string, int, error) {
	var b strings.Builder

	i := start + 1
	for i < len(runes) {
		switch runes[i] {
		case '"':
			return b.String(), i + 1, nil
		case '\n':
			return "", 0, fmt.Errorf("line %d: unterminated string", line)
		case '\\':
			if i+1 >= len(runes) {
				return "", 0, fmt.Errorf("line %d: unterminated string", line)
			}

			switch runes[i+1] {
			case 'n':
				b.WriteRune('\n')
			case 't':
				b.WriteRune('\t')
			case '"':
				b.WriteRune('"')
			case '\\':
				b.WriteRune('\\')
			default:
				return "", 0, fmt.Errorf("line %d: unknown escape \\%c", line, runes[i+1])
			}

			i += 2
		default:
			b.WriteRune(runes[i])
			i++
		}
	}

	return "", 0, fmt.Errorf("line %d: unterminated string", line)
}

func lexOperator(runes []rune, i, line int) (tokenKind, int, error) {
	two := ""
	if i+1 < len(runes) {
		two = string(runes[i : i+2])
	}

	switch two {
	case "==":
		return tokEq, 2, nil
	case "!=":
		return tokNotEq, 2, nil
	case "<=":
		return tokLessEq, 2, nil
	case ">=":
		return tokGreaterEq, 2, nil
	case "&&":
		return tokAnd, 2, nil
	case "||":
		return tokOr, 2, nil
	}

	switch runes[i] {
	case '{':
		return tokLBrace, 1, nil
	case '}':
		return tokRBrace, 1, nil
	case '(':
		return tokLParen, 1, nil
	case ')':
		return tokRParen, 1, nil
	case ',':
		return tokComma, 1, nil
	case ';':
		return tokSemi, 1, nil
	case '=':
		return tokAssign, 1, nil
	case '<':
		return tokLess, 1, nil
	case '>':
		return tokGreater, 1, nil
	case '+':
		return tokPlus, 1, nil
	case '-':
		return tokMinus, 1, nil
	case '*':
		return tokStar, 1, nil
	case '/':
		return tokSlash, 1, nil
	case '%':
		return tokPercent, 1, nil
	case '!':
		return tokBang, 1, nil
	}

	return tokEOF, 0, fmt.Errorf("line %d: unexpected character %q", line, runes[i])
}

func isIdentStart(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}

func isIdentPart(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch) || unicode.IsDigit(ch)
}
