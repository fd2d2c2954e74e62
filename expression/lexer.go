package expression

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokIdent
	tokOp
	tokLParen
	tokRParen
	tokComma
)

type token struct {
	kind tokenKind
	text string
	num  float64
	// pos counts runes from the start of the formula
	pos int
}

func (t token) String() string {
	if t.kind == tokEOF {
		return "end of formula"
	}
	return strconv.Quote(t.text)
}

// longest operators first so "**" wins over "*"
var operators = []string{"**", "//", "<=", ">=", "==", "!=", "+", "-", "*", "/", "%", "<", ">"}

func tokenize(src string) ([]token, error) {
	runes := []rune(src)
	var tokens []token
	i := 0
	for i < len(runes) {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case r == '(':
			tokens = append(tokens, token{kind: tokLParen, text: "(", pos: i})
			i++
		case r == ')':
			tokens = append(tokens, token{kind: tokRParen, text: ")", pos: i})
			i++
		case r == ',':
			tokens = append(tokens, token{kind: tokComma, text: ",", pos: i})
			i++
		case unicode.IsDigit(r) || (r == '.' && i+1 < len(runes) && unicode.IsDigit(runes[i+1])):
			tok, next, err := scanNumber(runes, i)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok)
			i = next
		case unicode.IsLetter(r) || r == '_':
			start := i
			for i < len(runes) && (unicode.IsLetter(runes[i]) || unicode.IsDigit(runes[i]) || runes[i] == '_') {
				i++
			}
			tokens = append(tokens, token{kind: tokIdent, text: string(runes[start:i]), pos: start})
		default:
			op := matchOperator(runes[i:])
			if op == "" {
				return nil, fmt.Errorf("%w: unexpected character %q at position %v", ErrSyntax, r, i)
			}
			tokens = append(tokens, token{kind: tokOp, text: op, pos: i})
			i += len(op)
		}
	}
	tokens = append(tokens, token{kind: tokEOF, pos: len(runes)})
	return tokens, nil
}

func matchOperator(rest []rune) string {
	s := string(rest[:min(2, len(rest))])
	for _, op := range operators {
		if strings.HasPrefix(s, op) {
			return op
		}
	}
	return ""
}

func scanNumber(runes []rune, at int) (token, int, error) {
	i := at
	digits := func() {
		for i < len(runes) && unicode.IsDigit(runes[i]) {
			i++
		}
	}
	digits()
	if i < len(runes) && runes[i] == '.' {
		i++
		digits()
	}
	if i < len(runes) && (runes[i] == 'e' || runes[i] == 'E') {
		j := i + 1
		if j < len(runes) && (runes[j] == '+' || runes[j] == '-') {
			j++
		}
		if j < len(runes) && unicode.IsDigit(runes[j]) {
			i = j
			digits()
		}
	}
	text := string(runes[at:i])
	num, err := strconv.ParseFloat(text, 64)
	// literals too large for a float64 read as inf
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return token{}, at, fmt.Errorf("%w: bad number %q at position %v", ErrSyntax, text, at)
	}
	if i < len(runes) && (unicode.IsLetter(runes[i]) || runes[i] == '_') {
		return token{}, at, fmt.Errorf("%w: bad number %q at position %v", ErrSyntax, string(runes[at:i+1]), at)
	}
	return token{kind: tokNumber, text: text, num: num, pos: at}, i, nil
}
