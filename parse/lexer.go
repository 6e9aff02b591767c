package parse

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

type tokenKind int

const (
	tokenEOF tokenKind = iota
	tokenIdentifier
	tokenNumber
	tokenString
	tokenPunct
)

type token struct {
	kind  tokenKind
	value string
	start int
	end   int
}

func (t token) String() string {
	switch t.kind {
	case tokenEOF:
		return "end of input"
	case tokenString:
		return strconv.Quote(t.value)
	default:
		return fmt.Sprintf("%q", t.value)
	}
}

var punctuators = []string{
	">>>", "===", "!==", "...",
	"::", "..", ".<", "++", "--", "&&", "||", "??", "<<", ">>", "<=", ">=", "==", "!=",
	".", "(", ")", "[", "]", "{", "}", ",", ";", "!", "~", "+", "-", "*", "/", "%",
	"&", "|", "^", "<", ">", "?", ":", "=", "@",
}

type lexer struct {
	text string
	pos  int
}

func (l *lexer) next() (token, error) {
	l.skipSpace()
	start := l.pos
	if l.pos >= len(l.text) {
		return token{kind: tokenEOF, start: start, end: start}, nil
	}
	c := l.text[l.pos]
	switch {
	case isDigit(c) || (c == '.' && l.pos+1 < len(l.text) && isDigit(l.text[l.pos+1])):
		return l.number()
	case c == '"' || c == '\'':
		return l.string(c)
	}
	r, size := utf8.DecodeRuneInString(l.text[l.pos:])
	if r == '_' || r == '$' || unicode.IsLetter(r) {
		l.pos += size
		for l.pos < len(l.text) {
			r, size := utf8.DecodeRuneInString(l.text[l.pos:])
			if r != '_' && r != '$' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
				break
			}
			l.pos += size
		}
		return token{kind: tokenIdentifier, value: l.text[start:l.pos], start: start, end: l.pos}, nil
	}
	for _, p := range punctuators {
		if strings.HasPrefix(l.text[l.pos:], p) {
			l.pos += len(p)
			return token{kind: tokenPunct, value: p, start: start, end: l.pos}, nil
		}
	}
	return token{}, fmt.Errorf("unexpected character %q at offset %d", r, start)
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.text) {
		switch {
		case strings.HasPrefix(l.text[l.pos:], "//"):
			for l.pos < len(l.text) && l.text[l.pos] != '\n' {
				l.pos++
			}
		case strings.HasPrefix(l.text[l.pos:], "/*"):
			end := strings.Index(l.text[l.pos+2:], "*/")
			if end < 0 {
				l.pos = len(l.text)
			} else {
				l.pos += end + 4
			}
		case l.text[l.pos] == ' ' || l.text[l.pos] == '\t' || l.text[l.pos] == '\n' || l.text[l.pos] == '\r':
			l.pos++
		default:
			return
		}
	}
}

func (l *lexer) number() (token, error) {
	start := l.pos
	if strings.HasPrefix(l.text[l.pos:], "0x") || strings.HasPrefix(l.text[l.pos:], "0X") ||
		strings.HasPrefix(l.text[l.pos:], "0b") || strings.HasPrefix(l.text[l.pos:], "0B") {
		l.pos += 2
		for l.pos < len(l.text) && (isHexDigit(l.text[l.pos]) || l.text[l.pos] == '_') {
			l.pos++
		}
		return token{kind: tokenNumber, value: l.text[start:l.pos], start: start, end: l.pos}, nil
	}
	for l.pos < len(l.text) && (isDigit(l.text[l.pos]) || l.text[l.pos] == '_') {
		l.pos++
	}
	if l.pos+1 < len(l.text) && l.text[l.pos] == '.' && isDigit(l.text[l.pos+1]) {
		l.pos++
		for l.pos < len(l.text) && (isDigit(l.text[l.pos]) || l.text[l.pos] == '_') {
			l.pos++
		}
	}
	if l.pos < len(l.text) && (l.text[l.pos] == 'e' || l.text[l.pos] == 'E') {
		l.pos++
		if l.pos < len(l.text) && (l.text[l.pos] == '+' || l.text[l.pos] == '-') {
			l.pos++
		}
		if l.pos >= len(l.text) || !isDigit(l.text[l.pos]) {
			return token{}, fmt.Errorf("malformed exponent at offset %d", l.pos)
		}
		for l.pos < len(l.text) && isDigit(l.text[l.pos]) {
			l.pos++
		}
	}
	return token{kind: tokenNumber, value: l.text[start:l.pos], start: start, end: l.pos}, nil
}

func (l *lexer) string(quote byte) (token, error) {
	start := l.pos
	l.pos++
	var sb strings.Builder
	for {
		if l.pos >= len(l.text) || l.text[l.pos] == '\n' {
			return token{}, fmt.Errorf("unterminated string literal at offset %d", start)
		}
		c := l.text[l.pos]
		if c == quote {
			l.pos++
			break
		}
		if c != '\\' {
			sb.WriteByte(c)
			l.pos++
			continue
		}
		l.pos++
		if l.pos >= len(l.text) {
			return token{}, fmt.Errorf("unterminated string literal at offset %d", start)
		}
		switch e := l.text[l.pos]; e {
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case 'r':
			sb.WriteByte('\r')
		case '0':
			sb.WriteByte(0)
		case 'u':
			if l.pos+4 >= len(l.text) {
				return token{}, fmt.Errorf("malformed unicode escape at offset %d", l.pos)
			}
			v, err := strconv.ParseUint(l.text[l.pos+1:l.pos+5], 16, 32)
			if err != nil {
				return token{}, fmt.Errorf("malformed unicode escape at offset %d", l.pos)
			}
			sb.WriteRune(rune(v))
			l.pos += 4
		default:
			sb.WriteByte(e)
		}
		l.pos++
	}
	return token{kind: tokenString, value: sb.String(), start: start, end: l.pos}, nil
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isHexDigit(c byte) bool {
	return isDigit(c) || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}
