package dart

import (
	"strings"
	"unicode/utf8"
)

// operators lists multi-character punctuation, longest first.
var operators = []string{
	"??=", "...", "?..", ">>>", "~/=", "<<=", ">>=",
	"..", "?.", "??", "=>", "==", "!=", "<=", ">=", "&&", "||",
	"++", "--", "+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "~/", "<<",
}

// Tokenize splits src into tokens, dropping whitespace and comments.
//
// The tokenizer never fails: an unterminated string or comment simply runs to
// the end of its line (strings) or of the text (block comments), which keeps
// later bracket matching conservative.
func Tokenize(src string) []Token {
	s := &scanner{src: src}
	var toks []Token
	for {
		before := s.pos
		s.skipTrivia()
		if s.pos >= len(s.src) {
			break
		}
		start := s.pos
		kind := s.scan()
		toks = append(toks, Token{
			Kind:  kind,
			Text:  src[start:s.pos],
			Start: start,
			End:   s.pos,
			Space: start > before,
		})
	}
	return toks
}

type scanner struct {
	src string
	pos int
}

func (s *scanner) peek(off int) byte {
	if i := s.pos + off; i < len(s.src) {
		return s.src[i]
	}
	return 0
}

func (s *scanner) skipTrivia() {
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v':
			s.pos++
		case c == '/' && s.peek(1) == '/':
			for s.pos < len(s.src) && s.src[s.pos] != '\n' {
				s.pos++
			}
		case c == '/' && s.peek(1) == '*':
			s.skipBlockComment()
		default:
			return
		}
	}
}

// skipBlockComment consumes a block comment. Dart block comments nest.
func (s *scanner) skipBlockComment() {
	depth := 0
	for s.pos < len(s.src) {
		switch {
		case strings.HasPrefix(s.src[s.pos:], "/*"):
			depth++
			s.pos += 2
		case strings.HasPrefix(s.src[s.pos:], "*/"):
			depth--
			s.pos += 2
			if depth == 0 {
				return
			}
		default:
			s.pos++
		}
	}
}

func (s *scanner) scan() Kind {
	c := s.src[s.pos]
	switch {
	case c == 'r' && isQuote(s.peek(1)):
		s.pos++
		s.scanString(true)
		return String
	case isIdentStart(c):
		s.scanIdent()
		return Ident
	case isDigit(c) || (c == '.' && isDigit(s.peek(1))):
		s.scanNumber()
		return Number
	case isQuote(c):
		s.scanString(false)
		return String
	}
	for _, op := range operators {
		if strings.HasPrefix(s.src[s.pos:], op) {
			s.pos += len(op)
			return Punct
		}
	}
	_, size := utf8.DecodeRuneInString(s.src[s.pos:])
	s.pos += size
	return Punct
}

func (s *scanner) scanIdent() {
	for s.pos < len(s.src) && isIdentPart(s.src[s.pos]) {
		s.pos++
	}
}

func (s *scanner) scanNumber() {
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		switch {
		case isIdentPart(c):
			s.pos++
		case c == '.' && isDigit(s.peek(1)):
			s.pos++
		case (c == '+' || c == '-') && (s.src[s.pos-1] == 'e' || s.src[s.pos-1] == 'E') && isDigit(s.peek(1)):
			s.pos++
		default:
			return
		}
	}
}

// scanString consumes a string literal starting at the opening quote.
func (s *scanner) scanString(raw bool) {
	q := s.src[s.pos]
	closing := string([]byte{q, q, q})
	triple := strings.HasPrefix(s.src[s.pos:], closing)
	if triple {
		s.pos += 3
	} else {
		s.pos++
	}
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		switch {
		case c == '\\' && !raw:
			s.pos += 2
		case triple && strings.HasPrefix(s.src[s.pos:], closing):
			s.pos += 3
			return
		case !triple && c == q:
			s.pos++
			return
		case !triple && c == '\n':
			return
		case c == '$' && !raw && s.peek(1) == '{':
			s.pos += 2
			s.skipInterpolation()
		default:
			s.pos++
		}
	}
	if s.pos > len(s.src) {
		s.pos = len(s.src)
	}
}

// skipInterpolation consumes the expression of a "${...}" up to and
// including its closing brace. Nested strings are scanned recursively.
func (s *scanner) skipInterpolation() {
	depth := 1
	for {
		s.skipTrivia()
		if s.pos >= len(s.src) {
			return
		}
		c := s.src[s.pos]
		switch {
		case c == '{':
			depth++
			s.pos++
		case c == '}':
			depth--
			s.pos++
			if depth == 0 {
				return
			}
		case c == 'r' && isQuote(s.peek(1)):
			s.pos++
			s.scanString(true)
		case isIdentStart(c):
			s.scanIdent()
		case isQuote(c):
			s.scanString(false)
		default:
			s.pos++
		}
	}
}

func isQuote(c byte) bool {
	return c == '\'' || c == '"'
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isIdentStart(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || c == '_' || c == '$'
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}
