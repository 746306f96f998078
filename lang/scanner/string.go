package scanner

import "github.com/mna/ember/lang/token"

// string scans a double-quoted string literal. The opening '"' has already
// been consumed by Scan. Multi-line strings are allowed; the embedded
// newline still advances the line counter so later tokens report the
// correct line. An unterminated string produces a token.ERROR token whose
// Message is the diagnostic.
func (s *Scanner) string(start, line int) token.Token {
	for s.cur != '"' && s.cur != -1 {
		s.advance()
	}

	if s.cur == -1 {
		return token.Token{Kind: token.ERROR, Start: start, Length: s.off - start, Line: line, Message: "Unterminated string."}
	}

	// consume the closing quote
	s.advance()
	return token.Token{Kind: token.STRING, Start: start, Length: s.off - start, Line: line}
}
