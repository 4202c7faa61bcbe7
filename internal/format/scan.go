package format

import "errors"

var errUnterminatedString = errors.New("unterminated string literal")

// scanner tracks bracket depth across lines, skipping string literals and
// comments. Only block comments can span lines.
type scanner struct {
	inComment bool
}

// scan consumes one line and returns its net bracket depth change.
func (s *scanner) scan(line string) (int, error) {
	delta := 0
	for i := 0; i < len(line); i++ {
		c := line[i]
		if s.inComment {
			if c == '*' && i+1 < len(line) && line[i+1] == '/' {
				s.inComment = false
				i++
			}
			continue
		}

		switch c {
		case '/':
			if i+1 < len(line) {
				switch line[i+1] {
				case '*':
					s.inComment = true
					i++
				case '/':
					return delta, nil
				}
			}
		case '\'', '"', '`':
			end, ok := closingQuote(line, i)
			if !ok {
				return 0, errUnterminatedString
			}
			i = end
		case '{', '[', '(':
			delta++
		case '}', ']', ')':
			delta--
		}
	}
	return delta, nil
}

// closingQuote returns the index of the quote that ends the literal opened
// at line[open].
func closingQuote(line string, open int) (int, bool) {
	q := line[open]
	for i := open + 1; i < len(line); i++ {
		switch line[i] {
		case '\\':
			i++
		case q:
			return i, true
		}
	}
	return 0, false
}
