package interview

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// parseLiteral parses a Python-style literal expression: lists, tuples,
// dicts, quoted strings (single, double or triple quoted, with implicit
// concatenation), numbers, None, True and False. Trailing commas and '#'
// comments are accepted.
//
// Lists and tuples decode to []any, dicts to map[string]any, numbers to
// float64, None to nil.
func parseLiteral(src string) (any, error) {
	p := &literalParser{src: src}
	p.skipSpace()
	v, err := p.value()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if !p.eof() {
		return nil, p.errorf("unexpected %q after value", p.peek())
	}
	return v, nil
}

type literalParser struct {
	src string
	pos int
}

func (p *literalParser) eof() bool { return p.pos >= len(p.src) }

func (p *literalParser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

func (p *literalParser) errorf(format string, args ...any) error {
	return fmt.Errorf("literal syntax error at offset %d: %s", p.pos, fmt.Sprintf(format, args...))
}

func (p *literalParser) skipSpace() {
	for !p.eof() {
		switch c := p.src[p.pos]; {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v':
			p.pos++
		case c == '\\' && p.pos+1 < len(p.src) && p.src[p.pos+1] == '\n':
			p.pos += 2
		case c == '#':
			for !p.eof() && p.src[p.pos] != '\n' {
				p.pos++
			}
		default:
			return
		}
	}
}

func (p *literalParser) value() (any, error) {
	if p.eof() {
		return nil, p.errorf("unexpected end of input")
	}
	switch c := p.peek(); {
	case c == '[':
		p.pos++
		return p.sequence(']')
	case c == '(':
		p.pos++
		return p.tuple()
	case c == '{':
		p.pos++
		return p.dict()
	case c == '\'' || c == '"':
		return p.stringLiteral()
	case c == '-' || c == '+' || c == '.' || isDigit(c):
		return p.number()
	case isIdentStart(c):
		return p.identifier()
	default:
		return nil, p.errorf("unexpected %q", c)
	}
}

// sequence parses comma separated values up to the closing byte. The opening
// byte has already been consumed.
func (p *literalParser) sequence(closing byte) ([]any, error) {
	items := []any{}
	for {
		p.skipSpace()
		if p.peek() == closing {
			p.pos++
			return items, nil
		}
		v, err := p.value()
		if err != nil {
			return nil, err
		}
		items = append(items, v)
		p.skipSpace()
		switch p.peek() {
		case ',':
			p.pos++
		case closing:
			p.pos++
			return items, nil
		default:
			if p.eof() {
				return nil, p.errorf("missing %q", closing)
			}
			return nil, p.errorf("expected ',' or %q, got %q", closing, p.peek())
		}
	}
}

// tuple handles the "(x)" grouping case, which is not a tuple.
func (p *literalParser) tuple() (any, error) {
	p.skipSpace()
	if p.peek() == ')' {
		p.pos++
		return []any{}, nil
	}
	first, err := p.value()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	switch p.peek() {
	case ')':
		p.pos++
		return first, nil
	case ',':
		p.pos++
		rest, err := p.sequence(')')
		if err != nil {
			return nil, err
		}
		return append([]any{first}, rest...), nil
	}
	if p.eof() {
		return nil, p.errorf("missing ')'")
	}
	return nil, p.errorf("expected ',' or ')', got %q", p.peek())
}

func (p *literalParser) dict() (map[string]any, error) {
	out := map[string]any{}
	for {
		p.skipSpace()
		if p.peek() == '}' {
			p.pos++
			return out, nil
		}
		k, err := p.value()
		if err != nil {
			return nil, err
		}
		key, err := p.dictKey(k)
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		if p.peek() != ':' {
			if p.peek() == ',' || p.peek() == '}' {
				return nil, p.errorf("sets are not supported")
			}
			return nil, p.errorf("expected ':' after dict key")
		}
		p.pos++
		p.skipSpace()
		v, err := p.value()
		if err != nil {
			return nil, err
		}
		out[key] = v
		p.skipSpace()
		switch p.peek() {
		case ',':
			p.pos++
		case '}':
			p.pos++
			return out, nil
		default:
			if p.eof() {
				return nil, p.errorf("missing '}'")
			}
			return nil, p.errorf("expected ',' or '}', got %q", p.peek())
		}
	}
}

func (p *literalParser) dictKey(k any) (string, error) {
	switch key := k.(type) {
	case string:
		return key, nil
	case float64:
		return strconv.FormatFloat(key, 'f', -1, 64), nil
	case bool:
		if key {
			return "True", nil
		}
		return "False", nil
	case nil:
		return "None", nil
	}
	return "", p.errorf("unhashable dict key")
}

func (p *literalParser) identifier() (any, error) {
	start := p.pos
	for !p.eof() && isIdentPart(p.peek()) {
		p.pos++
	}
	word := p.src[start:p.pos]
	switch word {
	case "None":
		return nil, nil
	case "True":
		return true, nil
	case "False":
		return false, nil
	}
	// string prefixes such as r'' or u""
	if q := p.peek(); (q == '\'' || q == '"') && len(word) <= 2 && strings.Trim(strings.ToLower(word), "rub") == "" {
		p.pos = start
		return p.stringLiteral()
	}
	p.pos = start
	return nil, p.errorf("unknown name %q", word)
}

func (p *literalParser) number() (any, error) {
	start := p.pos
	if c := p.peek(); c == '-' || c == '+' {
		p.pos++
		p.skipSpace()
	}
	sign := strings.TrimSpace(p.src[start:p.pos])
	digitsStart := p.pos
	for !p.eof() {
		c := p.peek()
		if isDigit(c) || c == '.' || c == '_' || c == 'e' || c == 'E' {
			p.pos++
			continue
		}
		if (c == '-' || c == '+') && p.pos > digitsStart && (p.src[p.pos-1] == 'e' || p.src[p.pos-1] == 'E') {
			p.pos++
			continue
		}
		break
	}
	text := strings.ReplaceAll(p.src[digitsStart:p.pos], "_", "")
	if text == "" {
		return nil, p.errorf("invalid number")
	}
	f, err := strconv.ParseFloat(sign+text, 64)
	if err != nil {
		return nil, p.errorf("invalid number %q", sign+text)
	}
	return f, nil
}

// stringLiteral parses one or more adjacent string literals and concatenates them.
func (p *literalParser) stringLiteral() (string, error) {
	var b strings.Builder
	n := 0
	for {
		save := p.pos
		if n > 0 {
			p.skipSpace()
		}
		raw := false
		start := p.pos
		for !p.eof() && isIdentStart(p.peek()) && p.pos-start < 2 {
			if c := p.peek(); c == 'r' || c == 'R' {
				raw = true
			}
			p.pos++
		}
		if q := p.peek(); q != '\'' && q != '"' {
			p.pos = save
			if n == 0 {
				return "", p.errorf("expected string")
			}
			return b.String(), nil
		}
		if err := p.quoted(&b, raw); err != nil {
			return "", err
		}
		n++
	}
}

func (p *literalParser) quoted(b *strings.Builder, raw bool) error {
	q := p.src[p.pos]
	delim := string(q)
	if strings.HasPrefix(p.src[p.pos:], strings.Repeat(delim, 3)) {
		delim = strings.Repeat(delim, 3)
	}
	p.pos += len(delim)
	for {
		if p.eof() {
			return p.errorf("unterminated string")
		}
		if strings.HasPrefix(p.src[p.pos:], delim) {
			p.pos += len(delim)
			return nil
		}
		if p.src[p.pos] != '\\' {
			_, size := utf8.DecodeRuneInString(p.src[p.pos:])
			b.WriteString(p.src[p.pos : p.pos+size])
			p.pos += size
			continue
		}
		if p.pos+1 >= len(p.src) {
			return p.errorf("unterminated escape")
		}
		if raw {
			b.WriteString(p.src[p.pos : p.pos+2])
			p.pos += 2
			continue
		}
		if err := p.escape(b); err != nil {
			return err
		}
	}
}

func (p *literalParser) escape(b *strings.Builder) error {
	e := p.src[p.pos+1]
	p.pos += 2
	switch e {
	case '\n':
	case '\\', '\'', '"':
		b.WriteByte(e)
	case 'n':
		b.WriteByte('\n')
	case 't':
		b.WriteByte('\t')
	case 'r':
		b.WriteByte('\r')
	case 'b':
		b.WriteByte('\b')
	case 'f':
		b.WriteByte('\f')
	case 'v':
		b.WriteByte('\v')
	case 'a':
		b.WriteByte('\a')
	case '0':
		b.WriteByte(0)
	case 'x', 'u', 'U':
		width := map[byte]int{'x': 2, 'u': 4, 'U': 8}[e]
		if p.pos+width > len(p.src) {
			return p.errorf("truncated \\%c escape", e)
		}
		n, err := strconv.ParseUint(p.src[p.pos:p.pos+width], 16, 32)
		if err != nil {
			return p.errorf("invalid \\%c escape", e)
		}
		b.WriteRune(rune(n))
		p.pos += width
	default:
		b.WriteByte('\\')
		b.WriteByte(e)
	}
	return nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool { return isIdentStart(c) || isDigit(c) }
