package mathml

import (
	"fmt"
	"html"
	"strings"
	"unicode"
	"unicode/utf8"
)

// maxDepth bounds group nesting so hostile input cannot exhaust the stack.
const maxDepth = 64

// stopKind tells parseRow what ends the current row.
type stopKind int

const (
	stopEOF stopKind = iota
	stopBrace
	stopBracket
	stopRight
)

// node is one typeset element.
type node struct {
	markup string
	// limits puts scripts under and over the node in display mode.
	limits bool
}

type parser struct {
	src     string
	pos     int
	display bool
	depth   int
}

func (p *parser) errorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s at position %d", ErrParse, fmt.Sprintf(format, args...), p.pos)
}

func (p *parser) eof() bool {
	return p.pos >= len(p.src)
}

func (p *parser) peek() rune {
	r, _ := utf8.DecodeRuneInString(p.src[p.pos:])
	return r
}

func (p *parser) next() rune {
	r, n := utf8.DecodeRuneInString(p.src[p.pos:])
	p.pos += n
	return r
}

// skipSpace skips whitespace and %-comments, which carry no meaning in math.
func (p *parser) skipSpace() {
	for !p.eof() {
		switch p.peek() {
		case ' ', '\t', '\n', '\r':
			p.pos++
		case '%':
			for !p.eof() && p.peek() != '\n' {
				p.pos++
			}
		default:
			return
		}
	}
}

// atCommand reports whether the input continues with \name as a whole word.
func (p *parser) atCommand(name string) bool {
	rest := p.src[p.pos:]
	if !strings.HasPrefix(rest, `\`+name) {
		return false
	}
	after := rest[1+len(name):]
	return after == "" || !isASCIILetter(rune(after[0]))
}

func (p *parser) parseRow(stop stopKind) ([]node, error) {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > maxDepth {
		return nil, p.errorf("expression nested too deeply")
	}

	var row []node
	for {
		p.skipSpace()
		if p.eof() {
			switch stop {
			case stopBrace:
				return nil, p.errorf("expected '}'")
			case stopBracket:
				return nil, p.errorf("expected ']'")
			case stopRight:
				return nil, p.errorf(`missing \right`)
			}
			return row, nil
		}

		c := p.peek()
		switch {
		case c == '}':
			if stop == stopBrace {
				return row, nil
			}
			return nil, p.errorf("unexpected '}'")
		case c == ']' && stop == stopBracket:
			return row, nil
		case p.atCommand("right"):
			if stop == stopRight {
				return row, nil
			}
			return nil, p.errorf(`\right without matching \left`)
		case c == '^' || c == '_':
			n, err := p.parseScripts(node{markup: "<mrow></mrow>"})
			if err != nil {
				return nil, err
			}
			row = append(row, n)
			continue
		}

		n, ok, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		n, err = p.parseScripts(n)
		if err != nil {
			return nil, err
		}
		row = append(row, n)
	}
}

// parseScripts attaches any following primes, superscript and subscript to
// base.
func (p *parser) parseScripts(base node) (node, error) {
	var sup, sub, primes string
	var hasSup, hasSub bool

	for {
		p.skipSpace()
		if p.eof() {
			break
		}
		c := p.peek()
		if c == '\'' {
			if hasSup {
				return node{}, p.errorf("double superscript")
			}
			p.next()
			primes += "<mo>′</mo>"
			continue
		}
		if c != '^' && c != '_' {
			break
		}
		p.next()
		arg, err := p.parseArg()
		if err != nil {
			return node{}, err
		}
		if c == '^' {
			if hasSup {
				return node{}, p.errorf("double superscript")
			}
			hasSup, sup = true, arg
		} else {
			if hasSub {
				return node{}, p.errorf("double subscript")
			}
			hasSub, sub = true, arg
		}
	}

	if primes != "" {
		hasSup = true
		sup = "<mrow>" + primes + sup + "</mrow>"
	}
	if !hasSup && !hasSub {
		return base, nil
	}

	under := base.limits && p.display
	var markup string
	switch {
	case hasSup && hasSub && under:
		markup = "<munderover>" + base.markup + sub + sup + "</munderover>"
	case hasSup && hasSub:
		markup = "<msubsup>" + base.markup + sub + sup + "</msubsup>"
	case hasSup && under:
		markup = "<mover>" + base.markup + sup + "</mover>"
	case hasSup:
		markup = "<msup>" + base.markup + sup + "</msup>"
	case under:
		markup = "<munder>" + base.markup + sub + "</munder>"
	default:
		markup = "<msub>" + base.markup + sub + "</msub>"
	}
	return node{markup: markup}, nil
}

// parseArg reads one command argument: a group, a command, or a single
// character. A bare digit run contributes only its first digit, as in
// \frac12 or x^23.
func (p *parser) parseArg() (string, error) {
	p.skipSpace()
	if p.eof() {
		return "", p.errorf("missing argument")
	}
	switch c := p.peek(); {
	case c == '}' || c == '^' || c == '_' || c == ']':
		return "", p.errorf("missing argument before %q", c)
	case isDigit(c):
		p.next()
		return "<mn>" + string(c) + "</mn>", nil
	}

	n, ok, err := p.parseAtom()
	if err != nil {
		return "", err
	}
	if !ok {
		return "", p.errorf("missing argument")
	}
	return n.markup, nil
}

// parseGroup reads a required {...} group and returns its row as one
// element.
func (p *parser) parseGroup() (string, error) {
	p.skipSpace()
	if p.eof() || p.peek() != '{' {
		return p.parseArg()
	}
	p.next()
	row, err := p.parseRow(stopBrace)
	if err != nil {
		return "", err
	}
	p.next()
	return wrapRow(row), nil
}

// parseAtom reads one element. ok is false for commands that produce no
// output, such as \displaystyle.
func (p *parser) parseAtom() (node, bool, error) {
	c := p.peek()
	switch {
	case c == '{':
		g, err := p.parseGroup()
		if err != nil {
			return node{}, false, err
		}
		return node{markup: g}, true, nil
	case c == '\\':
		return p.parseCommand()
	case isDigit(c) || (c == '.' && p.digitAt(p.pos+1)):
		return node{markup: "<mn>" + p.readNumber() + "</mn>"}, true, nil
	case c == '&':
		return node{}, false, p.errorf("misplaced alignment tab character &")
	case c == '#':
		return node{}, false, p.errorf("macro parameter character # in math mode")
	case c == '$':
		return node{}, false, p.errorf("unexpected '$' in math mode")
	case c == '~':
		p.next()
		return node{markup: "<mtext>&#160;</mtext>"}, true, nil
	case c == '\'':
		p.next()
		return node{markup: "<mo>′</mo>"}, true, nil
	case c == utf8.RuneError:
		return node{}, false, p.errorf("invalid UTF-8")
	case unicode.IsLetter(c):
		p.next()
		return node{markup: mi(string(c))}, true, nil
	}

	p.next()
	return node{markup: operator(c)}, true, nil
}

// readNumber consumes digits with at most one decimal point.
func (p *parser) readNumber() string {
	start := p.pos
	seenDot := false
	for !p.eof() {
		c := p.src[p.pos]
		if c >= '0' && c <= '9' {
			p.pos++
			continue
		}
		if c == '.' && !seenDot && p.digitAt(p.pos+1) {
			seenDot = true
			p.pos++
			continue
		}
		break
	}
	return p.src[start:p.pos]
}

func (p *parser) digitAt(i int) bool {
	return i < len(p.src) && p.src[i] >= '0' && p.src[i] <= '9'
}

// readCommandName consumes the name after a backslash: a run of letters or
// a single other character.
func (p *parser) readCommandName() (string, error) {
	if p.eof() {
		return "", p.errorf(`unexpected end of input after '\'`)
	}
	if !isASCIILetter(p.peek()) {
		return string(p.next()), nil
	}
	start := p.pos
	for !p.eof() && isASCIILetter(rune(p.src[p.pos])) {
		p.pos++
	}
	return p.src[start:p.pos], nil
}

func (p *parser) parseCommand() (node, bool, error) {
	start := p.pos
	p.next() // backslash
	name, err := p.readCommandName()
	if err != nil {
		return node{}, false, err
	}

	if s, ok := identifiers[name]; ok {
		return node{markup: mi(s)}, true, nil
	}
	if s, ok := uprightIdentifiers[name]; ok {
		return node{markup: `<mi mathvariant="normal">` + s + "</mi>"}, true, nil
	}
	if s, ok := operators[name]; ok {
		return node{markup: "<mo>" + html.EscapeString(s) + "</mo>"}, true, nil
	}
	if s, ok := fenceOperators[name]; ok {
		return node{markup: `<mo stretchy="false">` + html.EscapeString(s) + "</mo>"}, true, nil
	}
	if s, ok := largeOperators[name]; ok {
		return node{markup: `<mo movablelimits="true" largeop="true">` + s + "</mo>", limits: true}, true, nil
	}
	if limits, ok := functions[name]; ok {
		return node{markup: "<mi>" + name + "</mi>", limits: limits}, true, nil
	}
	if w, ok := spaces[name]; ok {
		return node{markup: `<mspace width="` + w + `"></mspace>`}, true, nil
	}
	if noOps[name] {
		return node{}, false, nil
	}
	if style, ok := fractions[name]; ok {
		return p.parseFraction(style, "")
	}
	if style, ok := binomials[name]; ok {
		return p.parseFraction(style, "0")
	}
	if mark, ok := accents[name]; ok {
		base, err := p.parseGroup()
		if err != nil {
			return node{}, false, err
		}
		return node{markup: `<mover accent="true">` + base + "<mo>" + html.EscapeString(mark) + "</mo></mover>"}, true, nil
	}
	if mark, ok := underAccents[name]; ok {
		base, err := p.parseGroup()
		if err != nil {
			return node{}, false, err
		}
		return node{markup: `<munder accentunder="true">` + base + "<mo>" + mark + "</mo></munder>"}, true, nil
	}
	if variant, ok := fontVariants[name]; ok {
		body, err := p.parseGroup()
		if err != nil {
			return node{}, false, err
		}
		return node{markup: `<mstyle mathvariant="` + variant + `">` + body + "</mstyle>"}, true, nil
	}
	if textCommands[name] {
		text, err := p.readText()
		if err != nil {
			return node{}, false, err
		}
		return node{markup: "<mtext>" + html.EscapeString(text) + "</mtext>"}, true, nil
	}
	if size, ok := sizedDelimiters[name]; ok {
		delim, err := p.parseDelimiter()
		if err != nil {
			return node{}, false, err
		}
		return node{markup: `<mo fence="true" stretchy="true" minsize="` + size + `" maxsize="` + size + `">` + delim + "</mo>"}, true, nil
	}

	switch name {
	case "sqrt":
		return p.parseSqrt()
	case "left":
		return p.parseFenced()
	case "operatorname":
		text, err := p.readText()
		if err != nil {
			return node{}, false, err
		}
		return node{markup: "<mi>" + html.EscapeString(text) + "</mi>"}, true, nil
	case "bmod", "mod":
		return node{markup: "<mo>mod</mo>"}, true, nil
	case "pmod":
		arg, err := p.parseGroup()
		if err != nil {
			return node{}, false, err
		}
		return node{markup: `<mrow><mspace width="0.4444em"></mspace><mo stretchy="false">(</mo><mo>mod</mo><mspace width="0.3333em"></mspace>` + arg + `<mo stretchy="false">)</mo></mrow>`}, true, nil
	case "%", "$", "#", "&", "_":
		return node{markup: "<mi mathvariant=\"normal\">" + html.EscapeString(name) + "</mi>"}, true, nil
	case `\`:
		return node{}, false, p.errorf(`line break \\ outside an environment`)
	case "begin", "end":
		return node{}, false, p.errorf(`environments are not supported`)
	}

	p.pos = start
	return node{}, false, p.errorf(`undefined control sequence \%s`, name)
}

// parseFraction reads two arguments. thickness "0" draws no bar, as for
// binomials, which are also fenced in parentheses.
func (p *parser) parseFraction(style, thickness string) (node, bool, error) {
	num, err := p.parseArg()
	if err != nil {
		return node{}, false, err
	}
	den, err := p.parseArg()
	if err != nil {
		return node{}, false, err
	}

	open := "<mfrac>"
	if thickness != "" {
		open = `<mfrac linethickness="` + thickness + `">`
	}
	markup := open + num + den + "</mfrac>"
	if style != "" {
		markup = `<mstyle displaystyle="` + style + `">` + markup + "</mstyle>"
	}
	if thickness != "" {
		markup = `<mrow><mo fence="true">(</mo>` + markup + `<mo fence="true">)</mo></mrow>`
	}
	return node{markup: markup}, true, nil
}

// parseSqrt reads \sqrt{x} or \sqrt[n]{x}.
func (p *parser) parseSqrt() (node, bool, error) {
	p.skipSpace()
	var index string
	if !p.eof() && p.peek() == '[' {
		p.next()
		row, err := p.parseRow(stopBracket)
		if err != nil {
			return node{}, false, err
		}
		p.next()
		index = wrapRow(row)
	}

	radicand, err := p.parseArg()
	if err != nil {
		return node{}, false, err
	}
	if index != "" {
		return node{markup: "<mroot>" + radicand + index + "</mroot>"}, true, nil
	}
	return node{markup: "<msqrt>" + radicand + "</msqrt>"}, true, nil
}

// parseFenced reads the body of \left<delim> ... \right<delim>.
func (p *parser) parseFenced() (node, bool, error) {
	open, err := p.parseDelimiter()
	if err != nil {
		return node{}, false, err
	}
	body, err := p.parseRow(stopRight)
	if err != nil {
		return node{}, false, err
	}
	p.pos += len(`\right`)
	closing, err := p.parseDelimiter()
	if err != nil {
		return node{}, false, err
	}

	var b strings.Builder
	b.WriteString("<mrow>")
	if open != "" {
		b.WriteString(`<mo fence="true" stretchy="true">` + open + "</mo>")
	}
	for _, n := range body {
		b.WriteString(n.markup)
	}
	if closing != "" {
		b.WriteString(`<mo fence="true" stretchy="true">` + closing + "</mo>")
	}
	b.WriteString("</mrow>")
	return node{markup: b.String()}, true, nil
}

// parseDelimiter reads the delimiter after \left, \right or \big. "." is
// the null delimiter and yields "".
func (p *parser) parseDelimiter() (string, error) {
	p.skipSpace()
	if p.eof() {
		return "", p.errorf("missing delimiter")
	}
	c := p.next()
	switch c {
	case '.':
		return "", nil
	case '(', ')', '[', ']', '|', '/':
		return string(c), nil
	case '<':
		return "⟨", nil
	case '>':
		return "⟩", nil
	case '\\':
		name, err := p.readCommandName()
		if err != nil {
			return "", err
		}
		if s, ok := fenceOperators[name]; ok {
			return html.EscapeString(s), nil
		}
		if s, ok := arrowDelimiters[name]; ok {
			return s, nil
		}
		return "", p.errorf(`invalid delimiter \%s`, name)
	}
	return "", p.errorf("invalid delimiter %q", c)
}

// readText reads the literal argument of \text-like commands: a balanced
// {...} group, or a single character.
func (p *parser) readText() (string, error) {
	p.skipSpace()
	if p.eof() {
		return "", p.errorf("missing argument")
	}
	if p.peek() != '{' {
		return string(p.next()), nil
	}
	p.next()

	var b strings.Builder
	depth := 1
	for !p.eof() {
		c := p.next()
		switch c {
		case '\\':
			if p.eof() {
				return "", p.errorf("expected '}'")
			}
			b.WriteRune(p.next())
			continue
		case '{':
			depth++
			continue
		case '}':
			depth--
			if depth == 0 {
				return b.String(), nil
			}
			continue
		}
		b.WriteRune(c)
	}
	return "", p.errorf("expected '}'")
}

// wrapRow joins a row into a single element.
func wrapRow(row []node) string {
	if len(row) == 1 {
		return row[0].markup
	}
	var b strings.Builder
	b.WriteString("<mrow>")
	for _, n := range row {
		b.WriteString(n.markup)
	}
	b.WriteString("</mrow>")
	return b.String()
}

func mi(s string) string {
	return "<mi>" + html.EscapeString(s) + "</mi>"
}

// operator typesets a single punctuation or operator character.
func operator(c rune) string {
	switch c {
	case '-':
		return "<mo>−</mo>"
	case '*':
		return "<mo>∗</mo>"
	case '(', ')', '[', ']', '|':
		return `<mo stretchy="false">` + string(c) + "</mo>"
	case ',', ';':
		return `<mo separator="true">` + string(c) + "</mo>"
	}
	return "<mo>" + html.EscapeString(string(c)) + "</mo>"
}

func isASCIILetter(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}
