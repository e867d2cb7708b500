package engine

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// preprocessSource rewrites mesh-script source into something zygomys
// accepts:
//
//  1. :keyword becomes the string literal "__kw_keyword", so keywords need
//     no global symbols and cannot collide with user variables.
//  2. kebab-case identifiers become snake_case (make-grid -> make_grid),
//     since zygomys reads a hyphen as the subtraction operator.
//  3. ; and ;; line comments become // comments.
//
// String literals (double-quoted and backtick) pass through untouched.
func preprocessSource(source string) string {
	p := preprocessor{src: []byte(source)}
	p.out = make([]byte, 0, len(source)+len(source)/4)
	for p.i < len(p.src) {
		switch c := p.src[p.i]; {
		case c == '"':
			p.quoted('"', true)
		case c == '`':
			p.quoted('`', false)
		case c == ';':
			p.comment()
		case c == ':' && p.i+1 < len(p.src):
			p.colon()
		case c == '-' && p.kebab():
			p.out = append(p.out, '_')
			p.i++
		default:
			p.out = append(p.out, c)
			p.i++
		}
	}
	return string(p.out)
}

type preprocessor struct {
	src []byte
	out []byte
	i   int
}

// quoted copies a string literal delimited by q.
func (p *preprocessor) quoted(q byte, escapes bool) {
	p.out = append(p.out, q)
	p.i++
	for p.i < len(p.src) && p.src[p.i] != q {
		if escapes && p.src[p.i] == '\\' && p.i+1 < len(p.src) {
			p.out = append(p.out, p.src[p.i], p.src[p.i+1])
			p.i += 2
			continue
		}
		p.out = append(p.out, p.src[p.i])
		p.i++
	}
	if p.i < len(p.src) {
		p.out = append(p.out, q)
		p.i++
	}
}

func (p *preprocessor) comment() {
	p.out = append(p.out, '/', '/')
	for p.i < len(p.src) && p.src[p.i] == ';' {
		p.i++
	}
	for p.i < len(p.src) && p.src[p.i] != '\n' {
		p.out = append(p.out, p.src[p.i])
		p.i++
	}
}

func (p *preprocessor) colon() {
	next := p.src[p.i+1]
	switch {
	case next == '=':
		// := is assignment
		p.out = append(p.out, ':', '=')
		p.i += 2
	case isLetter(next):
		j := p.i + 1
		for j < len(p.src) && isKWChar(p.src[j]) {
			j++
		}
		p.out = append(p.out, '"')
		p.out = append(p.out, kwPrefix...)
		p.out = append(p.out, p.src[p.i+1:j]...)
		p.out = append(p.out, '"')
		p.i = j
	default:
		p.out = append(p.out, ':')
		p.i++
	}
}

// kebab reports whether the hyphen at p.i joins two identifier pieces
// rather than acting as a minus sign.
func (p *preprocessor) kebab() bool {
	i := p.i
	return i > 0 && i+1 < len(p.src) && isIdentChar(p.src[i-1]) && isLetter(p.src[i+1])
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isIdentChar(c) || c == '-'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}
