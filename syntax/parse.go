package syntax

// parser holds the scan state for a single Parse call.
type parser struct {
	pattern string
	runes   []rune
	pos     int

	// groups counts opening parentheses seen so far.
	groups int
}

// Parse converts pattern into a Sequence of nodes.
//
// The pattern must not carry line anchors; strip them first. A malformed
// pattern yields a *Error. Parsing the same pattern twice produces
// structurally equal trees.
//
// Example:
//
//	seq, err := syntax.Parse(`(cat|dog)s?`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(seq) // Sequence(Group#1(Alternation(c a t)|(d o g)) s?)
func Parse(pattern string) (*Sequence, error) {
	p := &parser{pattern: pattern, runes: []rune(pattern)}

	nodes, err := p.parseAlternation()
	if err != nil {
		return nil, err
	}
	if p.more() {
		// parseAlternation only stops early on ')'.
		return nil, p.errorAt(ErrUnexpectedParen, p.pos)
	}
	return &Sequence{Nodes: nodes}, nil
}

func (p *parser) more() bool { return p.pos < len(p.runes) }

func (p *parser) peek() rune { return p.runes[p.pos] }

func (p *parser) next() rune {
	r := p.runes[p.pos]
	p.pos++
	return r
}

func (p *parser) errorAt(code ErrorCode, pos int) *Error {
	return &Error{Code: code, Pattern: p.pattern, Pos: pos}
}

// parseAlternation parses branches separated by '|'. More than two branches
// nest to the right: a|b|c becomes Alternation(a, [Alternation(b, c)]).
func (p *parser) parseAlternation() ([]Node, error) {
	left, err := p.parseSequence()
	if err != nil {
		return nil, err
	}
	if !p.more() || p.peek() != '|' {
		return left, nil
	}
	p.pos++

	right, err := p.parseAlternation()
	if err != nil {
		return nil, err
	}
	return []Node{&Alternation{Left: left, Right: right}}, nil
}

// parseSequence parses items up to '|', ')' or the end of the pattern.
// Each item may carry one quantifier suffix, which is folded into the item
// before it is appended.
func (p *parser) parseSequence() ([]Node, error) {
	nodes := []Node{}
	for p.more() {
		switch p.peek() {
		case '|', ')':
			return nodes, nil
		case '+', '?', '*':
			return nil, p.errorAt(ErrMissingRepeatArgument, p.pos)
		}

		item, err := p.parseAtom()
		if err != nil {
			return nil, err
		}

		if !p.more() {
			nodes = append(nodes, item)
			continue
		}
		switch p.peek() {
		case '?':
			p.pos++
			nodes = append(nodes, &Quantified{Inner: item, Repeat: ZeroOrOne})
		case '*':
			p.pos++
			nodes = append(nodes, &Quantified{Inner: item, Repeat: ZeroOrMore})
		case '+':
			// One mandatory occurrence followed by a zero-or-more tail. The
			// tail shares item: nodes are immutable, so no copy is needed.
			p.pos++
			nodes = append(nodes, item, &Quantified{Inner: item, Repeat: ZeroOrMore})
		default:
			nodes = append(nodes, item)
		}
	}
	return nodes, nil
}

func (p *parser) parseAtom() (Node, error) {
	start := p.pos
	switch r := p.next(); r {
	case '\\':
		return p.parseEscape(start)
	case '[':
		return p.parseCharSet(start)
	case '(':
		return p.parseGroup(start)
	case '.':
		return &AnyChar{}, nil
	default:
		return &Literal{Char: r}, nil
	}
}

func (p *parser) parseEscape(start int) (Node, error) {
	if !p.more() {
		return nil, p.errorAt(ErrTrailingBackslash, start)
	}
	switch r := p.next(); {
	case r == 'd':
		return &DigitClass{}, nil
	case r == 'w':
		return &WordClass{}, nil
	case r >= '1' && r <= '9':
		return &Backreference{Index: int(r - '0')}, nil
	default:
		return &Literal{Char: r}, nil
	}
}

// parseCharSet parses the body of a bracket expression; the '[' has already
// been consumed. Members are taken literally.
func (p *parser) parseCharSet(start int) (Node, error) {
	negated := false
	if p.more() && p.peek() == '^' {
		negated = true
		p.pos++
	}

	var members []rune
	for p.more() && p.peek() != ']' {
		members = append(members, p.next())
	}
	if !p.more() {
		return nil, p.errorAt(ErrMissingBracket, start)
	}
	p.pos++

	if len(members) == 0 {
		return nil, p.errorAt(ErrEmptyCharSet, start)
	}
	return NewCharSet(members, negated), nil
}

// parseGroup parses a parenthesized subpattern; the '(' has already been
// consumed. The group index is fixed here, before its contents are parsed,
// so nested groups number in opening-parenthesis order.
func (p *parser) parseGroup(start int) (Node, error) {
	p.groups++
	index := p.groups

	nodes, err := p.parseAlternation()
	if err != nil {
		return nil, err
	}
	if !p.more() || p.peek() != ')' {
		return nil, p.errorAt(ErrMissingParen, start)
	}
	p.pos++

	return &Group{Index: index, Nodes: nodes}, nil
}

// CaptureCount returns the highest group index found in nodes, which is the
// number of capturing groups in a tree produced by Parse.
func CaptureCount(nodes []Node) int {
	highest := 0
	for _, n := range nodes {
		if c := captureCount(n); c > highest {
			highest = c
		}
	}
	return highest
}

func captureCount(n Node) int {
	switch n := n.(type) {
	case *Group:
		return max(n.Index, CaptureCount(n.Nodes))
	case *Sequence:
		return CaptureCount(n.Nodes)
	case *Alternation:
		return max(CaptureCount(n.Left), CaptureCount(n.Right))
	case *Quantified:
		return captureCount(n.Inner)
	}
	return 0
}
