package static

import (
	"fmt"
	"strings"

	"github.com/pvandyken/mkinit/pkg/initerrors"
)

// submodSpec is one entry of a __submodules__ declaration: a submodule
// name plus either an explicit attribute list or auto discovery.
type submodSpec struct {
	Name  string
	Attrs []string
	Auto  bool
}

// litScanner tokenizes Python literal collections of strings. It
// understands just enough syntax for declaration values: strings,
// brackets, commas, colons, comments, and None.
type litScanner struct {
	src string
	pos int
}

func (s *litScanner) skipSpace() {
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			s.pos++

			continue
		}

		if c == '#' {
			for s.pos < len(s.src) && s.src[s.pos] != '\n' {
				s.pos++
			}

			continue
		}

		return
	}
}

func (s *litScanner) peek() (byte, bool) {
	s.skipSpace()
	if s.pos >= len(s.src) {
		return 0, false
	}

	return s.src[s.pos], true
}

func (s *litScanner) accept(c byte) bool {
	got, ok := s.peek()
	if ok && got == c {
		s.pos++

		return true
	}

	return false
}

func (s *litScanner) expect(c byte) error {
	got, ok := s.peek()
	if !ok || got != c {
		return fmt.Errorf("%w: expected %q at offset %d", initerrors.ErrParse, string(c), s.pos)
	}

	s.pos++

	return nil
}

func (s *litScanner) str() (string, error) {
	q, ok := s.peek()
	if !ok || (q != '\'' && q != '"') {
		return "", fmt.Errorf("%w: expected string at offset %d", initerrors.ErrParse, s.pos)
	}

	s.pos++
	b := &strings.Builder{}

	for s.pos < len(s.src) {
		c := s.src[s.pos]
		switch c {
		case '\\':
			if s.pos+1 < len(s.src) {
				b.WriteByte(s.src[s.pos+1])
			}
			s.pos += 2
		case q:
			s.pos++

			return b.String(), nil
		default:
			b.WriteByte(c)
			s.pos++
		}
	}

	return "", fmt.Errorf("%w: unterminated string", initerrors.ErrParse)
}

func (s *litScanner) none() bool {
	s.skipSpace()
	if s.pos >= len(s.src) {
		return false
	}

	if strings.HasPrefix(s.src[s.pos:], "None") {
		s.pos += len("None")

		return true
	}

	return false
}

// stringList consumes a list, set, or tuple literal of strings from the
// current position.
func (s *litScanner) stringList() ([]string, error) {
	open, ok := s.peek()
	if !ok {
		return nil, fmt.Errorf("%w: empty literal", initerrors.ErrParse)
	}

	closing, ok := closingFor(open)
	if !ok {
		return nil, fmt.Errorf("%w: expected collection literal", initerrors.ErrParse)
	}

	s.pos++
	names := []string{}

	for {
		if s.accept(closing) {
			return names, nil
		}

		name, err := s.str()
		if err != nil {
			return nil, err
		}

		names = append(names, name)

		if !s.accept(',') {
			if err := s.expect(closing); err != nil {
				return nil, err
			}

			return names, nil
		}
	}
}

func closingFor(open byte) (byte, bool) {
	switch open {
	case '[':
		return ']', true
	case '{':
		return '}', true
	case '(':
		return ')', true
	}

	return 0, false
}

// parseStringList parses a Python list, set, or tuple literal of
// strings, e.g. `['a', 'b']` or `{'a', 'b'}`.
func parseStringList(src string) ([]string, error) {
	s := &litScanner{src: src}

	return s.stringList()
}

// parseSubmodSpec parses a __submodules__ value: either a sequence of
// names (auto attribute discovery) or a dict mapping each name to an
// attribute list, with None meaning auto.
func parseSubmodSpec(src string) ([]submodSpec, error) {
	s := &litScanner{src: src}

	open, ok := s.peek()
	if !ok {
		return nil, fmt.Errorf("%w: empty literal", initerrors.ErrParse)
	}

	if open == '[' || open == '(' {
		names, err := s.stringList()
		if err != nil {
			return nil, err
		}

		specs := make([]submodSpec, len(names))
		for i, n := range names {
			specs[i] = submodSpec{Name: n, Auto: true}
		}

		return specs, nil
	}

	if open != '{' {
		return nil, fmt.Errorf("%w: expected list or dict literal", initerrors.ErrParse)
	}

	s.pos++
	specs := []submodSpec{}

	for {
		if s.accept('}') {
			return specs, nil
		}

		name, err := s.str()
		if err != nil {
			return nil, err
		}

		// A set literal has no colon; its elements are auto entries.
		if !s.accept(':') {
			specs = append(specs, submodSpec{Name: name, Auto: true})

			if !s.accept(',') {
				if err := s.expect('}'); err != nil {
					return nil, err
				}

				return specs, nil
			}

			continue
		}

		spec := submodSpec{Name: name}

		if s.none() {
			spec.Auto = true
		} else {
			attrs, err := s.stringList()
			if err != nil {
				return nil, err
			}

			spec.Attrs = attrs
		}

		specs = append(specs, spec)

		if !s.accept(',') {
			if err := s.expect('}'); err != nil {
				return nil, err
			}

			return specs, nil
		}
	}
}
