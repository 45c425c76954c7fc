package types

import (
	"fmt"
	"strings"
	"unicode"
)

// Resolver supplies named types (proto messages, aliases) to the annotation
// parser. Unqualified names that are not builtins resolve through it.
type Resolver interface {
	LookupType(name string) (Type, bool)
}

var builtinNames = map[string]func() Type{
	"any":                  func() Type { return Any },
	"?":                    func() Type { return Unknown },
	"never":                func() Type { return Never },
	"null":                 func() Type { return Null },
	"undefined":            func() Type { return Undefined },
	"bool":                 func() Type { return Bool },
	"int":                  func() Type { return Int },
	"float":                func() Type { return Float },
	"number":               func() Type { return Union(Int, Float) },
	"string":               func() Type { return String },
	"uri":                  func() Type { return Uri },
	"trusted_resource_uri": func() Type { return TrustedResourceUri },
	"html":                 func() Type { return Html },
	"js":                   func() Type { return Js },
	"css":                  func() Type { return Css },
	"attributes":           func() Type { return Attributes },
	"ve_data":              func() Type { return VeData },
}

// Parse converts a textual type annotation (as written in template source,
// e.g. "map<string,int|null>" or "[a: int, bb?: float]") into a Type.
// Malformed annotations are API-level errors, not diagnostics: the caller
// decides where to report them.
func Parse(annotation string, resolver Resolver) (Type, error) {
	p := &typeParser{input: annotation, resolver: resolver}
	t, err := p.parseUnion()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.input) {
		return nil, fmt.Errorf("unexpected %q at offset %d in type %q", p.rest(), p.pos, annotation)
	}
	return t, nil
}

// MustParse is Parse for annotations known to be well formed, such as test
// fixtures and registry declarations.
func MustParse(annotation string, resolver Resolver) Type {
	t, err := Parse(annotation, resolver)
	if err != nil {
		panic(err)
	}
	return t
}

type typeParser struct {
	input    string
	pos      int
	resolver Resolver
}

func (p *typeParser) rest() string { return p.input[p.pos:] }

func (p *typeParser) skipSpace() {
	for p.pos < len(p.input) && unicode.IsSpace(rune(p.input[p.pos])) {
		p.pos++
	}
}

func (p *typeParser) consume(prefix string) bool {
	p.skipSpace()
	if strings.HasPrefix(p.rest(), prefix) {
		p.pos += len(prefix)
		return true
	}
	return false
}

func (p *typeParser) expect(token string) error {
	if !p.consume(token) {
		return fmt.Errorf("expected %q at offset %d in type %q", token, p.pos, p.input)
	}
	return nil
}

func (p *typeParser) parseUnion() (Type, error) {
	first, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	members := []Type{first}
	for p.consume("|") {
		next, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		members = append(members, next)
	}
	return Union(members...), nil
}

func (p *typeParser) parsePrimary() (Type, error) {
	p.skipSpace()
	if p.consume("[") {
		return p.parseRecord()
	}
	if p.consume("?") {
		return Unknown, nil
	}

	name := p.parseName()
	if name == "" {
		return nil, fmt.Errorf("expected a type at offset %d in type %q", p.pos, p.input)
	}

	switch name {
	case "list":
		if err := p.expect("<"); err != nil {
			return nil, err
		}
		elem, err := p.parseUnion()
		if err != nil {
			return nil, err
		}
		if err := p.expect(">"); err != nil {
			return nil, err
		}
		return NewList(elem), nil
	case "map", "legacy_object_map":
		if err := p.expect("<"); err != nil {
			return nil, err
		}
		key, err := p.parseUnion()
		if err != nil {
			return nil, err
		}
		if err := p.expect(","); err != nil {
			return nil, err
		}
		value, err := p.parseUnion()
		if err != nil {
			return nil, err
		}
		if err := p.expect(">"); err != nil {
			return nil, err
		}
		if name == "map" {
			return NewMap(key, value), nil
		}
		return NewLegacyMap(key, value), nil
	case "ve":
		if err := p.expect("<"); err != nil {
			return nil, err
		}
		data, err := p.parseUnion()
		if err != nil {
			return nil, err
		}
		if err := p.expect(">"); err != nil {
			return nil, err
		}
		return NewVe(data), nil
	}

	if builtin, ok := builtinNames[name]; ok {
		return builtin(), nil
	}
	if p.resolver != nil {
		if t, ok := p.resolver.LookupType(name); ok {
			return t, nil
		}
	}
	return nil, fmt.Errorf("unknown type %q in type %q", name, p.input)
}

func (p *typeParser) parseRecord() (Type, error) {
	p.skipSpace()
	if p.consume("]") {
		return NewRecord(), nil
	}
	var fields []RecordField
	for {
		fieldName := p.parseName()
		if fieldName == "" {
			return nil, fmt.Errorf("expected a field name at offset %d in type %q", p.pos, p.input)
		}
		optional := p.consume("?")
		if err := p.expect(":"); err != nil {
			return nil, err
		}
		fieldType, err := p.parseUnion()
		if err != nil {
			return nil, err
		}
		fields = append(fields, RecordField{Name: fieldName, Type: fieldType, Optional: optional})
		if p.consume("]") {
			return NewRecord(fields...), nil
		}
		if err := p.expect(","); err != nil {
			return nil, err
		}
	}
}

func (p *typeParser) parseName() string {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.input) {
		c := rune(p.input[p.pos])
		if unicode.IsLetter(c) || unicode.IsDigit(c) || c == '_' || c == '.' {
			p.pos++
			continue
		}
		break
	}
	return p.input[start:p.pos]
}
