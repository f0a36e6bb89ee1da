// Package dart is the default front-end: it turns raw Dart source into the
// normalized SourceUnit model (declarations, directives, references).
//
// It is a heuristic line/regex scanner, not a real parser. That is a
// deliberate trade-off: the analysis core only needs names, directives, and
// literal candidates, and a heuristic front-end degrades gracefully on
// malformed input instead of failing the whole run. Structural extraction
// and the lower-precision literal scan are kept as separate passes so the
// imprecise one stays visible.
package dart

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/sweeplab/sweep/pkg/models"
)

// Frontend parses one file into a SourceUnit. The analyzer depends on this
// interface so tests can substitute a fake without touching the filesystem.
type Frontend interface {
	ParseFile(absPath, relPath string) (*models.SourceUnit, error)
}

// ParseError wraps a per-file parse failure. The analyzer recovers from it
// by protecting the file, never by aborting the run.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parser is the default Frontend implementation.
type Parser struct{}

// New creates a parser.
func New() *Parser { return &Parser{} }

// ParseFile reads and parses a Dart file. relPath becomes the unit's
// canonical path.
func (p *Parser) ParseFile(absPath, relPath string) (*models.SourceUnit, error) {
	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, &ParseError{Path: relPath, Err: err}
	}
	return p.Parse(relPath, data)
}

// Parse builds a SourceUnit from source bytes.
func (p *Parser) Parse(relPath string, src []byte) (*models.SourceUnit, error) {
	if bytes.ContainsRune(src, 0) {
		return nil, &ParseError{Path: relPath, Err: fmt.Errorf("binary content")}
	}

	scanned := scan(src)

	unit := &models.SourceUnit{
		Path:    filepath.ToSlash(filepath.Clean(relPath)),
		Aliases: make(map[string]string),
	}

	collectDirectives(scanned, unit)
	collectDeclarations(scanned, unit)
	collectReferences(scanned, unit)
	collectLiterals(scanned, unit)
	collectAliases(scanned, unit)

	return unit, nil
}

var (
	// Directive statements. URIs may be single or double quoted; conditional
	// imports carry extra `if (...) 'uri'` clauses handled separately.
	directiveRe   = regexp.MustCompile(`^\s*(import|export|part)\s`)
	partOfRe      = regexp.MustCompile(`^\s*part\s+of\s`)
	quotedURIRe   = regexp.MustCompile(`['"]([^'"]+)['"]`)
	conditionalRe = regexp.MustCompile(`if\s*\([^)]*\)\s*['"]([^'"]+)['"]`)

	classRe = regexp.MustCompile(`^\s*(?:abstract\s+)?(?:base\s+|final\s+|sealed\s+|interface\s+|mixin\s+)*class\s+([A-Za-z_]\w*)`)
	mixinRe = regexp.MustCompile(`^\s*(?:base\s+)?mixin\s+([A-Za-z_]\w*)`)
	enumRe  = regexp.MustCompile(`^\s*enum\s+([A-Za-z_]\w*)`)

	// A function or method header: optional modifiers and return type, a
	// name, an argument list, ending in a body opener. Keywords are filtered
	// after matching.
	funcRe = regexp.MustCompile(`^\s*(?:static\s+)?(?:(?:[A-Za-z_][\w<>,\s\[\]?]*?)\s+)?([A-Za-z_]\w*)\s*(?:<[^>]*>)?\(`)

	varRe = regexp.MustCompile(`^\s*(?:static\s+)?(?:late\s+)?(?:final|const|var)\s+(?:[A-Za-z_][\w<>,\s\[\]?]*?\s+)?([A-Za-z_]\w*)\s*[=;]`)

	aliasRe = regexp.MustCompile(`^\s*(?:static\s+)?(?:late\s+)?(?:final|const|var|String)\s+(?:[A-Za-z_][\w<>,\s\[\]?]*?\s+)?([A-Za-z_]\w*)\s*=\s*r?['"]`)

	callRe     = regexp.MustCompile(`([.]?)\b([A-Za-z_]\w*)\s*\(`)
	propertyRe = regexp.MustCompile(`\.([A-Za-z_]\w*)\b([^(\w]|$)`)
	namedArgRe = regexp.MustCompile(`[(,]\s*([A-Za-z_]\w*)\s*:`)
	identRe    = regexp.MustCompile(`\b([A-Za-z_]\w*)\b`)
)

// keywords that look like call sites or identifiers but never are.
var keywords = map[string]bool{
	"if": true, "else": true, "for": true, "while": true, "do": true,
	"switch": true, "case": true, "default": true, "break": true,
	"continue": true, "return": true, "throw": true, "try": true,
	"catch": true, "finally": true, "assert": true, "await": true,
	"async": true, "sync": true, "yield": true, "new": true, "const": true,
	"final": true, "var": true, "late": true, "void": true, "dynamic": true,
	"class": true, "enum": true, "mixin": true, "extension": true,
	"extends": true, "implements": true, "with": true, "on": true,
	"is": true, "as": true, "in": true, "this": true, "super": true,
	"true": true, "false": true, "null": true, "static": true,
	"abstract": true, "factory": true, "get": true, "set": true,
	"operator": true, "required": true, "covariant": true, "import": true,
	"export": true, "part": true, "library": true, "typedef": true,
}

func collectDirectives(s *scanResult, unit *models.SourceUnit) {
	for _, stmt := range s.statements {
		if !directiveRe.MatchString(stmt.text) {
			continue
		}
		if partOfRe.MatchString(stmt.text) {
			d := models.Directive{Kind: models.DirectivePartOf, Line: stmt.line}
			if m := quotedURIRe.FindStringSubmatch(stmt.raw); m != nil {
				d.Target = m[1]
			}
			if d.Target != "" {
				unit.Directives = append(unit.Directives, d)
			}
			continue
		}

		kindWord := strings.Fields(stmt.text)[0]
		var kind models.DirectiveKind
		switch kindWord {
		case "import":
			kind = models.DirectiveImport
		case "export":
			kind = models.DirectiveExport
		case "part":
			kind = models.DirectivePart
		default:
			continue
		}

		uris := quotedURIRe.FindAllStringSubmatch(stmt.raw, -1)
		if len(uris) == 0 {
			continue
		}
		d := models.Directive{Kind: kind, Target: uris[0][1], Line: stmt.line}
		for _, m := range conditionalRe.FindAllStringSubmatch(stmt.raw, -1) {
			d.Conditional = append(d.Conditional, m[1])
		}
		unit.Directives = append(unit.Directives, d)
	}
}

func collectDeclarations(s *scanResult, unit *models.SourceUnit) {
	// Innermost class and the depth it opened at, so constructors can be
	// told apart from methods and pops happen on the matching close.
	type openClass struct {
		name  string
		depth int
	}
	var classStack []openClass

	for _, ln := range s.lines {
		for len(classStack) > 0 && ln.depth <= classStack[len(classStack)-1].depth {
			classStack = classStack[:len(classStack)-1]
		}

		if m := classRe.FindStringSubmatch(ln.text); m != nil {
			unit.Declarations = append(unit.Declarations, newDecl(m[1], models.DeclClass, ln.num))
			if strings.Contains(ln.text, "{") {
				classStack = append(classStack, openClass{name: m[1], depth: ln.depth})
			}
		} else if m := mixinRe.FindStringSubmatch(ln.text); m != nil {
			unit.Declarations = append(unit.Declarations, newDecl(m[1], models.DeclClass, ln.num))
		} else if m := enumRe.FindStringSubmatch(ln.text); m != nil {
			unit.Declarations = append(unit.Declarations, newDecl(m[1], models.DeclClass, ln.num))
		} else if ln.depth > 0 && len(classStack) > 0 && isConstructorHeader(ln.text, classStack[len(classStack)-1].name) {
			unit.Declarations = append(unit.Declarations, newDecl(classStack[len(classStack)-1].name, models.DeclConstructor, ln.num))
		} else if isFunctionHeader(ln.text) {
			if m := funcRe.FindStringSubmatch(ln.text); m != nil && !keywords[m[1]] {
				kind := models.DeclFunction
				if ln.depth > 0 {
					kind = models.DeclMethod
				}
				unit.Declarations = append(unit.Declarations, newDecl(m[1], kind, ln.num))
			}
		} else if ln.depth == 0 {
			if m := varRe.FindStringSubmatch(ln.text); m != nil && !keywords[m[1]] {
				unit.Declarations = append(unit.Declarations, newDecl(m[1], models.DeclVariable, ln.num))
			}
		}
	}
}

// isConstructorHeader matches default and factory constructors, including
// the bodyless `Name(this.field);` form.
func isConstructorHeader(line, className string) bool {
	trimmed := strings.TrimSpace(line)
	trimmed = strings.TrimPrefix(trimmed, "const ")
	trimmed = strings.TrimPrefix(trimmed, "factory ")
	if !strings.HasPrefix(trimmed, className) {
		return false
	}
	rest := trimmed[len(className):]
	return strings.HasPrefix(rest, "(") || strings.HasPrefix(rest, ".")
}

// isFunctionHeader reports whether a cleaned line looks like a function or
// method definition (has a body opener) rather than a call site.
func isFunctionHeader(line string) bool {
	trimmed := strings.TrimRight(line, " \t")
	if !strings.HasSuffix(trimmed, "{") && !strings.Contains(trimmed, "=>") {
		return false
	}
	// Control-flow headers also end in "{".
	first := strings.TrimLeft(line, " \t")
	for _, kw := range []string{"if", "for", "while", "switch", "catch", "do", "else", "try", "return"} {
		if strings.HasPrefix(first, kw+" ") || strings.HasPrefix(first, kw+"(") {
			return false
		}
	}
	return funcRe.MatchString(line)
}

func newDecl(name string, kind models.DeclKind, line int) models.Declaration {
	return models.Declaration{
		Name:    name,
		Kind:    kind,
		Line:    line,
		Private: strings.HasPrefix(name, "_"),
	}
}

func collectReferences(s *scanResult, unit *models.SourceUnit) {
	declLines := make(map[string]map[int]bool)
	for _, d := range unit.Declarations {
		if declLines[d.Name] == nil {
			declLines[d.Name] = make(map[int]bool)
		}
		declLines[d.Name][d.Line] = true
	}

	seenIdent := make(map[string]bool)

	for _, ln := range s.lines {
		for _, m := range callRe.FindAllStringSubmatch(ln.text, -1) {
			name := m[2]
			if keywords[name] || declLines[name][ln.num] {
				continue
			}
			kind := models.RefCall
			if m[1] == "" && name[0] >= 'A' && name[0] <= 'Z' {
				kind = models.RefConstruction
			}
			unit.References = append(unit.References, models.Reference{Name: name, Kind: kind, Line: ln.num})
		}

		for _, m := range propertyRe.FindAllStringSubmatch(ln.text, -1) {
			if keywords[m[1]] {
				continue
			}
			unit.References = append(unit.References, models.Reference{Name: m[1], Kind: models.RefProperty, Line: ln.num})
		}

		for _, m := range namedArgRe.FindAllStringSubmatch(ln.text, -1) {
			if keywords[m[1]] {
				continue
			}
			unit.References = append(unit.References, models.Reference{Name: m[1], Kind: models.RefNamedArgument, Line: ln.num})
		}

		// Bare identifiers cover tear-offs (onTap: _handle). Deduplicated
		// per file; one sighting is all the resolvers need.
		for _, m := range identRe.FindAllStringSubmatch(ln.text, -1) {
			name := m[1]
			if keywords[name] || seenIdent[name] || declLines[name][ln.num] {
				continue
			}
			seenIdent[name] = true
			unit.References = append(unit.References, models.Reference{Name: name, Kind: models.RefIdentifier, Line: ln.num})
		}
	}
}

// collectLiterals is the heuristic literal scan: every string literal is a
// usage candidate (asset paths, dynamic lookups). Deduplicated per file by
// content hash; one candidate per distinct value is enough for matching.
func collectLiterals(s *scanResult, unit *models.SourceUnit) {
	seen := make(map[uint64]bool, len(s.literals))
	for _, lit := range s.literals {
		if lit.value == "" {
			continue
		}
		key := xxhash.Sum64String(lit.value)
		if seen[key] {
			continue
		}
		seen[key] = true
		unit.References = append(unit.References, models.Reference{
			Name: lit.value,
			Kind: models.RefStringLiteral,
			Line: lit.line,
		})
	}
}

func collectAliases(s *scanResult, unit *models.SourceUnit) {
	// Single-pass: an identifier assigned a string literal is recorded so
	// later references resolve through it. No expression evaluation.
	for _, lit := range s.literals {
		ln := s.lineAt(lit.line)
		if ln == nil {
			continue
		}
		if m := aliasRe.FindStringSubmatch(ln.text); m != nil && !keywords[m[1]] {
			if _, exists := unit.Aliases[m[1]]; !exists {
				unit.Aliases[m[1]] = lit.value
			}
		}
	}
}
