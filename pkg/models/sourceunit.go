package models

// DeclKind classifies a declaration found in a source file.
type DeclKind string

const (
	DeclFunction    DeclKind = "function"
	DeclMethod      DeclKind = "method"
	DeclConstructor DeclKind = "constructor"
	DeclVariable    DeclKind = "variable"
	DeclClass       DeclKind = "class"
)

// Declaration is a named entity declared in a source file.
type Declaration struct {
	Name string   `json:"name"`
	Kind DeclKind `json:"kind"`
	Line int      `json:"line"`
	// Private is true when the name begins with the language's private
	// marker (underscore in Dart).
	Private bool `json:"private"`
}

// DirectiveKind classifies a dependency directive.
type DirectiveKind string

const (
	DirectiveImport DirectiveKind = "import"
	DirectiveExport DirectiveKind = "export"
	DirectivePart   DirectiveKind = "part"
	DirectivePartOf DirectiveKind = "part-of"
)

// Directive is an import/export/part statement linking two source files.
type Directive struct {
	Kind DirectiveKind `json:"kind"`
	// Target is the raw URI as written in the source ("../a.dart",
	// "package:app/src/b.dart", "dart:async").
	Target string `json:"target"`
	// Conditional holds configuration-specific URIs from `if (...)` clauses.
	// Each resolves to an additional edge candidate.
	Conditional []string `json:"conditional,omitempty"`
	Line        int      `json:"line"`
}

// RefKind classifies a reference extracted from a source file.
type RefKind string

const (
	RefCall          RefKind = "call"
	RefConstruction  RefKind = "construction"
	RefProperty      RefKind = "property-access"
	RefNamedArgument RefKind = "named-argument"
	RefIdentifier    RefKind = "identifier"
	RefStringLiteral RefKind = "string-literal-candidate"
)

// Reference is a usage site extracted from a source file. String literals
// are included as candidates because asset paths and dynamic lookups are
// not structurally resolvable.
type Reference struct {
	Name string  `json:"name"`
	Kind RefKind `json:"kind"`
	Line int     `json:"line"`
}

// SourceUnit is the normalized representation of one parsed source file.
// A unit is built once per file per analysis run and never mutated after
// construction.
type SourceUnit struct {
	// Path is the canonical (cleaned, slash-separated) project-relative path.
	Path         string        `json:"path"`
	Declarations []Declaration `json:"declarations"`
	Directives   []Directive   `json:"directives"`
	References   []Reference   `json:"references"`
	// Aliases maps identifiers to the string literal assigned to them
	// (single-pass, best-effort; see the usage resolvers).
	Aliases map[string]string `json:"aliases,omitempty"`
}

// HasExport reports whether the unit re-exports another library, which makes
// it a public surface and therefore an entry point.
func (u *SourceUnit) HasExport() bool {
	for _, d := range u.Directives {
		if d.Kind == DirectiveExport {
			return true
		}
	}
	return false
}

// HasTopLevel reports whether the unit declares a top-level function with
// the given name.
func (u *SourceUnit) HasTopLevel(name string) bool {
	for _, d := range u.Declarations {
		if d.Kind == DeclFunction && d.Name == name {
			return true
		}
	}
	return false
}
