// Package manifest decodes and validates the TOML project manifest (§6):
// the single `assembly` table or array-of-tables naming the project's
// build targets.
package manifest

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/cursivelang/cursive0/internal/diag"
	"github.com/cursivelang/cursive0/internal/keyword"
)

// EmitIR names the intermediate-representation emission mode for one
// assembly.
type EmitIR string

const (
	EmitNone EmitIR = "none"
	EmitLL   EmitIR = "ll"
	EmitBC   EmitIR = "bc"
)

// Kind names what an assembly builds.
type Kind string

const (
	KindExecutable Kind = "executable"
	KindLibrary    Kind = "library"
)

// Assembly is one `[[assembly]]` (or single `[assembly]`) entry.
type Assembly struct {
	Name   string `toml:"name"`
	Kind   Kind   `toml:"kind"`
	Root   string `toml:"root"`
	OutDir string `toml:"out_dir"`
	EmitIR EmitIR `toml:"emit_ir"`
}

// Document is the decoded project manifest: one or more assemblies under
// the single top-level `assembly` key.
type Document struct {
	Assemblies []Assembly
}

// rawDocument mirrors Document's shape for the typed decode pass of the
// array-of-tables form; Decode decodes a single `[assembly]` table into
// one Assembly and stores it here as a one-element slice.
type rawDocument struct {
	Assembly []Assembly `toml:"assembly"`
}

// Decode parses manifest source text into a Document, enforcing the
// strict-key and duplicate-assembly-name rules of §6. It follows a
// two-pass decode discipline: first into a generic map, which tells the
// single-table form from the array form and is searched for duplicate
// assembly names (TOML's own decoder silently takes the last entry for a
// duplicate key, so that check must happen against the raw document, not
// the typed one), then into the typed struct, whose undecoded keys are
// reported as unknown.
func Decode(src string) (*Document, []diag.Diagnostic) {
	var generic map[string]interface{}
	if _, err := toml.Decode(src, &generic); err != nil {
		return nil, []diag.Diagnostic{{
			Code:     diag.EPrjMissingField,
			Severity: diag.SeverityError,
			Message:  fmt.Sprintf("failed to parse manifest: %s", err),
		}}
	}

	var doc rawDocument
	var meta toml.MetaData
	var err error
	if _, single := generic["assembly"].(map[string]interface{}); single {
		var one struct {
			Assembly Assembly `toml:"assembly"`
		}
		meta, err = toml.Decode(src, &one)
		doc.Assembly = []Assembly{one.Assembly}
	} else {
		meta, err = toml.Decode(src, &doc)
	}
	if err != nil {
		return nil, []diag.Diagnostic{{
			Code:     diag.EPrjMissingField,
			Severity: diag.SeverityError,
			Message:  fmt.Sprintf("failed to parse manifest: %s", err),
		}}
	}

	var diags []diag.Diagnostic
	for _, key := range meta.Undecoded() {
		diags = append(diags, diag.Diagnostic{
			Code:     diag.EPrjUnknownKey,
			Severity: diag.SeverityError,
			Message:  fmt.Sprintf("unknown manifest key %q", key.String()),
		})
	}

	if dups := duplicateAssemblyNames(generic); len(dups) > 0 {
		for _, name := range dups {
			diags = append(diags, diag.Diagnostic{
				Code:     diag.EPrjDuplicateKey,
				Severity: diag.SeverityError,
				Message:  fmt.Sprintf("duplicate assembly name %q", name),
			})
		}
	}

	for i := range doc.Assembly {
		diags = append(diags, validateAssembly(doc.Assembly[i])...)
	}

	if len(diags) > 0 {
		return nil, diags
	}
	return &Document{Assemblies: doc.Assembly}, nil
}

// duplicateAssemblyNames inspects the generic decode of the `assembly`
// key (either a single table or an array of tables) for repeated `name`
// values, which the typed decode above cannot see since Go slices have
// no notion of "duplicate".
func duplicateAssemblyNames(generic map[string]interface{}) []string {
	raw, ok := generic["assembly"]
	if !ok {
		return nil
	}

	var tables []map[string]interface{}
	switch v := raw.(type) {
	case map[string]interface{}:
		tables = append(tables, v)
	case []map[string]interface{}:
		tables = v
	case []interface{}:
		for _, e := range v {
			if m, ok := e.(map[string]interface{}); ok {
				tables = append(tables, m)
			}
		}
	}

	seen := map[string]int{}
	var dups []string
	for _, t := range tables {
		name, _ := t["name"].(string)
		seen[name]++
		if seen[name] == 2 {
			dups = append(dups, name)
		}
	}
	return dups
}

// validateAssembly checks one assembly's required fields and identifier/
// path shape per §6.
func validateAssembly(a Assembly) []diag.Diagnostic {
	var diags []diag.Diagnostic
	if a.Name == "" {
		diags = append(diags, diag.Diagnostic{
			Code: diag.EPrjMissingField, Severity: diag.SeverityError,
			Message: "assembly missing required field \"name\"",
		})
	} else if !isValidIdent(a.Name) {
		diags = append(diags, diag.Diagnostic{
			Code: diag.EPrjBadName, Severity: diag.SeverityError,
			Message: fmt.Sprintf("assembly name %q is not a valid identifier", a.Name),
		})
	}

	switch a.Kind {
	case KindExecutable, KindLibrary:
	case "":
		diags = append(diags, diag.Diagnostic{
			Code: diag.EPrjMissingField, Severity: diag.SeverityError,
			Message: "assembly missing required field \"kind\"",
		})
	default:
		diags = append(diags, diag.Diagnostic{
			Code: diag.EPrjBadKind, Severity: diag.SeverityError,
			Message: fmt.Sprintf("assembly kind %q must be \"executable\" or \"library\"", a.Kind),
		})
	}

	if a.Root == "" {
		diags = append(diags, diag.Diagnostic{
			Code: diag.EPrjMissingField, Severity: diag.SeverityError,
			Message: "assembly missing required field \"root\"",
		})
	} else if !isValidRelativePath(a.Root) {
		diags = append(diags, diag.Diagnostic{
			Code: diag.EPrjBadPath, Severity: diag.SeverityError,
			Message: fmt.Sprintf("assembly root %q must be a relative path under the project root", a.Root),
		})
	}

	if a.OutDir != "" && !isValidRelativePath(a.OutDir) {
		diags = append(diags, diag.Diagnostic{
			Code: diag.EPrjBadPath, Severity: diag.SeverityError,
			Message: fmt.Sprintf("assembly out_dir %q must be a relative path under the project root", a.OutDir),
		})
	}

	switch a.EmitIR {
	case "", EmitNone, EmitLL, EmitBC:
	default:
		diags = append(diags, diag.Diagnostic{
			Code: diag.EPrjBadKind, Severity: diag.SeverityError,
			Message: fmt.Sprintf("assembly emit_ir %q must be one of none, ll, bc", a.EmitIR),
		})
	}

	return diags
}

func isValidIdent(s string) bool {
	if s == "" || keyword.IsReserved(s) {
		return false
	}
	for i, r := range s {
		if r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			continue
		}
		if i > 0 && r >= '0' && r <= '9' {
			continue
		}
		return false
	}
	return true
}

// isValidRelativePath reports whether p is a relative path that cannot
// escape the project root via `..` segments.
func isValidRelativePath(p string) bool {
	if filepath.IsAbs(p) {
		return false
	}
	clean := filepath.ToSlash(filepath.Clean(p))
	if clean == ".." || strings.HasPrefix(clean, "../") {
		return false
	}
	return true
}
