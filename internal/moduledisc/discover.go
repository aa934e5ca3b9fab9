// Package moduledisc discovers `.cursive` source files under a project
// root and derives each one's module path from its directory layout
// (§6): path components are joined with `::`, each component must be a
// valid identifier, and case-folded duplicate module paths collide.
package moduledisc

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/cursivelang/cursive0/internal/diag"
	"github.com/cursivelang/cursive0/internal/keyword"
)

const sourceExt = ".cursive"

// SourceFile is one discovered source file and the module path its
// location derives.
type SourceFile struct {
	ModulePath string
	FilePath   string
}

// DirLister abstracts the filesystem walk so discovery can run over a
// real directory tree or an in-memory fixture alike; paths are relative
// to the project root and slash-separated.
type DirLister interface {
	ListFiles(root string) ([]string, error)
}

// Discover walks root via lister and derives a module path for every
// `.cursive` file found. Files without that extension are skipped.
// Diagnostics are reported for invalid path components (E-MOD-0201),
// case-folded path collisions (E-MOD-0202), and exact duplicate module
// paths (E-MOD-0203, e.g. reached via distinct directory trees mapping
// to the same logical project if the caller supplies more than one root).
func Discover(root string, lister DirLister) ([]SourceFile, []diag.Diagnostic) {
	rels, err := lister.ListFiles(root)
	if err != nil {
		return nil, []diag.Diagnostic{{
			Code:     diag.EModBadComponent,
			Severity: diag.SeverityError,
			Message:  err.Error(),
		}}
	}

	var diags []diag.Diagnostic
	var files []SourceFile
	casefoldSeen := map[string]string // lowercased module path -> first original
	exactSeen := map[string]bool

	sort.Strings(rels)
	for _, rel := range rels {
		if filepath.Ext(rel) != sourceExt {
			continue
		}
		modPath, ok := derivePath(rel, &diags)
		if !ok {
			continue
		}

		fold := strings.ToLower(modPath)
		if first, seen := casefoldSeen[fold]; seen && first != modPath {
			diags = append(diags, diag.Diagnostic{
				Code:     diag.EModCaseCollide,
				Severity: diag.SeverityError,
				Message:  "module path \"" + modPath + "\" collides with \"" + first + "\" after case folding",
			})
			continue
		}
		if exactSeen[modPath] {
			diags = append(diags, diag.Diagnostic{
				Code:     diag.EModDuplicate,
				Severity: diag.SeverityError,
				Message:  "duplicate module path \"" + modPath + "\"",
			})
			continue
		}
		casefoldSeen[fold] = modPath
		exactSeen[modPath] = true
		files = append(files, SourceFile{ModulePath: modPath, FilePath: filepath.Join(root, rel)})
	}

	return files, diags
}

// derivePath joins rel's directory components (minus the `.cursive`
// extension on the final component) with `::`, validating each is an
// identifier. Returns ok=false (and an appended diagnostic) if any
// component is invalid.
func derivePath(rel string, diags *[]diag.Diagnostic) (string, bool) {
	slashed := filepath.ToSlash(rel)
	stem := strings.TrimSuffix(slashed, sourceExt)
	parts := strings.Split(stem, "/")

	for _, p := range parts {
		if !isValidComponent(p) {
			*diags = append(*diags, diag.Diagnostic{
				Code:     diag.EModBadComponent,
				Severity: diag.SeverityError,
				Message:  "path component \"" + p + "\" in \"" + rel + "\" is not a valid identifier",
			})
			return "", false
		}
	}
	return strings.Join(parts, "::"), true
}

func isValidComponent(s string) bool {
	if s == "" || keyword.IsReserved(s) {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
