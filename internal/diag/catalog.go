package diag

import (
	_ "embed"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed catalog_en.yaml
var catalogEN []byte

// catalogDoc is the on-disk shape of a locale message catalog: a flat map
// from diagnostic code to a `{name}`-templated message string.
type catalogDoc map[string]string

// Catalog holds the loaded message templates for every known locale.
type Catalog struct {
	locales map[string]catalogDoc
}

// defaultCatalog is loaded once from the embedded English catalog. Other
// locales can be merged in with LoadLocale.
var defaultCatalog = mustLoadDefault()

func mustLoadDefault() *Catalog {
	c := &Catalog{locales: map[string]catalogDoc{}}
	var doc catalogDoc
	if err := yaml.Unmarshal(catalogEN, &doc); err != nil {
		panic("diag: embedded catalog_en.yaml failed to parse: " + err.Error())
	}
	c.locales["en"] = doc
	return c
}

// LoadLocale merges an additional locale's templates (as raw YAML bytes)
// into the catalog, keyed by locale name.
func (c *Catalog) LoadLocale(locale string, yamlBytes []byte) error {
	var doc catalogDoc
	if err := yaml.Unmarshal(yamlBytes, &doc); err != nil {
		return err
	}
	c.locales[locale] = doc
	return nil
}

// Template returns the raw message template for code in locale, falling
// back to "en" when the locale or code is absent.
func (c *Catalog) Template(locale, code string) (string, bool) {
	if doc, ok := c.locales[locale]; ok {
		if tmpl, ok := doc[code]; ok {
			return tmpl, true
		}
	}
	if doc, ok := c.locales["en"]; ok {
		if tmpl, ok := doc[code]; ok {
			return tmpl, true
		}
	}
	return "", false
}

// FormatMessage substitutes `{name}`-style placeholders in a template with
// the supplied arguments, leaving unknown placeholders verbatim — the
// template is never required to consume every argument, nor every
// placeholder to be supplied.
func FormatMessage(template string, args map[string]string) string {
	var b strings.Builder
	i := 0
	for i < len(template) {
		if template[i] == '{' {
			if end := strings.IndexByte(template[i:], '}'); end > 0 {
				name := template[i+1 : i+end]
				if val, ok := args[name]; ok {
					b.WriteString(val)
					i += end + 1
					continue
				}
			}
		}
		b.WriteByte(template[i])
		i++
	}
	return b.String()
}

// Message renders the message for code in the given locale using the
// default (English-seeded) catalog, falling back to the code itself if no
// template is registered.
func Message(locale, code string, args map[string]string) string {
	tmpl, ok := defaultCatalog.Template(locale, code)
	if !ok {
		return code
	}
	return FormatMessage(tmpl, args)
}

// DefaultCatalog exposes the package-wide catalog instance for tests and
// for callers that want to register additional locales process-wide.
func DefaultCatalog() *Catalog { return defaultCatalog }
