package html

import (
	"sort"
	"strings"

	"github.com/goliatone/go-formflow/pkg/render"
)

// themeContext flattens the resolved theme configuration into the primitives
// the page shell consumes: a class list for the body element, an inline style
// block declaring the theme's CSS variables, and the stylesheet URL. Pages
// without a themed stylesheet inline the embedded default so standalone
// output is still styled.
func themeContext(options render.RenderOptions) map[string]any {
	ctx := map[string]any{
		"class":      "",
		"style":      "",
		"stylesheet": "",
		"inline_css": "",
	}

	if cfg := options.Theme; cfg != nil {
		classes := make([]string, 0, 2)
		if name := strings.TrimSpace(cfg.Theme); name != "" {
			classes = append(classes, "theme-"+name)
		}
		if variant := strings.TrimSpace(cfg.Variant); variant != "" {
			classes = append(classes, "variant-"+variant)
		}
		ctx["class"] = strings.Join(classes, " ")
		ctx["style"] = cssVarBlock(cfg.CSSVars)

		if cfg.AssetURL != nil {
			ctx["stylesheet"] = cfg.AssetURL(StylesheetName)
		}
	}

	if ctx["stylesheet"] == "" {
		ctx["inline_css"] = defaultStylesheet()
	}
	return ctx
}

// cssVarBlock renders custom properties as a :root declaration. The block is
// injected into a <style> element unescaped, so entries containing characters
// that could terminate the element or the declaration block are dropped.
// Keys are sorted so output stays stable across renders.
func cssVarBlock(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}

	keys := make([]string, 0, len(vars))
	for key := range vars {
		if strings.TrimSpace(key) == "" || !cssSafe(key) || !cssSafe(vars[key]) {
			continue
		}
		keys = append(keys, key)
	}
	if len(keys) == 0 {
		return ""
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root{")
	for _, key := range keys {
		name := key
		if !strings.HasPrefix(name, "--") {
			name = "--" + name
		}
		b.WriteString(name)
		b.WriteByte(':')
		b.WriteString(vars[key])
		b.WriteByte(';')
	}
	b.WriteString("}")
	return b.String()
}

func cssSafe(s string) bool {
	return !strings.ContainsAny(s, "<>{};")
}
