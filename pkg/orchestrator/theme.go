package orchestrator

import (
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// WithThemeSelector passes a go-theme selector through to the orchestrator so
// theme/variant choices can be resolved ahead of rendering.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(o *Orchestrator) {
		o.themeSelector = selector
	}
}

// WithThemeProvider registers a go-theme provider together with the default
// theme and variant applied when a request does not name its own. Providers
// that can resolve selections (the go-theme registry among them) are used as
// the selector directly.
func WithThemeProvider(provider any, defaultTheme, defaultVariant string) Option {
	return func(o *Orchestrator) {
		if provider == nil {
			return
		}
		if selector, ok := provider.(theme.ThemeSelector); ok {
			o.themeSelector = selector
		}
		o.themeName = defaultTheme
		o.themeVariant = defaultVariant
	}
}

// WithThemeFallbacks overrides the fallback partials used when deriving
// renderer configuration from a theme selection.
func WithThemeFallbacks(fallbacks map[string]string) Option {
	return func(o *Orchestrator) {
		if len(fallbacks) == 0 {
			return
		}
		if o.themeFallbacks == nil {
			o.themeFallbacks = make(map[string]string, len(fallbacks))
		}
		for key, value := range fallbacks {
			o.themeFallbacks[key] = value
		}
	}
}

// defaultThemeFallbacks maps the partial names renderers look up onto the
// embedded page templates, so a theme only has to override what it changes.
func defaultThemeFallbacks() map[string]string {
	return map[string]string{
		"form.page":    "templates/form.tpl",
		"form.success": "templates/success.tpl",
	}
}

// resolveTheme populates the request's renderer theme configuration. Explicit
// request themes win over configured defaults; requests that already carry a
// resolved configuration are left alone.
func (o *Orchestrator) resolveTheme(req *Request) error {
	if req.RenderOptions.Theme != nil || o.themeSelector == nil {
		return nil
	}

	name := req.ThemeName
	if name == "" {
		name = o.themeName
	}
	if name == "" {
		return nil
	}

	variant := req.ThemeVariant
	if variant == "" {
		variant = o.themeVariant
	}

	selection, err := o.themeSelector.Select(name, variant)
	if err != nil {
		return fmt.Errorf("orchestrator: select theme %q: %w", name, err)
	}

	req.RenderOptions.Theme = o.buildRendererTheme(selection)
	return nil
}

// buildRendererTheme flattens a theme selection into the renderer-facing
// configuration: fallback partials overlaid with manifest and variant
// templates, tokens merged variant-over-base, CSS custom properties derived
// from the merged tokens, and an asset resolver rooted at the manifest's
// asset prefix.
func (o *Orchestrator) buildRendererTheme(selection *theme.Selection) *theme.RendererConfig {
	if selection == nil {
		return nil
	}

	partials := make(map[string]string)
	fallbacks := o.themeFallbacks
	if fallbacks == nil {
		fallbacks = defaultThemeFallbacks()
	}
	for key, value := range fallbacks {
		partials[key] = value
	}

	tokens := make(map[string]string)
	assetPrefix := ""
	var baseFiles, variantFiles map[string]string

	if manifest := selection.Manifest; manifest != nil {
		for key, value := range manifest.Templates {
			partials[key] = value
		}
		for key, value := range manifest.Tokens {
			tokens[key] = value
		}
		assetPrefix = manifest.Assets.Prefix
		baseFiles = manifest.Assets.Files

		if variant, ok := manifest.Variants[selection.Variant]; ok {
			for key, value := range variant.Templates {
				partials[key] = value
			}
			for key, value := range variant.Tokens {
				tokens[key] = value
			}
			if variant.Assets.Prefix != "" {
				assetPrefix = variant.Assets.Prefix
			}
			variantFiles = variant.Assets.Files
		}
	}

	cssVars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		name := key
		if !strings.HasPrefix(name, "--") {
			name = "--" + name
		}
		cssVars[name] = value
	}

	return &theme.RendererConfig{
		Theme:    selection.Theme,
		Variant:  selection.Variant,
		Partials: partials,
		Tokens:   tokens,
		CSSVars:  cssVars,
		AssetURL: assetResolver(assetPrefix, baseFiles, variantFiles),
	}
}

// assetResolver maps logical asset keys onto served URLs. Variant files win
// over base files; unknown keys resolve to an empty URL.
func assetResolver(prefix string, base, variant map[string]string) func(string) string {
	return func(key string) string {
		file, ok := variant[key]
		if !ok {
			file, ok = base[key]
		}
		if !ok || file == "" {
			return ""
		}
		if prefix == "" {
			return file
		}
		return strings.TrimSuffix(prefix, "/") + "/" + strings.TrimPrefix(file, "/")
	}
}
