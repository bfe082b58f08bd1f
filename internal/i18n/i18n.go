// Package i18n resolves translation keys referenced by global actions.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"
)

// BaseLocale is the locale every other locale falls back to.
const BaseLocale = "en-US"

// Localizer translates a key. A missing key is returned unchanged.
type Localizer interface {
	Localize(key string) string
}

// Identity is a Localizer that never translates.
type Identity struct{}

func (Identity) Localize(key string) string { return key }

type localeFile struct {
	Locale   string            `yaml:"locale"`
	Messages map[string]string `yaml:"messages"`
}

// Bundle holds every loaded locale registered in a x/text catalog.
type Bundle struct {
	messages map[string]map[string]string
	tags     []language.Tag
	matcher  language.Matcher
	builder  *catalog.Builder
}

//go:embed locales/*.yaml
var embeddedFS embed.FS

var defaultBundle = mustLoadEmbedded()

// Default returns the bundle built from the embedded locale files.
func Default() *Bundle {
	return defaultBundle
}

func LoadEmbedded() (*Bundle, error) {
	return LoadFromFS(embeddedFS)
}

// LoadFromFS loads every locales/*.yaml file of fsys.
func LoadFromFS(fsys fs.FS) (*Bundle, error) {
	paths, err := fs.Glob(fsys, "locales/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locale files: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no locale files found")
	}
	sort.Strings(paths)

	b := &Bundle{messages: map[string]map[string]string{}}
	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("read locale %s: %w", p, err)
		}
		var file localeFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse locale %s: %w", p, err)
		}
		if err := b.add(p, file); err != nil {
			return nil, err
		}
	}
	if _, ok := b.messages[BaseLocale]; !ok {
		return nil, fmt.Errorf("base locale %s is not defined", BaseLocale)
	}
	if err := b.register(); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Bundle) add(p string, file localeFile) error {
	locale := strings.TrimSpace(file.Locale)
	if locale == "" {
		return fmt.Errorf("locale %s: locale is required", p)
	}
	if fromPath := strings.TrimSuffix(path.Base(p), path.Ext(p)); fromPath != locale {
		return fmt.Errorf("locale %s: locale %q must match file name %q", p, locale, fromPath)
	}
	if _, exists := b.messages[locale]; exists {
		return fmt.Errorf("locale %s: locale %q already defined", p, locale)
	}
	if len(file.Messages) == 0 {
		return fmt.Errorf("locale %s: messages are required", p)
	}
	messages := make(map[string]string, len(file.Messages))
	for key, value := range file.Messages {
		key = strings.TrimSpace(key)
		if key == "" {
			return fmt.Errorf("locale %s: message key cannot be blank", p)
		}
		messages[key] = value
	}
	b.messages[locale] = messages
	return nil
}

// register fills the x/text catalog. Every locale is completed with base locale
// messages so a printer never has to fall back across tags.
func (b *Bundle) register() error {
	base := b.messages[BaseLocale]
	b.builder = catalog.NewBuilder(catalog.Fallback(language.MustParse(BaseLocale)))

	locales := b.Locales()
	// the matcher prefers its first tag when nothing matches
	sort.SliceStable(locales, func(i, j int) bool { return locales[i] == BaseLocale && locales[j] != BaseLocale })

	for _, locale := range locales {
		tag, err := language.Parse(locale)
		if err != nil {
			return fmt.Errorf("parse locale tag %q: %w", locale, err)
		}
		b.tags = append(b.tags, tag)
		merged := make(map[string]string, len(base))
		for key, value := range base {
			merged[key] = value
		}
		for key, value := range b.messages[locale] {
			merged[key] = value
		}
		for key, value := range merged {
			if err := b.builder.SetString(tag, key, strings.ReplaceAll(value, "%", "%%")); err != nil {
				return fmt.Errorf("register %s/%s: %w", locale, key, err)
			}
		}
	}
	b.matcher = language.NewMatcher(b.tags)
	return nil
}

// Locales returns the loaded locale identifiers, sorted.
func (b *Bundle) Locales() []string {
	out := make([]string, 0, len(b.messages))
	for locale := range b.messages {
		out = append(out, locale)
	}
	sort.Strings(out)
	return out
}

// HasKey reports whether key is defined for locale or the base locale.
func (b *Bundle) HasKey(locale, key string) bool {
	if _, ok := b.messages[locale][key]; ok {
		return true
	}
	_, ok := b.messages[BaseLocale][key]
	return ok
}

// Localizer returns a Localizer for the closest loaded locale.
func (b *Bundle) Localizer(locale string) *Printer {
	requested, err := language.Parse(strings.TrimSpace(locale))
	if err != nil {
		requested = language.MustParse(BaseLocale)
	}
	_, index, _ := b.matcher.Match(requested)
	tag := b.tags[index]
	return &Printer{
		tag:     tag,
		printer: message.NewPrinter(tag, message.Catalog(b.builder)),
	}
}

// Printer is a Localizer bound to one locale.
type Printer struct {
	tag     language.Tag
	printer *message.Printer
}

// Tag returns the locale the printer resolved to.
func (p *Printer) Tag() language.Tag {
	return p.tag
}

func (p *Printer) Localize(key string) string {
	if key == "" {
		return ""
	}
	return p.printer.Sprintf(message.Key(key, strings.ReplaceAll(key, "%", "%%")))
}

func mustLoadEmbedded() *Bundle {
	b, err := LoadEmbedded()
	if err != nil {
		panic(err)
	}
	return b
}
