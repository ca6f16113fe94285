package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"log"
	"strings"
)

const DefaultLang = "en"

//go:embed locales/*.json
var locales embed.FS

// Locales is the built-in message catalog.
func Locales() fs.FS {
	sub, err := fs.Sub(locales, "locales")
	if err != nil {
		panic(err)
	}
	return sub
}

type Localizer struct {
	translations map[string]map[string]string
}

func New(fsys fs.FS) (*Localizer, error) {
	translations := make(map[string]map[string]string)

	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".json") {
			lang := strings.TrimSuffix(d.Name(), ".json")
			file, err := fsys.Open(path)
			if err != nil {
				return err
			}
			defer file.Close()

			var langMap map[string]string
			if err := json.NewDecoder(file).Decode(&langMap); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			translations[lang] = langMap
			log.Printf("Loaded language file: %s", path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load language files: %w", err)
	}

	return &Localizer{translations: translations}, nil
}

func (l *Localizer) Get(lang, key string) string {
	if langMap, ok := l.translations[lang]; ok {
		if value, ok := langMap[key]; ok {
			return value
		}
	}

	if langMap, ok := l.translations[DefaultLang]; ok {
		if value, ok := langMap[key]; ok {
			return value
		}
	}
	return key
}

// Text looks up key and fills {placeholder} fields from name/value pairs.
func (l *Localizer) Text(lang, key string, pairs ...string) string {
	text := l.Get(lang, key)
	if len(pairs) == 0 {
		return text
	}

	oldnew := make([]string, 0, len(pairs))
	for i := 0; i+1 < len(pairs); i += 2 {
		oldnew = append(oldnew, "{"+pairs[i]+"}", pairs[i+1])
	}
	return strings.NewReplacer(oldnew...).Replace(text)
}
