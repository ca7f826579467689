package types

// LocalizedText maps a language code ("ro", "en") to translated copy.
type LocalizedText map[string]string

// Get returns the text for lang, falling back to any available translation.
func (t LocalizedText) Get(lang string) string {
	if t == nil {
		return ""
	}
	if v, ok := t[lang]; ok && v != "" {
		return v
	}
	for _, v := range t {
		if v != "" {
			return v
		}
	}
	return ""
}

// StringMap holds free-form product specifications (label -> value).
type StringMap map[string]string
