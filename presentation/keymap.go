package presentation

import (
	"unicode"
	"unicode/utf8"

	"glasslabel-go/domain/label"
)

// KeyMap resolves typed characters to labels.
// Matching ignores letter case.
type KeyMap struct {
	bindings map[rune]label.Value
}

// NewKeyMap binds the first character of positive and negative.
// An empty key leaves that label without a shortcut.
func NewKeyMap(positive, negative string) *KeyMap {
	k := &KeyMap{bindings: make(map[rune]label.Value, 2)}
	k.bind(positive, label.Positive)
	k.bind(negative, label.Negative)
	return k
}

func (k *KeyMap) bind(key string, v label.Value) {
	r, size := utf8.DecodeRuneInString(key)
	if size == 0 || r == utf8.RuneError {
		return
	}
	k.bindings[unicode.ToLower(r)] = v
}

// Lookup returns the label bound to r.
func (k *KeyMap) Lookup(r rune) (label.Value, bool) {
	v, ok := k.bindings[unicode.ToLower(r)]
	return v, ok
}
