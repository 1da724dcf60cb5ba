package presentation

import (
	"testing"

	"glasslabel-go/domain/label"
)

func TestKeyMap_Lookup(t *testing.T) {
	km := NewKeyMap("j", "l")

	tests := []struct {
		r      rune
		want   label.Value
		wantOK bool
	}{
		{'j', label.Positive, true},
		{'J', label.Positive, true},
		{'l', label.Negative, true},
		{'L', label.Negative, true},
		{'k', 0, false},
		{' ', 0, false},
	}

	for _, tt := range tests {
		got, ok := km.Lookup(tt.r)
		if ok != tt.wantOK {
			t.Errorf("Lookup(%q) ok = %v, want %v", tt.r, ok, tt.wantOK)
			continue
		}
		if ok && got != tt.want {
			t.Errorf("Lookup(%q) = %v, want %v", tt.r, got, tt.want)
		}
	}
}

func TestKeyMap_EmptyKey(t *testing.T) {
	km := NewKeyMap("", "n")

	if _, ok := km.Lookup('j'); ok {
		t.Error("unexpected binding for j")
	}
	if v, ok := km.Lookup('n'); !ok || v != label.Negative {
		t.Errorf("Lookup('n') = %v, %v, want negative", v, ok)
	}
}

func TestKeyMap_NonASCII(t *testing.T) {
	km := NewKeyMap("ä", "ö")

	if v, ok := km.Lookup('Ä'); !ok || v != label.Positive {
		t.Errorf("Lookup('Ä') = %v, %v, want positive", v, ok)
	}
}
