package textutil

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []string
	}{
		{"short words dropped", "sol y mar con casa", []string{"casa"}},
		{"punctuation separates", "casa,jardín. alberca!", []string{"casa", "jardín", "alberca"}},
		{"lowercased", "CASA Grande", []string{"casa", "grande"}},
		{"accented counts by rune", "baño", []string{"baño"}},
		{"empty", "", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Tokenize(tc.in)
			if len(got) == 0 && len(tc.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestIsConnector(t *testing.T) {
	for _, tok := range []string{"en", "con", "de", "del"} {
		if !IsConnector(tok) {
			t.Errorf("IsConnector(%q) = false", tok)
		}
	}
	for _, tok := range []string{"casa", "e", "dentro", ""} {
		if IsConnector(tok) {
			t.Errorf("IsConnector(%q) = true", tok)
		}
	}
}

func TestSplitTail(t *testing.T) {
	cases := []struct {
		in         string
		wantPrefix string
		wantTail   string
	}{
		{"casa en pu", "casa en ", "pu"},
		{"casa", "", "casa"},
		{"casa ", "casa ", ""},
		{"", "", ""},
	}
	for _, tc := range cases {
		prefix, tail := SplitTail(tc.in)
		if prefix != tc.wantPrefix || tail != tc.wantTail {
			t.Errorf("SplitTail(%q) = (%q, %q), want (%q, %q)",
				tc.in, prefix, tail, tc.wantPrefix, tc.wantTail)
		}
	}
}
