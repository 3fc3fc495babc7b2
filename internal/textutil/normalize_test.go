package textutil

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Jardín", "jardin"},
		{"  MÉRIDA ", "merida"},
		{"piscina", "piscina"},
		{"Ñuñoa", "nunoa"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := Normalize(tc.in); got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCollapseSpaces(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"casa  en   centro", "casa en centro"},
		{"  casa ", "casa"},
		{"casa\ten\ncentro", "casa en centro"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := CollapseSpaces(tc.in); got != tc.want {
			t.Errorf("CollapseSpaces(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
