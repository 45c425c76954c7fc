package strings

import "testing"

func TestClosest(t *testing.T) {
	tests := []struct {
		name       string
		candidates []string
		want       string
	}{
		{"pc", []string{"pa", "pb"}, "pa"},
		{"lenght", []string{"length", "index"}, "length"},
		{"userName", []string{"username", "userId"}, "username"},
		{"x", []string{"completely", "different"}, ""},
		{"pa", []string{"pa"}, ""}, // exact matches are not typos
		{"", []string{"a"}, ""},
	}
	for _, tt := range tests {
		if got := Closest(tt.name, tt.candidates); got != tt.want {
			t.Errorf("Closest(%q, %v) = %q, want %q", tt.name, tt.candidates, got, tt.want)
		}
	}
}

func TestEditDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"a", "", 1},
		{"kitten", "sitting", 3},
		{"abc", "abc", 0},
	}
	for _, tt := range tests {
		if got := editDistance(tt.a, tt.b); got != tt.want {
			t.Errorf("editDistance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestPluralize(t *testing.T) {
	if got := Pluralize("error", "errors", 1); got != "error" {
		t.Errorf("got %q", got)
	}
	if got := Pluralize("error", "errors", 2); got != "errors" {
		t.Errorf("got %q", got)
	}
}
