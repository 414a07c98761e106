package alerr

import "testing"

func TestEditDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "abc", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"int32_t", "int3_t", 1},
		{"ab", "ba", 2},
		{"héllo", "hello", 1}, // counted by rune, not byte
	}
	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			if got := editDistance(tt.a, tt.b); got != tt.want {
				t.Errorf("editDistance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestClosest(t *testing.T) {
	attrs := []string{"primary_key", "autoincrement", "foreign_key", "name", "unique", "default"}

	tests := []struct {
		input  string
		want   string
		wantOK bool
	}{
		{"primarykey", "primary_key", true},
		{"PRIMARY_KEY", "primary_key", true}, // case only
		{"autoincrment", "autoincrement", true},
		{"foriegn_key", "foreign_key", true},
		{"uniqe", "unique", true},
		{"nam", "name", true},
		{"index", "", false}, // short input allows one edit only
		{"name", "", false},  // exact input is not a suggestion
		{"completelywrong", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := Closest(tt.input, attrs)
			if ok != tt.wantOK || (ok && got != tt.want) {
				t.Errorf("Closest(%q) = %q, %v; want %q, %v", tt.input, got, ok, tt.want, tt.wantOK)
			}
		})
	}

	t.Run("whitespace folded", func(t *testing.T) {
		got, ok := Closest("unsigned   lng", []string{"unsigned long", "unsigned int"})
		if !ok || got != "unsigned long" {
			t.Errorf("Closest() = %q, %v", got, ok)
		}
	})

	t.Run("empty options", func(t *testing.T) {
		if _, ok := Closest("test", nil); ok {
			t.Error("expected no match with empty options")
		}
	})
}

func TestSuggestSimilar(t *testing.T) {
	options := []string{"std::string", "sqlinq::Date", "sqlinq::Time"}

	if got, want := SuggestSimilar("std::strng", options), `did you mean "std::string"?`; got != want {
		t.Errorf("SuggestSimilar() = %q, want %q", got, want)
	}
	if got := SuggestSimilar("xyzzyx", options); got != "" {
		t.Errorf("SuggestSimilar(no match) = %q, want empty", got)
	}
}
