package wordcount

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	cases := []struct {
		name string
		text string
		want map[string]int
	}{
		{
			name: "lowercases_and_counts",
			text: "The Rule applies. The rule governs.",
			want: map[string]int{"the": 2, "rule": 2, "applies": 1, "governs": 1},
		},
		{
			name: "drops_short_tokens",
			text: "an ox is at it",
			want: map[string]int{},
		},
		{
			name: "three_letter_threshold_keeps_the",
			text: "the the the",
			want: map[string]int{"the": 3},
		},
		{
			name: "strips_digits_and_punctuation",
			text: "section 1.203(b)(2) sub-section",
			want: map[string]int{"section": 1, "subsection": 1},
		},
		{
			name: "keeps_apostrophes",
			text: "the agency's officers don't",
			want: map[string]int{"the": 1, "agency's": 1, "officers": 1, "don't": 1},
		},
		{
			name: "whitespace_runs_and_newlines",
			text: "  paragraph\t\ntext   here  ",
			want: map[string]int{"paragraph": 1, "text": 1, "here": 1},
		},
		{
			name: "empty_input",
			text: "",
			want: map[string]int{},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Tokenize(tc.text)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("Tokenize(%q)=%v, want %v", tc.text, got, tc.want)
			}
		})
	}
}

func TestTokenizeAdditivity(t *testing.T) {
	a := "the commission shall review the filing"
	b := "the filing must include three copies"

	joined := Tokenize(a + " " + b)

	sum := Tokenize(a)
	Merge(sum, Tokenize(b))

	if !reflect.DeepEqual(joined, sum) {
		t.Fatalf("tokenizing joined text gave %v, key-wise sum gave %v", joined, sum)
	}
}

func TestMerge(t *testing.T) {
	dst := map[string]int{"foo": 2, "bar": 1}
	Merge(dst, map[string]int{"foo": 3, "baz": 4})

	want := map[string]int{"foo": 5, "bar": 1, "baz": 4}
	if !reflect.DeepEqual(dst, want) {
		t.Fatalf("Merge gave %v, want %v", dst, want)
	}
}
