package urlenc

import "testing"

func TestEncode_AlphanumericUnchanged(t *testing.T) {
	in := "abcXYZ0129"
	if got := Encode(in); got != in {
		t.Errorf("Encode(%q) = %q, want %q", in, got, in)
	}
}

func TestEncode_Space(t *testing.T) {
	if got := Encode(" "); got != "%20" {
		t.Errorf("Encode(\" \") = %q, want %%20", got)
	}
}

func TestEncode_RangeQuery(t *testing.T) {
	in := "date: [2020-05-26 TO *]"
	want := "date%3A%20%5B2020-05-26%20TO%20%2A%5D"
	if got := Encode(in); got != want {
		t.Errorf("Encode(%q) = %q, want %q", in, got, want)
	}
}

func TestEncode_Mixed(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"name:Some", "name%3ASome"},
		{"a b", "a%20b"},
		{"!x:1", "%21x%3A1"},
		{"50%", "50%25"},
		{"a&b=c", "a%26b%3Dc"},
	}
	for _, tt := range tests {
		if got := Encode(tt.in); got != tt.want {
			t.Errorf("Encode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEncode_MultiByte(t *testing.T) {
	// Each byte of the UTF-8 sequence gets its own triplet.
	tests := []struct {
		in   string
		want string
	}{
		{"č", "%C4%8D"},
		{"€", "%E2%82%AC"},
		{"žluť", "%C5%BElu%C5%A5"},
	}
	for _, tt := range tests {
		if got := Encode(tt.in); got != tt.want {
			t.Errorf("Encode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEncode_Deterministic(t *testing.T) {
	in := "q=*:* AND date:[NOW-1DAY TO NOW]"
	first := Encode(in)
	for i := 0; i < 3; i++ {
		if got := Encode(in); got != first {
			t.Fatalf("Encode not deterministic: %q vs %q", got, first)
		}
	}
}
