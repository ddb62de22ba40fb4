package mission

import (
	"errors"
	"testing"
)

func TestBuildASCIIDefaults(t *testing.T) {
	m, err := Build("ascii", Override{}, 0, 0, 80, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !m.PrintEncodingAsASCII {
		t.Fatal("expected PrintEncodingAsASCII = true")
	}
	if m.EncodingLabel != "ascii" {
		t.Fatalf("label = %q, want \"ascii\"", m.EncodingLabel)
	}
	if m.CharsMin != DefaultCharsMin {
		t.Fatalf("CharsMin = %d, want %d", m.CharsMin, DefaultCharsMin)
	}
	if m.Filter.PassLeading(0xC2) {
		t.Fatal("ascii mission's default filter must reject every multibyte leading byte")
	}
	if !m.Filter.PassASCII('A') {
		t.Fatal("ascii mission's default filter must accept ordinary ASCII letters")
	}
}

func TestBuildUTF8WithCharsMin(t *testing.T) {
	m, err := Build("utf8,6", Override{}, 1, 1000, 80, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.CharsMin != 6 {
		t.Fatalf("CharsMin = %d, want 6", m.CharsMin)
	}
	if !m.Filter.PassLeading(0xC2) {
		t.Fatal("non-ascii mission's default filter must accept common multibyte leading bytes")
	}
	if m.CounterOffset != 1000 {
		t.Fatalf("CounterOffset = %d, want 1000", m.CounterOffset)
	}
}

func TestBuildUnknownEncoding(t *testing.T) {
	_, err := Build("klingon", Override{}, 0, 0, 80, false)
	if !errors.Is(err, ErrUnknownEncoding) {
		t.Fatalf("err = %v, want ErrUnknownEncoding", err)
	}
}

func TestBuildBadInteger(t *testing.T) {
	_, err := Build("ascii,notanumber", Override{}, 0, 0, 80, false)
	if !errors.Is(err, ErrBadInteger) {
		t.Fatalf("err = %v, want ErrBadInteger", err)
	}
}

func TestBuildTooManyFields(t *testing.T) {
	_, err := Build("ascii,1,2,3,4,5", Override{}, 0, 0, 80, false)
	if !errors.Is(err, ErrTooManyFields) {
		t.Fatalf("err = %v, want ErrTooManyFields", err)
	}
}

func TestBuildLineCapTooSmall(t *testing.T) {
	_, err := Build("ascii", Override{}, 0, 0, 3, false)
	if !errors.Is(err, ErrLineCapTooSmall) {
		t.Fatalf("err = %v, want ErrLineCapTooSmall", err)
	}
}

func TestBuildGrepNotASCII(t *testing.T) {
	_, err := Build("ascii,4,,,255", Override{}, 0, 0, 80, false)
	if !errors.Is(err, ErrGrepNotASCII) {
		t.Fatalf("err = %v, want ErrGrepNotASCII", err)
	}
}

func TestBuildGrepLiteralChar(t *testing.T) {
	m, err := Build("ascii,3,,,*", Override{}, 0, 0, 80, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	g, ok := m.Filter.GrepChar()
	if !ok || g != '*' {
		t.Fatalf("grep char = %v,%v want '*',true", g, ok)
	}
}

func TestBuildFilterAlias(t *testing.T) {
	m, err := Build("utf8,4,Common,Cyrillic", Override{}, 0, 0, 80, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !m.Filter.PassLeading(0xD0) {
		t.Fatal("Cyrillic ubf override should accept leading byte 0xD0")
	}
	if m.Filter.PassLeading(0xE3) {
		t.Fatal("Cyrillic ubf override should reject a CJK leading byte")
	}
}

func TestBuildOverrideAppliesWhenSpecOmitsField(t *testing.T) {
	cm := uint8(7)
	m, err := Build("ascii", Override{CharsMin: &cm}, 0, 0, 80, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.CharsMin != 7 {
		t.Fatalf("CharsMin = %d, want override value 7", m.CharsMin)
	}
}

func TestBuildSpecFieldWinsOverOverride(t *testing.T) {
	cm := uint8(7)
	m, err := Build("ascii,9", Override{CharsMin: &cm}, 0, 0, 80, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.CharsMin != 9 {
		t.Fatalf("CharsMin = %d, want spec's own value 9", m.CharsMin)
	}
}
