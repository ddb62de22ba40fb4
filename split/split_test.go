package split

import (
	"testing"

	"github.com/coregx/glyphscan/filter"
)

func TestNextEmitsSimpleRun(t *testing.T) {
	f := filter.DefaultASCII()
	s := New([]byte("ab\x00cd"), 2, false, true, f, 1<<30)

	frag, ok := s.Next()
	if !ok {
		t.Fatal("expected a fragment")
	}
	if string(frag.Text) != "ab" {
		t.Fatalf("text = %q, want \"ab\"", frag.Text)
	}
	if frag.CompletesPrevious || frag.MaybeCut || frag.ToBeRefiltered {
		t.Fatalf("unexpected flags: %+v", frag)
	}

	frag, ok = s.Next()
	if !ok {
		t.Fatal("expected a second fragment")
	}
	if string(frag.Text) != "cd" {
		t.Fatalf("text = %q, want \"cd\"", frag.Text)
	}

	if _, ok := s.Next(); ok {
		t.Fatal("expected iterator to be exhausted")
	}
}

func TestNextDropsCandidateBelowMin(t *testing.T) {
	f := filter.DefaultASCII()
	s := New([]byte("ab\x00cdef"), 4, false, true, f, 1<<30)

	frag, ok := s.Next()
	if !ok {
		t.Fatal("expected a fragment")
	}
	if string(frag.Text) != "cdef" {
		t.Fatalf("text = %q, want \"cdef\" (short \"ab\" should have been dropped)", frag.Text)
	}
}

func TestNextLeftBoundaryContinuationIgnoresMin(t *testing.T) {
	f := filter.DefaultASCII()
	s := New([]byte("X\x00rest"), 4, true, true, f, 1<<30)

	frag, ok := s.Next()
	if !ok {
		t.Fatal("expected a fragment")
	}
	if string(frag.Text) != "X" || !frag.CompletesPrevious {
		t.Fatalf("got %+v, want completes_previous fragment \"X\"", frag)
	}
}

func TestNextMaxCharsCutsAndChains(t *testing.T) {
	f := filter.DefaultASCII()
	s := New([]byte("abcdef"), 1, false, true, f, 3)

	frag, ok := s.Next()
	if !ok || string(frag.Text) != "abc" || !frag.MaybeCut {
		t.Fatalf("first cut: got %+v, ok=%v", frag, ok)
	}
	frag, ok = s.Next()
	if !ok || string(frag.Text) != "def" || !frag.CompletesPrevious {
		t.Fatalf("second cut: got %+v, ok=%v, want completes_previous \"def\"", frag, ok)
	}
}

func TestNextMaxCharsCutDropsRunMissingGrepChar(t *testing.T) {
	af, ubf := filter.DefaultASCII().Bits()
	star := byte('*')
	f := filter.New(af, ubf, &star)
	// "abc" and "def" each hit the 3-char cap without ever containing '*',
	// so both must be dropped rather than emitted as grep-violating
	// findings; "*gh" is the first run whose cap-forced cut does contain
	// the required byte.
	s := New([]byte("abcdef*ghi"), 1, false, true, f, 3)

	frag, ok := s.Next()
	if !ok {
		t.Fatal("expected a fragment")
	}
	if string(frag.Text) != "*gh" {
		t.Fatalf("text = %q, want \"*gh\" (\"abc\" and \"def\" lack the grep char and must be dropped)", frag.Text)
	}
	if !frag.MaybeCut {
		t.Fatal("expected MaybeCut on the cap-forced cut")
	}
	if frag.CompletesPrevious {
		t.Fatal("expected CompletesPrevious = false: no prior cut was ever actually emitted")
	}

	frag, ok = s.Next()
	if !ok || string(frag.Text) != "i" || !frag.CompletesPrevious {
		t.Fatalf("got %+v, ok=%v, want \"i\" with CompletesPrevious (the rest of the cut \"*ghi\" run)", frag, ok)
	}
	if _, ok := s.Next(); ok {
		t.Fatal("expected iterator to be exhausted")
	}
}

func TestNextRightBoundaryDefersWhenUnderMax(t *testing.T) {
	f := filter.DefaultASCII()
	s := New([]byte("abc"), 1, false, false, f, 10)

	frag, ok := s.Next()
	if !ok {
		t.Fatal("expected a fragment")
	}
	if !frag.ToBeRefiltered || frag.MaybeCut {
		t.Fatalf("got %+v, want to_be_refiltered", frag)
	}
	if string(frag.Text) != "abc" {
		t.Fatalf("text = %q, want \"abc\"", frag.Text)
	}
}

func TestNextRightBoundaryInvalidAfterEmitsNormally(t *testing.T) {
	f := filter.DefaultASCII()
	s := New([]byte("abc"), 1, false, true, f, 10)

	frag, ok := s.Next()
	if !ok {
		t.Fatal("expected a fragment")
	}
	if frag.ToBeRefiltered || frag.MaybeCut {
		t.Fatalf("got %+v, want a plain complete fragment", frag)
	}
}

func TestNextSkipsRejectedMultibyteRune(t *testing.T) {
	// Latin's ubf covers 0xC2-0xC7 only; a Cyrillic leading byte (0xD0)
	// should be skipped as one rejected character, not byte-by-byte.
	f, ok := filter.Alias("Latin")
	if !ok {
		t.Fatal("expected \"Latin\" alias to exist")
	}
	// "h\xD0\x90i" = 'h', U+0410 (Cyrillic А, rejected), 'i'
	s := New([]byte{'h', 0xD0, 0x90, 'i'}, 1, false, true, f, 1<<30)

	frag, emitted := s.Next()
	if !emitted {
		t.Fatal("expected first fragment")
	}
	if string(frag.Text) != "h" {
		t.Fatalf("text = %q, want \"h\"", frag.Text)
	}
	frag, emitted = s.Next()
	if !emitted {
		t.Fatal("expected second fragment")
	}
	if string(frag.Text) != "i" {
		t.Fatalf("text = %q, want \"i\"", frag.Text)
	}
}

func TestNextSameUnicodeBlockSplitsMixedScriptCandidate(t *testing.T) {
	f, ok := filter.Alias("Common")
	if !ok {
		t.Fatal("expected \"Common\" alias to exist")
	}
	// 'a', U+00E9 (Latin é, leading 0xC3), U+0410 (Cyrillic А, leading
	// 0xD0), 'b'. Both multibyte characters pass the filter on their own,
	// but belong to different leading-byte blocks.
	inp := []byte{'a', 0xC3, 0xA9, 0xD0, 0x90, 'b'}

	s := New(inp, 1, false, true, f, 1<<30).WithSameUnicodeBlock(true)

	frag, ok := s.Next()
	if !ok {
		t.Fatal("expected first fragment")
	}
	if string(frag.Text) != "a\xC3\xA9" {
		t.Fatalf("text = %q, want \"a\\xC3\\xA9\"", frag.Text)
	}

	frag, ok = s.Next()
	if !ok {
		t.Fatal("expected second fragment")
	}
	if string(frag.Text) != "b" {
		t.Fatalf("text = %q, want \"b\"", frag.Text)
	}

	if _, ok := s.Next(); ok {
		t.Fatal("expected iterator to be exhausted")
	}
}

func TestNextGrepGatesEmission(t *testing.T) {
	g := byte('z')
	var af [2]uint64
	for b := 0; b < 128; b++ {
		if b == 0x00 || (b >= 0x01 && b < 0x20 && b != 0x09 && b != 0x0A && b != 0x0D) || b == 0x7F {
			continue
		}
		if b < 64 {
			af[0] |= 1 << uint(b)
		} else {
			af[1] |= 1 << uint(b-64)
		}
	}
	f := filter.New(af, 0, &g)
	s := New([]byte("hello\x00wzrld"), 1, false, true, f, 1<<30)

	frag, ok := s.Next()
	if !ok {
		t.Fatal("expected a fragment (\"hello\" should be dropped, \"wzrld\" kept)")
	}
	if string(frag.Text) != "wzrld" {
		t.Fatalf("text = %q, want \"wzrld\"", frag.Text)
	}
}
