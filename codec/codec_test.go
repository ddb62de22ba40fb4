package codec

import "testing"

func TestXUserDefinedPassthrough(t *testing.T) {
	dec := NewXUserDefined()()
	src := []byte{'H', 'i', 0x80, 0xFF}
	dst := make([]byte, 32)
	status, nDst, nSrc := dec.Decode(dst, src, true)
	if status != InputEmpty {
		t.Fatalf("status = %v, want InputEmpty", status)
	}
	if nSrc != len(src) {
		t.Fatalf("nSrc = %d, want %d", nSrc, len(src))
	}
	got := dst[:nDst]
	want := []byte{'H', 'i', 0xEF, 0x9E, 0x80, 0xEF, 0x9F, 0xBF}
	if string(got) != string(want) {
		t.Fatalf("decoded = % x, want % x", got, want)
	}
}

func TestXUserDefinedOutputFull(t *testing.T) {
	dec := NewXUserDefined()()
	src := []byte{'A', 'B', 'C'}
	dst := make([]byte, 2)
	status, nDst, nSrc := dec.Decode(dst, src, true)
	if status != OutputFull {
		t.Fatalf("status = %v, want OutputFull", status)
	}
	if nDst != 2 || nSrc != 2 {
		t.Fatalf("nDst=%d nSrc=%d, want 2,2", nDst, nSrc)
	}
}

func TestUTF8DecoderPassesValid(t *testing.T) {
	dec := NewUTF8()()
	src := []byte("héllo")
	dst := make([]byte, 32)
	status, nDst, nSrc := dec.Decode(dst, src, true)
	if status != InputEmpty {
		t.Fatalf("status = %v, want InputEmpty", status)
	}
	if nSrc != len(src) || string(dst[:nDst]) != "héllo" {
		t.Fatalf("got %q (nSrc=%d), want %q", dst[:nDst], nSrc, src)
	}
}

func TestUTF8DecoderSkipsMalformedByte(t *testing.T) {
	dec := NewUTF8()()
	src := []byte{'a', 0xFF, 'b'}
	dst := make([]byte, 32)
	status, nDst, nSrc := dec.Decode(dst, src, true)
	if status != Malformed {
		t.Fatalf("status = %v, want Malformed", status)
	}
	if nSrc != 2 || string(dst[:nDst]) != "a" {
		t.Fatalf("got %q (nSrc=%d), want \"a\" nSrc=2", dst[:nDst], nSrc)
	}
}

func TestUTF8DecoderWaitsForMoreInputOnTruncatedSequence(t *testing.T) {
	dec := NewUTF8()()
	src := []byte{'a', 0xE2, 0x82} // first two bytes of '€', not at EOF
	dst := make([]byte, 32)
	status, nDst, nSrc := dec.Decode(dst, src, false)
	if status != InputEmpty {
		t.Fatalf("status = %v, want InputEmpty", status)
	}
	if nSrc != 1 || string(dst[:nDst]) != "a" {
		t.Fatalf("got %q (nSrc=%d), want \"a\" nSrc=1", dst[:nDst], nSrc)
	}
}

func TestLookupUnknownEncoding(t *testing.T) {
	if _, _, err := Lookup("klingon"); err == nil {
		t.Fatal("expected error for unknown encoding")
	}
}

func TestLookupUTF16LE(t *testing.T) {
	label, factory, err := Lookup("utf16le")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if label != "utf16le" {
		t.Fatalf("label = %q, want utf16le", label)
	}
	dec := factory()
	src := []byte{'h', 0, 'i', 0}
	dst := make([]byte, 32)
	status, nDst, nSrc := dec.Decode(dst, src, true)
	if status != InputEmpty || string(dst[:nDst]) != "hi" || nSrc != 4 {
		t.Fatalf("got status=%v text=%q nSrc=%d", status, dst[:nDst], nSrc)
	}
}

func TestNamesIncludesASCII(t *testing.T) {
	found := false
	for _, n := range Names() {
		if n == "ascii" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected Names() to include \"ascii\"")
	}
}
