package parity

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chazu/rbstable/internal/heapsim"
	"github.com/chazu/rbstable/rb"
	"github.com/chazu/rbstable/stableapi"
)

func TestDefaultCorpus(t *testing.T) {
	c, err := DefaultCorpus()
	if err != nil {
		t.Fatalf("DefaultCorpus: %v", err)
	}
	kinds := map[string]bool{}
	for _, cs := range c.Cases {
		kinds[cs.Kind] = true
	}
	for _, k := range []string{KindSpecial, KindFixnum, KindBignum, KindFloat, KindString, KindArray, KindSymbol, KindDSymbol, KindHash, KindObject, KindData, KindTypedData} {
		if !kinds[k] {
			t.Errorf("default corpus has no %s case", k)
		}
	}
}

func TestParseCorpusRejects(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"unknown kind", "[[case]]\nname = \"a\"\nkind = \"regexp\"\n"},
		{"missing name", "[[case]]\nkind = \"hash\"\n"},
		{"duplicate", "[[case]]\nname = \"a\"\nkind = \"hash\"\n[[case]]\nname = \"a\"\nkind = \"object\"\n"},
		{"unknown key", "[[case]]\nname = \"a\"\nkind = \"hash\"\ncolour = \"red\"\n"},
		{"bad special", "[[case]]\nname = \"a\"\nkind = \"special\"\ntext = \"maybe\"\n"},
		{"bad integer", "[[case]]\nname = \"a\"\nkind = \"bignum\"\ntext = \"12ab\"\n"},
		{"container bound", "[[case]]\nname = \"a\"\nkind = \"string\"\nbound = \"long-max\"\n"},
		{"symbol without text", "[[case]]\nname = \"a\"\nkind = \"symbol\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseCorpus(tt.text); !errors.Is(err, ErrInvalidCase) {
				t.Errorf("ParseCorpus error = %v, want ErrInvalidCase", err)
			}
		})
	}
	if _, err := ParseCorpus("[[case]\n"); err == nil {
		t.Error("ParseCorpus accepted malformed TOML")
	}
}

func TestLoadCorpus(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "corpus.toml")
	content := `
[[case]]
name = "s"
kind = "string"
bound = "capacity"
offset = -1
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := LoadCorpus(path)
	if err != nil {
		t.Fatalf("LoadCorpus: %v", err)
	}
	if len(c.Cases) != 1 || c.Cases[0].length(10) != 9 {
		t.Errorf("cases = %+v", c.Cases)
	}
	if _, err := LoadCorpus(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("LoadCorpus of a missing file succeeded")
	}
}

func TestFiller(t *testing.T) {
	for _, n := range []int{0, 1, 26, 27, 615} {
		if got := filler(n); len(got) != n {
			t.Errorf("len(filler(%d)) = %d", n, len(got))
		}
	}
}

// Every variant agrees with its checked form on the whole corpus, which
// also proves no corpus value trips a precondition.
func TestSweepCheckedVariants(t *testing.T) {
	c, err := DefaultCorpus()
	if err != nil {
		t.Fatal(err)
	}
	var pairs []Pair
	for _, api := range stableapi.All() {
		pairs = append(pairs, Pair{Want: api, Got: stableapi.Checked(api)})
	}
	reports, err := SweepHeaps(context.Background(), c, pairs)
	if err != nil {
		t.Fatalf("SweepHeaps: %v", err)
	}
	for _, r := range reports {
		if !r.OK() {
			t.Errorf("ruby %s: %d mismatches, facts diff %v", r.Got, len(r.Mismatches), r.FactsDiff)
			for _, m := range r.Mismatches {
				t.Log(m)
			}
		}
		if r.Samples != len(c.Cases) || r.Checks < r.Samples {
			t.Errorf("ruby %s: %d samples, %d checks", r.Got, r.Samples, r.Checks)
		}
	}
}

// lyingLength reports every string one byte longer than it is.
type lyingLength struct{ rb.API }

func (l lyingLength) RStringLen(v rb.Value) rb.Long { return l.API.RStringLen(v) + 1 }

// shiftedFacts claims a different embed capacity.
type shiftedFacts struct{ rb.API }

func (s shiftedFacts) Facts() rb.Facts {
	f := s.API.Facts()
	f.String.EmbedCapacity++
	return f
}

// brokenArrays panics on every array.
type brokenArrays struct{ rb.API }

func (brokenArrays) RArrayLen(rb.Value) rb.Long { panic("boom") }

func runAgainst(t *testing.T, got rb.API) *Report {
	t.Helper()
	want := stableapi.Ruby34
	h := heapsim.MustNew(want.Facts())
	t.Cleanup(func() { h.Close() })
	c, err := DefaultCorpus()
	if err != nil {
		t.Fatal(err)
	}
	samples, err := Build(c, HeapBuilder{Heap: h}, want.Facts())
	if err != nil {
		t.Fatal(err)
	}
	return Run(want, got, h, samples)
}

func hasMismatch(r *Report, op string) bool {
	for _, m := range r.Mismatches {
		if m.Op == op {
			return true
		}
	}
	return false
}

func TestRunDetectsWrongLength(t *testing.T) {
	r := runAgainst(t, lyingLength{stableapi.Ruby34})
	if r.OK() || !hasMismatch(r, "RStringLen") {
		t.Errorf("wrong string length not reported: %v", r.Mismatches)
	}
	if hasMismatch(r, "RArrayLen") {
		t.Error("array length reported although only strings lie")
	}
}

func TestRunDetectsFactsDrift(t *testing.T) {
	r := runAgainst(t, shiftedFacts{stableapi.Ruby34})
	if r.WantFingerprint == r.GotFingerprint {
		t.Error("fingerprints equal for different facts")
	}
	if len(r.FactsDiff) == 0 || !strings.Contains(strings.Join(r.FactsDiff, "\n"), "EmbedCapacity") {
		t.Errorf("FactsDiff = %v, want an EmbedCapacity entry", r.FactsDiff)
	}
}

func TestRunRecoversPanics(t *testing.T) {
	r := runAgainst(t, brokenArrays{stableapi.Ruby34})
	if !hasMismatch(r, "panic") {
		t.Errorf("panic not recorded: %v", r.Mismatches)
	}
	if r.Checks < r.Samples*10 {
		t.Errorf("run stopped early after %d checks", r.Checks)
	}
}

func TestReportEncoding(t *testing.T) {
	r := runAgainst(t, lyingLength{stableapi.Ruby34})
	a, err := MarshalReport(r)
	if err != nil {
		t.Fatalf("MarshalReport: %v", err)
	}
	b, _ := MarshalReport(r)
	if string(a) != string(b) {
		t.Error("report encoding is not deterministic")
	}
	back, err := UnmarshalReport(a)
	if err != nil {
		t.Fatalf("UnmarshalReport: %v", err)
	}
	if back.Checks != r.Checks || len(back.Mismatches) != len(r.Mismatches) || back.Got != r.Got {
		t.Errorf("decoded report %+v differs from %+v", back, r)
	}
	if _, err := UnmarshalReport([]byte("not cbor")); err == nil {
		t.Error("UnmarshalReport accepted garbage")
	}
}
