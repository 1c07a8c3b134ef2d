package peaklist

import (
	"strings"
	"testing"

	"shiftscan/internal/diag"
)

func TestParseTitration_WellFormed(t *testing.T) {
	input := `# residue H_free C_free H_bound C_bound
A45	7.0123	131.2045	7.0456	131.189

W102	7.2700	114.0800	7.255	114.21
`
	bag := diag.NewBag(16)
	peaks, err := ParseTitration(strings.NewReader(input), "titration.txt", diag.BagReporter{Bag: bag})
	if err != nil {
		t.Fatalf("ParseTitration: %v", err)
	}
	if len(peaks) != 2 {
		t.Fatalf("got %d rows, want 2", len(peaks))
	}
	if bag.HasErrors() || bag.HasWarnings() {
		t.Errorf("unexpected diagnostics: %v", bag.Items())
	}
	if peaks[0].ID != "A45" {
		t.Errorf("row 0 id = %q", peaks[0].ID)
	}
	if peaks[0].Free.H != 7.0123 || peaks[0].Free.C != 131.2045 {
		t.Errorf("row 0 free = %+v", peaks[0].Free)
	}
	if peaks[0].Bound.H != 7.0456 || peaks[0].Bound.C != 131.189 {
		t.Errorf("row 0 bound = %+v", peaks[0].Bound)
	}
	if peaks[1].ID != "W102" {
		t.Errorf("row 1 id = %q", peaks[1].ID)
	}
}

func TestParseTitration_ExtraFieldsIgnored(t *testing.T) {
	input := "A45 7.0 131.2 7.1 131.0 trailing comment words\n"
	bag := diag.NewBag(16)
	peaks, err := ParseTitration(strings.NewReader(input), "t.txt", diag.BagReporter{Bag: bag})
	if err != nil {
		t.Fatalf("ParseTitration: %v", err)
	}
	if len(peaks) != 1 {
		t.Fatalf("got %d rows, want 1", len(peaks))
	}
	if peaks[0].Bound.C != 131.0 {
		t.Errorf("bound C = %v, want 131.0", peaks[0].Bound.C)
	}
	if bag.HasErrors() {
		t.Errorf("extra fields should not be an error: %v", bag.Items())
	}
	// but they are surfaced as an info diagnostic
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.ParseExtraIgnored {
			found = true
		}
	}
	if !found {
		t.Error("missing ParseExtraIgnored info")
	}
}

func TestParseTitration_ShortLineSkipped(t *testing.T) {
	input := "A45 7.0 131.2\nB46 7.0 131.2 7.1 131.0\n"
	bag := diag.NewBag(16)
	peaks, err := ParseTitration(strings.NewReader(input), "t.txt", diag.BagReporter{Bag: bag})
	if err != nil {
		t.Fatalf("ParseTitration: %v", err)
	}
	if len(peaks) != 1 || peaks[0].ID != "B46" {
		t.Fatalf("rows = %+v, want only B46", peaks)
	}
	if !bag.HasErrors() {
		t.Fatal("short line must produce an error diagnostic")
	}
	d := bag.Items()[0]
	if d.Code != diag.ParseShortLine {
		t.Errorf("code = %v, want ParseShortLine", d.Code)
	}
	if d.Primary.Line != 1 {
		t.Errorf("line = %d, want 1", d.Primary.Line)
	}
}

func TestParseTitration_BadNumberPosition(t *testing.T) {
	input := "A45 7.0 abc 7.1 131.0\n"
	bag := diag.NewBag(16)
	peaks, err := ParseTitration(strings.NewReader(input), "t.txt", diag.BagReporter{Bag: bag})
	if err != nil {
		t.Fatalf("ParseTitration: %v", err)
	}
	if len(peaks) != 0 {
		t.Fatalf("bad row must be skipped, got %d rows", len(peaks))
	}
	d := bag.Items()[0]
	if d.Code != diag.ParseBadNumber {
		t.Fatalf("code = %v, want ParseBadNumber", d.Code)
	}
	// "abc" starts at byte 9 of the line
	if d.Primary.Col != 9 {
		t.Errorf("col = %d, want 9", d.Primary.Col)
	}
}

func TestParseTitration_NonFiniteRejected(t *testing.T) {
	input := "A45 NaN 131.2 7.1 131.0\nB46 7.0 +Inf 7.1 131.0\n"
	bag := diag.NewBag(16)
	peaks, err := ParseTitration(strings.NewReader(input), "t.txt", diag.BagReporter{Bag: bag})
	if err != nil {
		t.Fatalf("ParseTitration: %v", err)
	}
	if len(peaks) != 0 {
		t.Fatalf("non-finite rows must be skipped, got %d", len(peaks))
	}
	for _, d := range bag.Items() {
		if d.Code != diag.ParseNonFinite {
			t.Errorf("code = %v, want ParseNonFinite", d.Code)
		}
	}
	if bag.Len() != 2 {
		t.Errorf("diagnostics = %d, want 2", bag.Len())
	}
}

func TestParseAssignments_RowsAndOrder(t *testing.T) {
	input := `# id H C
L11 0.75 24.6
V3 0.82 21.5
A7 1.35 19.0
`
	bag := diag.NewBag(16)
	peaks, err := ParseAssignments(strings.NewReader(input), "peaks.txt", diag.BagReporter{Bag: bag})
	if err != nil {
		t.Fatalf("ParseAssignments: %v", err)
	}
	want := []string{"L11", "V3", "A7"}
	if len(peaks) != len(want) {
		t.Fatalf("got %d rows, want %d", len(peaks), len(want))
	}
	for i, id := range want {
		if peaks[i].ID != id {
			t.Errorf("row %d id = %q, want %q (input order must be preserved)", i, peaks[i].ID, id)
		}
	}
}

func TestParseAssignments_DuplicateIDWarns(t *testing.T) {
	input := "A7 1.35 19.0\nA7 1.36 19.1\n"
	bag := diag.NewBag(16)
	peaks, err := ParseAssignments(strings.NewReader(input), "peaks.txt", diag.BagReporter{Bag: bag})
	if err != nil {
		t.Fatalf("ParseAssignments: %v", err)
	}
	if len(peaks) != 2 {
		t.Fatalf("duplicates must be kept, got %d rows", len(peaks))
	}
	if !bag.HasWarnings() {
		t.Fatal("duplicate id should warn")
	}
	if bag.Items()[0].Code != diag.ParseDuplicateID {
		t.Errorf("code = %v, want ParseDuplicateID", bag.Items()[0].Code)
	}
}

func TestParseAssignments_IDNormalized(t *testing.T) {
	// same identifier typed precomposed and as base + combining mark
	composed := "Å12 7.0 130.0\n"
	decomposed := "Å12 7.0 130.0\n"
	bag := diag.NewBag(4)
	a, err := ParseAssignments(strings.NewReader(composed), "a", diag.BagReporter{Bag: bag})
	if err != nil {
		t.Fatal(err)
	}
	b, err := ParseAssignments(strings.NewReader(decomposed), "b", diag.BagReporter{Bag: bag})
	if err != nil {
		t.Fatal(err)
	}
	if a[0].ID != b[0].ID {
		t.Errorf("normalized ids differ: %q vs %q", a[0].ID, b[0].ID)
	}
}

func TestParse_EmptyInputWarns(t *testing.T) {
	bag := diag.NewBag(4)
	peaks, err := ParseTitration(strings.NewReader("# only a comment\n\n"), "t.txt", diag.BagReporter{Bag: bag})
	if err != nil {
		t.Fatalf("ParseTitration: %v", err)
	}
	if len(peaks) != 0 {
		t.Fatalf("got %d rows, want 0", len(peaks))
	}
	if !bag.HasWarnings() {
		t.Fatal("comment-only input should warn")
	}
	if bag.Items()[0].Code != diag.ParseNoDataRows {
		t.Errorf("code = %v, want ParseNoDataRows", bag.Items()[0].Code)
	}
}

func TestSplitFields_Columns(t *testing.T) {
	fields := splitFields("A45\t7.04  131.2")
	if len(fields) != 3 {
		t.Fatalf("got %d fields, want 3", len(fields))
	}
	wantCols := []uint32{1, 5, 11}
	for i, f := range fields {
		if f.col != wantCols[i] {
			t.Errorf("field %d col = %d, want %d", i, f.col, wantCols[i])
		}
	}
	if fields[2].text != "131.2" {
		t.Errorf("field 2 = %q", fields[2].text)
	}
}

func TestSplitFields_WindowsLineEnding(t *testing.T) {
	fields := splitFields("A45 7.0 131.2\r")
	if len(fields) != 3 {
		t.Fatalf("got %d fields, want 3", len(fields))
	}
	if fields[2].text != "131.2" {
		t.Errorf("trailing CR leaked into field: %q", fields[2].text)
	}
}
