package rowstore

import "testing"

func TestColumnLetters(t *testing.T) {
	cases := map[int]string{0: "A", 25: "Z", 26: "AA", 51: "AZ", 52: "BA", 701: "ZZ", 702: "AAA"}
	for index, want := range cases {
		if got := ColumnLetters(index); got != want {
			t.Fatalf("ColumnLetters(%d) = %q, want %q", index, got, want)
		}
	}
}

func TestCellAddressRoundTrip(t *testing.T) {
	address := CellAddress("it's campaigns", 27, 9)
	if address != "'it''s campaigns'!AB10" {
		t.Fatalf("unexpected address %q", address)
	}
	sheet, col, row, err := ParseCellAddress(address)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if sheet != "it's campaigns" || col != 27 || row != 9 {
		t.Fatalf("round trip mismatch: %q %d %d", sheet, col, row)
	}
}

func TestParseCellAddressRejectsGarbage(t *testing.T) {
	for _, address := range []string{"A1", "'x'!", "'x'!12", "'x'!A0", "'x'!A-1"} {
		if _, _, _, err := ParseCellAddress(address); err == nil {
			t.Fatalf("expected error for %q", address)
		}
	}
}
