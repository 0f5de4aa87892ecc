package auction

import (
	"testing"

	"github.com/peonbot/peon/internal/errs"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in   string
		want Price
	}{
		{"1g 22s 33c", 12233},
		{"1g 22s33c", 12233},
		{"15g", 150000},
		{"99s", 9900},
		{"5c", 5},
		{"  3g 4c  ", 30004},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePrice(tt.in)
			if err != nil {
				t.Fatalf("ParsePrice(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParsePrice(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestParsePriceMalformed(t *testing.T) {
	for _, in := range []string{"gibberish", "", "   ", "12", "g", "1g2x"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParsePrice(in)
			if err == nil {
				t.Fatalf("ParsePrice(%q) expected error", in)
			}
			if !errs.Is(err, errs.Malformed) {
				t.Errorf("ParsePrice(%q) error = %v, want malformed kind", in, err)
			}
		})
	}
}

// Formatting must parse back to the same value.
func TestPriceRoundTrip(t *testing.T) {
	for _, in := range []string{"1g 22s 33c", "15g", "1s", "120g 5c", "0c"} {
		first, err := ParsePrice(in)
		if err != nil {
			t.Fatalf("ParsePrice(%q) error = %v", in, err)
		}
		second, err := ParsePrice(first.String())
		if err != nil {
			t.Fatalf("ParsePrice(%q) error = %v", first.String(), err)
		}
		if first != second {
			t.Errorf("round trip of %q: %d != %d", in, first, second)
		}
	}
}

func TestPriceString(t *testing.T) {
	tests := []struct {
		in   Price
		want string
	}{
		{0, "0c"},
		{12233, "1g 22s 33c"},
		{150000, "15g"},
		{10001, "1g 1c"},
	}
	for _, tt := range tests {
		if got := tt.in.String(); got != tt.want {
			t.Errorf("Price(%d).String() = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPriceArithmetic(t *testing.T) {
	a, b := Price(152535), Price(2535)
	if a-b != Price(150000) {
		t.Errorf("a-b = %d, want 150000", a-b)
	}
	if a+b != Price(155070) {
		t.Errorf("a+b = %d, want 155070", a+b)
	}
	if !(b < a) {
		t.Error("expected b < a")
	}
}
