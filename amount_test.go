package collateral

import (
	"encoding/json"
	"errors"
	"math/big"
	"testing"
)

func TestParseAmount(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "plain integer", input: "1000", want: "1000"},
		{name: "zero", input: "0", want: "0"},
		{name: "beyond int64", input: "123456789012345678901234567890", want: "123456789012345678901234567890"},
		{name: "integer with trailing zeros after the point", input: "42.00", want: "42"},
		{name: "fractional", input: "1.5", wantErr: true},
		{name: "negative", input: "-3", wantErr: true},
		{name: "garbage", input: "ten", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseAmount(tc.input)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("ParseAmount(%q) = %s, want error", tc.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAmount(%q) failed: %v", tc.input, err)
			}
			if got.String() != tc.want {
				t.Errorf("ParseAmount(%q) = %s, want %s", tc.input, got, tc.want)
			}
		})
	}
}

func TestParseAmount_RejectsWithInvalidAmount(t *testing.T) {
	for _, input := range []string{"1.5", "-3"} {
		if _, err := ParseAmount(input); !errors.Is(err, ErrInvalidAmount) {
			t.Errorf("ParseAmount(%q) error = %v, want ErrInvalidAmount", input, err)
		}
	}
}

func TestNewAmount_CopiesInput(t *testing.T) {
	v := big.NewInt(100)
	a := NewAmount(v)
	v.SetInt64(999)
	if !a.Equal(A(100)) {
		t.Errorf("Amount changed with its source integer, got %s", a)
	}
}

func TestAmount_ZeroValue(t *testing.T) {
	var a Amount
	if !a.IsZero() {
		t.Errorf("zero Amount is not zero: %s", a)
	}
	if got := a.Add(A(5)); !got.Equal(A(5)) {
		t.Errorf("zero Amount + 5 = %s, want 5", got)
	}
	if got := a.String(); got != "0" {
		t.Errorf("zero Amount String() = %q, want 0", got)
	}
}

func TestAmount_JSON(t *testing.T) {
	// amounts travel as plain JSON numbers, never quoted, never scaled.
	b, err := json.Marshal(A(1000))
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	if string(b) != "1000" {
		t.Errorf("Marshal(1000) = %s, want 1000", b)
	}

	var a Amount
	if err := json.Unmarshal([]byte("123456789012345678901234567890"), &a); err != nil {
		t.Fatalf("Unmarshal() failed: %v", err)
	}
	if a.String() != "123456789012345678901234567890" {
		t.Errorf("Unmarshal() = %s", a)
	}

	if err := json.Unmarshal([]byte("12.5"), &a); err == nil {
		t.Error("Unmarshal(12.5) succeeded, want error")
	}
}

func TestValue_Format(t *testing.T) {
	testCases := []struct {
		name     string
		value    Value
		currency string
		want     string
	}{
		{name: "dollars", value: V(123456), currency: "USD", want: "$1,234.56"},
		{name: "yen has no fraction", value: V(500), currency: "JPY", want: "¥500"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.value.Format(tc.currency); got != tc.want {
				t.Errorf("Format(%s, %s) = %q, want %q", tc.value, tc.currency, got, tc.want)
			}
		})
	}
}

func TestValidateCurrency(t *testing.T) {
	if err := ValidateCurrency("EUR"); err != nil {
		t.Errorf("ValidateCurrency(EUR) failed: %v", err)
	}
	if err := ValidateCurrency("WAT"); err == nil {
		t.Error("ValidateCurrency(WAT) succeeded, want error")
	}
}
