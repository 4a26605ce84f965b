package codec

import (
	"math"
	"testing"
)

func TestDoublesRoundtrip(t *testing.T) {
	values := []float64{1.0, 1.0, 1.0001, 2.5, -3.75, 0.0, 100.123456, 100.123457}
	buf := make([]byte, 1024)
	n, err := EncodeDoubles(values, buf)
	if err != nil {
		t.Fatalf("EncodeDoubles: %v", err)
	}

	out := make([]float64, len(values))
	used, err := DecodeDoubles(buf[:n], len(values), out)
	if err != nil {
		t.Fatalf("DecodeDoubles: %v", err)
	}
	if used != n {
		t.Fatalf("expected to consume %d bytes, consumed %d", n, used)
	}
	for i, want := range values {
		if out[i] != want {
			t.Errorf("at %d: want %v, got %v", i, want, out[i])
		}
	}
}

func TestDoublesOddCount(t *testing.T) {
	values := []float64{1.5, 2.5, 3.5}
	buf := make([]byte, 256)
	n, err := EncodeDoubles(values, buf)
	if err != nil {
		t.Fatal(err)
	}
	out := make([]float64, 3)
	if _, err := DecodeDoubles(buf[:n], 3, out); err != nil {
		t.Fatal(err)
	}
	for i, want := range values {
		if out[i] != want {
			t.Errorf("at %d: want %v, got %v", i, want, out[i])
		}
	}
}

func TestDoublesConstantRunIsCompact(t *testing.T) {
	values := make([]float64, 10)
	for i := range values {
		values[i] = 42.0
	}
	buf := make([]byte, 256)
	n, err := EncodeDoubles(values, buf)
	if err != nil {
		t.Fatal(err)
	}
	// 5 control bytes (one per pair) plus the first value's 8 payload bytes;
	// each repeat XORs to zero after the first and adds no payload.
	if n > 5+8 {
		t.Errorf("expected compact encoding for a constant run, used %d bytes", n)
	}
}

func TestDoublesOutOfBounds(t *testing.T) {
	values := []float64{math.MaxFloat64, -math.MaxFloat64}
	buf := make([]byte, 1)
	if _, err := EncodeDoubles(values, buf); !isKind(err, OutOfBounds) {
		t.Fatalf("expected OutOfBounds, got %v", err)
	}
}
