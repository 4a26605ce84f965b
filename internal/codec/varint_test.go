package codec

import (
	"math"
	"reflect"
	"testing"
)

func TestPutUvarint(t *testing.T) {
	tests := []struct {
		name     string
		value    uint64
		expected []byte
	}{
		{"Zero", 0, []byte{0x00}},
		{"One", 1, []byte{0x01}},
		{"127", 127, []byte{0x7f}},
		{"128", 128, []byte{0x80, 0x01}},
		{"300", 300, []byte{0xac, 0x02}},
		{"16383", 16383, []byte{0xff, 0x7f}},
		{"16384", 16384, []byte{0x80, 0x80, 0x01}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := PutUvarint(nil, tt.value)
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestUvarint(t *testing.T) {
	tests := []struct {
		name         string
		data         []byte
		expectedVal  uint64
		expectedSize int
	}{
		{"Zero", []byte{0x00}, 0, 1},
		{"One", []byte{0x01}, 1, 1},
		{"127", []byte{0x7f}, 127, 1},
		{"128", []byte{0x80, 0x01}, 128, 2},
		{"300", []byte{0xac, 0x02}, 300, 2},
		{"16383", []byte{0xff, 0x7f}, 16383, 2},
		{"16384", []byte{0x80, 0x80, 0x01}, 16384, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			val, size, err := Uvarint(tt.data)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if val != tt.expectedVal {
				t.Errorf("Value: expected %d, got %d", tt.expectedVal, val)
			}
			if size != tt.expectedSize {
				t.Errorf("Size: expected %d, got %d", tt.expectedSize, size)
			}
		})
	}
}

func TestUvarintRoundtrip(t *testing.T) {
	values := []uint64{0, 1, 127, 128, 255, 256, 16383, 16384, 1000000, math.MaxUint32, math.MaxUint64}

	for _, v := range values {
		encoded := PutUvarint(nil, v)
		decoded, n, err := Uvarint(encoded)
		if err != nil {
			t.Fatalf("unexpected error for %d: %v", v, err)
		}
		if decoded != v {
			t.Errorf("Roundtrip failed for %d: got %d", v, decoded)
		}
		if n != len(encoded) {
			t.Errorf("Size mismatch for %d: expected %d, got %d", v, len(encoded), n)
		}
	}
}

func TestUvarint_EmptyData(t *testing.T) {
	_, _, err := Uvarint([]byte{})
	if !isKind(err, OutOfBounds) {
		t.Fatalf("expected OutOfBounds, got %v", err)
	}
}

func TestUvarint_TruncatedMultiByte(t *testing.T) {
	// High bit set = expects continuation byte, but none follows.
	data := []byte{0x80}
	_, _, err := Uvarint(data)
	if !isKind(err, OutOfBounds) {
		t.Fatalf("expected OutOfBounds, got %v", err)
	}
}

func TestUvarint_Overflow(t *testing.T) {
	// 10 continuation bytes with the high bit still set on the 10th.
	data := make([]byte, 10)
	for i := range data {
		data[i] = 0xff
	}
	_, _, err := Uvarint(data)
	if !isKind(err, Overflow) {
		t.Fatalf("expected Overflow, got %v", err)
	}
}

func TestUvarint_MaxUint64(t *testing.T) {
	var maxVal uint64 = math.MaxUint64

	encoded := PutUvarint(nil, maxVal)
	decoded, n, err := Uvarint(encoded)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decoded != maxVal {
		t.Errorf("MaxUint64 roundtrip: expected %d, got %d", maxVal, decoded)
	}
	if n != len(encoded) {
		t.Errorf("Size mismatch: expected %d, got %d", len(encoded), n)
	}
}

func isKind(err error, k Kind) bool {
	se, ok := err.(*StoreError)
	return ok && se.Kind == k
}
