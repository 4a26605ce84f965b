package codec

import "testing"

func TestLegacyDeltaRLERoundtrip(t *testing.T) {
	values := []int64{1000, 1000, 1000, 1010, 1010, 2000}
	buf := make([]byte, 256)
	w := NewStreamV1Writer(buf)
	legacy := NewLegacyDeltaRLEWriter(w)
	for _, v := range values {
		if err := legacy.Put(v); err != nil {
			t.Fatal(err)
		}
	}
	if err := legacy.Commit(); err != nil {
		t.Fatal(err)
	}
	_ = w.Commit()

	r := NewStreamV1Reader(w.Bytes())
	lr := NewLegacyDeltaRLEReader(r)
	for i, want := range values {
		got, err := lr.Next()
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Errorf("at %d: want %d, got %d", i, want, got)
		}
	}
}
