package codec

import "math"

// xorByteLen returns the number of low bytes of x needed to reconstruct it,
// after its high zero bytes are trimmed. A double-precision series tends to
// share sign and exponent bits between neighbors, so XORing against the
// previous raw bit pattern zeroes the high bytes most of the time; only the
// differing low bytes need to be stored.
func xorByteLen(x uint64) int {
	if x == 0 {
		return 0
	}
	l := (bitsLen(x) + 7) / 8
	if l > 8 {
		l = 8
	}
	return l
}

func bitsLen(x uint64) int {
	n := 0
	for x != 0 {
		n++
		x >>= 1
	}
	return n
}

// EncodeDoubles packs values into buf using a predictor-XOR scheme: each
// value is XORed against the previous raw IEEE-754 bit pattern (0 for the
// first value), and only the significant low bytes of the XOR result are
// stored, their count recorded as a 4-bit nibble. Two values share one
// control byte (low nibble, high nibble), since a length of 0-8 fits in 4
// bits. Returns the number of bytes written.
func EncodeDoubles(values []float64, buf []byte) (int, error) {
	pos := 0
	var prev uint64
	for i := 0; i < len(values); i += 2 {
		cur0 := math.Float64bits(values[i])
		x0 := prev ^ cur0
		l0 := xorByteLen(x0)

		hasSecond := i+1 < len(values)
		var cur1 uint64
		var l1 int
		if hasSecond {
			cur1 = math.Float64bits(values[i+1])
			x1 := cur0 ^ cur1
			l1 = xorByteLen(x1)
		}

		if pos >= len(buf) {
			return 0, outOfBounds("doubles: no room for control byte")
		}
		buf[pos] = byte(l0) | byte(l1<<4)
		pos++

		if pos+l0 > len(buf) {
			return 0, outOfBounds("doubles: no room for payload")
		}
		for b := 0; b < l0; b++ {
			buf[pos+b] = byte(x0 >> (8 * uint(b)))
		}
		pos += l0

		if hasSecond {
			x1 := cur0 ^ cur1
			if pos+l1 > len(buf) {
				return 0, outOfBounds("doubles: no room for payload")
			}
			for b := 0; b < l1; b++ {
				buf[pos+b] = byte(x1 >> (8 * uint(b)))
			}
			pos += l1
			prev = cur1
		} else {
			prev = cur0
		}
	}
	return pos, nil
}

// DecodeDoubles reads exactly count values encoded by EncodeDoubles from
// buf, storing them into out (which must have len(out) == count) and
// returning the number of bytes consumed.
func DecodeDoubles(buf []byte, count int, out []float64) (int, error) {
	if len(out) != count {
		return 0, badArg("doubles: out slice must have length count")
	}
	pos := 0
	var prev uint64
	remaining := count
	idx := 0
	for remaining > 0 {
		if pos >= len(buf) {
			return 0, outOfBounds("doubles: missing control byte")
		}
		ctrl := buf[pos]
		pos++
		l0 := int(ctrl & 0x0f)
		l1 := int(ctrl >> 4)

		if pos+l0 > len(buf) {
			return 0, outOfBounds("doubles: payload past end of buffer")
		}
		var x0 uint64
		for b := 0; b < l0; b++ {
			x0 |= uint64(buf[pos+b]) << (8 * uint(b))
		}
		pos += l0
		cur0 := prev ^ x0
		out[idx] = math.Float64frombits(cur0)
		idx++
		remaining--
		prev = cur0

		if remaining == 0 {
			break
		}

		if pos+l1 > len(buf) {
			return 0, outOfBounds("doubles: payload past end of buffer")
		}
		var x1 uint64
		for b := 0; b < l1; b++ {
			x1 |= uint64(buf[pos+b]) << (8 * uint(b))
		}
		pos += l1
		cur1 := prev ^ x1
		out[idx] = math.Float64frombits(cur1)
		idx++
		remaining--
		prev = cur1
	}
	return pos, nil
}
