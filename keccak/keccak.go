// Package keccak implements the original Keccak-256 hash as used by
// Ethereum-style verifiers. This is the pre-standardization variant with
// 0x01 multi-rate padding, not SHA3-256 (which pads with 0x06); the two
// disagree on every non-trivial input.
package keccak

import (
	"encoding/binary"
	"math/bits"
)

// rate is the sponge rate for a 256-bit capacity: (1600 - 2*256) / 8 bytes.
const rate = 136

// Size is the digest length in bytes.
const Size = 32

// Sum256 returns the Keccak-256 digest of data.
func Sum256(data []byte) [Size]byte {
	var st state
	for len(data) >= rate {
		st.absorb(data[:rate])
		data = data[rate:]
	}
	return st.finalize(data)
}

// Hasher is a streaming Keccak-256 hasher. The zero value is ready to use.
type Hasher struct {
	st  state
	buf [rate]byte
	n   int
}

// Reset restores the hasher to its initial state.
func (h *Hasher) Reset() {
	h.st = state{}
	h.n = 0
}

// Write absorbs p into the sponge. It never fails; the error is for
// io.Writer compatibility.
func (h *Hasher) Write(p []byte) (int, error) {
	written := len(p)
	if h.n > 0 {
		c := copy(h.buf[h.n:], p)
		h.n += c
		p = p[c:]
		if h.n == rate {
			h.st.absorb(h.buf[:])
			h.n = 0
		}
	}
	for len(p) >= rate {
		h.st.absorb(p[:rate])
		p = p[rate:]
	}
	h.n += copy(h.buf[h.n:], p)
	return written, nil
}

// Sum256 pads, squeezes, and returns the digest. The hasher state is not
// consumed; further writes continue the original stream.
func (h *Hasher) Sum256() [Size]byte {
	st := h.st
	return st.finalize(h.buf[:h.n])
}

// state holds the 5x5 lane matrix in flat form, lane index x + 5y.
type state [25]uint64

// absorb XORs one full rate-sized block into the state and permutes.
func (s *state) absorb(block []byte) {
	for i := 0; i < rate/8; i++ {
		s[i] ^= binary.LittleEndian.Uint64(block[8*i:])
	}
	s.permute()
}

// finalize absorbs the trailing partial block with Keccak padding and
// squeezes the first 32 bytes of the state. A single permutation suffices
// for a 32-byte output since 32 < rate.
func (s *state) finalize(tail []byte) [Size]byte {
	var block [rate]byte
	copy(block[:], tail)
	block[len(tail)] ^= 0x01
	block[rate-1] ^= 0x80
	for i := 0; i < rate/8; i++ {
		s[i] ^= binary.LittleEndian.Uint64(block[8*i:])
	}
	s.permute()

	var out [Size]byte
	for i := 0; i < Size/8; i++ {
		binary.LittleEndian.PutUint64(out[8*i:], s[i])
	}
	return out
}

// rotc holds the rho rotation offsets for lane x + 5y.
var rotc = [25]int{
	0, 1, 62, 28, 27,
	36, 44, 6, 55, 20,
	3, 10, 43, 25, 39,
	41, 45, 15, 21, 8,
	18, 2, 61, 56, 14,
}

// piDst maps source lane x + 5y to its destination y + 5*((2x+3y) mod 5).
var piDst = [25]int{
	0, 10, 20, 5, 15,
	16, 1, 11, 21, 6,
	7, 17, 2, 12, 22,
	23, 8, 18, 3, 13,
	14, 24, 9, 19, 4,
}

var roundConstants = [24]uint64{
	0x0000000000000001, 0x0000000000008082,
	0x800000000000808a, 0x8000000080008000,
	0x000000000000808b, 0x0000000080000001,
	0x8000000080008081, 0x8000000000008009,
	0x000000000000008a, 0x0000000000000088,
	0x0000000080008009, 0x000000008000000a,
	0x000000008000808b, 0x800000000000008b,
	0x8000000000008089, 0x8000000000008003,
	0x8000000000008002, 0x8000000000000080,
	0x000000000000800a, 0x800000008000000a,
	0x8000000080008081, 0x8000000000008080,
	0x0000000080000001, 0x8000000080008008,
}

// permute applies the 24-round keccak-f[1600] permutation.
func (s *state) permute() {
	var c, d [5]uint64
	var b [25]uint64
	for round := 0; round < 24; round++ {
		// theta
		for x := 0; x < 5; x++ {
			c[x] = s[x] ^ s[x+5] ^ s[x+10] ^ s[x+15] ^ s[x+20]
		}
		for x := 0; x < 5; x++ {
			d[x] = c[(x+4)%5] ^ bits.RotateLeft64(c[(x+1)%5], 1)
		}
		for i := 0; i < 25; i++ {
			s[i] ^= d[i%5]
		}
		// rho + pi
		for i := 0; i < 25; i++ {
			b[piDst[i]] = bits.RotateLeft64(s[i], rotc[i])
		}
		// chi
		for y := 0; y < 25; y += 5 {
			for x := 0; x < 5; x++ {
				s[y+x] = b[y+x] ^ (^b[y+(x+1)%5] & b[y+(x+2)%5])
			}
		}
		// iota
		s[0] ^= roundConstants[round]
	}
}
