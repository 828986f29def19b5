package keccak

import (
	"bytes"
	"encoding/hex"
	"math/rand"
	"os"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/crypto/sha3"
	"gopkg.in/yaml.v3"
)

func TestVectors(t *testing.T) {
	raw, err := os.ReadFile("testdata/vectors.yaml")
	if err != nil {
		t.Fatalf("read vectors: %v", err)
	}
	var file struct {
		Vectors []struct {
			Name   string `yaml:"name"`
			Input  string `yaml:"input"`
			Digest string `yaml:"digest"`
		} `yaml:"vectors"`
	}
	if err := yaml.Unmarshal(raw, &file); err != nil {
		t.Fatalf("parse vectors: %v", err)
	}
	if len(file.Vectors) == 0 {
		t.Fatalf("no vectors loaded")
	}
	for _, v := range file.Vectors {
		want, err := hex.DecodeString(v.Digest)
		if err != nil {
			t.Fatalf("%s: bad digest hex: %v", v.Name, err)
		}
		got := Sum256([]byte(v.Input))
		if !bytes.Equal(got[:], want) {
			t.Fatalf("%s: expected %s, got %x", v.Name, v.Digest, got)
		}
	}
}

// The legacy x/crypto hasher and geth's Keccak256 are independent
// implementations of the same padding variant; agreement across random
// lengths spanning several rate blocks rules out a porting mistake.
func TestMatchesReferenceImplementations(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, n := range []int{0, 1, 7, 8, 63, 135, 136, 137, 200, 271, 272, 273, 500} {
		data := make([]byte, n)
		rng.Read(data)

		got := Sum256(data)

		ref := sha3.NewLegacyKeccak256()
		ref.Write(data)
		want := ref.Sum(nil)
		if !bytes.Equal(got[:], want) {
			t.Fatalf("len %d: mismatch vs x/crypto: got %x want %x", n, got, want)
		}
		if geth := crypto.Keccak256(data); !bytes.Equal(got[:], geth) {
			t.Fatalf("len %d: mismatch vs go-ethereum: got %x want %x", n, got, geth)
		}
	}
}

func TestNotSHA3(t *testing.T) {
	std := sha3.New256()
	std.Write([]byte("abc"))
	got := Sum256([]byte("abc"))
	if bytes.Equal(got[:], std.Sum(nil)) {
		t.Fatalf("digest matches SHA3-256; padding byte is wrong")
	}
}

func TestStreamingMatchesOneShot(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	data := make([]byte, 400)
	rng.Read(data)
	want := Sum256(data)

	for split := 0; split <= len(data); split += 13 {
		var h Hasher
		h.Write(data[:split])
		h.Write(data[split:])
		if got := h.Sum256(); got != want {
			t.Fatalf("split %d: streaming digest mismatch", split)
		}
	}
}

func TestSumDoesNotConsumeState(t *testing.T) {
	var h Hasher
	h.Write([]byte("hello"))
	first := h.Sum256()
	second := h.Sum256()
	if first != second {
		t.Fatalf("Sum256 mutated hasher state")
	}
	h.Write([]byte(" world"))
	full := Sum256([]byte("hello world"))
	if got := h.Sum256(); got != full {
		t.Fatalf("writes after Sum256 diverge from one-shot digest")
	}
}

func TestReset(t *testing.T) {
	var h Hasher
	h.Write([]byte("garbage"))
	h.Reset()
	h.Write([]byte("abc"))
	if got, want := h.Sum256(), Sum256([]byte("abc")); got != want {
		t.Fatalf("reset hasher diverges from fresh hasher")
	}
}
