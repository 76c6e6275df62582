package rng

import (
	"hash/fnv"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"
)

const (
	base36Digits = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	minCodeLen   = 4
)

// SeedToCode encodes a seed as an uppercase base-36 code of at least four
// characters.
func SeedToCode(seed uint32) string {
	code := strings.ToUpper(strconv.FormatUint(uint64(seed), 36))
	if len(code) < minCodeLen {
		code = strings.Repeat("0", minCodeLen-len(code)) + code
	}
	return code
}

// CodeToSeed decodes a seed code. Decoding is case-insensitive and ignores
// any character outside [0-9A-Z]. Garbage input never fails; it decodes to
// some seed, and an empty code decodes to 0.
func CodeToSeed(code string) uint32 {
	var seed uint32
	for _, ch := range strings.ToUpper(code) {
		idx := strings.IndexRune(base36Digits, ch)
		if idx < 0 {
			continue
		}
		seed = seed*36 + uint32(idx)
	}
	return seed
}

// NormalizeCode returns the canonical form of a code as typed by a player.
func NormalizeCode(code string) string {
	return SeedToCode(CodeToSeed(code))
}

// DailySeed returns the seed for the UTC calendar day containing t.
func DailySeed(t time.Time) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte("daily:" + t.UTC().Format("2006-01-02")))
	return mix(h.Sum32())
}

// RandomSeed returns a fresh seed for ad-hoc runs.
func RandomSeed() uint32 {
	// #nosec G404 -- shareable gameplay seed, not a secret
	return rand.Uint32()
}

// DeriveSeed returns the seed for the given retry attempt of a generation
// that started from seed. The sequence is fully determined by its inputs.
func DeriveSeed(seed uint32, attempt int) uint32 {
	return mix(seed ^ (uint32(attempt) * 2654435761))
}

// mix is the murmur3 finalizer.
func mix(s uint32) uint32 {
	s = (s ^ (s >> 16)) * 0x85ebca6b
	s = (s ^ (s >> 13)) * 0xc2b2ae35
	return s ^ (s >> 16)
}
