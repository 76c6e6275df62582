package generator

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/vovakirdan/snowgroomer/internal/level"
	"github.com/vovakirdan/snowgroomer/internal/rng"
)

// ErrMissingSeed is returned by ParseShareQuery when no seed is present.
var ErrMissingSeed = errors.New("share: missing seed")

const seedAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// ShareLink is everything needed to reproduce a generated run.
type ShareLink struct {
	SeedCode string
	Rank     level.Difficulty
}

// NewShareLink encodes seed and rank.
func NewShareLink(seed uint32, rank level.Difficulty) ShareLink {
	return ShareLink{SeedCode: rng.SeedToCode(seed), Rank: level.ParseRank(string(rank))}
}

// Seed decodes the seed code.
func (s ShareLink) Seed() uint32 {
	return rng.CodeToSeed(s.SeedCode)
}

// Query encodes the link as a query string.
func (s ShareLink) Query() string {
	v := url.Values{}
	v.Set("seed", s.SeedCode)
	v.Set("rank", string(s.Rank))
	return v.Encode()
}

// ParseShareQuery decodes a query string or a full URL carrying seed and
// rank parameters. The seed code is normalized and an unknown or missing
// rank becomes green.
func ParseShareQuery(raw string) (ShareLink, error) {
	if i := strings.IndexByte(raw, '?'); i >= 0 {
		raw = raw[i+1:]
	}
	v, err := url.ParseQuery(raw)
	if err != nil {
		return ShareLink{}, fmt.Errorf("share: parse query: %w", err)
	}

	seed := v.Get("seed")
	if !strings.ContainsAny(strings.ToUpper(seed), seedAlphabet) {
		return ShareLink{}, ErrMissingSeed
	}
	return NewShareLink(rng.CodeToSeed(seed), level.Difficulty(v.Get("rank"))), nil
}
