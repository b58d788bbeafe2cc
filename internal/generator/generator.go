// Package generator builds synthetic customer records: names, identity numbers
// and contact methods. All randomness comes from the Generator's own source,
// so a seeded Generator reproduces the same records.
package generator

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
	"strconv"

	"github.com/google/uuid"
)

// controlDigits is the length of the identity number's control suffix.
const controlDigits = 5

// Customer is one generated identity, built fresh per submission.
type Customer struct {
	Name           string
	Surname        string
	IdentityNumber string
}

// Generator produces random customer data from a ChaCha8 source.
// It is not safe for concurrent use.
type Generator struct {
	src *rand.ChaCha8
	rng *rand.Rand
}

// New creates a generator. A zero seed draws the seed from crypto/rand.
func New(seed uint64) *Generator {
	var key [32]byte
	if seed == 0 {
		_, _ = crand.Read(key[:])
	} else {
		binary.LittleEndian.PutUint64(key[:8], seed)
	}
	src := rand.NewChaCha8(key)
	return &Generator{src: src, rng: rand.New(src)}
}

// Customer generates the identity for the customer at sequence index i.
func (g *Generator) Customer(i int) Customer {
	return Customer{
		Name:           g.Name(),
		Surname:        g.Surname(),
		IdentityNumber: g.IdentityNumber(i),
	}
}

// Name picks a first name.
func (g *Generator) Name() string {
	return pick(g, names)
}

// Surname picks a surname.
func (g *Generator) Surname() string {
	return pick(g, surnames)
}

// IdentityNumber builds an 11 digit number: year, month code, day and the
// control suffix derived from sequenceIndex. No checksum or calendar check is done.
func (g *Generator) IdentityNumber(sequenceIndex int) string {
	year := fmt.Sprintf("%02d", g.between(0, 100))
	days := fmt.Sprintf("%02d", g.between(1, 32))
	return year + g.monthCode() + days + ControlNumber(sequenceIndex)
}

// monthCode draws from [1,33) and folds 13..20 back onto 3..10.
func (g *Generator) monthCode() string {
	month := g.between(1, 33)
	if month >= 13 && month <= 20 {
		month -= 10
	}
	return fmt.Sprintf("%02d", month)
}

// ControlNumber returns the 5 character suffix for a sequence index: the index
// zero padded when below 99999, otherwise the first five digits of it.
func ControlNumber(sequenceIndex int) string {
	if sequenceIndex < 99999 {
		return fmt.Sprintf("%05d", sequenceIndex)
	}
	return strconv.Itoa(sequenceIndex)[:controlDigits]
}

// PhoneNumber concatenates a 5 digit block with a 3 to 6 digit block.
func (g *Generator) PhoneNumber() string {
	first := g.between(10000, 99999)
	next := g.between(100, 999999)
	return strconv.Itoa(first) + strconv.Itoa(next)
}

// Email generates customer<N>@generator.com.
func (g *Generator) Email() string {
	return "customer" + strconv.Itoa(g.between(0, 99999)) + "@" + emailDomain
}

// Address generates "<kind> <uuid>".
func (g *Generator) Address(kind Kind) string {
	return string(kind) + " " + g.uuid().String()
}

// uuid draws a version 4 UUID from the generator's source.
func (g *Generator) uuid() uuid.UUID {
	id, err := uuid.NewRandomFromReader(g.src)
	if err != nil {
		// ChaCha8.Read never fails
		panic("generator: uuid: " + err.Error())
	}
	return id
}

// between returns a random int in [start, bound).
func (g *Generator) between(start, bound int) int {
	return start + g.rng.IntN(bound-start)
}

// pick returns a random element from a string slice.
func pick(g *Generator, s []string) string {
	return s[g.rng.IntN(len(s))]
}
