package identity

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

var idWords = []string{"SHANTI", "PREMA", "ANANDA", "DHARMA", "KARMA"}

// Rand is the randomness GenerateUniqueID draws from. *rand.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// GenerateUniqueID builds PRE-WORD-NNNc: up to three letters of the
// uppercased name (OM when it has none), a random word, a number in
// [100, 999] and a check digit (prefix[0] + word[0] + number) mod 10.
func GenerateUniqueID(name string, rng Rand) string {
	if rng == nil {
		rng = globalRand{}
	}

	var b strings.Builder
	for _, r := range strings.ToUpper(name) {
		if r >= 'A' && r <= 'Z' {
			b.WriteRune(r)
			if b.Len() == 3 {
				break
			}
		}
	}
	prefix := b.String()
	if prefix == "" {
		prefix = "OM"
	}

	word := idWords[rng.IntN(len(idWords))]
	num := rng.IntN(900) + 100
	check := (int(prefix[0]) + int(word[0]) + num) % 10

	return fmt.Sprintf("%s-%s-%d%d", prefix, word, num, check)
}
