package tokenfmt

import (
	"fmt"
	"hash"

	"golang.org/x/crypto/blake2b"

	"github.com/opal-lang/idfilter/core/invariant"
)

// DigestPrefix tags digests with their algorithm.
const DigestPrefix = "blake2b:"

// Digester computes the BLAKE2b-256 digest of a token stream. Each token is
// hashed followed by a newline, so the digest equals the hash of the text
// output.
type Digester struct {
	h hash.Hash
}

// NewDigester returns an empty digester.
func NewDigester() *Digester {
	h, err := blake2b.New256(nil)
	invariant.ExpectNoError(err, "unkeyed blake2b")
	return &Digester{h: h}
}

// Add feeds one token.
func (d *Digester) Add(token string) {
	// hash.Hash.Write never returns an error
	_, _ = d.h.Write([]byte(token))
	_, _ = d.h.Write([]byte{'\n'})
}

// Sum returns the hex digest, e.g. "blake2b:0e5751c0...".
func (d *Digester) Sum() string {
	return fmt.Sprintf("%s%x", DigestPrefix, d.h.Sum(nil))
}

// Digest returns the digest of tokens.
func Digest(tokens []string) string {
	d := NewDigester()
	for _, tok := range tokens {
		d.Add(tok)
	}
	return d.Sum()
}
