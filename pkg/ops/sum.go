package ops

import (
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"strings"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"golang.org/x/crypto/blake2b"
)

var ErrSumFormat = errors.New("sum format not supported")

// DecodeSum splits a declared hash into a sum type and value. A bare
// value is taken as sha256 hex; "b2:" values are base58 blake2b-256.
// An empty sum decodes to empty, meaning verification is skipped.
func DecodeSum(sum string) (string, string, error) {
	if sum == "" {
		return "", "", nil
	}

	if i := strings.IndexByte(sum, ':'); i >= 0 {
		st, sv := sum[:i], sum[i+1:]

		switch st {
		case "sha256", "b2":
			return st, sv, nil
		}

		return "", "", ErrSumFormat
	}

	return "sha256", sum, nil
}

func newSumHash(sumType string) (hash.Hash, error) {
	switch sumType {
	case "sha256":
		return sha256.New(), nil
	case "b2":
		h, _ := blake2b.New256(nil)
		return h, nil
	}

	return nil, ErrSumFormat
}

func encodeSum(sumType string, h hash.Hash) string {
	if sumType == "b2" {
		return base58.Encode(h.Sum(nil))
	}

	return hex.EncodeToString(h.Sum(nil))
}

func sumEqual(sumType, declared, actual string) bool {
	if sumType == "b2" {
		return declared == actual
	}

	return strings.EqualFold(declared, actual)
}
