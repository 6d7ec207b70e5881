package service

import (
	"crypto/rand"
	"math/big"
	"strconv"
)

// mintCode draws a uniform 4-digit code in [1000, 9999]. Codes are scoped to
// a single job and technician pairing, so cross-job uniqueness is not needed.
func mintCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n.Int64()+1000, 10), nil
}

// mintCodePair draws the start and completion codes. The pair must differ so
// the two purposes cannot be confused on site; a colliding draw is repeated.
func mintCodePair() (string, string, error) {
	start, err := mintCode()
	if err != nil {
		return "", "", err
	}
	end := start
	for end == start {
		end, err = mintCode()
		if err != nil {
			return "", "", err
		}
	}
	return start, end, nil
}
