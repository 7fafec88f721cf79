package interfaces

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"theatre-billing/internal/theatre/application"
	theatre "theatre-billing/internal/theatre/domain"
)

// ErrSealMismatch is returned when a seal does not describe the statement.
var ErrSealMismatch = errors.New("statement seal: mismatch")

// SealClaims is the signed summary of a statement.
type SealClaims struct {
	Customer      string `json:"customer"`
	TotalAmount   int64  `json:"total_amount"`
	VolumeCredits int    `json:"volume_credits"`
	Lines         int    `json:"lines"`
	Digest        string `json:"digest"`
	jwt.RegisteredClaims
}

// SealStatement signs the statement totals and line digest with HS256.
func SealStatement(stmt *application.Statement, secret []byte) (string, error) {
	if stmt == nil {
		return "", errors.New("statement seal: nil statement")
	}
	if len(secret) == 0 {
		return "", errors.New("statement seal: empty secret")
	}
	claims := SealClaims{
		Customer:      stmt.Customer,
		TotalAmount:   stmt.Result.TotalAmount,
		VolumeCredits: stmt.Result.TotalVolumeCredits,
		Lines:         len(stmt.Result.Lines),
		Digest:        LinesDigest(stmt.Result.Lines),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       stmt.ID,
			Subject:  stmt.Customer,
			IssuedAt: jwt.NewNumericDate(stmt.GeneratedAt),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// VerifySeal validates the token signature and checks it against the statement.
func VerifySeal(tokenString string, secret []byte, stmt *application.Statement) (*SealClaims, error) {
	if tokenString == "" {
		return nil, errors.New("statement seal: empty token")
	}
	if len(secret) == 0 {
		return nil, errors.New("statement seal: empty secret")
	}
	if stmt == nil {
		return nil, errors.New("statement seal: nil statement")
	}

	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	claims := &SealClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("statement seal: invalid signing method")
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("statement seal: invalid token")
	}

	switch {
	case claims.ID != stmt.ID:
		return nil, fmt.Errorf("%w: statement id", ErrSealMismatch)
	case claims.Customer != stmt.Customer, claims.Subject != stmt.Customer, claims.Customer != stmt.Result.Customer:
		return nil, fmt.Errorf("%w: customer", ErrSealMismatch)
	case claims.Lines != len(stmt.Result.Lines):
		return nil, fmt.Errorf("%w: line count", ErrSealMismatch)
	case claims.TotalAmount != stmt.Result.TotalAmount, claims.VolumeCredits != stmt.Result.TotalVolumeCredits:
		return nil, fmt.Errorf("%w: totals", ErrSealMismatch)
	case claims.Digest != LinesDigest(stmt.Result.Lines):
		return nil, fmt.Errorf("%w: line digest", ErrSealMismatch)
	}
	return claims, nil
}

type digestLine struct {
	PlayID        string `json:"play_id"`
	PlayName      string `json:"play_name"`
	Genre         string `json:"genre"`
	Audience      int    `json:"audience"`
	Amount        int64  `json:"amount"`
	VolumeCredits int    `json:"volume_credits"`
}

// LinesDigest hashes line items in order. Each line is JSON encoded so
// field boundaries stay unambiguous whatever the play names contain.
func LinesDigest(lines []theatre.LineItem) string {
	h := sha256.New()
	enc := json.NewEncoder(h)
	for _, line := range lines {
		// Encoding plain strings and integers cannot fail.
		_ = enc.Encode(digestLine{
			PlayID:        line.PlayID,
			PlayName:      line.PlayName,
			Genre:         string(line.Genre),
			Audience:      line.Audience,
			Amount:        line.Amount,
			VolumeCredits: line.VolumeCredits,
		})
	}
	return hex.EncodeToString(h.Sum(nil))
}
