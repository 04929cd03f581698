package entity

import (
	"fmt"
	"time"
)

// AccountKind tags the two account variants the store supports.
type AccountKind string

const (
	KindBuyer  AccountKind = "buyer"
	KindSeller AccountKind = "seller"
)

// ParseAccountKind converts a kind string (e.g. a JWT "type" claim) into an
// AccountKind. Anything other than the two known kinds is rejected.
func ParseAccountKind(s string) (AccountKind, error) {
	switch AccountKind(s) {
	case KindBuyer:
		return KindBuyer, nil
	case KindSeller:
		return KindSeller, nil
	}
	return "", fmt.Errorf("unknown account kind %q", s)
}

func (k AccountKind) String() string { return string(k) }

// Account is the aggregate root for both buyers and sellers.
// Password holds a bcrypt hash. AccessToken/RefreshToken mirror the
// currently issued session pair; an empty refresh token means no
// outstanding session.
type Account struct {
	ID           int64
	Kind         AccountKind
	Name         string
	Email        string
	Password     string
	AccessToken  string
	RefreshToken string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
