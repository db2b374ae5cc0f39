package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Modes selectable with TCM_AUTH_MODE.
const (
	ModePassThrough = "passthrough"
	ModeDemo        = "demo"
)

// ErrRejected is returned when credentials do not match an account.
var ErrRejected = errors.New("invalid email or password")

// PassThrough accepts any credentials and names everyone the demo user.
type PassThrough struct{}

// Check implements the credential checker contract.
// POST: always succeeds with an empty display name (the caller's default applies)
func (PassThrough) Check(_ context.Context, _, _ string) (string, error) {
	return "", nil
}

// DemoAccount is one fixed account of the demo checker.
type DemoAccount struct {
	Email    string
	Name     string
	Password string
}

// DefaultDemoAccounts are the accounts enabled by TCM_AUTH_MODE=demo.
var DefaultDemoAccounts = []DemoAccount{
	{Email: "demo@reynolds.com", Name: "Demo User", Password: "demo123"},
	{Email: "admin@reynolds.com", Name: "Admin User", Password: "admin123"},
}

type hashedAccount struct {
	name string
	hash []byte
}

// DemoAccounts verifies credentials against bcrypt hashes of a fixed account list.
// Unknown addresses are compared against a decoy hash of the same cost so
// rejection takes as long as a wrong password.
type DemoAccounts struct {
	accounts map[string]hashedAccount
	decoy    []byte
	compare  func(hash, password []byte) error
}

// NewDemoAccounts hashes the given accounts.
// PRE: cost is a valid bcrypt cost
// POST: plaintext passwords are not retained
func NewDemoAccounts(accounts []DemoAccount, cost int) (*DemoAccounts, error) {
	d := &DemoAccounts{
		accounts: make(map[string]hashedAccount, len(accounts)),
		compare:  bcrypt.CompareHashAndPassword,
	}
	decoy, err := bcrypt.GenerateFromPassword([]byte("decoy-password"), cost)
	if err != nil {
		return nil, fmt.Errorf("hash decoy: %w", err)
	}
	d.decoy = decoy
	for _, a := range accounts {
		hash, err := bcrypt.GenerateFromPassword([]byte(a.Password), cost)
		if err != nil {
			return nil, fmt.Errorf("hash demo account %s: %w", a.Email, err)
		}
		d.accounts[normalizeEmail(a.Email)] = hashedAccount{name: a.Name, hash: hash}
	}
	return d, nil
}

// Check verifies email and password.
// PRE: none
// POST: returns the account's display name, or ErrRejected
func (d *DemoAccounts) Check(_ context.Context, email, password string) (string, error) {
	acct, ok := d.accounts[normalizeEmail(email)]
	hash := acct.hash
	if !ok {
		hash = d.decoy
	}
	err := d.compare(hash, []byte(password))
	if !ok || password == "" || err != nil {
		return "", ErrRejected
	}
	return acct.name, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
