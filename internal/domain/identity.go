package domain

// Identity is the authenticated caller as extracted from a verified
// Google ID token. Email is the key the usage ledger aggregates by.
type Identity struct {
	UserID          string
	Email           string
	Name            string
	AuthorizedParty string
}
