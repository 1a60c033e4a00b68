package models

import "github.com/dmitrijs2005/storelogin/internal/common"

// Record is the record store's view of a registered account as received by
// the client. It is a transient copy: holders wipe Secret once they are done
// comparing it.
type Record struct {
	Identifier string
	Secret     []byte
}

// Wipe zeroes the secret and drops the reference to it.
func (r *Record) Wipe() {
	if r == nil {
		return
	}
	common.WipeByteArray(r.Secret)
	r.Secret = nil
}

// User is the sign-up payload sent to the record store.
type User struct {
	ID        string
	Email     string
	Password  []byte
	FirstName string
	LastName  string
}
