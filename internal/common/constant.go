package common

// SessionIdentityKey is the key under which the authenticated identity is
// stored in the client session slot.
const SessionIdentityKey = "email"
