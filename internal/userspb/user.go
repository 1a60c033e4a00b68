package userspb

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"
)

const (
	FieldID        = "id"
	FieldEmail     = "email"
	FieldPassword  = "password"
	FieldFirstName = "firstname"
	FieldLastName  = "lastname"
)

// ErrMalformedUser is returned when a Struct cannot be read as a user record.
var ErrMalformedUser = errors.New("malformed user record")

// User is the wire view of a user record. Empty fields are omitted.
type User struct {
	ID        string
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// ToStruct encodes u as a Struct.
func (u User) ToStruct() *structpb.Struct {
	fields := map[string]*structpb.Value{}
	put := func(k, v string) {
		if v != "" {
			fields[k] = structpb.NewStringValue(v)
		}
	}
	put(FieldID, u.ID)
	put(FieldEmail, u.Email)
	put(FieldPassword, u.Password)
	put(FieldFirstName, u.FirstName)
	put(FieldLastName, u.LastName)
	return &structpb.Struct{Fields: fields}
}

// UserFromStruct decodes a Struct produced by ToStruct. Unknown fields are
// ignored; a known field carrying a non-string value is an error.
func UserFromStruct(s *structpb.Struct) (User, error) {
	var u User
	if s == nil {
		return u, ErrMalformedUser
	}
	targets := map[string]*string{
		FieldID:        &u.ID,
		FieldEmail:     &u.Email,
		FieldPassword:  &u.Password,
		FieldFirstName: &u.FirstName,
		FieldLastName:  &u.LastName,
	}
	for name, dst := range targets {
		v, ok := s.GetFields()[name]
		if !ok {
			continue
		}
		sv, ok := v.GetKind().(*structpb.Value_StringValue)
		if !ok {
			return User{}, fmt.Errorf("%w: field %q is not a string", ErrMalformedUser, name)
		}
		*dst = sv.StringValue
	}
	return u, nil
}

// HasField reports whether s carries the named field.
func HasField(s *structpb.Struct, name string) bool {
	_, ok := s.GetFields()[name]
	return ok
}
