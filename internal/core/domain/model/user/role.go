package user

import (
	"fmt"

	"bakery/internal/pkg/errs"
)

// Role is the closed set of staff tiers. The declaration order is the
// hierarchy: every role outranks the ones declared before it.
//
//	Customer < JuniorBaker < MainBaker < Admin
//
// String values are part of the wire contract and must not change.
type Role int

const (
	// UnknownRole catches uninitialized values.
	UnknownRole Role = iota
	Customer
	JuniorBaker
	MainBaker
	Admin
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		Customer:    "customer",
		JuniorBaker: "junior_baker",
		MainBaker:   "main_baker",
		Admin:       "admin",
	}
}

// ParseRole converts a wire value into a Role.
func ParseRole(s string) (Role, error) {
	for role, str := range getRoleStrings() {
		if str == s {
			return role, nil
		}
	}
	return UnknownRole, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", s))
}

func (r Role) Validate() error {
	if _, ok := getRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "unknown"
}

// Outranks reports whether r sits strictly above other in the hierarchy.
func (r Role) Outranks(other Role) bool {
	return r > other
}

// IsBaker reports whether the role works on orders.
func (r Role) IsBaker() bool {
	return r == JuniorBaker || r == MainBaker
}
