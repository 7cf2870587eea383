package application

import (
	"fmt"

	"bakery/internal/pkg/errs"
)

// Status of a baker application. String values are part of the wire contract.
type Status int

const (
	UnknownStatus Status = iota
	Pending
	Approved
	Rejected
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Pending:  "pending",
		Approved: "approved",
		Rejected: "rejected",
	}
}

func ParseStatus(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return UnknownStatus, errs.NewValueIsInvalidErrorWithCause(
		"application status",
		fmt.Errorf("%q is not a valid application status", s),
	)
}

func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"application status",
			fmt.Errorf("%d is not a valid application status", s),
		)
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Decision is the outcome an admin picks for a pending application.
type Decision int

const (
	UnknownDecision Decision = iota
	Approve
	Reject
)

// ParseDecision accepts the wire values "approved" and "rejected".
func ParseDecision(s string) (Decision, error) {
	switch s {
	case Approved.String():
		return Approve, nil
	case Rejected.String():
		return Reject, nil
	}
	return UnknownDecision, errs.NewValueIsInvalidErrorWithCause(
		"decision",
		fmt.Errorf("%q is not a valid decision", s),
	)
}

func (d Decision) Validate() error {
	if d != Approve && d != Reject {
		return errs.NewValueIsInvalidErrorWithCause("decision", fmt.Errorf("%d is not a valid decision", d))
	}
	return nil
}

// Status returns the application status the decision resolves to.
func (d Decision) Status() Status {
	switch d {
	case Approve:
		return Approved
	case Reject:
		return Rejected
	}
	return UnknownStatus
}

func (d Decision) String() string {
	return d.Status().String()
}
