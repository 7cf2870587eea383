// Package application models the baker promotion pipeline.
//
// A BakerApplication starts Pending and is resolved exactly once, to Approved
// or Rejected, by an admin. The applicant's role at submission time is kept
// as a snapshot. Changing the applicant's role on approval is the job of the
// command that decides the application, inside the same unit of work.
package application
