// Package cli is the interactive terminal client of the mechanic dispatch
// service. It stands in for the mobile screens: customers find nearby
// mechanics, compare estimated costs, create and rate requests; mechanics
// manage their profile and work through assigned jobs.
//
// NewApp wires the local SQLite credential store, the authenticated API client
// and the domain services. App.Run resumes a stored session and then runs the
// REPL until the user exits. Which commands are offered depends on whether a
// user is signed in and on the user's role.
package cli
