// Package timezone centralizes time handling so every booking date, payment
// timestamp and report window is computed in the configured property timezone
// instead of whatever the host happens to run in.
package timezone
