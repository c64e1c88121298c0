// Package dispatch assigns jobs to technicians.
//
// The Allocator scores every (job, technician) pair and supports greedy bulk
// assignment; it is purely computational. The Manager wraps the allocator
// with the persistence boundary: it re-validates conflicts against the latest
// store state immediately before committing, since a suggestion may be stale
// by the time a dispatcher acts on it.
package dispatch
