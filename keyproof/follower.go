// Package keyproof provides a progress-reporting hook for the module's
// longer-running loops (key-correctness verification over many attributes,
// four-square decomposition search), so batch callers can surface
// feedback while a proof is being checked or built.
package keyproof

// ProgressFollower receives progress callbacks from a long-running step.
// StepStart announces the start of a named step with an expected number
// of Tick calls; StepDone announces its completion.
type ProgressFollower interface {
	StepStart(desc string, intermediates int)
	Tick()
	StepDone()
}

type nopFollower struct{}

func (nopFollower) StepStart(_ string, _ int) {}
func (nopFollower) Tick()                     {}
func (nopFollower) StepDone()                 {}

// Follower is the package-level progress sink. Production code leaves it
// as the default no-op; long-running batch callers may swap in their own
// implementation, restoring the previous one when done.
var Follower ProgressFollower = nopFollower{}
