package model

import "slices"

// Phase is the stage of a submission attempt.
type Phase string

const (
	PhaseIdle                 Phase = "idle"
	PhaseValidating           Phase = "validating"
	PhaseSubmitting           Phase = "submitting"
	PhaseAwaitingConfirmation Phase = "awaiting_confirmation"
	PhaseSucceeded            Phase = "succeeded"
	PhaseFailed               Phase = "failed"
)

// Terminal reports whether no further transition follows p.
func (p Phase) Terminal() bool {
	return p == PhaseSucceeded || p == PhaseFailed
}

// InFlight reports whether a submission is running in phase p.
func (p Phase) InFlight() bool {
	return p == PhaseValidating || p == PhaseSubmitting || p == PhaseAwaitingConfirmation
}

// SubmissionResult describes a confirmed asset-creation transaction.
type SubmissionResult struct {
	TransactionIDs []string `json:"transactionIds"`
	AssetIndex     uint64   `json:"assetIndex"`
	ConfirmedRound uint64   `json:"confirmedRound"`
}

// Clone returns a copy that shares no memory with r.
func (r *SubmissionResult) Clone() *SubmissionResult {
	if r == nil {
		return nil
	}
	return &SubmissionResult{
		TransactionIDs: slices.Clone(r.TransactionIDs),
		AssetIndex:     r.AssetIndex,
		ConfirmedRound: r.ConfirmedRound,
	}
}

// SubmissionState is the state of one submission attempt.
type SubmissionState struct {
	Phase  Phase
	Result *SubmissionResult
	Err    error
}

// IdleState is the state before any attempt and after a dismissed result.
func IdleState() SubmissionState {
	return SubmissionState{Phase: PhaseIdle}
}

// Succeeded builds the terminal success state.
func Succeeded(result SubmissionResult) SubmissionState {
	return SubmissionState{Phase: PhaseSucceeded, Result: result.Clone()}
}

// Failed builds the terminal failure state.
func Failed(err error) SubmissionState {
	return SubmissionState{Phase: PhaseFailed, Err: err}
}

// Kind returns the error kind of a failed state.
func (s SubmissionState) Kind() ErrorKind {
	return KindOf(s.Err)
}

// TransactionInfo is the ledger's view of a submitted transaction.
type TransactionInfo struct {
	ConfirmedRound uint64
	AssetIndex     uint64
	PoolError      string
}
