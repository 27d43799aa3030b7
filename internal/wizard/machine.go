// Package wizard holds the multi-step reservation and cashier flows. Each flow
// is a linear state machine whose forward edges are gated by predicates over
// the draft it accumulates.
package wizard

import (
	"errors"
	"fmt"
)

type Step string

const (
	StepDate     Step = "date"
	StepTables   Step = "tables"
	StepMenu     Step = "menu"
	StepReview   Step = "review"
	StepCustomer Step = "customer"
	StepPayment  Step = "payment"
)

var stepLabels = map[Step]string{
	StepDate:     "Date & Time",
	StepTables:   "Tables",
	StepMenu:     "Menu",
	StepReview:   "Review",
	StepCustomer: "Customer",
	StepPayment:  "Payment",
}

func (s Step) Label() string {
	if label, ok := stepLabels[s]; ok {
		return label
	}
	return string(s)
}

var (
	ErrStepBlocked = errors.New("step blocked")
	ErrUnknownStep = errors.New("unknown step")
	ErrNoNextStep  = errors.New("already at the last step")
	ErrNoPrevStep  = errors.New("already at the first step")
)

// BlockedError names the edge that was refused and why. It matches ErrStepBlocked.
type BlockedError struct {
	To     Step
	Reason string
}

func (e *BlockedError) Error() string {
	return fmt.Sprintf("cannot continue to %s: %s", e.To, e.Reason)
}

func (e *BlockedError) Is(target error) bool {
	return target == ErrStepBlocked
}

// Guard reports why a step cannot be entered, or "" when it can.
type Guard func() string

type Machine struct {
	steps   []Step
	guards  map[Step]Guard
	current int
}

func NewMachine(steps []Step, guards map[Step]Guard) *Machine {
	return &Machine{steps: append([]Step(nil), steps...), guards: guards}
}

func (m *Machine) Current() Step {
	return m.steps[m.current]
}

func (m *Machine) Steps() []Step {
	return append([]Step(nil), m.steps...)
}

// Check evaluates the guard for entering step.
func (m *Machine) Check(step Step) error {
	guard, ok := m.guards[step]
	if !ok || guard == nil {
		return nil
	}
	if reason := guard(); reason != "" {
		return &BlockedError{To: step, Reason: reason}
	}
	return nil
}

// Revalidate re-runs the guard of every step entered so far. The draft can
// change after a step was entered, so a terminal action checks it again.
func (m *Machine) Revalidate() error {
	for i := 1; i <= m.current; i++ {
		if err := m.Check(m.steps[i]); err != nil {
			return err
		}
	}
	return nil
}

func (m *Machine) CanAdvance() bool {
	if m.current+1 >= len(m.steps) {
		return false
	}
	return m.Check(m.steps[m.current+1]) == nil
}

func (m *Machine) Next() error {
	if m.current+1 >= len(m.steps) {
		return ErrNoNextStep
	}
	if err := m.Check(m.steps[m.current+1]); err != nil {
		return err
	}
	m.current++
	return nil
}

func (m *Machine) Back() error {
	if m.current == 0 {
		return ErrNoPrevStep
	}
	m.current--
	return nil
}

// GoTo moves back freely; moving forward requires every guard along the way.
func (m *Machine) GoTo(step Step) error {
	target := m.index(step)
	if target < 0 {
		return ErrUnknownStep
	}
	for i := m.current + 1; i <= target; i++ {
		if err := m.Check(m.steps[i]); err != nil {
			return err
		}
	}
	m.current = target
	return nil
}

func (m *Machine) Reset() {
	m.current = 0
}

func (m *Machine) index(step Step) int {
	for i, s := range m.steps {
		if s == step {
			return i
		}
	}
	return -1
}

type StepStatus struct {
	Step      Step   `json:"step"`
	Label     string `json:"label"`
	Completed bool   `json:"completed"`
	Current   bool   `json:"current"`
}

type Progress struct {
	Current Step         `json:"current"`
	Index   int          `json:"index"`
	Total   int          `json:"total"`
	Percent int          `json:"percent"`
	Steps   []StepStatus `json:"steps"`
}

func (m *Machine) Progress() Progress {
	steps := make([]StepStatus, 0, len(m.steps))
	for i, step := range m.steps {
		steps = append(steps, StepStatus{
			Step:      step,
			Label:     step.Label(),
			Completed: i < m.current,
			Current:   i == m.current,
		})
	}
	return Progress{
		Current: m.Current(),
		Index:   m.current,
		Total:   len(m.steps),
		Percent: (m.current + 1) * 100 / len(m.steps),
		Steps:   steps,
	}
}
