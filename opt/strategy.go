/*
 * strategy.go, part of basisopt.
 *
 *
 * Copyright 2026 The basisopt developers
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 */

package opt

import "github.com/robashaw/basisopt"

//Outcome is the terminal state of a strategy or of one of its shell
//sub-loops. Callers can always tell "stopped because it worked" from
//"stopped because it could not do better" from "stopped because
//something broke".
type Outcome int

const (
	//Running: not terminal yet.
	Running Outcome = iota
	//Converged: the target accuracy or composition was reached.
	Converged
	//MaxFunctionsReached: a shell hit its function-count cap before
	//reaching the target. Reported, not fatal.
	MaxFunctionsReached
	//Partial: the reduction stopped early on some shells because
	//further removal would have cost too much. Reported, not fatal.
	Partial
	//Failed: the evaluator broke. The run aborts and reports the
	//last good state.
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Running:
		return "running"
	case Converged:
		return "converged"
	case MaxFunctionsReached:
		return "max functions reached"
	case Partial:
		return "partial"
	case Failed:
		return "failed"
	}
	return "unknown"
}

//ShellReport describes how one shell's sub-loop ended.
type ShellReport struct {
	L       basisopt.AngularMomentum
	Outcome Outcome
	//N is the number of primitives the shell ended with.
	N int
	//Delta is the last achieved objective for the shell.
	Delta float64
	//Reason is a short human-readable explanation for non-converged
	//shells.
	Reason string
}

//Strategy is the contract every optimization strategy implements. The
//driver in Run owns the loop:
//
//	objective := evaluate(current basis)
//	for strategy.Next(basis, element, objective) {
//		guess := strategy.Active(basis, element)
//		best, objective = Minimize(objectiveFunc, guess, settings)
//	}
//
//Next advances the state machine: it checks the sub-loop of the shell
//that was just optimized, grows or finishes it, and picks the next
//piece of the basis to work on. It returns false once every sub-loop
//is terminal. The optimizer core and the evaluator are injected by
//the driver, never owned by a strategy.
type Strategy interface {
	Name() string

	//Initialise prepares the strategy for the element and installs
	//the starting shells into b.
	Initialise(b basisopt.Basis, element string) error

	//Active returns the parameter vector currently being optimized.
	Active(b basisopt.Basis, element string) []float64

	//SetActive installs a trial parameter vector into the basis.
	//A Domain-kind error marks the trial infeasible.
	SetActive(x []float64, b basisopt.Basis, element string) error

	//Next moves the state machine forward given the objective value
	//achieved since the last call. It returns false when the
	//strategy is done.
	Next(b basisopt.Basis, element string, objective float64) (bool, error)

	//Outcome is Running until Next has returned false.
	Outcome() Outcome

	//Report returns the per-shell outcomes.
	Report() []ShellReport
}
