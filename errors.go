/*
 * errors.go, part of basisopt.
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

package basisopt

import "fmt"

//Kind classifies the errors this library produces. Callers that need
//to react differently to, say, a bad option versus a crashed external
//program should switch on KindOf rather than parse messages.
type Kind int

const (
	//KindConfiguration: the run cannot start. Unusable evaluator,
	//unrecognized option, invalid bounds.
	KindConfiguration Kind = iota + 1
	//KindDomain: parameters would generate non-positive or non-finite
	//exponents. The current optimizer trial is infeasible, nothing more.
	KindDomain
	//KindEvaluator: the external program failed or returned garbage.
	//Aborts the strategy iteration, no retry.
	KindEvaluator
	//KindParse: malformed persisted basis data.
	KindParse
)

func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindDomain:
		return "domain"
	case KindEvaluator:
		return "evaluator"
	case KindParse:
		return "parse"
	}
	return "unknown"
}

//Error is the concrete error type for the whole library. The Decorate
//method allows adding caller information as the error travels up,
//without wrapping it in another type.
type Error struct {
	kind    Kind
	message string
	deco    []string
}

//NewError builds an Error of the given kind. callers, if given, seed
//the decoration trail.
func NewError(kind Kind, message string, callers ...string) *Error {
	return &Error{kind: kind, message: message, deco: callers}
}

func (err *Error) Error() string {
	return fmt.Sprintf("basisopt: %s error: %s", err.kind, err.message)
}

//Kind returns the error classification.
func (err *Error) Kind() Kind {
	return err.kind
}

//Decorate adds dec to the decoration trail and returns the resulting
//slice. An empty string just returns the current trail.
func (err *Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//KindOf returns the Kind of an error produced by this library, or 0
//for a nil or foreign error.
func KindOf(err error) Kind {
	if err == nil {
		return 0
	}
	if e, ok := err.(*Error); ok {
		return e.kind
	}
	return 0
}

//errDecorate asserts that err is a *basisopt.Error and decorates it
//with the caller's name before returning it. Foreign errors are
//returned untouched.
func errDecorate(err error, caller string) error {
	if e, ok := err.(*Error); ok {
		e.Decorate(caller)
		return e
	}
	return err
}
