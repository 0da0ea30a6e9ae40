/*
 * doc.go, part of basisopt.
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
 */

/*Package basisopt automates the construction and refinement of Gaussian
basis sets for quantum chemistry calculations.


	**Capabilities**


    Holds basis sets as ordered angular-momentum shells of primitive
	exponents with contraction coefficients, validated at every
	mutation boundary.

    Expands even-tempered and well-tempered parameter vectors into
	explicit exponent lists.

    Reads and writes bases as JSON documents keyed by element symbol,
	optionally gzip-compressed, with a round-trip guarantee.

    Optimizes expansion parameters against any external energy code
	implementing the small evaluator contract in the qm subpackage
	(a Nelder-Mead simplex search from gonum drives the parameters;
	the growth and pruning state machines live in the opt subpackage).

    Grows even- and well-tempered expansions shell by shell until a
	target accuracy against a reference value is reached, and prunes
	near-saturated bases down to a target composition while bounding
	the energetic cost of each removal.

    Plots exponent distributions of several bases side by side for
	comparison (viz subpackage, uses gonum/plot).

This root package holds the containers, the expansions and the
persistence format; it depends on nothing else in the module, so an
external evaluator adapter only needs this package to exchange bases.*/
package basisopt
