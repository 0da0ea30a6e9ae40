/*
 * show.go, part of basisopt.
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

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/robashaw/basisopt"
)

var showCmd = &cobra.Command{
	Use:   "show <basis.json[.gz]>",
	Short: "Print the contents of a basis file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := basisopt.LoadBasis(args[0])
		if err != nil {
			return err
		}
		for _, el := range b.Elements() {
			fmt.Println(el)
			for _, sh := range b.Shells(el) {
				fmt.Printf("  %s (%d primitives):", sh.L, sh.NExps())
				for _, e := range sh.Exps {
					fmt.Printf(" %.6g", e)
				}
				fmt.Println()
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
