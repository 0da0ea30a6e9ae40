/*
 * main.go, part of basisopt.
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
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	logLevel string
	logger   *zap.SugaredLogger
)

var rootCmd = &cobra.Command{
	Use:   "basisopt",
	Short: "Gaussian basis set optimization",
	Long: `basisopt optimizes Gaussian basis sets for atoms: growing
even- and well-tempered expansions until an accuracy target is met,
and pruning existing sets down to the primitives that matter.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewDevelopmentConfig()
		var level zapcore.Level
		if err := level.Set(logLevel); err != nil {
			return fmt.Errorf("bad log level %q: %w", logLevel, err)
		}
		cfg.Level = zap.NewAtomicLevelAt(level)
		l, err := cfg.Build()
		if err != nil {
			return err
		}
		logger = l.Sugar()
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "basisopt: %v\n", err)
		os.Exit(1)
	}
}
