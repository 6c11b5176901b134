/*
 * MIT License
 *
 * Copyright (c) 2022-2025  Arsene Tochemey Gandote
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/multierr"

	"github.com/tochemey/gomailbox/internal/bench"
	"github.com/tochemey/gomailbox/log"
)

func newRunCommand() *cobra.Command {
	defaults := bench.Default()
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the benchmark",
		RunE:  run,
	}

	flags := cmd.Flags()
	flags.Int("producers", defaults.Producers, "number of producers")
	flags.Int("consumers", defaults.Consumers, "number of consumers")
	flags.Int("messages", defaults.Messages, "number of messages posted by each producer")
	flags.Duration("receive-timeout", defaults.ReceiveTimeout, "timeout of a single receive")
	flags.Int("retries", defaults.Retries, "attempts of a timed out receive")
	flags.String("monitor", defaults.Monitor, "pending receive monitor: timer or sweep")
	flags.Duration("sweep-interval", defaults.SweepInterval, "interval of the sweep monitor")
	flags.String("log-level", defaults.LogLevel, "log level: debug, info, warn, error")

	for key, flag := range map[string]string{
		"producers":       "producers",
		"consumers":       "consumers",
		"messages":        "messages",
		"receive_timeout": "receive-timeout",
		"retries":         "retries",
		"monitor":         "monitor",
		"sweep_interval":  "sweep-interval",
		"log_level":       "log-level",
	} {
		_ = viper.BindPFlag(key, flags.Lookup(flag))
	}
	return cmd
}

func run(cmd *cobra.Command, _ []string) (err error) {
	bench.SetDefaults(viper.GetViper())
	cfg, err := bench.Load(viper.GetViper())
	if err != nil {
		return err
	}

	logger := log.NewZap(log.ParseLevel(cfg.LogLevel), os.Stdout)
	defer func() {
		err = multierr.Append(err, logger.Flush())
	}()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, err := bench.NewRunner(cfg, logger).Run(ctx)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), report)
	return err
}
