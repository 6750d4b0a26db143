/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/carverauto/headsetbridge/pkg/models"
	"github.com/carverauto/headsetbridge/pkg/natsutil"
)

const (
	defaultNATSURL = "nats://127.0.0.1:4222"
	defaultWait    = 5 * time.Second
	defaultLogs    = 20
)

var (
	errUsage       = errors.New("usage")
	errMissingMode = errors.New("send needs a mode")
)

// CmdConfig holds the parsed command line.
type CmdConfig struct {
	SubCmd  string
	Help    bool
	NATS    models.NATSConfig
	Package string
	Target  string
	Wait    time.Duration
	Mode    models.Mode
	Count   int
	Stream  string
	Debug   bool
}

// SubcommandHandler parses the flags of one subcommand.
type SubcommandHandler interface {
	Parse(args []string, cfg *CmdConfig) error
}

type sendHandler struct{}

type statusHandler struct{}

type logsHandler struct{}

type watchHandler struct{}

func newFlagSet(name string, cfg *CmdConfig) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.NATS.URL, "nats", defaultNATSURL, "NATS server URL")
	fs.StringVar(&cfg.NATS.SubjectPrefix, "prefix", natsutil.DefaultSubjectPrefix, "subject prefix")
	fs.StringVar(&cfg.NATS.CredsFile, "creds", "", "NATS user credentials file")
	fs.StringVar(&cfg.NATS.NKeySeedFile, "nkey", "", "NATS nkey seed file")
	fs.StringVar(&cfg.Package, "package", models.PackageSystemUI, "package broadcasts are addressed to")
	fs.StringVar(&cfg.Target, "target", models.PackageHeadsetApp, "package commands are addressed to")
	fs.DurationVar(&cfg.Wait, "wait", defaultWait, "how long to wait for telemetry")
	fs.BoolVar(&cfg.Debug, "debug", false, "log protocol traffic to stderr")

	return fs
}

func (sendHandler) Parse(args []string, cfg *CmdConfig) error {
	fs := newFlagSet("send", cfg)

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}

	if fs.NArg() != 1 {
		return fmt.Errorf("%w: %w", errUsage, errMissingMode)
	}

	mode, err := models.ParseMode(fs.Arg(0))
	if err != nil {
		return err
	}

	cfg.Mode = mode

	return nil
}

func (statusHandler) Parse(args []string, cfg *CmdConfig) error {
	return parsePlain("status", args, cfg)
}

func (logsHandler) Parse(args []string, cfg *CmdConfig) error {
	fs := newFlagSet("logs", cfg)
	fs.IntVar(&cfg.Count, "n", defaultLogs, "number of lines")
	fs.StringVar(&cfg.Stream, "stream", natsutil.DefaultLogStream, "JetStream stream holding diagnostics")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}

	return nil
}

func (watchHandler) Parse(args []string, cfg *CmdConfig) error {
	return parsePlain("watch", args, cfg)
}

func parsePlain(name string, args []string, cfg *CmdConfig) error {
	fs := newFlagSet(name, cfg)

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}

	if fs.NArg() > 0 {
		return fmt.Errorf("%w: unexpected argument %q", errUsage, fs.Arg(0))
	}

	return nil
}

// parseArgs picks the subcommand from args[0] and parses its flags.
func parseArgs(args []string) (*CmdConfig, error) {
	cfg := &CmdConfig{}

	if len(args) == 0 {
		return nil, errUsage
	}

	cfg.SubCmd = args[0]

	switch cfg.SubCmd {
	case "help", "-h", "-help", "--help":
		cfg.Help = true
		return cfg, nil
	case "version":
		return cfg, nil
	}

	subcommands := map[string]SubcommandHandler{
		"send":   sendHandler{},
		"status": statusHandler{},
		"logs":   logsHandler{},
		"watch":  watchHandler{},
	}

	handler, ok := subcommands[cfg.SubCmd]
	if !ok {
		return nil, fmt.Errorf("%w: unknown command %q", errUsage, cfg.SubCmd)
	}

	if err := handler.Parse(args[1:], cfg); err != nil {
		return nil, err
	}

	cfg.NATS.Name = "ancctl"

	return cfg, cfg.NATS.Validate()
}
