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

// Command ancctl is the control surface for the headset bridge: it switches
// noise control modes and shows live battery levels.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/carverauto/headsetbridge/pkg/version"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, errUsage) {
			showHelp()
			os.Exit(2)
		}

		log.Fatalf("Error: %v", err)
	}
}

func run(args []string) error {
	cfg, err := parseArgs(args)
	if err != nil {
		return err
	}

	if cfg.Help {
		showHelp()
		return nil
	}

	if cfg.SubCmd == "version" {
		fmt.Println(version.GetFullVersion())
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch cfg.SubCmd {
	case "send":
		return runSend(ctx, cfg)
	case "status":
		return runStatus(ctx, cfg)
	case "logs":
		return runLogs(ctx, cfg)
	case "watch":
		return runWatch(ctx, cfg)
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, cfg.SubCmd)
	}
}

func showHelp() {
	fmt.Fprint(os.Stderr, `Usage: ancctl <command> [flags]

Commands:
  send <mode>   switch noise control: off, transparency, strong-anc or a number
  status        print battery levels and the headset address
  logs          print recent bridge diagnostics (needs the log stream)
  watch         interactive view with live battery levels
  version       print the version

Common flags:
  -nats URL         NATS server (default nats://127.0.0.1:4222)
  -prefix PREFIX    subject prefix (default headset)
  -creds FILE       NATS user credentials
  -nkey FILE        NATS nkey seed
  -package PKG      package the broadcasts are addressed to
  -target PKG       package commands are addressed to
  -wait DURATION    how long send and status wait for telemetry (default 5s)
`)
}
