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

// Package natsutil carries headset broadcasts over NATS. Every broadcast is
// addressed to a package and tagged with an action, and lands on the subject
// <prefix>.<package>.<action> with dots inside the package and action replaced
// by underscores.
package natsutil

import (
	"strings"
)

// DefaultSubjectPrefix is used when no prefix is configured.
const DefaultSubjectPrefix = "headset"

var tokenReplacer = strings.NewReplacer(".", "_", " ", "_", "*", "_", ">", "_")

// Subject returns the subject a broadcast for action addressed to pkg is
// published on. An empty pkg becomes the wildcard token.
func Subject(prefix, pkg, action string) string {
	if prefix == "" {
		prefix = DefaultSubjectPrefix
	}

	target := "*"
	if pkg != "" {
		target = token(pkg)
	}

	return prefix + "." + target + "." + token(action)
}

func token(s string) string {
	return tokenReplacer.Replace(s)
}
