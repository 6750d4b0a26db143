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

package models

import (
	"errors"
	"fmt"
	"strings"
)

var (
	errNATSURLRequired     = errors.New("nats url is required")
	errNATSPrefixInvalid   = errors.New("nats subject prefix must not contain wildcards or spaces")
	errUnknownSecurityMode = errors.New("unknown security mode")
	errNATSAuthConflict    = errors.New("nats creds_file and nkey_seed_file are mutually exclusive")
)

// NATSConfig configures NATS connectivity
type NATSConfig struct {
	URL string `json:"url" yaml:"url"`
	// SubjectPrefix is prepended to every broadcast subject.
	SubjectPrefix string          `json:"subject_prefix,omitempty" yaml:"subject_prefix,omitempty"`
	Name          string          `json:"name,omitempty" yaml:"name,omitempty"`
	Security      *SecurityConfig `json:"security,omitempty" yaml:"security,omitempty"`
	CredsFile     string          `json:"creds_file,omitempty" yaml:"creds_file,omitempty"`
	NKeySeedFile  string          `json:"nkey_seed_file,omitempty" yaml:"nkey_seed_file,omitempty"`
}

// Validate ensures the NATS configuration is valid
func (c *NATSConfig) Validate() error {
	if c.URL == "" {
		return errNATSURLRequired
	}

	if strings.ContainsAny(c.SubjectPrefix, "*> \t") {
		return fmt.Errorf("%w: %q", errNATSPrefixInvalid, c.SubjectPrefix)
	}

	if c.CredsFile != "" && c.NKeySeedFile != "" {
		return errNATSAuthConflict
	}

	if c.Security != nil {
		switch c.Security.Mode {
		case SecurityModeNone, SecurityModeMTLS:
		default:
			return fmt.Errorf("%w: %q", errUnknownSecurityMode, c.Security.Mode)
		}
	}

	return nil
}

type TLSConfig struct {
	CertFile     string `json:"cert_file" yaml:"cert_file"`
	KeyFile      string `json:"key_file" yaml:"key_file"`
	CAFile       string `json:"ca_file" yaml:"ca_file"`
	ClientCAFile string `json:"client_ca_file,omitempty" yaml:"client_ca_file,omitempty"`
}

// SecurityConfig holds common security configuration.
type SecurityConfig struct {
	Mode       SecurityMode `json:"mode" yaml:"mode"`
	CertDir    string       `json:"cert_dir" yaml:"cert_dir"`
	ServerName string       `json:"server_name,omitempty" yaml:"server_name,omitempty"`
	TLS        TLSConfig    `json:"tls" yaml:"tls"`
}

// SecurityMode defines the type of security to use.
type SecurityMode string

const (
	SecurityModeNone SecurityMode = "none"
	SecurityModeMTLS SecurityMode = "mtls"
)
