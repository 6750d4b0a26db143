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

package natsutil

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/nats-io/jwt/v2"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nkeys"

	"github.com/carverauto/headsetbridge/pkg/logger"
	"github.com/carverauto/headsetbridge/pkg/models"
)

var (
	ErrCredsExpired   = errors.New("nats user credentials expired")
	errNotUserKey     = errors.New("nkey seed is not a user key")
	errNotUserCredJWT = errors.New("creds file does not hold a user JWT")
)

// authOptions turns the credential settings of cfg into connect options. A
// creds file is inspected up front so an expired JWT fails fast instead of
// looping through reconnects.
func authOptions(cfg *models.NATSConfig, log logger.Logger, now time.Time) ([]nats.Option, error) {
	switch {
	case cfg.CredsFile != "":
		claims, err := userClaims(cfg.CredsFile)
		if err != nil {
			return nil, err
		}

		if claims.Expires > 0 && now.Unix() >= claims.Expires {
			return nil, fmt.Errorf("%w: %s expired at %s", ErrCredsExpired, claims.Name,
				time.Unix(claims.Expires, 0).UTC().Format(time.RFC3339))
		}

		log.Debug().
			Str("user", claims.Name).
			Str("issuer", claims.Issuer).
			Msg("using NATS user credentials")

		return []nats.Option{nats.UserCredentials(cfg.CredsFile)}, nil
	case cfg.NKeySeedFile != "":
		kp, err := userKey(cfg.NKeySeedFile)
		if err != nil {
			return nil, err
		}

		pub, err := kp.PublicKey()
		if err != nil {
			return nil, fmt.Errorf("nkey public key: %w", err)
		}

		return []nats.Option{nats.Nkey(pub, kp.Sign)}, nil
	default:
		return nil, nil
	}
}

func userClaims(path string) (*jwt.UserClaims, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read creds file: %w", err)
	}

	token, err := jwt.ParseDecoratedJWT(data)
	if err != nil {
		return nil, fmt.Errorf("parse creds file: %w", err)
	}

	claims, err := jwt.DecodeUserClaims(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errNotUserCredJWT, err)
	}

	return claims, nil
}

func userKey(path string) (nkeys.KeyPair, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read nkey seed: %w", err)
	}

	kp, err := nkeys.ParseDecoratedNKey(data)
	if err != nil {
		return nil, fmt.Errorf("parse nkey seed: %w", err)
	}

	seed, err := kp.Seed()
	if err != nil {
		return nil, fmt.Errorf("nkey seed: %w", err)
	}

	prefix, _, err := nkeys.DecodeSeed(seed)
	if err != nil || prefix != nkeys.PrefixByteUser {
		return nil, errNotUserKey
	}

	return kp, nil
}
