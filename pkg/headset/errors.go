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

package headset

import "errors"

var (
	// ErrNoSingleton is returned when no control object was cached at dispatch time.
	ErrNoSingleton = errors.New("control singleton unavailable")
	// ErrNoIdentity is returned when no device address has been observed yet.
	ErrNoIdentity = errors.New("device address unknown")
	// ErrNotLoaded is returned by operations that need HandleLoad to have activated the module.
	ErrNotLoaded = errors.New("module not loaded")
	// ErrNilRuntime is logged when HandleLoad sees the target process without a foreign runtime.
	ErrNilRuntime = errors.New("nil foreign runtime")

	errInvalidConfig = errors.New("invalid headset configuration")
)
