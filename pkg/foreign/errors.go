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

package foreign

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a class or member could not be resolved by any strategy.
	ErrNotFound = errors.New("not found")
	// ErrInvocationFault marks every failure raised while calling into the foreign runtime.
	ErrInvocationFault = errors.New("invocation fault")
	// ErrIllegalAccess is returned when a non-public member is invoked without forcing access.
	ErrIllegalAccess = errors.New("illegal access")
	// ErrArgumentMismatch is returned when a receiver or argument does not fit the member.
	ErrArgumentMismatch = errors.New("argument mismatch")
	// ErrNilReceiver is returned when an instance member is invoked without a receiver.
	ErrNilReceiver = errors.New("nil receiver")
)

// InvocationError reports a failed call into the foreign runtime. It matches
// ErrInvocationFault under errors.Is and unwraps to the underlying cause.
type InvocationError struct {
	Member string
	Err    error
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("invoke %s: %v", e.Member, e.Err)
}

func (e *InvocationError) Unwrap() error {
	return e.Err
}

// Is makes every InvocationError match ErrInvocationFault.
func (*InvocationError) Is(target error) bool {
	return target == ErrInvocationFault
}

// NewInvocationError wraps err for the given member signature.
func NewInvocationError(member string, err error) *InvocationError {
	return &InvocationError{Member: member, Err: err}
}
