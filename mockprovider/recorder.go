/*
 * Copyright 2020 grant@lastweekend.com.au
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

package mockprovider

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrCommitWithoutRecording is returned when values are committed without a call recorded since Start
	ErrCommitWithoutRecording = errors.New("no call recorded to configure")

	// ErrAlreadyRecording is returned when recording is started again after a call has been recorded
	ErrAlreadyRecording = errors.New("already recording a call")
)

// Mode is the state of a Recorder
type Mode int

const (
	// Idle resolves intercepted calls against the Registry
	Idle Mode = iota
	// Recording captures the next intercepted call as the call to configure
	Recording
)

func (m Mode) String() string {
	switch m {
	case Idle:
		return "idle"
	case Recording:
		return "recording"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Call identifies an intercepted call
type Call struct {
	Method    string
	Signature Signature
}

/*
Recorder is the two phase state machine behind SetMock and MockReturnValue.

  Idle      --Start()-->        Recording  (pending call cleared)
  Recording --Observe(call)-->  Recording  (pending call replaced)
  Recording --Commit(values)--> Idle       (values stored for the pending call)

Observe in Idle does nothing, the caller resolves the call against the Registry instead.
The pending call is set only while Recording, and only after a call has been observed.
*/
type Recorder struct {
	registry *Registry
	mode     Mode
	pending  *Call
}

func NewRecorder(registry *Registry) *Recorder {
	return &Recorder{registry: registry, mode: Idle}
}

func (r *Recorder) Mode() Mode {
	return r.mode
}

func (r *Recorder) Recording() bool {
	return r.mode == Recording
}

// Pending returns the call recorded since Start, if any
func (r *Recorder) Pending() (call Call, ok bool) {
	if r.pending == nil {
		return Call{}, false
	}
	return *r.pending, true
}

// Start enters Recording.
//
// Starting again before any call is recorded is allowed. Starting again after a call has been
// recorded returns ErrAlreadyRecording and keeps the recorded call.
func (r *Recorder) Start() error {
	if r.mode == Recording && r.pending != nil {
		return errors.Wrapf(ErrAlreadyRecording, "%s is waiting for return values", r.pending.Signature)
	}
	r.mode = Recording
	r.pending = nil
	return nil
}

// Observe records call as the pending call if Recording, returning true.
// Returns false if Idle.
func (r *Recorder) Observe(call Call) bool {
	if r.mode != Recording {
		return false
	}
	r.pending = &call
	return true
}

// Commit stores values for the pending call and returns to Idle
func (r *Recorder) Commit(values []interface{}) (Call, error) {
	if r.mode != Recording {
		return Call{}, errors.Wrap(ErrCommitWithoutRecording, "SetMock was not called")
	}
	if r.pending == nil {
		return Call{}, errors.Wrap(ErrCommitWithoutRecording, "no call was made after SetMock")
	}
	call := *r.pending
	r.registry.Put(call.Signature, values)
	r.pending = nil
	r.mode = Idle
	return call, nil
}
