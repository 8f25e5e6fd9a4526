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

/*
SetMock starts recording. The next call made on the stub is the call being configured, and its results
are discarded.

Stub implementations shadow SetMock to return themselves, so the configured call chains naturally

  d.MockReturnValue(d.SetMock().GetTodos(), todos)

Calling SetMock again after a call has been recorded, without MockReturnValue in between, fatally fails the test.
*/
func (s *Stub) SetMock() *Stub {
	s.t.Helper()
	if err := s.recorder.Start(); err != nil {
		s.t.Fatalf("SetMock on %v: %v", s, err)
		return s
	}
	s.log.Debug().Stringer("mode", Recording).Msg("set mock")
	return s
}

/*
MockReturnValue configures values as the results of the last call recorded since SetMock.

placeholder is the result of that call, and is otherwise ignored. It only places the call between
SetMock and MockReturnValue.

The values must match the method's results, in number and type. The test fails fatally
if they do not, or if no call was recorded.
*/
func (s *Stub) MockReturnValue(placeholder interface{}, values ...interface{}) {
	s.t.Helper()
	s.commit(values)
}

/*
Return configures values as the results of the last call recorded since SetMock.

Use where the configured call cannot be passed to MockReturnValue, ie methods that return nothing,
or more than one value

  d.SetMock().Complete(1)
  d.Return(Todo{Title: "milk", Done: true}, nil)
*/
func (s *Stub) Return(values ...interface{}) {
	s.t.Helper()
	s.commit(values)
}

func (s *Stub) commit(values []interface{}) {
	s.t.Helper()
	if pending, ok := s.recorder.Pending(); ok {
		if !AssertMethodReturnValues(s.t, s.methods[pending.Method].m, values) {
			return
		}
	}

	call, err := s.recorder.Commit(values)
	if err != nil {
		s.t.Fatalf("MockReturnValue on %v: %v", s, err)
		return
	}
	s.log.Debug().
		Str("method", call.Method).
		Str("signature", string(call.Signature)).
		Interface("values", values).
		Msg("configured call")
}
