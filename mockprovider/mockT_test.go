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
	"regexp"
	"testing"

	"github.com/stretchr/testify/mock"
)

// fatal is the panic raised by mockT.Fatalf to stop the code under test, as testing.T.Fatalf would
type fatal string

// mockT is a double of T for asserting on test failures raised by a Stub
type mockT struct {
	mock.Mock
}

func newMockT(t *testing.T) *mockT {
	mt := &mockT{}
	mt.Test(t)
	return mt
}

func (m *mockT) Errorf(format string, args ...interface{}) {
	m.Called(fmt.Sprintf(format, args...))
}

func (m *mockT) Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	m.Called(msg)
	panic(fatal(msg))
}

func (m *mockT) Logf(format string, args ...interface{}) {
	m.Called(fmt.Sprintf(format, args...))
}

func (m *mockT) Helper() {}

func assertMatch(t *testing.T, s interface{}, re string) {
	t.Helper()
	toMatch := fmt.Sprint(s)
	if matched, err := regexp.MatchString(re, toMatch); err != nil {
		t.Errorf("error %s trying to match /%s/ to %s", err.Error(), re, toMatch)
	} else if !matched {
		t.Errorf("expected %s to match /%s/", toMatch, re)
	}
}

// expectFatal runs f expecting it to call Fatalf once with a message matching re
func expectFatal(t *testing.T, mt *mockT, re string, f func()) {
	t.Helper()
	exp := regexp.MustCompile(re)
	mt.On("Fatalf", mock.MatchedBy(func(msg string) bool { return exp.MatchString(msg) })).Once()

	func() {
		defer func() {
			if r := recover(); r != nil {
				if _, isFatal := r.(fatal); !isFatal {
					panic(r)
				}
			}
		}()
		f()
		t.Errorf("Expect unreachable")
	}()

	mt.AssertExpectations(t)
}
