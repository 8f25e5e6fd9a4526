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
	"reflect"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

//T is compatible with builtin testing.T
type T interface {
	Errorf(format string, args ...interface{})
	Fatalf(format string, args ...interface{})
	Logf(format string, args ...interface{})
	Helper()
}

/*
A Stub is an object that can substitute for a concrete implementation of an interface.

Every call made through the interface's methods is sent to Invoke, which either records the call
(after SetMock) or resolves it to the values configured for the same call signature.

A Stub owns exactly one Registry and one Recorder, so stubs never see each other's configuration.
*/
type Stub struct {
	t                   T
	id                  uuid.UUID
	forInterface        reflect.Type
	methods             map[string]*method
	registry            *Registry
	recorder            *Recorder
	formatter           ArgFormatter
	defaultReturnValues func(Method) ReturnValues
	log                 zerolog.Logger
}

/*
NewStub Constructor for Stub called by specific implementations of stubs.

forInterface is expected to be the nil implementation of an interface - (*Iface)(nil)

configurators are used to configure tracing, argument formatting and the absence value for unconfigured calls
*/
func NewStub(t T, forInterface interface{}, configurators ...func(*Stub)) *Stub {
	t.Helper()
	stubFor := reflect.TypeOf(forInterface)

	if stubFor == nil || stubFor.Kind() != reflect.Ptr || stubFor.Elem().Kind() != reflect.Interface {
		t.Fatalf("Expecting '%v' to be a pointer to nil interface", forInterface)
		return nil
	}
	stubFor = stubFor.Elem()

	registry := NewRegistry()
	stub := &Stub{
		t:            t,
		id:           uuid.New(),
		forInterface: stubFor,
		methods:      make(map[string]*method, stubFor.NumMethod()),
		registry:     registry,
		recorder:     NewRecorder(registry),
		formatter:    TextFormatter{},
		defaultReturnValues: func(m Method) ReturnValues {
			return ZeroValues(m.Reflect().Type)
		},
		log: zerolog.Nop(),
	}

	for i := 0; i < stubFor.NumMethod(); i++ {
		m := stubFor.Method(i)
		stub.methods[m.Name] = newMethod(stub, m)
	}

	for _, c := range configurators {
		c(stub)
	}

	if stub.formatter == nil {
		t.Fatalf("%v needs an ArgFormatter, SetFormatter(nil) is not allowed", stub)
	}

	return stub
}

// Enable tracing of all received method calls (via T.Logf)
func (s *Stub) EnableTrace() {
	output := zerolog.ConsoleWriter{
		Out:          logfWriter{s.t},
		NoColor:      true,
		PartsExclude: []string{zerolog.TimestampFieldName},
	}
	s.SetLogger(zerolog.New(output).Level(zerolog.DebugLevel))
}

// SetLogger replaces the logger that traces received method calls.
// The stub's identity is added to every event as the "stub" field.
func (s *Stub) SetLogger(logger zerolog.Logger) {
	s.log = logger.With().Str("stub", s.String()).Logger()
}

/*
SetFormatter replaces the ArgFormatter used to build call signatures.

Must be configured before any call is configured, since existing signatures are not rebuilt.
*/
func (s *Stub) SetFormatter(f ArgFormatter) {
	s.formatter = f
}

/*
	SetDefaultReturnValues allows a caller to provide a function to generate the absence value
	for calls that were not configured with MockReturnValue.
	The default is to use zeroed values via reflection.
*/
func (s *Stub) SetDefaultReturnValues(defaultReturns func(Method) ReturnValues) {
	s.defaultReturnValues = defaultReturns
}

func (s *Stub) String() string {
	return fmt.Sprintf("StubFor(%v)#%s", s.forInterface, strings.SplitN(s.id.String(), "-", 2)[0])
}

func (s *Stub) T() T {
	return s.t
}

// ID is the identity of this stub, which does not change as calls are configured
func (s *Stub) ID() uuid.UUID {
	return s.id
}

// Mode is the current mode of the stub's Recorder
func (s *Stub) Mode() Mode {
	return s.recorder.Mode()
}

//Invoke is called by specialised stub implementations for every call made through the interface.
//
// While recording it records the call and returns zero values. Otherwise it returns the values
// configured for the call, or the absence value.
func (s *Stub) Invoke(methodName string, args ...interface{}) []interface{} {
	s.t.Helper()

	m, found := s.methods[methodName]
	if !found {
		s.t.Fatalf("Unexpected call to unknown method %v.%s", s, methodName)
		return nil
	}
	return m.invoke(args)
}

// Lookup returns the values configured for methodName called with args, without invoking it.
//
// Arguments are given as they would be to the method itself: an untyped nil argument is given the type of
// its parameter, and the trailing arguments of a variadic method may be listed individually or passed as
// the variadic slice.
func (s *Stub) Lookup(methodName string, args ...interface{}) (values []interface{}, found bool) {
	s.t.Helper()
	m, known := s.methods[methodName]
	if !known {
		s.t.Fatalf("Cannot lookup non existent method %s for %v", methodName, s)
		return nil, false
	}
	return s.registry.Get(m.signature(m.typedArgs(args)))
}

// Configured reports whether methodName called with args has configured values
func (s *Stub) Configured(methodName string, args ...interface{}) bool {
	s.t.Helper()
	_, found := s.Lookup(methodName, args...)
	return found
}

// Signatures lists the configured call signatures, sorted
func (s *Stub) Signatures() []Signature {
	return s.registry.Signatures()
}

type logfWriter struct {
	t T
}

func (w logfWriter) Write(p []byte) (int, error) {
	w.t.Logf("%s", strings.TrimRight(string(p), "\n"))
	return len(p), nil
}
