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
)

// Method describes an interface method intercepted by a Stub.
//
// It is passed to the function configured with SetDefaultReturnValues.
type Method interface {
	Name() string
	Reflect() reflect.Method
}

type method struct {
	receiver *Stub
	m        reflect.Method
}

func newMethod(s *Stub, m reflect.Method) *method {
	return &method{s, m}
}

func (m *method) t() T {
	return m.receiver.t
}

func (m *method) Name() string {
	return m.m.Name
}

func (m *method) Reflect() reflect.Method {
	return m.m
}

func (m *method) String() string {
	return fmt.Sprintf("%v.%s", m.receiver, m.m.Name)
}

func (m *method) signature(args []interface{}) Signature {
	return SerializeWith(m.receiver.formatter, m.m.Name, args...)
}

// typedArgs converts args to the values a forwarding method would pass to Invoke.
//
// Untyped nil arguments are given the type of their (non interface) parameter. Trailing arguments of a
// variadic method are packed into the variadic slice, unless the final argument is already that slice
// (or nil).
func (m *method) typedArgs(args []interface{}) []interface{} {
	mt := m.m.Type
	if mt.IsVariadic() {
		args = packVariadic(mt, args)
	}
	typed := make([]interface{}, len(args))
	for i, arg := range args {
		typed[i] = arg
		if arg == nil && i < mt.NumIn() {
			if in := mt.In(i); in.Kind() != reflect.Interface {
				typed[i] = reflect.Zero(in).Interface()
			}
		}
	}
	return typed
}

func packVariadic(mt reflect.Type, args []interface{}) []interface{} {
	last := mt.NumIn() - 1
	sliceType := mt.In(last)

	switch {
	case len(args) < last:
		return args
	case len(args) == last:
		//a forwarding method passes a nil slice when no variadic arguments are given
		return append(append(make([]interface{}, 0, last+1), args...), reflect.Zero(sliceType).Interface())
	case len(args) == last+1 && (args[last] == nil || reflect.TypeOf(args[last]).AssignableTo(sliceType)):
		return args
	}

	elem := sliceType.Elem()
	packed := reflect.MakeSlice(sliceType, 0, len(args)-last)
	for _, arg := range args[last:] {
		var v reflect.Value
		switch {
		case arg == nil && nillable(elem):
			v = reflect.Zero(elem)
		case arg != nil && reflect.TypeOf(arg).AssignableTo(elem):
			v = reflect.ValueOf(arg)
		default:
			//cannot be a call to this method, leave the signature as given
			return args
		}
		packed = reflect.Append(packed, v)
	}
	return append(append(make([]interface{}, 0, last+1), args[:last]...), packed.Interface())
}

func (m *method) invoke(args []interface{}) []interface{} {
	m.t().Helper()
	sig := m.signature(m.typedArgs(args))

	if m.receiver.recorder.Observe(Call{Method: m.m.Name, Signature: sig}) {
		m.receiver.log.Debug().
			Str("method", m.m.Name).
			Str("signature", string(sig)).
			Stringer("mode", Recording).
			Msg("recorded call")
		//Placeholder for the caller to discard, the configured values arrive via MockReturnValue
		return ZeroValues(m.m.Type).Receive()
	}

	if values, found := m.receiver.registry.Get(sig); found {
		m.receiver.log.Debug().
			Str("method", m.m.Name).
			Str("signature", string(sig)).
			Stringer("mode", Idle).
			Bool("found", true).
			Msg("resolved call")
		return values
	}

	returns := m.receiver.defaultReturnValues(m).Receive()
	m.receiver.log.Debug().
		Str("method", m.m.Name).
		Str("signature", string(sig)).
		Stringer("mode", Idle).
		Bool("found", false).
		Msg("unconfigured call")
	AssertMethodReturnValues(m.t(), m.m, returns)
	return returns
}
