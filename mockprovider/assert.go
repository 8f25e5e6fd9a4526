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
	"reflect"
)

//AssertMethodReturnValues fatally fails test t unless returnValues are compatible with method
//
// nil is accepted for results of any type that can be nil
func AssertMethodReturnValues(t T, method reflect.Method, returnValues []interface{}) bool {
	t.Helper()
	returnTypes := make([]reflect.Type, len(returnValues))
	for i, v := range returnValues {
		returnTypes[i] = reflect.TypeOf(v)
	}
	return AssertMethodReturnTypes(t, method, returnTypes)
}

//AssertMethodReturnTypes fatally fails test t unless returnTypes are compatible with method m's return types
//
// A nil entry in returnTypes stands for an untyped nil value
func AssertMethodReturnTypes(t T, m reflect.Method, returnTypes []reflect.Type) bool {
	t.Helper()
	if m.Type.NumOut() != len(returnTypes) {
		t.Fatalf("%s%v expects to have %d return values, found %d", m.Name, signatureOf(m), m.Type.NumOut(), len(returnTypes))
		return false
	}

	for i, out := range returnTypes {
		mType := m.Type.Out(i)
		if out == nil {
			if !nillable(mType) {
				t.Fatalf("%s%v cannot return nil for return value %d of type %v", m.Name, signatureOf(m), i, mType)
				return false
			}
		} else if !out.AssignableTo(mType) {
			t.Fatalf("%s%v expects return value %d to be assignable to %v, got %v", m.Name, signatureOf(m), i, mType, out)
			return false
		}
	}
	return true
}

func nillable(rt reflect.Type) bool {
	switch rt.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Ptr, reflect.Slice:
		return true
	}
	return false
}

// signatureOf drops the leading "func" from an interface method's type
func signatureOf(m reflect.Method) string {
	return m.Type.String()[len("func"):]
}
