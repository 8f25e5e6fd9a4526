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

// ReturnValues generate the absence value for intercepted calls that have no configured values
type ReturnValues interface {

	//Receive is called for each unconfigured call
	Receive() []interface{}
}

type reflectZeroReturnValues []reflect.Type

func (zv reflectZeroReturnValues) Receive() []interface{} {
	if len(zv) == 0 {
		return nil
	}
	results := make([]interface{}, len(zv))
	for i := 0; i < len(zv); i++ {
		results[i] = reflect.Zero(zv[i]).Interface()
	}
	return results
}

// ZeroValues repeatedly returns the zeroed values for the given methodType
func ZeroValues(methodType reflect.Type) ReturnValues {
	if methodType.NumOut() == 0 {
		return reflectZeroReturnValues(nil)
	}
	results := make([]reflect.Type, methodType.NumOut())
	for i := 0; i < methodType.NumOut(); i++ {
		results[i] = methodType.Out(i)
	}
	return reflectZeroReturnValues(results)
}

type fixedReturnValues []interface{}

func (v fixedReturnValues) Receive() []interface{} {
	if len(v) == 0 {
		return nil
	}
	results := make([]interface{}, len(v))
	copy(results, v)
	return results
}

// Values repeatedly returns a fixed set of values
func Values(values ...interface{}) ReturnValues {
	return fixedReturnValues(values)
}
