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

/*
Package mockprovider is a record/replay Stub framework for Go.

A Stub stands in for a concrete implementation of an interface during tests. Return values are
configured by making the call itself on the stub while it is recording, so the "arrange" step uses the
same method surface as the code under test.

Stubs

A Stub is created for an interface from its nil pointer, and is wrapped by a double type with one
forwarding method per interface method. Each forwarding method sends its arguments to Stub.Invoke.
Double types are usually generated with the stubgen package.

 package examples

 import (
	. "github.com/lwoggardner/mockprovider/mockprovider" //Note the dot import which assists with readability
	"testing"
 )

 func Test_Stub(t *testing.T) {
	d := NewTodoServiceDouble(t) // A generated double for the TodoService interface

	// SetMock() starts recording, the next call is the call being configured
	d.MockReturnValue(d.SetMock().GetTodos(), []Todo{{Title: "milk"}, {Title: "eggs"}})

	// Methods with no results, or more than one, are configured in two statements
	d.SetMock().Complete(1)
	d.Return(Todo{Title: "milk", Done: true}, nil)

	// Exercise the system under test substituting d for the real service
	// ...
 }

Call signatures

A call is identified by its method name and the formatted list of its arguments, see Serialize.
Calls that were never configured return the absence value, by default the zero values of the method's
results. Use Configured or Lookup to tell an unconfigured call apart from one configured to return nil.

Recording

SetMock must be called immediately before the single call being configured. The last call made on the
stub before MockReturnValue is the one that is configured. Calling MockReturnValue without a recorded
call, or calling SetMock again after a call has already been recorded, fatally fails the test.

A Stub is not safe for concurrent use; parallel tests must each create their own.
*/
package mockprovider
