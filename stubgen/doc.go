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
Package stubgen generates mockprovider stubs for an interface.

The generated double embeds *mockprovider.Stub and has one forwarding method for each method of the
interface, so every call is routed through Stub.Invoke. It also shadows SetMock to return the double.

Generation is usually driven from a small program behind a build tag, run by go:generate

 // +build stubgen

 package main

 func main() {
	f, _ := os.Create("todo_double_test.go")
	defer f.Close()
	stubgen.NewGenerator((*examples.TodoService)(nil)).Generate(f)
 }
*/
package stubgen
