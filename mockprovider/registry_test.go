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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Get(t *testing.T) {
	r := NewRegistry()
	todos := []string{"milk", "eggs"}
	r.Put(Serialize("GetTodos"), []interface{}{todos})
	r.Put(Serialize("Find", "nothing"), []interface{}{nil})

	values, found := r.Get(Serialize("GetTodos"))
	require.True(t, found)
	assert.Equal(t, []interface{}{todos}, values)

	values, found = r.Get(Serialize("Find", "nothing"))
	assert.True(t, found, "configured nil is found")
	assert.Equal(t, []interface{}{nil}, values)

	values, found = r.Get(Serialize("Find", "something"))
	assert.False(t, found)
	assert.Nil(t, values)
}

func TestRegistry_PutReplaces(t *testing.T) {
	r := NewRegistry()
	sig := Serialize("AddTodo", "milk")
	r.Put(sig, []interface{}{false})
	r.Put(sig, []interface{}{true})

	values, _ := r.Get(sig)
	assert.Equal(t, []interface{}{true}, values)
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_CopiesValues(t *testing.T) {
	r := NewRegistry()
	sig := Serialize("f")
	values := []interface{}{1}
	r.Put(sig, values)
	values[0] = 2

	got, _ := r.Get(sig)
	assert.Equal(t, []interface{}{1}, got)
	got[0] = 3

	again, _ := r.Get(sig)
	assert.Equal(t, []interface{}{1}, again)
}

func TestRegistry_Signatures(t *testing.T) {
	r := NewRegistry()
	assert.Empty(t, r.Signatures())

	r.Put(Serialize("b"), nil)
	r.Put(Serialize("a", 1), nil)
	r.Put(Serialize("a"), nil)

	assert.Equal(t, []Signature{"a()", "a(int(1))", "b()"}, r.Signatures())
}
