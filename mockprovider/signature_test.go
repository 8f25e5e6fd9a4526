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

type named string

type panickingStringer struct{}

func (p panickingStringer) String() string {
	panic("no string for you")
}

type emptyFormatter struct{}

func (emptyFormatter) FormatArg(interface{}) string {
	return ""
}

func TestSerialize(t *testing.T) {
	tests := []struct {
		name     string
		method   string
		args     []interface{}
		expected Signature
	}{
		{"NoArgs", "GetTodos", nil, `GetTodos()`},
		{"String", "AddTodo", []interface{}{"milk"}, `AddTodo("milk")`},
		{"EmptyString", "AddTodo", []interface{}{""}, `AddTodo("")`},
		{"Nil", "Find", []interface{}{nil}, `Find(nil)`},
		{"Ints", "pair", []interface{}{1, 2}, `pair(int(1), int(2))`},
		{"NamedString", "Get", []interface{}{named("id")}, `Get(mockprovider.named(id))`},
		{"Slice", "variadic", []interface{}{1, []string{"a", "b"}}, `variadic(int(1), []string([a b]))`},
		{"Struct", "pointer", []interface{}{record{Name: "x"}}, `pointer(mockprovider.record({Name:x Parent:<nil>}))`},
		{"Map", "m", []interface{}{map[string]int{"b": 2, "a": 1}}, `m(map[string]int(map[a:1 b:2]))`},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, Serialize(test.method, test.args...))
		})
	}
}

func TestSerialize_IsDeterministic(t *testing.T) {
	args := []interface{}{"a", 1, map[string]int{"z": 26, "a": 1, "m": 13}, &record{Name: "r"}}
	assert.Equal(t, Serialize("m", args...), Serialize("m", args...))
}

func TestSerialize_ArgumentOrderIsSignificant(t *testing.T) {
	assert.NotEqual(t, Serialize("f", 1, 2), Serialize("f", 2, 1))
}

func TestSerialize_DistinguishesTypes(t *testing.T) {
	assert.NotEqual(t, Serialize("f", 1), Serialize("f", "1"))
	assert.NotEqual(t, Serialize("f", 1), Serialize("f", int64(1)))
	assert.NotEqual(t, Serialize("f", nil), Serialize("f", "nil"))
}

func TestSerialize_NoArgsIsDistinctFromEmptyArg(t *testing.T) {
	assert.NotEqual(t, Serialize("f"), Serialize("f", ""))
	assert.NotEqual(t, SerializeWith(emptyFormatter{}, "f"), SerializeWith(emptyFormatter{}, "f", "anything"))
	assert.Equal(t, Signature("f(<empty>)"), SerializeWith(emptyFormatter{}, "f", "anything"))
}

func TestSerialize_DoesNotPanic(t *testing.T) {
	assert.NotPanics(t, func() {
		Serialize("f", panickingStringer{}, (*record)(nil), make(chan int), func() {})
	})
	assert.NotPanics(t, func() {
		SerializeWith(JSONFormatter{}, "f", panickingStringer{}, (*record)(nil), make(chan int), func() {})
	})

	loop := &record{Name: "loop"}
	loop.Parent = loop
	list := []interface{}{nil}
	list[0] = list
	index := map[string]interface{}{}
	index["self"] = index

	formatters := map[string]ArgFormatter{"Text": TextFormatter{}, "JSON": JSONFormatter{}}
	cycles := []struct {
		name string
		arg  interface{}
		want string
	}{
		{"SelfReferencingPointer", loop, `^\*mockprovider\.record\(<cycle 0x[0-9a-f]+>\)$`},
		{"SelfContainingSlice", list, `^\[\]interface \{\}\(<cycle 0x[0-9a-f]+>\)$`},
		{"SelfContainingMap", index, `^map\[string\]interface \{\}\(<cycle 0x[0-9a-f]+>\)$`},
		{"StructHoldingCycle", record{Name: "root", Parent: loop}, `^mockprovider\.record\(<cycle>\)$`},
	}
	for fName, f := range formatters {
		for _, tc := range cycles {
			t.Run(fName+tc.name, func(t *testing.T) {
				var formatted string
				require.NotPanics(t, func() { formatted = f.FormatArg(tc.arg) })
				assert.Regexp(t, tc.want, formatted)
				assert.Equal(t, formatted, f.FormatArg(tc.arg), "deterministic")
			})
		}
	}
}

func TestSerialize_SharedReferencesAreNotCycles(t *testing.T) {
	shared := &record{Name: "p"}
	pair := []*record{{Name: "a", Parent: shared}, {Name: "b", Parent: shared}}

	assert.NotContains(t, string(Serialize("f", pair)), "<cycle")
	assert.Equal(t,
		Signature(`f([]*mockprovider.record[{"Name":"a","Parent":{"Name":"p","Parent":null}},{"Name":"b","Parent":{"Name":"p","Parent":null}}])`),
		SerializeWith(JSONFormatter{}, "f", pair))
}

func TestJSONFormatter(t *testing.T) {
	f := JSONFormatter{}

	assert.Equal(t, `nil`, f.FormatArg(nil))
	assert.Equal(t, `string"milk"`, f.FormatArg("milk"))
	assert.Equal(t, `int1`, f.FormatArg(1))
	assert.Equal(t, `map[string]int{"a":1,"b":2}`, f.FormatArg(map[string]int{"b": 2, "a": 1}))
	assert.Equal(t, `*mockprovider.record{"Name":"x","Parent":{"Name":"p","Parent":null}}`,
		f.FormatArg(&record{Name: "x", Parent: &record{Name: "p"}}))

	//channels cannot be encoded
	ch := make(chan int)
	assert.Equal(t, TextFormatter{}.FormatArg(ch), f.FormatArg(ch))
}

func TestJSONFormatter_StructurallyEqualArgsHaveSameSignature(t *testing.T) {
	a := &record{Name: "x", Parent: &record{Name: "p"}}
	b := &record{Name: "x", Parent: &record{Name: "p"}}

	assert.Equal(t, SerializeWith(JSONFormatter{}, "f", a), SerializeWith(JSONFormatter{}, "f", b))
	assert.NotEqual(t, Serialize("f", a), Serialize("f", b))
}
