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
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

/*
Signature is the canonical key of a method call, eg

  AddTodo("milk")
  Complete(int(1), []string([urgent]))

Two calls are the same call if their signatures are equal.

Arguments are compared by their formatted text only. Arguments that format the same are the same
argument, even if they are not equal, and equal arguments that format differently (eg pointers
inside structs with TextFormatter) are different arguments.
*/
type Signature string

// ArgFormatter renders a single argument for a Signature.
//
// Implementations must accept any value, including nil and self referencing values, and must not panic.
type ArgFormatter interface {
	FormatArg(arg interface{}) string
}

// TextFormatter formats strings as quoted Go literals and other values as Type(value).
//
// Values that refer back to themselves are written as Type(<cycle 0xaddress>).
type TextFormatter struct{}

func (TextFormatter) FormatArg(arg interface{}) string {
	switch v := arg.(type) {
	case nil:
		return "nil"
	case string:
		return strconv.Quote(v)
	default:
		if isCyclic(arg) {
			return cycleText(arg)
		}
		//fmt recovers from panicking String() and Error() methods
		return fmt.Sprintf("%T(%+v)", arg, arg)
	}
}

/*
JSONFormatter formats arguments as their type followed by their JSON encoding.

Pointers are followed and map keys are sorted, so structurally equal arguments have the same signature.
Values that cannot be encoded (channels, funcs) fall back to TextFormatter. Values that refer back to
themselves are written as Type(<cycle 0xaddress>), as TextFormatter does.
*/
type JSONFormatter struct{}

func (JSONFormatter) FormatArg(arg interface{}) (formatted string) {
	if arg == nil {
		return "nil"
	}
	if isCyclic(arg) {
		return cycleText(arg)
	}
	defer func() {
		if r := recover(); r != nil {
			formatted = TextFormatter{}.FormatArg(arg)
		}
	}()

	encoded, err := json.Marshal(arg)
	if err != nil {
		return TextFormatter{}.FormatArg(arg)
	}
	return fmt.Sprintf("%T%s", arg, encoded)
}

// visit is a reference on the path from the root argument to the value being walked
type visit struct {
	ptr uintptr
	typ reflect.Type
}

// isCyclic reports whether arg reaches itself through a pointer, map or slice.
// Neither fmt nor the JSON encoder terminate on such values.
func isCyclic(arg interface{}) bool {
	return cyclic(reflect.ValueOf(arg), map[visit]bool{})
}

func cyclic(v reflect.Value, path map[visit]bool) bool {
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice:
		if v.IsNil() || (v.Kind() == reflect.Slice && v.Len() == 0) {
			return false
		}
		key := visit{ptr: v.Pointer(), typ: v.Type()}
		if path[key] {
			return true
		}
		path[key] = true
		defer delete(path, key)
	}

	switch v.Kind() {
	case reflect.Ptr, reflect.Interface:
		return !v.IsNil() && cyclic(v.Elem(), path)
	case reflect.Slice, reflect.Array:
		for i := 0; i < v.Len(); i++ {
			if cyclic(v.Index(i), path) {
				return true
			}
		}
	case reflect.Map:
		iter := v.MapRange()
		for iter.Next() {
			if cyclic(iter.Key(), path) || cyclic(iter.Value(), path) {
				return true
			}
		}
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			if cyclic(v.Field(i), path) {
				return true
			}
		}
	}
	return false
}

func cycleText(arg interface{}) string {
	v := reflect.ValueOf(arg)
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice:
		return fmt.Sprintf("%T(<cycle %#x>)", arg, v.Pointer())
	default:
		return fmt.Sprintf("%T(<cycle>)", arg)
	}
}

// Serialize returns the Signature for methodName called with args using TextFormatter
func Serialize(methodName string, args ...interface{}) Signature {
	return SerializeWith(TextFormatter{}, methodName, args...)
}

// SerializeWith returns the Signature for methodName called with args, each formatted by f.
//
// An argument that formats to the empty string is written as <empty>, so m() is never the same call
// as a single argument call.
func SerializeWith(f ArgFormatter, methodName string, args ...interface{}) Signature {
	sb := strings.Builder{}
	sb.WriteString(methodName)
	sb.WriteRune('(')
	for i, arg := range args {
		if i > 0 {
			sb.WriteString(", ")
		}
		if formatted := f.FormatArg(arg); formatted != "" {
			sb.WriteString(formatted)
		} else {
			sb.WriteString("<empty>")
		}
	}
	sb.WriteRune(')')
	return Signature(sb.String())
}
