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

package stubgen

import (
	"bytes"
	"fmt"
	"go/format"
	"io"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"text/template"

	"github.com/lwoggardner/mockprovider/mockprovider"
	"github.com/pkg/errors"
)

// MockProviderPackage is the import path of the package generated doubles depend on
const MockProviderPackage = "github.com/lwoggardner/mockprovider/mockprovider"

// Option configures a Generator
type Option func(g *Generator)

// Package sets the package of the generated file. Defaults to the package of the interface.
func Package(pkgPath string, pkgName string) Option {
	return func(g *Generator) {
		g.pkgPath = pkgPath
		g.pkgName = pkgName
	}
}

// TypeName sets the name of the generated double. Defaults to the interface name followed by "Double".
func TypeName(name string) Option {
	return func(g *Generator) {
		g.typeName = name
	}
}

// Generator writes the source of a stub double for one interface
type Generator struct {
	iface    reflect.Type
	pkgPath  string
	pkgName  string
	typeName string
	err      error
}

/*
NewGenerator returns a Generator for forInterface.

forInterface is expected to be the nil implementation of an interface - (*Iface)(nil)
*/
func NewGenerator(forInterface interface{}, options ...Option) *Generator {
	g := &Generator{}
	ifaceFor := reflect.TypeOf(forInterface)
	if ifaceFor == nil || ifaceFor.Kind() != reflect.Ptr || ifaceFor.Elem().Kind() != reflect.Interface {
		g.err = errors.Errorf("expecting '%v' to be a pointer to nil interface", forInterface)
		return g
	}
	g.iface = ifaceFor.Elem()
	if g.iface.Name() == "" {
		g.err = errors.Errorf("cannot generate a double for unnamed interface %v", g.iface)
		return g
	}

	g.pkgPath = g.iface.PkgPath()
	g.pkgName = packageName(g.iface)
	g.typeName = g.iface.Name() + "Double"
	for _, o := range options {
		o(g)
	}
	return g
}

// Generate writes the gofmt'd source of the double to w
func (g *Generator) Generate(w io.Writer) error {
	if g.err != nil {
		return g.err
	}

	model, err := g.model()
	if err != nil {
		return errors.Wrapf(err, "generating %s for %v", g.typeName, g.iface)
	}

	var src bytes.Buffer
	if err := doubleTemplate.Execute(&src, model); err != nil {
		return errors.Wrap(err, "executing template")
	}

	formatted, err := format.Source(src.Bytes())
	if err != nil {
		return errors.Wrapf(err, "formatting generated source\n%s", src.String())
	}

	if _, err := w.Write(formatted); err != nil {
		return errors.Wrap(err, "writing generated source")
	}
	return nil
}

// reservedMethods are the method names of a generated double that an interface method would collide with
var reservedMethods = func() map[string]bool {
	reserved := map[string]bool{"Stub": true, "SetMock": true}
	stubType := reflect.TypeOf((*mockprovider.Stub)(nil))
	for i := 0; i < stubType.NumMethod(); i++ {
		reserved[stubType.Method(i).Name] = true
	}
	return reserved
}()

type doubleModel struct {
	Package      string
	Imports      []importSpec
	TypeName     string
	Interface    string
	InterfaceRef string
	Methods      []methodModel
}

type methodModel struct {
	Name    string
	Params  string
	Results string
	Args    string
	Assigns []string
}

func (g *Generator) model() (*doubleModel, error) {
	imports := newImports(g.pkgPath)
	imports.add(MockProviderPackage, "mockprovider")

	m := &doubleModel{
		Package:      g.pkgName,
		TypeName:     g.typeName,
		Interface:    g.iface.String(),
		InterfaceRef: imports.typeName(g.iface),
	}

	for i := 0; i < g.iface.NumMethod(); i++ {
		method := g.iface.Method(i)
		if reservedMethods[method.Name] {
			return nil, errors.Errorf("method %s clashes with the embedded *mockprovider.Stub", method.Name)
		}
		if method.PkgPath != "" && method.PkgPath != g.pkgPath {
			return nil, errors.Errorf("unexported method %s cannot be implemented outside %s", method.Name, method.PkgPath)
		}
		m.Methods = append(m.Methods, newMethodModel(imports, method))
	}
	if imports.err != nil {
		return nil, imports.err
	}
	m.Imports = imports.list()
	return m, nil
}

func newMethodModel(imports *importSet, method reflect.Method) methodModel {
	mt := method.Type
	params := make([]string, mt.NumIn())
	args := strings.Builder{}
	for i := 0; i < mt.NumIn(); i++ {
		name := fmt.Sprintf("a%d", i)
		if mt.IsVariadic() && i == mt.NumIn()-1 {
			params[i] = name + " ..." + imports.typeName(mt.In(i).Elem())
		} else {
			params[i] = name + " " + imports.typeName(mt.In(i))
		}
		args.WriteString(", " + name)
	}

	results := make([]string, mt.NumOut())
	assigns := make([]string, mt.NumOut())
	for i := 0; i < mt.NumOut(); i++ {
		outType := imports.typeName(mt.Out(i))
		results[i] = fmt.Sprintf("r%d %s", i, outType)
		assigns[i] = fmt.Sprintf("r%d, _ = returns[%d].(%s)", i, i, outType)
	}

	resultList := ""
	if len(results) > 0 {
		resultList = "(" + strings.Join(results, ", ") + ")"
	}

	return methodModel{
		Name:    method.Name,
		Params:  strings.Join(params, ", "),
		Results: resultList,
		Args:    args.String(),
		Assigns: assigns,
	}
}

// packageName is the name a named type's package is referred to by, eg "examples" for examples.Todo
func packageName(t reflect.Type) string {
	s := t.String()
	if i := strings.IndexRune(s, '.'); i >= 0 {
		return s[:i]
	}
	return ""
}

// importSpec is a single import of the generated source. Alias is set when Name is not the package name.
type importSpec struct {
	Name  string
	Path  string
	Alias bool
}

// localNames are the identifiers the template declares inside each method and constructor
var localNames = map[string]bool{"d": true, "t": true, "returns": true, "configurators": true}

// importSet collects the packages referred to by the generated source, and the first type it cannot render
type importSet struct {
	self   string
	byPath map[string]*importSpec
	byName map[string]string
	err    error
}

func newImports(self string) *importSet {
	return &importSet{self: self, byPath: make(map[string]*importSpec), byName: make(map[string]string)}
}

// add imports path and returns the name it is referred to by, numbering the name if another
// package already uses it
func (s *importSet) add(path string, name string) string {
	if path == s.self {
		return ""
	}
	if spec, found := s.byPath[path]; found {
		return spec.Name
	}
	local := name
	for i := 2; s.byName[local] != "" || localNames[local]; i++ {
		local = name + strconv.Itoa(i)
	}
	s.byPath[path] = &importSpec{Name: local, Path: path, Alias: local != name}
	s.byName[local] = path
	return local
}

func (s *importSet) list() []importSpec {
	list := make([]importSpec, 0, len(s.byPath))
	for _, spec := range s.byPath {
		list = append(list, *spec)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Path < list[j].Path })
	return list
}

func (s *importSet) fail(err error) {
	if s.err == nil {
		s.err = err
	}
}

// typeName renders t as Go source in the generated package, adding any imports it needs
func (s *importSet) typeName(t reflect.Type) string {
	if t.Name() != "" {
		if t.PkgPath() == "" {
			return t.Name() // predeclared, eg int, error
		}
		if t.PkgPath() == s.self {
			return t.Name()
		}
		return s.add(t.PkgPath(), packageName(t)) + "." + t.Name()
	}

	switch t.Kind() {
	case reflect.Ptr:
		return "*" + s.typeName(t.Elem())
	case reflect.Slice:
		return "[]" + s.typeName(t.Elem())
	case reflect.Array:
		return fmt.Sprintf("[%d]%s", t.Len(), s.typeName(t.Elem()))
	case reflect.Map:
		return fmt.Sprintf("map[%s]%s", s.typeName(t.Key()), s.typeName(t.Elem()))
	case reflect.Chan:
		switch t.ChanDir() {
		case reflect.RecvDir:
			return "<-chan " + s.typeName(t.Elem())
		case reflect.SendDir:
			return "chan<- " + s.typeName(t.Elem())
		default:
			if t.Elem().Kind() == reflect.Chan && t.Elem().ChanDir() == reflect.RecvDir {
				return "chan (" + s.typeName(t.Elem()) + ")"
			}
			return "chan " + s.typeName(t.Elem())
		}
	case reflect.Func:
		return "func" + s.funcSignature(t)
	case reflect.Interface:
		return s.interfaceType(t)
	case reflect.Struct:
		return s.structType(t)
	}
	s.fail(errors.Errorf("cannot write type %v", t))
	return t.String()
}

func (s *importSet) interfaceType(t reflect.Type) string {
	if t.NumMethod() == 0 {
		return "interface{}"
	}
	methods := make([]string, t.NumMethod())
	for i := range methods {
		m := t.Method(i)
		if m.PkgPath != "" && m.PkgPath != s.self {
			s.fail(errors.Errorf("unexported method %s of %v cannot be written outside %s", m.Name, t, m.PkgPath))
		}
		methods[i] = m.Name + s.funcSignature(m.Type)
	}
	return "interface{ " + strings.Join(methods, "; ") + " }"
}

func (s *importSet) structType(t reflect.Type) string {
	if t.NumField() == 0 {
		return "struct{}"
	}
	fields := make([]string, t.NumField())
	for i := range fields {
		f := t.Field(i)
		if f.PkgPath != "" && f.PkgPath != s.self {
			s.fail(errors.Errorf("unexported field %s of %v cannot be written outside %s", f.Name, t, f.PkgPath))
		}
		fields[i] = s.typeName(f.Type)
		if !f.Anonymous {
			fields[i] = f.Name + " " + fields[i]
		}
		if f.Tag != "" {
			fields[i] += " " + strconv.Quote(string(f.Tag))
		}
	}
	return "struct{ " + strings.Join(fields, "; ") + " }"
}

func (s *importSet) funcSignature(t reflect.Type) string {
	in := make([]string, t.NumIn())
	for i := range in {
		if t.IsVariadic() && i == t.NumIn()-1 {
			in[i] = "..." + s.typeName(t.In(i).Elem())
		} else {
			in[i] = s.typeName(t.In(i))
		}
	}
	out := make([]string, t.NumOut())
	for i := range out {
		out[i] = s.typeName(t.Out(i))
	}

	sig := "(" + strings.Join(in, ", ") + ")"
	switch len(out) {
	case 0:
		return sig
	case 1:
		return sig + " " + out[0]
	default:
		return sig + " (" + strings.Join(out, ", ") + ")"
	}
}

var doubleTemplate = template.Must(template.New("double").Parse(`// Code generated by stubgen for {{.Interface}}. DO NOT EDIT.

package {{.Package}}

import (
{{- range .Imports}}
	{{if .Alias}}{{.Name}} {{end}}"{{.Path}}"
{{- end}}
)

// {{.TypeName}} is a mockprovider stub for {{.Interface}}
type {{.TypeName}} struct {
	*mockprovider.Stub
}

// New{{.TypeName}} creates a {{.TypeName}} for test t
func New{{.TypeName}}(t mockprovider.T, configurators ...func(*mockprovider.Stub)) *{{.TypeName}} {
	return &{{.TypeName}}{Stub: mockprovider.NewStub(t, (*{{.InterfaceRef}})(nil), configurators...)}
}

// SetMock starts recording, the next call on d is the call being configured
func (d *{{.TypeName}}) SetMock() *{{.TypeName}} {
	d.Stub.T().Helper()
	d.Stub.SetMock()
	return d
}
{{range .Methods}}
func (d *{{$.TypeName}}) {{.Name}}({{.Params}}) {{.Results}} {
	d.Stub.T().Helper()
{{- if .Assigns}}
	returns := d.Stub.Invoke("{{.Name}}"{{.Args}})
{{- range .Assigns}}
	{{.}}
{{- end}}
	return
{{- else}}
	d.Stub.Invoke("{{.Name}}"{{.Args}})
{{- end}}
}
{{end}}`))
