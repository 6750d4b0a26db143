/*
 * Copyright 2025 Carver Automation Corporation.
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

//go:generate mockgen -destination=mock_foreign.go -package=foreign github.com/carverauto/headsetbridge/pkg/foreign Runtime,Class,Method,Object

// Package foreign describes the capability surface of an opaque, externally owned
// object model: classes that can be loaded by name, their declared members, and the
// objects that belong to them.
//
// Nothing in this package knows how the foreign runtime is implemented. Adapters
// (see reflectrt) translate a concrete introspection facility into these interfaces,
// and the resolution engine in pkg/resolve works purely against them.
package foreign

import "strings"

// TypeName identifies a foreign type as the foreign runtime reports it.
type TypeName string

// Primitive and well-known foreign type names.
const (
	TypeVoid    TypeName = "void"
	TypeInt     TypeName = "int"
	TypeLong    TypeName = "long"
	TypeFloat   TypeName = "float"
	TypeDouble  TypeName = "double"
	TypeBoolean TypeName = "boolean"
	TypeString  TypeName = "string"
	TypeObject  TypeName = "object"
)

// Modifier is a bit set of member modifiers.
type Modifier uint8

const (
	ModPublic Modifier = 1 << iota
	ModStatic
)

// Has reports whether every bit of want is set.
func (m Modifier) Has(want Modifier) bool {
	return m&want == want
}

func (m Modifier) String() string {
	parts := make([]string, 0, 2)

	if m.Has(ModPublic) {
		parts = append(parts, "public")
	}

	if m.Has(ModStatic) {
		parts = append(parts, "static")
	}

	if len(parts) == 0 {
		return "private"
	}

	return strings.Join(parts, " ")
}

// Runtime loads foreign classes by their fully qualified name.
type Runtime interface {
	// LoadClass returns ErrNotFound when no class with that name exists.
	LoadClass(name string) (Class, error)
}

// Class is a loaded foreign class.
type Class interface {
	Name() string

	// Method looks up a public member with exactly the given parameter types.
	Method(name string, params ...TypeName) (Method, bool)

	// DeclaredMethod looks up any member declared by the class, whatever its
	// visibility, with exactly the given parameter types.
	DeclaredMethod(name string, params ...TypeName) (Method, bool)

	// DeclaredMethods lists every member declared by the class in the order the
	// runtime enumerates them. That order is stable for a given class but is not
	// otherwise specified.
	DeclaredMethods() []Method
}

// Method is a callable member of a foreign class.
type Method interface {
	Name() string
	Owner() Class
	Modifiers() Modifier
	Params() []TypeName
	Return() TypeName

	// Accessible returns a view of the member with visibility checks suppressed.
	Accessible() Method

	// Invoke calls the member. recv is nil for static members. Every failure is
	// reported as an *InvocationError.
	Invoke(recv Object, args ...any) (any, error)
}

// Object is an instance of a foreign class.
type Object interface {
	Class() Class
}

// Signature renders a member as name(param, ...) for logs.
func Signature(m Method) string {
	if m == nil {
		return "<nil>"
	}

	params := m.Params()
	names := make([]string, len(params))

	for i, p := range params {
		names[i] = string(p)
	}

	return m.Name() + "(" + strings.Join(names, ", ") + ")"
}
