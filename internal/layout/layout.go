// Copyright 2021 The Bitalosdb author(hustxrb@163.com) and other contributors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package layout inspects element types before their values are placed in
// memory the garbage collector cannot see.
package layout

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/cockroachdb/errors"
)

var ErrNotPlainData = errors.New("layout: type contains pointers")

type info struct {
	err    error
	padded bool
}

var cache sync.Map

func lookup(ty reflect.Type) info {
	if v, ok := cache.Load(ty); ok {
		return v.(info)
	}
	in := info{padded: hasPadding(ty)}
	if problem := pointerProblem(ty); problem != "" {
		in.err = errors.Wrap(ErrNotPlainData, problem)
	}
	cache.Store(ty, in)
	return in
}

// TypeOf returns the reflect.Type of T, including interface types.
func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// CheckPlainData returns an error wrapping ErrNotPlainData if T holds a Go
// pointer anywhere inside it.
func CheckPlainData[T any]() error {
	return lookup(TypeOf[T]()).err
}

// Padded reports whether T has bytes not covered by any field, so that two
// equal values may differ byte-wise.
func Padded[T any]() bool {
	return lookup(TypeOf[T]()).padded
}

func isScalar(ty reflect.Type) bool {
	switch ty.Kind() {
	case reflect.Bool, reflect.Int, reflect.Int8, reflect.Int16,
		reflect.Int32, reflect.Int64, reflect.Uint, reflect.Uint8,
		reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return true
	default:
		return false
	}
}

// pointerProblem recurses without a depth guard: a type can only refer to
// itself through a pointer, which ends the walk.
func pointerProblem(ty reflect.Type) string {
	if isScalar(ty) {
		return ""
	}
	switch ty.Kind() {
	case reflect.Array:
		if problem := pointerProblem(ty.Elem()); problem != "" {
			return "array element " + problem
		}
	case reflect.Struct:
		for i := 0; i < ty.NumField(); i++ {
			field := ty.Field(i)
			if problem := pointerProblem(field.Type); problem != "" {
				return fmt.Sprintf("struct %s field %q: %s", ty, field.Name, problem)
			}
		}
	default:
		return fmt.Sprintf("type %s contains pointers", ty)
	}
	return ""
}

func hasPadding(ty reflect.Type) bool {
	switch ty.Kind() {
	case reflect.Array:
		return ty.Len() > 0 && hasPadding(ty.Elem())
	case reflect.Struct:
		var covered uintptr
		for i := 0; i < ty.NumField(); i++ {
			field := ty.Field(i)
			if field.Offset != covered || hasPadding(field.Type) {
				return true
			}
			covered += field.Type.Size()
		}
		return covered != ty.Size()
	default:
		return false
	}
}
