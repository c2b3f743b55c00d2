package ast

import (
	"reflect"
	"testing"
)

// pointerFree reports whether values of t can be dropped without any cleanup:
// no pointers, slices, maps, strings, channels, funcs or interfaces inside.
func pointerFree(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool, reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	case reflect.Array:
		return pointerFree(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if !pointerFree(t.Field(i).Type) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func TestNodesAreTriviallyDroppable(t *testing.T) {
	nodes := []any{
		Expr{},
		IntegerLiteralData{},
		CharacterConstantData{},
		StringLiteralData{},
		ParenData{},
		ArraySubscriptData{},
		CastData{},
	}
	for _, n := range nodes {
		if typ := reflect.TypeOf(n); !pointerFree(typ) {
			t.Errorf("%s holds a reference type; the store could not be freed in bulk", typ.Name())
		}
	}
}
