package metric

import "reflect"

// Materialize returns a copy of v in which every nil slice or map reachable
// through exported fields is replaced by an empty one. Nil pointers are left
// alone so optional values still serialize as null.
//
// The engine runs its whole result through Materialize before marshaling,
// so list-valued fields serialize as [] or {} rather than null.
func Materialize[T any](v T) T {
	rv := reflect.ValueOf(&v).Elem()
	fill(rv)
	return v
}

func fill(rv reflect.Value) {
	switch rv.Kind() {
	case reflect.Pointer:
		if !rv.IsNil() {
			fill(rv.Elem())
		}
	case reflect.Interface:
		if rv.IsNil() || !rv.CanSet() {
			return
		}
		elem := rv.Elem()
		cp := reflect.New(elem.Type()).Elem()
		cp.Set(elem)
		fill(cp)
		rv.Set(cp)
	case reflect.Struct:
		for i := 0; i < rv.NumField(); i++ {
			if f := rv.Field(i); f.CanSet() {
				fill(f)
			}
		}
	case reflect.Slice:
		if rv.IsNil() {
			if rv.CanSet() {
				rv.Set(reflect.MakeSlice(rv.Type(), 0, 0))
			}
			return
		}
		for i := 0; i < rv.Len(); i++ {
			fill(rv.Index(i))
		}
	case reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			fill(rv.Index(i))
		}
	case reflect.Map:
		if rv.IsNil() {
			if rv.CanSet() {
				rv.Set(reflect.MakeMap(rv.Type()))
			}
			return
		}
		iter := rv.MapRange()
		for iter.Next() {
			val := iter.Value()
			cp := reflect.New(val.Type()).Elem()
			cp.Set(val)
			fill(cp)
			rv.SetMapIndex(iter.Key(), cp)
		}
	}
}
