package retry

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"
)

var errorInterface = reflect.TypeOf((*error)(nil)).Elem()

// WrapFunc returns a function with the same signature as fn whose every call
// runs under the retry policy. fn must be a function whose last result is an
// error; that slot carries the *ExhaustedError once attempts run out, while
// all other results pass through untouched. The returned value can be type
// asserted back to fn's own type.
//
// Misuse (nil target, non-function, signature without a trailing error) fails
// here, at decoration time, with a *ConfigError.
func (r *Retry) WrapFunc(name string, fn any) (any, error) {
	if fn == nil {
		return nil, &ConfigError{Reason: "WrapFunc invoked with no target; did you mean to pass the function itself?"}
	}
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func {
		return nil, &ConfigError{Reason: fmt.Sprintf("WrapFunc target must be a function, got %T", fn)}
	}
	if name == "" {
		name = funcName(fn)
	}
	wrapped, err := r.wrapValue(name, v)
	if err != nil {
		return nil, err
	}
	return wrapped.Interface(), nil
}

// MustWrapFunc is WrapFunc that panics on misuse, for package-level decoration:
//
//	var fetchUser = r.MustWrapFunc("FetchUser", fetchUser).(func(id string) (*User, error))
func (r *Retry) MustWrapFunc(name string, fn any) any {
	wrapped, err := r.WrapFunc(name, fn)
	if err != nil {
		panic(err)
	}
	return wrapped
}

// WrapStruct decorates, in place, every exported func-typed field of the
// struct pointed to by target whose last result is an error. Each decorated
// field gets independent retry state per invocation. Unexported fields,
// non-func fields and funcs that cannot carry an error result are left
// untouched. target must be a non-nil pointer to a struct; anything else is
// a misuse and fails immediately with a *ConfigError.
func (r *Retry) WrapStruct(target any) error {
	if target == nil {
		return &ConfigError{Reason: "WrapStruct invoked with no target; did you mean to pass a pointer to the struct?"}
	}
	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return &ConfigError{Reason: fmt.Sprintf("WrapStruct target must be a non-nil pointer to a struct, got %T", target)}
	}

	elem := v.Elem()
	structType := elem.Type()
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		if !field.IsExported() {
			continue
		}
		fieldValue := elem.Field(i)
		if fieldValue.Kind() != reflect.Func || fieldValue.IsNil() {
			continue
		}
		funcType := fieldValue.Type()
		if funcType.NumOut() == 0 || funcType.Out(funcType.NumOut()-1) != errorInterface {
			continue
		}
		wrapped, err := r.wrapValue(field.Name, fieldValue)
		if err != nil {
			return err
		}
		fieldValue.Set(wrapped)
	}
	return nil
}

// wrapValue builds the reflective wrapper around fn. The captured fn is the
// original function value, so WrapStruct can overwrite the field afterwards
// without creating a recursive wrapper.
func (r *Retry) wrapValue(name string, fn reflect.Value) (reflect.Value, error) {
	funcType := fn.Type()
	if funcType.NumOut() == 0 || funcType.Out(funcType.NumOut()-1) != errorInterface {
		return reflect.Value{}, &ConfigError{Reason: fmt.Sprintf("function '%s' must return an error as its last result", name)}
	}
	errIndex := funcType.NumOut() - 1

	wrapper := func(args []reflect.Value) []reflect.Value {
		var results []reflect.Value

		_, err := r.run(name, func() (any, error) {
			if funcType.IsVariadic() {
				results = fn.CallSlice(args)
			} else {
				results = fn.Call(args)
			}

			// The predicate sees the first result (if the function returns
			// one besides the error) and the trailing error.
			var outcome any
			if errIndex > 0 {
				outcome = results[0].Interface()
			}
			var callErr error
			if e := results[errIndex]; !e.IsNil() {
				callErr = e.Interface().(error)
			}
			return outcome, callErr
		})

		if _, ok := err.(*ExhaustedError); ok {
			// Exhaustion overrides the original outcome: zero values with
			// the terminal error in the trailing slot.
			out := make([]reflect.Value, funcType.NumOut())
			for i := 0; i < errIndex; i++ {
				out[i] = reflect.Zero(funcType.Out(i))
			}
			errValue := reflect.New(funcType.Out(errIndex)).Elem()
			errValue.Set(reflect.ValueOf(err))
			out[errIndex] = errValue
			return out
		}

		// Accepted outcome: the original results, error slot included,
		// pass through unmodified.
		return results
	}

	return reflect.MakeFunc(funcType, wrapper), nil
}

// funcName recovers the symbol name of fn for logging, preserving the wrapped
// function's identity the way the runtime sees it. Falls back to "anonymous"
// when the symbol cannot be resolved.
func funcName(fn any) string {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func {
		return "anonymous"
	}
	rf := runtime.FuncForPC(v.Pointer())
	if rf == nil {
		return "anonymous"
	}
	name := rf.Name()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	return name
}
