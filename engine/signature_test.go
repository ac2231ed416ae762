package engine

import (
	"reflect"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/cocoa-bridge/errors"
	"github.com/wippyai/cocoa-bridge/objc"
)

func TestSignatureKey(t *testing.T) {
	tests := []struct {
		types objc.CallTypes
		want  string
	}{
		{objc.CallTypes{}, ":p"},
		{objc.CallTypes{Return: objc.Uint}, ":u"},
		{objc.CallTypes{Args: []objc.Kind{objc.CString}}, "s:p"},
		{objc.CallTypes{Args: []objc.Kind{objc.Buffer, objc.Buffer}, Return: objc.Void}, "BB:v"},
		{objc.CallTypes{Args: []objc.Kind{objc.Double, objc.Bool}, Return: objc.Float}, "db:f"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, signatureKey(tt.types))
		})
	}
}

func TestFuncType(t *testing.T) {
	ft, err := funcType(objc.CallTypes{
		Args:   []objc.Kind{objc.Buffer, objc.Buffer},
		Return: objc.Void,
	})
	require.NoError(t, err)
	assert.Equal(t, reflect.TypeOf(func(uintptr, uintptr, unsafe.Pointer, unsafe.Pointer) {}), ft)

	ft, err = funcType(objc.CallTypes{Args: []objc.Kind{objc.CString}})
	require.NoError(t, err)
	assert.Equal(t, reflect.TypeOf(func(uintptr, uintptr, string) uintptr { return 0 }), ft)

	ft, err = funcType(objc.CallTypes{Return: objc.CString})
	require.NoError(t, err)
	assert.Equal(t, reflect.TypeOf(func(uintptr, uintptr) string { return "" }), ft)

	_, err = funcType(objc.CallTypes{Args: []objc.Kind{objc.Void}})
	assert.ErrorIs(t, err, &errors.Error{Phase: errors.PhaseDispatch, Kind: errors.KindUnsupported})

	_, err = funcType(objc.CallTypes{Return: objc.Buffer})
	assert.Error(t, err)
}

func TestMarshal(t *testing.T) {
	buf := []objc.Handle{1, 2}

	tests := []struct {
		name string
		kind objc.Kind
		in   any
		want any
	}{
		{"handle", objc.Pointer, objc.Handle(0x10), uintptr(0x10)},
		{"nil pointer", objc.Pointer, nil, uintptr(0)},
		{"text", objc.CString, objc.Text("hi"), "hi"},
		{"bool", objc.Bool, true, true},
		{"int", objc.Int, 7, int64(7)},
		{"uint", objc.Uint, uint32(7), uint64(7)},
		{"float", objc.Float, 1.5, float32(1.5)},
		{"double", objc.Double, float32(2.5), float64(2.5)},
		{"buffer", objc.Buffer, buf, unsafe.Pointer(&buf[0])},
		{"empty buffer", objc.Buffer, []objc.Handle{}, unsafe.Pointer(nil)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := marshal("sel:", 0, tt.kind, tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, v.Interface())
		})
	}
}

func TestMarshalRejects(t *testing.T) {
	tests := []struct {
		name string
		kind objc.Kind
		in   any
	}{
		{"string as pointer", objc.Pointer, "not coerced"},
		{"handle as text", objc.CString, objc.Handle(1)},
		{"nul in text", objc.CString, objc.Text("a\x00b")},
		{"negative uint", objc.Uint, -1},
		{"slice of ints as buffer", objc.Buffer, []int{1}},
		{"string as double", objc.Double, "1.0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := marshal("sel:", 2, tt.kind, tt.in)
			require.Error(t, err)
			var e *errors.Error
			require.ErrorAs(t, err, &e)
			assert.Equal(t, errors.PhaseDispatch, e.Phase)
			assert.Equal(t, []string{"sel:", "arg2"}, e.Path)
		})
	}
}

func TestUnmarshal(t *testing.T) {
	assert.Nil(t, unmarshal(objc.Void, nil))
	assert.Equal(t, objc.Handle(0x40), unmarshal(objc.Pointer, []reflect.Value{reflect.ValueOf(uintptr(0x40))}))
	assert.Equal(t, "x", unmarshal(objc.CString, []reflect.Value{reflect.ValueOf("x")}))
	assert.Equal(t, uint64(3), unmarshal(objc.Uint, []reflect.Value{reflect.ValueOf(uint64(3))}))
}
