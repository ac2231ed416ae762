package objc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/cocoa-bridge/objc"
	"github.com/wippyai/cocoa-bridge/objctest"
)

type Widget struct {
	*objc.Object
}

func newWidget(b *objc.Bridge, h objc.Handle) *Widget {
	return &Widget{Object: objc.NewObject(b, b.Class("Widget"), h)}
}

type Gadget struct {
	*objc.Object
}

func newGadget(b *objc.Bridge, h objc.Handle) *Gadget {
	return &Gadget{Object: objc.NewObject(b, b.Class("Gadget"), h)}
}

type ObjectBase struct {
	*objc.Object
}

func newObjectBase(b *objc.Bridge, h objc.Handle) *ObjectBase {
	return &ObjectBase{Object: objc.NewObject(b, 0, h)}
}

func widgetRuntime() *objctest.Runtime {
	rt := objctest.New()
	rt.DefineClass("Widget", "NSObject")
	rt.DefineClass("FancyWidget", "Widget")
	rt.DefineClass("Gadget", "NSObject")
	rt.DefineClass("Unbound", "NSObject")
	return rt
}

func TestClassifyExactClass(t *testing.T) {
	rt := widgetRuntime()
	b := objc.New(rt)
	ok, err := objc.Define(b, "Widget", newWidget)
	require.NoError(t, err)
	require.True(t, ok)

	h := rt.NewInstance("Widget", nil)
	w, isWidget := b.Classify(h).(*Widget)
	require.True(t, isWidget)
	assert.Equal(t, h, w.ID())
	assert.Equal(t, b.Class("Widget"), w.ClassHandle())
}

func TestClassifyNearestRegisteredAncestor(t *testing.T) {
	rt := widgetRuntime()
	b := objc.New(rt)
	_, err := objc.Define(b, "Widget", newWidget)
	require.NoError(t, err)

	h := rt.NewInstance("FancyWidget", nil)
	w := b.Classify(h)
	assert.IsType(t, &Widget{}, w)
	assert.Equal(t, h, w.ID())
}

func TestClassifyFallsBackToObject(t *testing.T) {
	rt := widgetRuntime()
	b := objc.New(rt)

	h := rt.NewInstance("Unbound", nil)
	w := b.Classify(h)
	obj, ok := w.(*objc.Object)
	require.True(t, ok, "got %T", w)
	assert.Equal(t, h, obj.ID())
	assert.Zero(t, obj.ClassHandle())
	assert.Equal(t, "Unbound", obj.ClassName())
}

func TestClassifyNil(t *testing.T) {
	rt := widgetRuntime()
	b := objc.New(rt)

	assert.Nil(t, b.Classify(0))
	assert.Nil(t, b.ToHost(0))
	assert.Zero(t, rt.Counters().ClassName)
}

func TestDefineDerivesClassName(t *testing.T) {
	rt := widgetRuntime()
	b := objc.New(rt)

	ok, err := objc.Define(b, "", newGadget)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"Gadget"}, b.Registered())

	assert.IsType(t, &Gadget{}, b.Classify(rt.NewInstance("Gadget", nil)))
}

func TestDefineSkipsGenericPrefix(t *testing.T) {
	rt := widgetRuntime()
	b := objc.New(rt)

	ok, err := objc.Define(b, "", newObjectBase)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, b.Registered())
}

func TestDefineSameTypeTwice(t *testing.T) {
	rt := widgetRuntime()
	b := objc.New(rt)

	_, err := objc.Define(b, "Widget", newWidget)
	require.NoError(t, err)
	_, err = objc.Define(b, "Widget", newWidget)
	require.NoError(t, err)

	_, err = objc.Define(b, "Widget", newGadget)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "registration")
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	rt := widgetRuntime()
	b := objc.New(rt)
	ctor := func(b *objc.Bridge, h objc.Handle) objc.Wrapper { return newWidget(b, h) }

	require.NoError(t, b.Register("Widget", ctor))
	require.Error(t, b.Register("Widget", ctor))
	require.Error(t, b.Register("", ctor))
	require.Error(t, b.Register("Gadget", nil))
}

func TestRegisterCachesClassHandle(t *testing.T) {
	rt := widgetRuntime()
	b := objc.New(rt)

	_, err := objc.Define(b, "Widget", newWidget)
	require.NoError(t, err)
	n := rt.Counters().GetClass

	assert.Equal(t, rt.Class("Widget").Handle(), b.Class("Widget"))
	assert.Equal(t, n, rt.Counters().GetClass)
}
