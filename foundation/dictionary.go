package foundation

import (
	"fmt"
	"iter"

	"github.com/wippyai/cocoa-bridge/errors"
	"github.com/wippyai/cocoa-bridge/objc"
)

// ClassDictionary is the runtime class bound to Dictionary.
const ClassDictionary = "NSDictionary"

var getObjectsTypes = objc.CallTypes{
	Args:   []objc.Kind{objc.Buffer, objc.Buffer},
	Return: objc.Void,
}

// Pair is one classified dictionary entry.
type Pair struct {
	Key   objc.Wrapper
	Value objc.Wrapper
}

// Dictionary wraps an NSDictionary.
type Dictionary struct {
	*objc.Object
}

// WrapDictionary wraps an existing NSDictionary handle. A nil handle
// allocates an uninitialized instance instead.
func WrapDictionary(b *objc.Bridge, h objc.Handle) *Dictionary {
	return &Dictionary{Object: objc.NewObject(b, b.Class(ClassDictionary), h)}
}

// Len returns the element count reported by -count.
func (d *Dictionary) Len() (int, error) {
	ret, err := d.SendRaw(objc.Sel("count").Returns(objc.Uint))
	if err != nil {
		return 0, err
	}
	if ret == nil {
		return 0, nil
	}
	n, ok := objc.AsUint(ret)
	if !ok {
		return 0, errors.TypeMismatch(errors.PhaseDecode, []string{"count"}, fmt.Sprintf("%T", ret), "NSUInteger")
	}
	return int(n), nil
}

// Items fetches every entry with one -getObjects:andKeys: call. Order
// follows the dictionary's own enumeration order.
func (d *Dictionary) Items() ([]Pair, error) {
	n, err := d.Len()
	if err != nil || n == 0 {
		return nil, err
	}

	objs := make([]objc.Handle, n)
	keys := make([]objc.Handle, n)
	msg := objc.Msg("getObjects:", objs).And("andKeys:", keys).Types(getObjectsTypes)
	if _, err := d.SendRaw(msg); err != nil {
		return nil, err
	}

	b := d.Bridge()
	items := make([]Pair, n)
	for i := range n {
		if keys[i] == 0 {
			return nil, errors.NilPointer(errors.PhaseDecode, []string{"getObjects:andKeys:", fmt.Sprintf("key%d", i)}, "Handle")
		}
		items[i] = Pair{Key: b.Classify(keys[i]), Value: b.Classify(objs[i])}
	}
	return items, nil
}

// Keys enumerates the keys through -keyEnumerator.
func (d *Dictionary) Keys() (*Enumerator, error) {
	return d.enumerator("keyEnumerator")
}

// Values enumerates the values through -objectEnumerator.
func (d *Dictionary) Values() (*Enumerator, error) {
	return d.enumerator("objectEnumerator")
}

func (d *Dictionary) enumerator(sel string) (*Enumerator, error) {
	ret, err := d.SendRaw(objc.Sel(sel))
	if err != nil {
		return nil, err
	}
	h, ok := objc.AsHandle(ret)
	if !ok {
		return nil, errors.TypeMismatch(errors.PhaseDecode, []string{sel}, fmt.Sprintf("%T", ret), ClassEnumerator)
	}
	if h == 0 {
		return nil, errors.NilPointer(errors.PhaseDecode, []string{sel}, ClassEnumerator)
	}
	return WrapEnumerator(d.Bridge(), h), nil
}

// Get sends -valueForKey:. A missing key yields nil.
func (d *Dictionary) Get(key string) (objc.Wrapper, error) {
	return d.Send(objc.Msg("valueForKey:", key))
}

// All yields classified entries. Errors end the sequence silently; use
// Items to observe them.
func (d *Dictionary) All() iter.Seq2[objc.Wrapper, objc.Wrapper] {
	return func(yield func(objc.Wrapper, objc.Wrapper) bool) {
		items, err := d.Items()
		if err != nil {
			return
		}
		for _, p := range items {
			if !yield(p.Key, p.Value) {
				return
			}
		}
	}
}

// Strings decodes a dictionary whose keys and values are all strings.
func (d *Dictionary) Strings() (map[string]string, error) {
	items, err := d.Items()
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(items))
	for _, p := range items {
		k, err := textOf(p.Key, "key")
		if err != nil {
			return nil, err
		}
		v, err := textOf(p.Value, k)
		if err != nil {
			return nil, err
		}
		out[k] = v
	}
	return out, nil
}

func textOf(w objc.Wrapper, path string) (string, error) {
	s, ok := w.(*String)
	if !ok {
		return "", errors.TypeMismatch(errors.PhaseDecode, []string{path}, fmt.Sprintf("%T", w), ClassString)
	}
	return s.Text()
}
