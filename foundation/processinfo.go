package foundation

import (
	"github.com/wippyai/cocoa-bridge/errors"
	"github.com/wippyai/cocoa-bridge/objc"
)

// ClassProcessInfo is the runtime class of the process information agent.
const ClassProcessInfo = "NSProcessInfo"

// Environment returns -[NSProcessInfo environment] for the current
// process. The dictionary is autoreleased.
func Environment(b *objc.Bridge) (*Dictionary, error) {
	cls := b.Class(ClassProcessInfo)
	if cls == 0 {
		return nil, errors.NotFound(errors.PhaseResolve, "class", ClassProcessInfo)
	}
	ret, err := b.SendRaw(cls, objc.Sel("processInfo"))
	if err != nil {
		return nil, err
	}
	info, _ := objc.AsHandle(ret)

	ret, err = b.SendRaw(info, objc.Sel("environment"))
	if err != nil {
		return nil, err
	}
	h, _ := objc.AsHandle(ret)
	if h == 0 {
		return nil, errors.NilPointer(errors.PhaseDecode, []string{"processInfo", "environment"}, ClassDictionary)
	}
	return WrapDictionary(b, h), nil
}
