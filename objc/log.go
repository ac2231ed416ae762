package objc

import (
	"fmt"
	"strings"

	"github.com/wippyai/cocoa-bridge/errors"
)

// Log writes a message through NSLog. Each %@ in format is replaced with
// the description of the next argument; a %@ with no argument left prints
// (null). The finished text reaches NSLog as a single escaped format
// string, so no object is ever passed through C varargs.
func (b *Bridge) Log(format string, args ...any) error {
	msg := b.expandObjects(format, args)

	ret, err := b.ToRuntime(strings.ReplaceAll(msg, "%", "%%"))
	if err != nil {
		return err
	}
	h, ok := ret.(Handle)
	if !ok {
		return errors.NotInitialized(errors.PhaseCoerce, "string coercion")
	}
	if h == 0 {
		return errors.NilPointer(errors.PhaseCoerce, []string{"NSLog"}, "NSString")
	}
	b.rt.Log(h)
	return nil
}

func (b *Bridge) expandObjects(format string, args []any) string {
	var sb strings.Builder
	next := 0
	for {
		i := strings.Index(format, "%@")
		if i < 0 {
			sb.WriteString(format)
			break
		}
		sb.WriteString(format[:i])
		format = format[i+2:]

		if next >= len(args) {
			sb.WriteString("(null)")
			continue
		}
		sb.WriteString(describe(args[next]))
		next++
	}
	return sb.String()
}

func describe(v any) string {
	switch x := v.(type) {
	case nil:
		return "(null)"
	case string:
		return x
	case Wrapper:
		if isNilWrapper(x) || !x.Valid() {
			return "(null)"
		}
		if s, ok := x.(fmt.Stringer); ok {
			return s.String()
		}
		return x.ID().String()
	}
	return fmt.Sprint(v)
}
