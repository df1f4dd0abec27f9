package llms

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/defeedco/llmsettings/pkg/lib"
)

// OptionalInt is an integer environment value that distinguishes
// "not set" from zero.
type OptionalInt struct {
	value int
	set   bool
}

func SomeInt(v int) OptionalInt {
	return OptionalInt{value: v, set: true}
}

func (o OptionalInt) Get() (int, bool) {
	return o.value, o.set
}

func (o *OptionalInt) Decode(s string) error {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return &lib.ConfigurationError{Value: s, Err: fmt.Errorf("parse integer: %w", err)}
	}
	o.value, o.set = v, true
	return nil
}

// OptionalFloat is the float64 counterpart of OptionalInt.
type OptionalFloat struct {
	value float64
	set   bool
}

func SomeFloat(v float64) OptionalFloat {
	return OptionalFloat{value: v, set: true}
}

func (o OptionalFloat) Get() (float64, bool) {
	return o.value, o.set
}

func (o *OptionalFloat) Decode(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return &lib.ConfigurationError{Value: s, Err: fmt.Errorf("parse float: %w", err)}
	}
	o.value, o.set = v, true
	return nil
}
