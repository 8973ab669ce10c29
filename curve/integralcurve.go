package curve

import (
	"math"
	"slices"

	"github.com/forestrie/go-keycurves/keyhandle"
)

// IntegralKey is one key of an IntegralCurve.
type IntegralKey struct {
	Time  float64 `cbor:"1,keyasint"`
	Value int32   `cbor:"2,keyasint"`
}

func (k IntegralKey) keyTime() float64 { return k.Time }

// IntegralCurve is a step curve of int32 values. It evaluates to the value
// of the last key at or before the queried time.
//
// An IntegralCurve must not be copied after first use.
type IntegralCurve struct {
	keySeq[IntegralKey]

	defaultValue    int32
	hasDefaultValue bool
}

func NewIntegralCurve(opts ...Option) *IntegralCurve {
	o := NewOptions(opts...)
	c := &IntegralCurve{
		defaultValue:    toInt32(o.defaultValue),
		hasDefaultValue: o.hasDefaultValue,
	}
	c.Init(&c.keySeq, o.Generator)
	return c
}

// toInt32 truncates v toward zero, clamped to the int32 range. NaN is zero.
func toInt32(v float64) int32 {
	switch {
	case math.IsNaN(v):
		return 0
	case v >= math.MaxInt32:
		return math.MaxInt32
	case v <= math.MinInt32:
		return math.MinInt32
	}
	return int32(v)
}

func (c *IntegralCurve) DefaultValue() (int32, bool) {
	return c.defaultValue, c.hasDefaultValue
}

func (c *IntegralCurve) SetDefaultValue(v int32) {
	c.defaultValue, c.hasDefaultValue = v, true
}

func (c *IntegralCurve) AddKey(time float64, value int32) keyhandle.KeyHandle {
	return c.insertKey(IntegralKey{Time: time, Value: value}, keyhandle.None)
}

func (c *IntegralCurve) AddKeyWithHandle(time float64, value int32, handle keyhandle.KeyHandle) keyhandle.KeyHandle {
	return c.insertKey(IntegralKey{Time: time, Value: value}, handle)
}

func (c *IntegralCurve) UpdateOrAddKey(time float64, value int32, tolerance float64) keyhandle.KeyHandle {
	if i := c.findIndex(time, tolerance); i != IndexNone {
		c.keys[i].Value = value
		return c.GetKeyHandle(i)
	}
	return c.AddKey(time, value)
}

func (c *IntegralCurve) FindKey(time, tolerance float64) keyhandle.KeyHandle {
	return c.findKey(time, tolerance)
}

func (c *IntegralCurve) DeleteKey(handle keyhandle.KeyHandle) bool {
	i := c.indexOf(handle)
	if i == IndexNone {
		return false
	}
	c.removeAt(i)
	return true
}

// SetKeyTime moves a key, keeping its handle. It returns None when the
// handle is not on the curve.
func (c *IntegralCurve) SetKeyTime(handle keyhandle.KeyHandle, time float64) keyhandle.KeyHandle {
	i := c.indexOf(handle)
	if i == IndexNone {
		return keyhandle.None
	}
	key := c.keys[i]
	c.removeAt(i)
	key.Time = time
	return c.insertKey(key, handle)
}

func (c *IntegralCurve) GetKeyTime(handle keyhandle.KeyHandle) float64 {
	if i := c.indexOf(handle); i != IndexNone {
		return c.keys[i].Time
	}
	return 0
}

func (c *IntegralCurve) GetKeyValue(handle keyhandle.KeyHandle) int32 {
	if i := c.indexOf(handle); i != IndexNone {
		return c.keys[i].Value
	}
	return 0
}

func (c *IntegralCurve) SetKeyValue(handle keyhandle.KeyHandle, value int32) bool {
	i := c.indexOf(handle)
	if i == IndexNone {
		return false
	}
	c.keys[i].Value = value
	return true
}

func (c *IntegralCurve) Keys() []IntegralKey {
	return slices.Clone(c.keys)
}

func (c *IntegralCurve) Reset() {
	c.resetKeys()
}

func (c *IntegralCurve) ShiftCurve(delta float64) {
	for i := range c.keys {
		c.keys[i].Time += delta
	}
}

func (c *IntegralCurve) ScaleCurve(origin, factor float64) {
	for i := range c.keys {
		c.keys[i].Time = (c.keys[i].Time-origin)*factor + origin
	}
	if factor < 0 {
		c.sortKeys()
	}
}

// Evaluate returns the value in effect at time. Before the first key that
// is the first key's value. An empty curve returns the default value, or
// math.MaxInt32 when none is set.
func (c *IntegralCurve) Evaluate(time float64) int32 {
	n := len(c.keys)
	switch {
	case n == 0:
		if c.hasDefaultValue {
			return c.defaultValue
		}
		return math.MaxInt32
	case n < 2 || time < c.keys[0].Time:
		return c.keys[0].Value
	case time < c.keys[n-1].Time:
		// first key after time; keys before it are at or before time
		i := c.insertIndex(math.Nextafter(time, math.Inf(1)))
		return c.keys[i-1].Value
	}
	return c.keys[n-1].Value
}
