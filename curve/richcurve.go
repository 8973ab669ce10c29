package curve

import (
	"math"
	"slices"

	"github.com/forestrie/go-keycurves/keyhandle"
)

// DefaultTension is the tension AutoSetTangents is run with after edits.
const DefaultTension = 0.0

// RichCurve is a float curve of keys sorted by time, each carrying its own
// interpolation and tangents. Handles returned by its methods stay valid
// across any number of edits to other keys.
//
// A RichCurve must not be copied after first use. The zero value is an empty
// curve using the default handle generator.
type RichCurve struct {
	keySeq[RichCurveKey]

	defaultValue    float64
	hasDefaultValue bool

	PreInfinityExtrap  Extrapolation
	PostInfinityExtrap Extrapolation
}

func NewRichCurve(opts ...Option) *RichCurve {
	o := NewOptions(opts...)
	c := &RichCurve{
		defaultValue:       o.defaultValue,
		hasDefaultValue:    o.hasDefaultValue,
		PreInfinityExtrap:  o.PreInfinityExtrap,
		PostInfinityExtrap: o.PostInfinityExtrap,
	}
	c.Init(&c.keySeq, o.Generator)
	return c
}

// DefaultValue returns the value an empty curve evaluates to, if one is set.
func (c *RichCurve) DefaultValue() (float64, bool) {
	return c.defaultValue, c.hasDefaultValue
}

func (c *RichCurve) SetDefaultValue(v float64) {
	c.defaultValue, c.hasDefaultValue = v, true
}

func (c *RichCurve) ClearDefaultValue() {
	c.defaultValue, c.hasDefaultValue = 0, false
}

// AddKey inserts a linear key in time order and returns its handle. A key
// at the same time as existing keys goes before them.
func (c *RichCurve) AddKey(time, value float64) keyhandle.KeyHandle {
	return c.AddKeyWithHandle(time, value, keyhandle.None)
}

// AddKeyWithHandle is AddKey reusing handle. handle must not already be on
// the curve; None mints a new one.
func (c *RichCurve) AddKeyWithHandle(time, value float64, handle keyhandle.KeyHandle) keyhandle.KeyHandle {
	h := c.insertKey(NewRichCurveKey(time, value), handle)
	c.AutoSetTangents(DefaultTension)
	return h
}

// AddRichKey inserts a fully specified key.
func (c *RichCurve) AddRichKey(key RichCurveKey) keyhandle.KeyHandle {
	h := c.insertKey(key, keyhandle.None)
	c.AutoSetTangents(DefaultTension)
	return h
}

// UpdateOrAddKey sets the value of the key within tolerance of time, or
// adds a key when there is none.
func (c *RichCurve) UpdateOrAddKey(time, value, tolerance float64) keyhandle.KeyHandle {
	if h := c.FindKey(time, tolerance); !h.IsNone() {
		c.SetKeyValue(h, value, true)
		return h
	}
	return c.AddKey(time, value)
}

// FindKey returns the handle of the key closest to time within tolerance,
// or None.
func (c *RichCurve) FindKey(time, tolerance float64) keyhandle.KeyHandle {
	return c.findKey(time, tolerance)
}

// DeleteKey removes the key and reports whether the handle was on the curve.
func (c *RichCurve) DeleteKey(handle keyhandle.KeyHandle) bool {
	i := c.indexOf(handle)
	if i == IndexNone {
		return false
	}
	c.removeAt(i)
	c.AutoSetTangents(DefaultTension)
	return true
}

// SetKeyTime moves a key, keeping its handle and every other property. It
// returns the handle, or None when the handle was not on the curve.
func (c *RichCurve) SetKeyTime(handle keyhandle.KeyHandle, time float64) keyhandle.KeyHandle {
	i := c.indexOf(handle)
	if i == IndexNone {
		return keyhandle.None
	}
	key := c.keys[i]
	c.removeAt(i)
	key.Time = time
	c.insertKey(key, handle)
	c.AutoSetTangents(DefaultTension)
	return handle
}

// GetKeyTime returns zero for an unknown handle.
func (c *RichCurve) GetKeyTime(handle keyhandle.KeyHandle) float64 {
	k, _ := c.GetKey(handle)
	return k.Time
}

// GetKeyValue returns zero for an unknown handle.
func (c *RichCurve) GetKeyValue(handle keyhandle.KeyHandle) float64 {
	k, _ := c.GetKey(handle)
	return k.Value
}

// SetKeyValue changes the value of a key and, if asked, recomputes the auto
// tangents of the curve.
func (c *RichCurve) SetKeyValue(handle keyhandle.KeyHandle, value float64, autoSetTangents bool) bool {
	i := c.indexOf(handle)
	if i == IndexNone {
		return false
	}
	c.keys[i].Value = value
	if autoSetTangents {
		c.AutoSetTangents(DefaultTension)
	}
	return true
}

func (c *RichCurve) GetKey(handle keyhandle.KeyHandle) (RichCurveKey, bool) {
	i := c.indexOf(handle)
	if i == IndexNone {
		return RichCurveKey{}, false
	}
	return c.keys[i], true
}

func (c *RichCurve) SetKeyInterpMode(handle keyhandle.KeyHandle, mode InterpMode) bool {
	i := c.indexOf(handle)
	if i == IndexNone {
		return false
	}
	c.keys[i].InterpMode = mode
	c.AutoSetTangents(DefaultTension)
	return true
}

func (c *RichCurve) SetKeyTangentMode(handle keyhandle.KeyHandle, mode TangentMode) bool {
	i := c.indexOf(handle)
	if i == IndexNone {
		return false
	}
	c.keys[i].TangentMode = mode
	c.AutoSetTangents(DefaultTension)
	return true
}

// SetKeyTangents sets both tangents. A key in auto mode is switched to
// break, or to user when the tangents are equal.
func (c *RichCurve) SetKeyTangents(handle keyhandle.KeyHandle, arrive, leave float64) bool {
	i := c.indexOf(handle)
	if i == IndexNone {
		return false
	}
	k := &c.keys[i]
	k.ArriveTangent, k.LeaveTangent = arrive, leave
	if k.TangentMode == TangentAuto {
		k.TangentMode = TangentBreak
		if arrive == leave {
			k.TangentMode = TangentUser
		}
	}
	return true
}

func (c *RichCurve) GetKeyInterpMode(handle keyhandle.KeyHandle) InterpMode {
	k, _ := c.GetKey(handle)
	return k.InterpMode
}

func (c *RichCurve) GetKeyTangentMode(handle keyhandle.KeyHandle) TangentMode {
	k, _ := c.GetKey(handle)
	return k.TangentMode
}

// FirstKey returns false on an empty curve.
func (c *RichCurve) FirstKey() (RichCurveKey, bool) {
	if len(c.keys) == 0 {
		return RichCurveKey{}, false
	}
	return c.keys[0], true
}

// LastKey returns false on an empty curve.
func (c *RichCurve) LastKey() (RichCurveKey, bool) {
	if len(c.keys) == 0 {
		return RichCurveKey{}, false
	}
	return c.keys[len(c.keys)-1], true
}

// Keys returns a copy of the keys, in time order.
func (c *RichCurve) Keys() []RichCurveKey {
	return slices.Clone(c.keys)
}

// SetKeys replaces every key. All previous handles become invalid.
func (c *RichCurve) SetKeys(keys []RichCurveKey) {
	keys = slices.Clone(keys)
	slices.SortStableFunc(keys, func(a, b RichCurveKey) int {
		switch {
		case a.Time < b.Time:
			return -1
		case a.Time > b.Time:
			return 1
		}
		return 0
	})
	c.replaceKeys(keys)
	c.AutoSetTangents(DefaultTension)
}

// Reset removes every key.
func (c *RichCurve) Reset() {
	c.resetKeys()
}

// TimeRange returns the times of the first and last keys, zero when empty.
func (c *RichCurve) TimeRange() (first, last float64) {
	if len(c.keys) == 0 {
		return 0, 0
	}
	return c.keys[0].Time, c.keys[len(c.keys)-1].Time
}

// ValueRange returns the smallest and largest key values, zero when empty.
func (c *RichCurve) ValueRange() (lo, hi float64) {
	if len(c.keys) == 0 {
		return 0, 0
	}
	lo, hi = c.keys[0].Value, c.keys[0].Value
	for _, k := range c.keys[1:] {
		lo = math.Min(lo, k.Value)
		hi = math.Max(hi, k.Value)
	}
	return lo, hi
}

// ShiftCurve moves every key by delta.
func (c *RichCurve) ShiftCurve(delta float64) {
	for i := range c.keys {
		c.keys[i].Time += delta
	}
}

// ScaleCurve scales the time of every key about origin.
func (c *RichCurve) ScaleCurve(origin, factor float64) {
	for i := range c.keys {
		c.keys[i].Time = (c.keys[i].Time-origin)*factor + origin
	}
	if factor < 0 {
		c.sortKeys()
	}
	c.AutoSetTangents(DefaultTension)
}

// RemoveRedundantKeys deletes interior keys whose value matches both
// neighbours within tolerance.
func (c *RichCurve) RemoveRedundantKeys(tolerance float64) {
	if len(c.keys) < 3 {
		return
	}
	for i := 1; i < len(c.keys)-1; i++ {
		prev, this, next := c.keys[i-1], c.keys[i], c.keys[i+1]
		if math.Abs(prev.Value-this.Value) <= tolerance && math.Abs(this.Value-next.Value) <= tolerance {
			c.removeAt(i)
			i--
		}
	}
	c.AutoSetTangents(DefaultTension)
}

// AutoSetTangents recomputes the tangents of cubic keys in auto mode from
// their neighbours. Constant keys get flat tangents.
func (c *RichCurve) AutoSetTangents(tension float64) {
	n := len(c.keys)
	for i := range c.keys {
		this := &c.keys[i]
		switch {
		case this.InterpMode == InterpCubic && this.TangentMode == TangentAuto:
			prev := c.keys[max(i-1, 0)]
			next := c.keys[min(i+1, n-1)]
			dt := math.Max(next.Time-prev.Time, smallNumber)
			tangent := 0.5 * (1 - tension) * (next.Value - prev.Value) / dt
			this.ArriveTangent, this.LeaveTangent = tangent, tangent
		case this.InterpMode == InterpConstant:
			this.ArriveTangent, this.LeaveTangent = 0, 0
		}
	}
}
