package curve

import (
	"fmt"
)

const (
	richCurveVersion     = 1
	integralCurveVersion = 1
)

type richCurveRecord struct {
	Version      uint8          `cbor:"1,keyasint"`
	Keys         []RichCurveKey `cbor:"2,keyasint"`
	DefaultValue *float64       `cbor:"3,keyasint,omitempty"`
	PreExtrap    Extrapolation  `cbor:"4,keyasint"`
	PostExtrap   Extrapolation  `cbor:"5,keyasint"`
}

type integralCurveRecord struct {
	Version      uint8         `cbor:"1,keyasint"`
	Keys         []IntegralKey `cbor:"2,keyasint"`
	DefaultValue *int32        `cbor:"3,keyasint,omitempty"`
}

// curveTransaction wraps a persistent record with the handle map. It is only
// ever written to undo buffers.
type curveTransaction[R any] struct {
	Curve   R              `cbor:"1,keyasint"`
	Handles []handleRecord `cbor:"2,keyasint"`
}

func (c *RichCurve) record() richCurveRecord {
	r := richCurveRecord{
		Version:    richCurveVersion,
		Keys:       c.keys,
		PreExtrap:  c.PreInfinityExtrap,
		PostExtrap: c.PostInfinityExtrap,
	}
	if c.hasDefaultValue {
		v := c.defaultValue
		r.DefaultValue = &v
	}
	return r
}

func (c *RichCurve) applyRecord(r richCurveRecord) error {
	if r.Version != richCurveVersion {
		return fmt.Errorf("rich curve version %d: %w", r.Version, ErrUnsupportedVersion)
	}
	if err := checkKeys(r.Keys); err != nil {
		return err
	}
	if !r.PreExtrap.valid() || !r.PostExtrap.valid() {
		return fmt.Errorf("extrapolation %d/%d: %w", r.PreExtrap, r.PostExtrap, ErrModeInvalid)
	}
	for i, k := range r.Keys {
		if !k.InterpMode.valid() || !k.TangentMode.valid() {
			return fmt.Errorf("key %d modes %d/%d: %w", i, k.InterpMode, k.TangentMode, ErrModeInvalid)
		}
	}
	c.bind()
	c.keys = r.Keys
	c.hasDefaultValue = r.DefaultValue != nil
	c.defaultValue = 0
	if r.DefaultValue != nil {
		c.defaultValue = *r.DefaultValue
	}
	c.PreInfinityExtrap = r.PreExtrap
	c.PostInfinityExtrap = r.PostExtrap
	return nil
}

// MarshalBinary is the persistent encoding: keys and settings, no handles.
func (c *RichCurve) MarshalBinary() ([]byte, error) {
	return codec.MarshalCBOR(c.record())
}

// UnmarshalBinary replaces the curve with a persistent encoding. Every
// previous handle becomes invalid and new ones are issued lazily.
func (c *RichCurve) UnmarshalBinary(data []byte) error {
	var r richCurveRecord
	if err := codec.UnmarshalInto(data, &r); err != nil {
		return err
	}
	if err := c.applyRecord(r); err != nil {
		return err
	}
	c.Invalidate()
	return nil
}

// MarshalTransaction encodes the curve together with its handles, for undo
// buffers only.
func (c *RichCurve) MarshalTransaction() ([]byte, error) {
	c.bind()
	c.EnsureAllIndicesHaveHandles()
	return codec.MarshalCBOR(curveTransaction[richCurveRecord]{
		Curve:   c.record(),
		Handles: c.handles.records(),
	})
}

// UnmarshalTransaction restores a snapshot taken by MarshalTransaction,
// handles included. On error the curve is unchanged.
func (c *RichCurve) UnmarshalTransaction(data []byte) error {
	var tx curveTransaction[richCurveRecord]
	if err := codec.UnmarshalInto(data, &tx); err != nil {
		return err
	}
	var restored KeyHandleMap
	if err := restored.restore(tx.Handles, len(tx.Curve.Keys)); err != nil {
		return err
	}
	if err := c.applyRecord(tx.Curve); err != nil {
		return err
	}
	c.handles = restored
	return nil
}

func (c *IntegralCurve) record() integralCurveRecord {
	r := integralCurveRecord{Version: integralCurveVersion, Keys: c.keys}
	if c.hasDefaultValue {
		v := c.defaultValue
		r.DefaultValue = &v
	}
	return r
}

func (c *IntegralCurve) applyRecord(r integralCurveRecord) error {
	if r.Version != integralCurveVersion {
		return fmt.Errorf("integral curve version %d: %w", r.Version, ErrUnsupportedVersion)
	}
	if err := checkKeys(r.Keys); err != nil {
		return err
	}
	c.bind()
	c.keys = r.Keys
	c.hasDefaultValue = r.DefaultValue != nil
	c.defaultValue = 0
	if r.DefaultValue != nil {
		c.defaultValue = *r.DefaultValue
	}
	return nil
}

func (c *IntegralCurve) MarshalBinary() ([]byte, error) {
	return codec.MarshalCBOR(c.record())
}

func (c *IntegralCurve) UnmarshalBinary(data []byte) error {
	var r integralCurveRecord
	if err := codec.UnmarshalInto(data, &r); err != nil {
		return err
	}
	if err := c.applyRecord(r); err != nil {
		return err
	}
	c.Invalidate()
	return nil
}

func (c *IntegralCurve) MarshalTransaction() ([]byte, error) {
	c.bind()
	c.EnsureAllIndicesHaveHandles()
	return codec.MarshalCBOR(curveTransaction[integralCurveRecord]{
		Curve:   c.record(),
		Handles: c.handles.records(),
	})
}

func (c *IntegralCurve) UnmarshalTransaction(data []byte) error {
	var tx curveTransaction[integralCurveRecord]
	if err := codec.UnmarshalInto(data, &tx); err != nil {
		return err
	}
	var restored KeyHandleMap
	if err := restored.restore(tx.Handles, len(tx.Curve.Keys)); err != nil {
		return err
	}
	if err := c.applyRecord(tx.Curve); err != nil {
		return err
	}
	c.handles = restored
	return nil
}
