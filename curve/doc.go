package curve

/*

# Keyframe curves with stable key handles

Keys of a curve live in a slice sorted by time, so the position of a key
changes whenever a key is inserted or removed before it. Editors, selections
and track bindings need a reference that does not move. This package gives
every key an opaque keyhandle.KeyHandle and keeps a KeyHandleMap from handle
to position.

## Building blocks

- KeyHandleMap: handle <-> index, a bijection when used correctly.
- IndexedCurve: handle indirection over any KeyCounter. Owners of custom key
  storage embed it and call Init.
- RichCurve: float keys with constant, linear or cubic interpolation, auto
  tangents and pre/post infinity extrapolation.
- IntegralCurve: int32 step keys.

## Handle lifetime

RichCurve and IntegralCurve keep the map in step with every edit they make,
so a handle stays valid until its key is deleted or the curve is reset or
replaced (SetKeys, UnmarshalBinary).

An IndexedCurve whose owner changes the key count behind its back rebuilds
the whole map on the next query, and every earlier handle is lost. The check
compares counts only: reordering keys at the same count is not detected, the
owner must call Invalidate.

## Encodings

MarshalBinary writes keys and settings only. MarshalTransaction also writes
the handle map and is meant for undo buffers (see the transaction package),
where a restored curve must hand back the same handles it had before.

Nothing in this package is safe for concurrent use.
*/
