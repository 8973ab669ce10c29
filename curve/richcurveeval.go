package curve

import "math"

const smallNumber = 1e-8

// Eval returns the value of the curve at time. An empty curve evaluates to
// its default value if set, else to defaultValue.
func (c *RichCurve) Eval(time, defaultValue float64) float64 {
	time, offset := c.remapTime(time)

	value := defaultValue
	if c.hasDefaultValue {
		value = c.defaultValue
	}

	keys := c.keys
	n := len(keys)
	switch {
	case n == 0:
		return value

	case n < 2 || time <= keys[0].Time:
		if c.PreInfinityExtrap == ExtrapolationLinear && n > 1 {
			value = extrapolateLinear(keys[0], keys[1], time)
		} else {
			value = keys[0].Value
		}

	case time < keys[n-1].Time:
		// first key strictly after time, never 0 here
		lo, count := 1, n-2
		for count > 0 {
			step := count / 2
			mid := lo + step
			if time >= keys[mid].Time {
				lo = mid + 1
				count -= step + 1
			} else {
				count = step
			}
		}
		value = interpolate(keys[lo-1], keys[lo], time)

	default:
		if c.PostInfinityExtrap == ExtrapolationLinear {
			value = extrapolateLinear(keys[n-2], keys[n-1], time)
		} else {
			value = keys[n-1].Value
		}
	}
	return value + offset
}

func interpolate(k0, k1 RichCurveKey, time float64) float64 {
	diff := k1.Time - k0.Time
	if diff <= 0 || k0.InterpMode == InterpConstant {
		return k0.Value
	}
	alpha := (time - k0.Time) / diff
	p0, p3 := k0.Value, k1.Value
	if k0.InterpMode == InterpLinear {
		return p0 + alpha*(p3-p0)
	}
	const oneThird = 1.0 / 3.0
	p1 := p0 + k0.LeaveTangent*diff*oneThird
	p2 := p3 - k1.ArriveTangent*diff*oneThird
	return bezierInterp(p0, p1, p2, p3, alpha)
}

func extrapolateLinear(a, b RichCurveKey, time float64) float64 {
	dt := b.Time - a.Time
	if math.Abs(dt) < smallNumber {
		return a.Value
	}
	slope := (b.Value - a.Value) / dt
	if time <= a.Time {
		return a.Value + slope*(time-a.Time)
	}
	return b.Value + slope*(time-b.Time)
}

// bezierInterp evaluates a cubic bezier by de Casteljau.
func bezierInterp(p0, p1, p2, p3, t float64) float64 {
	lerp := func(a, b float64) float64 { return a + t*(b-a) }
	p01, p12, p23 := lerp(p0, p1), lerp(p1, p2), lerp(p2, p3)
	p012, p123 := lerp(p01, p12), lerp(p12, p23)
	return lerp(p012, p123)
}

// remapTime folds time into the key range for the cycling extrapolation
// modes and returns the value offset accumulated by CycleWithOffset.
func (c *RichCurve) remapTime(time float64) (float64, float64) {
	n := len(c.keys)
	if n < 2 {
		return time, 0
	}
	first, last := c.keys[0], c.keys[n-1]

	var mode Extrapolation
	var cycleValue float64
	switch {
	case time <= first.Time:
		mode, cycleValue = c.PreInfinityExtrap, first.Value-last.Value
	case time >= last.Time:
		mode, cycleValue = c.PostInfinityExtrap, last.Value-first.Value
	default:
		return time, 0
	}
	if mode == ExtrapolationLinear || mode == ExtrapolationConstant {
		return time, 0
	}

	remapped, cycles := cycleTime(first.Time, last.Time, time)
	switch mode {
	case ExtrapolationCycleWithOffset:
		return remapped, cycleValue * float64(cycles)
	case ExtrapolationOscillate:
		if cycles%2 == 1 {
			remapped = first.Time + (last.Time - remapped)
		}
	}
	return remapped, 0
}

// cycleTime maps time into [minTime, maxTime] and returns how many whole
// periods it was moved by.
func cycleTime(minTime, maxTime, time float64) (float64, int) {
	duration := maxTime - minTime
	if duration <= 0 {
		return minTime, 0
	}
	init := time
	cycles := 0
	switch {
	case time > maxTime:
		cycles = int(math.Floor((maxTime - time) / duration))
		time += duration * float64(cycles)
	case time < minTime:
		cycles = int(math.Floor((time - minTime) / duration))
		time -= duration * float64(cycles)
	}
	if time == maxTime && init < minTime {
		time = minTime
	}
	if time == minTime && init > maxTime {
		time = maxTime
	}
	if cycles < 0 {
		cycles = -cycles
	}
	return time, cycles
}
