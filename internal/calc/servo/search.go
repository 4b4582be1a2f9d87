package servo

import "math"

const searchIterations = 80

// bisect finds a root of f in [lo, hi] given f(lo) and f(hi) of opposite
// sign.
func bisect(f func(float64) float64, lo, hi float64) float64 {
	flo := f(lo)
	if flo == 0 {
		return lo
	}
	for i := 0; i < searchIterations; i++ {
		mid := 0.5 * (lo + hi)
		fm := f(mid)
		if fm == 0 {
			return mid
		}
		if (fm > 0) == (flo > 0) {
			lo, flo = mid, fm
		} else {
			hi = mid
		}
	}
	return 0.5 * (lo + hi)
}

// goldenMax returns the maximizer of a unimodal f on [lo, hi].
func goldenMax(f func(float64) float64, lo, hi float64) float64 {
	r := (math.Sqrt(5) - 1) / 2
	a, b := lo, hi
	c := b - r*(b-a)
	d := a + r*(b-a)
	fc, fd := f(c), f(d)
	for i := 0; i < searchIterations && b-a > 1e-9; i++ {
		if fc > fd {
			b, d, fd = d, c, fc
			c = b - r*(b-a)
			fc = f(c)
		} else {
			a, c, fc = c, d, fd
			d = a + r*(b-a)
			fd = f(d)
		}
	}
	return 0.5 * (a + b)
}

// scanMax samples f at n+1 evenly spaced points of [lo, hi] and refines the
// best one with goldenMax on its neighbouring interval. f need not be
// unimodal over the whole range.
func scanMax(f func(float64) float64, lo, hi float64, n int) float64 {
	step := (hi - lo) / float64(n)
	best, fBest := 0, f(lo)
	for i := 1; i <= n; i++ {
		if fx := f(lo + float64(i)*step); fx > fBest {
			best, fBest = i, fx
		}
	}
	a := lo + float64(max(best-1, 0))*step
	b := lo + float64(min(best+1, n))*step
	if x := goldenMax(f, a, b); f(x) > fBest {
		return x
	}
	return lo + float64(best)*step
}
