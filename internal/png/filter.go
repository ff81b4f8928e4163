package png

import "fmt"

// Row filter types.
const (
	filterNone    = 0
	filterSub     = 1
	filterUp      = 2
	filterAverage = 3
	filterPaeth   = 4
)

// unfilter reverses the row filter in place. prev is the previous
// unfiltered row of the same pass, or nil for the first row. bpp is the
// distance in bytes to the corresponding byte of the previous pixel,
// rounded up to 1.
func unfilter(filter byte, cur, prev []byte, bpp int) error {
	switch filter {
	case filterNone:

	case filterSub:
		for i := bpp; i < len(cur); i++ {
			cur[i] += cur[i-bpp]
		}

	case filterUp:
		if prev == nil {
			return nil
		}
		for i := range cur {
			cur[i] += prev[i]
		}

	case filterAverage:
		for i := range cur {
			var left, up int
			if i >= bpp {
				left = int(cur[i-bpp])
			}
			if prev != nil {
				up = int(prev[i])
			}
			cur[i] += byte((left + up) / 2)
		}

	case filterPaeth:
		for i := range cur {
			var a, b, c byte
			if i >= bpp {
				a = cur[i-bpp]
			}
			if prev != nil {
				b = prev[i]
				if i >= bpp {
					c = prev[i-bpp]
				}
			}
			cur[i] += paeth(a, b, c)
		}

	default:
		return fmt.Errorf("%w: filter type %d", ErrCorrupt, filter)
	}
	return nil
}

// paeth returns whichever of a (left), b (up) and c (upper left) is closest
// to a + b - c, preferring a then b on ties.
func paeth(a, b, c byte) byte {
	p := int(a) + int(b) - int(c)
	pa := abs(p - int(a))
	pb := abs(p - int(b))
	pc := abs(p - int(c))
	if pa <= pb && pa <= pc {
		return a
	}
	if pb <= pc {
		return b
	}
	return c
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
