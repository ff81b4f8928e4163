package png

// pass describes one Adam7 pass: pixel (x, y) of the pass lands at
// ((x<<xShift) + (1<<xShift) - xBias - 1, (y<<yShift) + (1<<yShift) - yBias - 1)
// in the full image, and a W×H image yields ((W+xBias)>>xShift) ×
// ((H+yBias)>>yShift) pixels in the pass.
type pass struct {
	xBias, yBias   int
	xShift, yShift uint
}

var adam7 = [7]pass{
	{xBias: 7, yBias: 7, xShift: 3, yShift: 3},
	{xBias: 3, yBias: 7, xShift: 3, yShift: 3},
	{xBias: 3, yBias: 3, xShift: 2, yShift: 3},
	{xBias: 1, yBias: 3, xShift: 2, yShift: 2},
	{xBias: 1, yBias: 1, xShift: 1, yShift: 2},
	{xBias: 0, yBias: 1, xShift: 1, yShift: 1},
	{xBias: 0, yBias: 0, xShift: 0, yShift: 1},
}

// progressive is the identity layout of a non-interlaced image.
var progressive = [1]pass{{}}

func (p pass) size(width, height int) (int, int) {
	return (width + p.xBias) >> p.xShift, (height + p.yBias) >> p.yShift
}

func (p pass) x(x int) int {
	return x<<p.xShift + 1<<p.xShift - p.xBias - 1
}

func (p pass) y(y int) int {
	return y<<p.yShift + 1<<p.yShift - p.yBias - 1
}
