package png

import "encoding/binary"

// ExpandBuffer8Bit converts 1, 2 and 4-bit images to one byte per sample.
// Grayscale levels are scaled to the full 0-255 range; palette indices are
// kept as is. Images already at 8 or 16 bits are left untouched.
func (p *Info) ExpandBuffer8Bit() error {
	if p.BitDepth >= 8 {
		return nil
	}

	depth := p.BitDepth
	mask := byte(1<<depth - 1)
	var scale byte = 1
	if p.ColorType == ColorGray {
		scale = 0xff / mask
	}

	out := make([]byte, 0, p.Width*p.Height*p.ColorType.Samples())
	p.forEachPass(func(_ pass, width, height, rowBytes int, data []byte) {
		for y := range height {
			row := data[y*rowBytes : (y+1)*rowBytes]
			for x := range width {
				bit := x * depth
				v := row[bit>>3] >> (8 - depth - bit&7) & mask
				out = append(out, v*scale)
			}
		}
	})

	// A gray colour key is stored at the original depth.
	if p.ColorType == ColorGray && len(p.Trans) == 2 {
		key := binary.BigEndian.Uint16(p.Trans) & uint16(mask)
		p.Trans = []byte{0, byte(key) * scale}
	}

	p.Image = out
	p.BitDepth = 8
	return nil
}
