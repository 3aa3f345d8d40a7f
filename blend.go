package scrollbg

// BlendMode is a Porter-Duff operator whose source is a coverage mask:
// the mask value acts as source alpha, source color is irrelevant.
type BlendMode uint8

const (
	// BlendDestinationIn keeps destination where the source exists: D * Sa.
	BlendDestinationIn BlendMode = iota
	// BlendDestinationOut removes destination where the source exists: D * (1 - Sa).
	BlendDestinationOut
)

// String returns the operator name.
func (m BlendMode) String() string {
	switch m {
	case BlendDestinationIn:
		return "destination-in"
	case BlendDestinationOut:
		return "destination-out"
	default:
		return "unknown"
	}
}

// blendDestinationIn scales premultiplied destination by source alpha.
func blendDestinationIn(sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return mulDiv255(dr, sa), mulDiv255(dg, sa), mulDiv255(db, sa), mulDiv255(da, sa)
}

// blendDestinationOut scales premultiplied destination by inverse source alpha.
func blendDestinationOut(sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	invSa := 255 - sa
	return mulDiv255(dr, invSa), mulDiv255(dg, invSa), mulDiv255(db, invSa), mulDiv255(da, invSa)
}

// mulDiv255 computes (a * b) / 255 rounded to nearest.
func mulDiv255(a, b byte) byte {
	return byte((uint16(a)*uint16(b) + 127) / 255)
}

// fillMask composites coverage m onto dst with mode. Mask and pixmap share
// their origin; pixels the mask does not cover see coverage 0.
func fillMask(dst *Pixmap, m *Mask, mode BlendMode) {
	op := blendDestinationIn
	if mode == BlendDestinationOut {
		op = blendDestinationOut
	}

	pix := dst.Data()
	w, h := dst.Width(), dst.Height()
	for y := 0; y < h; y++ {
		row := pix[y*w*4 : (y+1)*w*4]
		for x := 0; x < w; x++ {
			sa := m.At(x, y)
			i := x * 4
			row[i], row[i+1], row[i+2], row[i+3] = op(sa, row[i], row[i+1], row[i+2], row[i+3])
		}
	}
}
