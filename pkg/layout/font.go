package layout

import (
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// PxFromFixed rounds a 26.6 fixed point length to pixels.
func PxFromFixed(v fixed.Int26_6) Px {
	return Px(v.Round())
}

// Fixed returns p as a 26.6 fixed point length.
func (p Px) Fixed() fixed.Int26_6 {
	return fixed.I(int(p))
}

// FontSizeFromFace returns the font size implied by face: its ascent plus
// descent.
func FontSizeFromFace(face font.Face) Px {
	m := face.Metrics()
	return PxFromFixed(m.Ascent + m.Descent)
}

// WithFontFace runs f with the font size of face.
func WithFontFace[R any](face font.Face, f func() R) R {
	return WithFontSize(FontSizeFromFace(face), f)
}
