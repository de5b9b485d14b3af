package geom

// Transform is an axis-aligned linear transform:
//
//	x' = x*MX + BX
//	y' = y*MY + BY
type Transform struct {
	MX, MY float64
	BX, BY float64
}

func Identity() Transform {
	return Transform{MX: 1, MY: 1}
}

func (t Transform) Apply(x, y float64) (float64, float64) {
	return x*t.MX + t.BX, y*t.MY + t.BY
}

// Invert returns the transform that undoes t. Both scale factors must be
// non-zero.
func (t Transform) Invert() Transform {
	return Transform{
		MX: 1 / t.MX,
		MY: 1 / t.MY,
		BX: -t.BX / t.MX,
		BY: -t.BY / t.MY,
	}
}

// TransformTo derives the transform mapping b onto dst. An axis without
// extent keeps a scale of 1 and is only translated.
func (b Bounds) TransformTo(dst Bounds) Transform {
	t := Transform{MX: 1, MY: 1}
	if w := b.Width(); w > 0 {
		t.MX = dst.Width() / w
	}
	if h := b.Height(); h > 0 {
		t.MY = dst.Height() / h
	}
	t.BX = dst.XMin() - b.XMin()*t.MX
	t.BY = dst.YMin() - b.YMin()*t.MY
	return t
}
