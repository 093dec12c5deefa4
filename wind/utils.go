package wind

// Twa is the wind angle relative to a heading, in (-180,180].
func Twa(heading, wind float64) float64 {
	twa := wind - heading
	if twa <= -180 {
		twa += 360
	}
	if twa > 180 {
		twa -= 360
	}

	return twa
}

// Heading recovers the heading holding a given true wind angle.
func Heading(twa, wind float64) float64 {
	heading := wind - twa
	if heading < 0 {
		heading += 360
	}
	if heading >= 360 {
		heading -= 360
	}

	return heading
}
