package geom

// RingArea returns the signed area of a closed ring: positive when the ring
// winds counter-clockwise with y pointing up.
func RingArea(ring [][2]float64) float64 {
	if len(ring) < 3 {
		return 0
	}
	var sum float64
	for i := 0; i < len(ring)-1; i++ {
		sum += ring[i][0]*ring[i+1][1] - ring[i+1][0]*ring[i][1]
	}
	// closes the ring when the last vertex does not repeat the first
	last := ring[len(ring)-1]
	sum += last[0]*ring[0][1] - ring[0][0]*last[1]
	return sum / 2
}
