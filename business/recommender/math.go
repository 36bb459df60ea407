package recommender

func dot(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

// meanVectors returns the component-wise mean of the given rows. All rows
// must share the same dimension; nil on empty input.
func meanVectors(rows [][]float64) []float64 {
	if len(rows) == 0 {
		return nil
	}

	mean := make([]float64, len(rows[0]))
	for _, row := range rows {
		for i, v := range row {
			mean[i] += v
		}
	}

	n := float64(len(rows))
	for i := range mean {
		mean[i] /= n
	}

	return mean
}
