package kinematics

// Table is a list of rows of equal width. The first column is the time base.
type Table [][]float64

// Width returns the number of columns of the first row
func (t Table) Width() int {
	if len(t) == 0 {
		return 0
	}
	return len(t[0])
}

// Column returns a copy of column i
func (t Table) Column(i int) []float64 {
	ret := make([]float64, len(t))
	for j, row := range t {
		ret[j] = row[i]
	}
	return ret
}

// SeriesTable converts a series to a two column table of (time, value)
func SeriesTable(s Series) Table {
	ret := make(Table, len(s))
	for i := range s {
		ret[i] = []float64{s[i].Time, s[i].Value}
	}
	return ret
}
