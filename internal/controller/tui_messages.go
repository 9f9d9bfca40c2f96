package controller

type verdictsMsg struct {
	rows []verdictRow
}

// routineItem is a verdictRow as a list item.
type routineItem struct {
	verdictRow
}

func (r routineItem) FilterValue() string {
	return r.path + " " + r.routine
}
