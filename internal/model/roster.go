package model

// Roster is the ordered list of recognized player names. It is fixed for the
// lifetime of the process; times are only ever extracted or accepted for
// names that appear on it.
type Roster []string

// DefaultRoster mirrors the player columns of the crossword_times table.
var DefaultRoster = Roster{
	"Merrick", "Moi", "Sidney", "John", "Lauren", "Vy", "Marcus", "Chris", "Leslie",
}

// Contains reports whether name is on the roster. Matching is exact: roster
// names are also column names in the backing table.
func (r Roster) Contains(name string) bool {
	for _, n := range r {
		if n == name {
			return true
		}
	}
	return false
}
