package domain

// Tab is the bottom-navigation tab last selected by the user.
type Tab string

const (
	TabHome    Tab = "home"
	TabDiary   Tab = "diary"
	TabMap     Tab = "map"
	TabExpense Tab = "expense"
)

// Valid reports whether t is a known tab.
func (t Tab) Valid() bool {
	switch t {
	case TabHome, TabDiary, TabMap, TabExpense:
		return true
	}
	return false
}
