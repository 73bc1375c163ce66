package types

import "strconv"

// UserID identifies the owner of tasks, projects and labels.
// Every owner-scoped repository and service call takes one, which keeps a
// task or label id from being passed where an owner is expected.
type UserID int

// ToInt converts the id back to int for query arguments
func (id UserID) ToInt() int {
	return int(id)
}

// String renders the id the way it appears in token subjects
func (id UserID) String() string {
	return strconv.Itoa(int(id))
}

// UserIDFromInt creates a UserID from an int value
func UserIDFromInt(i int) UserID {
	return UserID(i)
}

// ParseUserID parses a token subject back into a UserID
func ParseUserID(s string) (UserID, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	return UserID(i), nil
}
