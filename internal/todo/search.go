package todo

import "strings"

// Search returns the tasks whose name, category or any tag contains query.
// Matching is case-sensitive and the input order is preserved.
func Search(tasks []Task, query string) []Task {
	var matches []Task
	for _, t := range tasks {
		if t.Matches(query) {
			matches = append(matches, t)
		}
	}
	return matches
}

// Matches reports whether query is a substring of the task's name,
// category or one of its tags.
func (t *Task) Matches(query string) bool {
	if strings.Contains(t.Name, query) {
		return true
	}
	if t.Category != "" && strings.Contains(t.Category, query) {
		return true
	}
	for _, tag := range t.Tags {
		if strings.Contains(tag, query) {
			return true
		}
	}
	return false
}
