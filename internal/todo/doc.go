// Package todo defines the task model shared by the store, the display
// layer and the CLI.
//
// A task looks like this when exported:
//
//	{
//	  "id": 3,
//	  "task": "Renew passport",
//	  "done": false,
//	  "due_date": "2024-12-31",
//	  "completion_date": null,
//	  "priority": 2,
//	  "category": "Errands",
//	  "tags": "travel,admin"
//	}
//
// # Invariants
//
//   - completion_date is set if and only if done is true
//   - dates are calendar dates in YYYY-MM-DD form, stored at UTC midnight
//   - a task carries at most one category and any number of unique tags
//
// # Search
//
// Search filters an already-loaded task list. Matching is a case-sensitive
// substring test against the name, the category and every tag.
package todo
