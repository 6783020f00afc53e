// Package tracking implements the time-tracking domain: clients, projects,
// project tasks, professional-to-project assignments and logged hours.
//
// Visibility of hours is role-scoped. Users see their own entries,
// supervisors additionally see entries on projects they are assigned to,
// admins see everything.
package tracking
