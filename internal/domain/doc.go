// Package domain contains the core business entities of the to-do API: the
// Task record, the TaskDraft callers submit to create or change one, and the
// rules that keep a task's completion timestamps consistent. It is
// independent of storage and transport.
package domain
