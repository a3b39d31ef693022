// Package mcpserver exposes the task service as Model Context Protocol tools.
//
// The tools mirror the HTTP API: list_tasks, get_task, insert_task,
// update_task and delete_task. Client mistakes (bad arguments, validation
// failures, unknown IDs) are reported as tool errors rather than protocol
// errors, so an agent sees the message and can retry.
package mcpserver
