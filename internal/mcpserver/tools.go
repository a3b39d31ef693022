package mcpserver

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// listTasksTool returns a tool definition for listing all tasks.
func listTasksTool() mcp.Tool {
	return mcp.NewTool("list_tasks",
		mcp.WithDescription("List every task in insertion order."),
	)
}

// getTaskTool returns a tool definition for fetching a single task.
func getTaskTool() mcp.Tool {
	return mcp.NewTool("get_task",
		mcp.WithDescription("Get the first task with the given ID."),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("Task ID")),
	)
}

// insertTaskTool returns a tool definition for adding a task.
func insertTaskTool() mcp.Tool {
	return mcp.NewTool("insert_task",
		mcp.WithDescription("Add a task and return the full task list."),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("Caller-chosen task ID")),
		mcp.WithString("description",
			mcp.Required(),
			mcp.Description("What needs doing, 3 to 200 characters")),
		mcp.WithBoolean("completed",
			mcp.Description("Whether the task is already done (defaults to false)")),
	)
}

// updateTaskTool returns a tool definition for changing a task.
func updateTaskTool() mcp.Tool {
	return mcp.NewTool("update_task",
		mcp.WithDescription("Overwrite the description and completion state of a task and return the full task list."),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("ID of the task to update")),
		mcp.WithString("description",
			mcp.Required(),
			mcp.Description("New description, 3 to 200 characters")),
		mcp.WithBoolean("completed",
			mcp.Description("New completion state (defaults to false)")),
	)
}

// deleteTaskTool returns a tool definition for removing a task.
func deleteTaskTool() mcp.Tool {
	return mcp.NewTool("delete_task",
		mcp.WithDescription("Remove the first task with the given ID and return the remaining tasks."),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("ID of the task to delete")),
	)
}
