package router

import "strings"

// TaskCategory is the coarse kind of work a request represents.
type TaskCategory string

const (
	TaskRealtime   TaskCategory = "realtime"
	TaskCoding     TaskCategory = "coding"
	TaskReasoning  TaskCategory = "reasoning"
	TaskGeneration TaskCategory = "generation"
	TaskDefault    TaskCategory = "default"
)

// Tasks lists every category in a stable order.
var Tasks = []TaskCategory{TaskRealtime, TaskCoding, TaskReasoning, TaskGeneration, TaskDefault}

// ParseTask is case-insensitive; anything unrecognised is TaskDefault.
func ParseTask(s string) TaskCategory {
	t := TaskCategory(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Tasks {
		if t == known {
			return t
		}
	}
	return TaskDefault
}
