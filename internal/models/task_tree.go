package models

// FindTask searches a task forest depth-first for id.
func FindTask(tasks []Task, id string) (*Task, bool) {
	for i := range tasks {
		if tasks[i].ID == id {
			return &tasks[i], true
		}
		if found, ok := FindTask(tasks[i].Subtasks, id); ok {
			return found, true
		}
	}
	return nil, false
}

// ReplaceTask returns a copy of tasks with the task matching id swapped for
// replacement, wherever it sits in the forest.
func ReplaceTask(tasks []Task, id string, replacement Task) ([]Task, bool) {
	out := make([]Task, len(tasks))
	replaced := false
	for i, t := range tasks {
		if !replaced && t.ID == id {
			out[i] = replacement
			replaced = true
			continue
		}
		out[i] = t
		if !replaced {
			if subtasks, ok := ReplaceTask(t.Subtasks, id, replacement); ok {
				out[i].Subtasks = subtasks
				replaced = true
			}
		}
	}
	return out, replaced
}

// RemoveTask returns a copy of tasks without the task matching id and its subtree.
func RemoveTask(tasks []Task, id string) ([]Task, bool) {
	out := make([]Task, 0, len(tasks))
	removed := false
	for _, t := range tasks {
		if !removed && t.ID == id {
			removed = true
			continue
		}
		if !removed {
			if subtasks, ok := RemoveTask(t.Subtasks, id); ok {
				t.Subtasks = subtasks
				removed = true
			}
		}
		out = append(out, t)
	}
	return out, removed
}

// CountTasks counts every node in a task forest.
func CountTasks(tasks []Task) int {
	n := len(tasks)
	for _, t := range tasks {
		n += CountTasks(t.Subtasks)
	}
	return n
}
