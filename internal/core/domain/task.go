package domain

import "time"

// Task is a todo item, optionally attached to a customer or a deal.
type Task struct {
	TaskID      string     `json:"taskID" db:"task_id"`
	Title       string     `json:"title" db:"title"`
	Description string     `json:"description" db:"description"`
	DueDate     *time.Time `json:"dueDate,omitempty" db:"due_date"`
	Priority    string     `json:"priority" db:"priority"`
	Completed   bool       `json:"completed" db:"completed"`
	CustomerID  *string    `json:"customerID,omitempty" db:"customer_id"`
	DealID      *string    `json:"dealID,omitempty" db:"deal_id"`
	Ownership
	AuditFields
}
