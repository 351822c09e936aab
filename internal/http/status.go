package http

import (
	"net/http"

	"github.com/mrlokans/catalog/internal/config"
)

// Operation names a class of write reported through the status table.
type Operation string

const (
	OperationCreate Operation = "create"
	OperationUpdate Operation = "update"
	OperationDelete Operation = "delete"
)

// StatusTable holds the success status reported for each write operation.
type StatusTable map[Operation]int

// NewStatusTable builds the table for a mode. Legacy mode reports 201 for
// every write, which existing API clients depend on.
func NewStatusTable(mode config.StatusMode) StatusTable {
	if mode == config.StatusModeConventional {
		return StatusTable{
			OperationCreate: http.StatusCreated,
			OperationUpdate: http.StatusOK,
			OperationDelete: http.StatusOK,
		}
	}
	return StatusTable{
		OperationCreate: http.StatusCreated,
		OperationUpdate: http.StatusCreated,
		OperationDelete: http.StatusCreated,
	}
}

// For returns the status for op, 200 for operations missing from the table.
func (t StatusTable) For(op Operation) int {
	if status, ok := t[op]; ok {
		return status
	}
	return http.StatusOK
}
