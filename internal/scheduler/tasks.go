package scheduler

import (
	"encoding/json"
	"fmt"

	"leadscout_backend/internal/business"

	"github.com/hibiken/asynq"
)

const TaskReconcileLeads = "leads.reconcile"

// ReconcilePayload is a deferred import of candidates into one owner's leads.
type ReconcilePayload struct {
	OwnerID    string            `json:"ownerId"`
	Region     string            `json:"region,omitempty"`
	Candidates []business.Result `json:"candidates"`
}

func NewReconcileTask(payload ReconcilePayload) (*asynq.Task, error) {
	if payload.OwnerID == "" {
		return nil, fmt.Errorf("reconcile task: owner is required")
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskReconcileLeads, data), nil
}

func ParseReconcilePayload(task *asynq.Task) (ReconcilePayload, error) {
	var payload ReconcilePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return ReconcilePayload{}, err
	}
	return payload, nil
}
