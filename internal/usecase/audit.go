package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/SteampunkGill/Docker-final-assignment/internal/domain/model"
	repo "github.com/SteampunkGill/Docker-final-assignment/internal/repository"
)

type orderAuditState struct {
	Status      string `json:"status"`
	TotalAmount string `json:"total_amount,omitempty"`
}

// recordOrderTransition writes the audit row in the caller's transaction.
func recordOrderTransition(
	ctx context.Context,
	logs repo.AuditLogRepository,
	actorID int64,
	action model.AuditAction,
	o model.Order,
	before *model.OrderStatus,
	after model.OrderStatus,
	at time.Time,
) error {
	var beforeJSON string
	if before != nil {
		b, err := json.Marshal(orderAuditState{Status: before.String()})
		if err != nil {
			return err
		}
		beforeJSON = string(b)
	}
	a, err := json.Marshal(orderAuditState{Status: after.String(), TotalAmount: o.TotalAmount.StringFixed(2)})
	if err != nil {
		return err
	}

	return logs.Create(ctx, model.AuditLog{
		ActorUserID:  actorID,
		Action:       action,
		ResourceType: model.AuditResourceOrder,
		ResourceID:   o.ID,
		BeforeJSON:   beforeJSON,
		AfterJSON:    string(a),
		CreatedAt:    at,
	})
}
