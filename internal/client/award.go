package client

import (
	"context"
	"errors"
	"strings"

	"school-store/internal/domain/dto"

	"github.com/google/uuid"
)

var (
	ErrNoStudentsSelected  = errors.New("no students selected")
	ErrNonPositiveAmount   = errors.New("amount must be positive")
	ErrAwardReasonRequired = errors.New("reason is required")
)

type AwardFailure struct {
	UserID  uuid.UUID
	Message string
}

type AwardSummary struct {
	Awarded int
	Failed  []AwardFailure
}

// AwardFlow submits one award per selected student, sequentially. Applied
// awards are not rolled back when a later one fails; the summary reports both
// sides.
type AwardFlow struct {
	api *Client
}

func NewAwardFlow(api *Client) *AwardFlow {
	return &AwardFlow{api: api}
}

// Award validates client-side first; a validation failure means no request
// was sent at all.
func (f *AwardFlow) Award(ctx context.Context, studentIDs []uuid.UUID, amount int, reason string) (AwardSummary, error) {
	if len(studentIDs) == 0 {
		return AwardSummary{}, ErrNoStudentsSelected
	}
	if amount <= 0 {
		return AwardSummary{}, ErrNonPositiveAmount
	}
	if strings.TrimSpace(reason) == "" {
		return AwardSummary{}, ErrAwardReasonRequired
	}

	var summary AwardSummary
	for _, studentID := range studentIDs {
		_, err := f.api.Award(ctx, dto.AwardRequest{
			UserID: studentID,
			Amount: amount,
			Reason: reason,
		})
		if err != nil {
			summary.Failed = append(summary.Failed, AwardFailure{
				UserID:  studentID,
				Message: failureMessage(err),
			})
			continue
		}
		summary.Awarded++
	}

	return summary, nil
}
