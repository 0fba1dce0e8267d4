package events

import (
	"time"

	"github.com/google/uuid"
)

// Account lifecycle events form the audit trail for registration, the
// bootstrap grant and administrative status transitions.
const (
	UserRegistered   = "user.registered"
	UserBootstrapped = "user.bootstrapped"
	UserApproved     = "user.approved"
	UserRejected     = "user.rejected"
	UserBlocked      = "user.blocked"
	UserReactivated  = "user.reactivated"
	UserUpdated      = "user.updated"
)

func newAccountEvent(eventType, userID, email string, extra map[string]interface{}) BaseEvent {
	data := map[string]interface{}{
		"user_id": userID,
		"email":   email,
	}
	for k, v := range extra {
		data[k] = v
	}
	return BaseEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		Data:      data,
	}
}

func NewUserRegistered(userID, email, role string) BaseEvent {
	return newAccountEvent(UserRegistered, userID, email, map[string]interface{}{
		"role": role,
	})
}

// NewUserBootstrapped records the automatic administrator grant for the first
// account or the designated bootstrap address.
func NewUserBootstrapped(userID, email, reason string) BaseEvent {
	return newAccountEvent(UserBootstrapped, userID, email, map[string]interface{}{
		"reason": reason,
	})
}

func NewUserApproved(userID, email, approvedBy string) BaseEvent {
	return newAccountEvent(UserApproved, userID, email, map[string]interface{}{
		"approved_by": approvedBy,
	})
}

func NewUserRejected(userID, email, rejectedBy string) BaseEvent {
	return newAccountEvent(UserRejected, userID, email, map[string]interface{}{
		"rejected_by": rejectedBy,
	})
}

func NewUserBlocked(userID, email, blockedBy string) BaseEvent {
	return newAccountEvent(UserBlocked, userID, email, map[string]interface{}{
		"blocked_by": blockedBy,
	})
}

func NewUserReactivated(userID, email, reactivatedBy string) BaseEvent {
	return newAccountEvent(UserReactivated, userID, email, map[string]interface{}{
		"reactivated_by": reactivatedBy,
	})
}

func NewUserUpdated(userID, email, updatedBy string, changes map[string]interface{}) BaseEvent {
	extra := map[string]interface{}{
		"updated_by": updatedBy,
	}
	for k, v := range changes {
		extra[k] = v
	}
	return newAccountEvent(UserUpdated, userID, email, extra)
}
