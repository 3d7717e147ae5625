package models

import (
	"encoding/json"
	"time"
)

// Audit actions.
const (
	AuditTreatmentCreated = "treatment_created"
	AuditTreatmentUpdated = "treatment_updated"
	AuditTreatmentDeleted = "treatment_deleted"

	AuditPhonebookCreated  = "phonebook_created"
	AuditPhonebookUpdated  = "phonebook_updated"
	AuditPhonebookDeleted  = "phonebook_deleted"
	AuditPhonebookRestored = "phonebook_restored"

	AuditInviteCreated = "invite_created"
	AuditInviteDeleted = "invite_deleted"
)

// Audited entities.
const (
	AuditEntityTreatment  = "treatment"
	AuditEntityPhonebook  = "phonebook"
	AuditEntityShopInvite = "shop_invite"
)

// AuditLog is one shop-scoped event. Metadata holds a JSON document.
type AuditLog struct {
	ID     uint  `gorm:"primaryKey" json:"id"`
	ShopID uint  `gorm:"index:idx_audit_logs_shop_created,priority:1;not null" json:"shop_id"`
	UserID *uint `json:"user_id"`

	Action   string `gorm:"size:50;not null" json:"action"`
	Entity   string `gorm:"size:50" json:"entity"`
	EntityID *uint  `json:"entity_id"`
	Metadata string `gorm:"type:text" json:"-"`

	CreatedAt time.Time `gorm:"index:idx_audit_logs_shop_created,priority:2,sort:desc" json:"created_at"`
}

// MarshalJSON emits metadata as an embedded object instead of a quoted string.
func (l AuditLog) MarshalJSON() ([]byte, error) {
	type plain AuditLog
	var meta json.RawMessage
	if l.Metadata != "" && json.Valid([]byte(l.Metadata)) {
		meta = json.RawMessage(l.Metadata)
	}
	return json.Marshal(struct {
		plain
		Metadata json.RawMessage `json:"metadata,omitempty"`
	}{plain(l), meta})
}
