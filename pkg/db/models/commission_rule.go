package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dmarquina/sellerhub-backend/pkg/enums"
)

// CommissionRule targets a (reference, reference_id) key and owns exactly one
// rate. ReferenceID is a composite string for the seller+type/category
// references and empty for the site-wide default. At most one active rule may
// exist per key; the service enforces this with an explicit lookup before
// create, not a database constraint.
type CommissionRule struct {
	ID          uuid.UUID                     `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string                        `gorm:"column:name;not null"`
	Reference   enums.CommissionRuleReference `gorm:"column:reference;type:text;not null"`
	ReferenceID string                        `gorm:"column:reference_id;not null;default:''"`
	Rate        *CommissionRate               `gorm:"foreignKey:RuleID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time                     `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time                     `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt   gorm.DeletedAt                `gorm:"column:deleted_at;index"`
}
