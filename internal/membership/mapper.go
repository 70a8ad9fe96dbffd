package membership

import (
	"time"

	"github.com/google/uuid"

	"github.com/lakeshoremuseum/museum-backend/pkg/db/models"
	"github.com/lakeshoremuseum/museum-backend/pkg/types"
)

// MembershipDTO is the transport shape returned to API consumers.
type MembershipDTO struct {
	ID                 uuid.UUID  `json:"id"`
	UserID             uuid.UUID  `json:"user_id"`
	MembershipType     string     `json:"membership_type"`
	IsActive           bool       `json:"is_active"`
	DiscountPercentage int        `json:"discount_percentage"`
	ExpirationDate     *time.Time `json:"expiration_date,omitempty"`
	UnlimitedVisits    bool       `json:"unlimited_visits"`
	TicketQuota        int        `json:"ticket_quota"`
	Description        string     `json:"description"`
	CreatedAt          time.Time  `json:"created_at"`
}

// ToRecord converts a stored row into the resolver's input shape.
func ToRecord(m *models.MembershipRecord) *Record {
	if m == nil {
		return nil
	}
	return &Record{
		MembershipType:     string(m.MembershipType),
		IsActive:           types.FlexBool(m.IsActive),
		DiscountPercentage: m.DiscountPercentage,
		ExpirationDate:     copyTimePointer(m.ExpirationDate),
		UnlimitedVisits:    types.FlexBool(m.UnlimitedVisits),
	}
}

// ToDTO converts a stored row into the external DTO, resolving standing as
// of today.
func ToDTO(m *models.MembershipRecord, today time.Time) *MembershipDTO {
	if m == nil {
		return nil
	}
	resolved := Resolve(ToRecord(m), today)
	return &MembershipDTO{
		ID:                 m.ID,
		UserID:             m.UserID,
		MembershipType:     string(m.MembershipType),
		IsActive:           resolved.Active,
		DiscountPercentage: m.DiscountPercentage,
		ExpirationDate:     copyTimePointer(m.ExpirationDate),
		UnlimitedVisits:    m.UnlimitedVisits,
		TicketQuota:        resolved.TicketQuota,
		Description:        Describe(string(m.MembershipType)),
		CreatedAt:          m.CreatedAt,
	}
}

// ToDTOs converts stored rows into external DTOs. The result is never nil
// so callers serialize an empty list, not null.
func ToDTOs(rows []models.MembershipRecord, today time.Time) []MembershipDTO {
	dtos := make([]MembershipDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *ToDTO(&rows[i], today))
	}
	return dtos
}

func copyTimePointer(src *time.Time) *time.Time {
	if src == nil {
		return nil
	}
	dst := *src
	return &dst
}
