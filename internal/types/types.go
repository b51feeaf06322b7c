// Copyright 2025 Quittance Labs
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"time"
)

type User struct {
	ID           string     `db:"id" json:"id"`
	Email        string     `db:"email" json:"email"`
	PasswordHash string     `db:"password_hash" json:"-"`
	Name         string     `db:"name" json:"name"`
	Address      string     `db:"address" json:"address"`
	Phone        *string    `db:"phone" json:"phone"`
	BirthDate    *time.Time `db:"birth_date" json:"birth_date"`
	BirthPlace   *string    `db:"birth_place" json:"birth_place"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

type Organization struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	LegalForm string    `db:"legal_form" json:"legal_form"`
	Siret     *string   `db:"siret" json:"siret"`
	Address   string    `db:"address" json:"address"`
	Phone     *string   `db:"phone" json:"phone"`
	Email     *string   `db:"email" json:"email"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type Membership struct {
	ID              string    `db:"id" json:"id"`
	OrganizationID  string    `db:"organization_id" json:"organization_id"`
	UserID          string    `db:"user_id" json:"user_id"`
	Role            string    `db:"role" json:"role"`
	SharePercentage *float64  `db:"share_percentage" json:"share_percentage"`
	JoinedAt        time.Time `db:"joined_at" json:"joined_at"`
}

// MemberDetail is the joined (membership, user summary) view returned
// when listing an organization's members.
type MemberDetail struct {
	MembershipID    string   `db:"id" json:"id"`
	Role            string   `db:"role" json:"role"`
	SharePercentage *float64 `db:"share_percentage" json:"share_percentage"`
	UserID          string   `db:"user_id" json:"user_id"`
	UserName        string   `db:"user_name" json:"user_name"`
	UserEmail       string   `db:"user_email" json:"user_email"`
}

type Property struct {
	ID           string    `db:"id" json:"id"`
	Owner        Owner     `json:"owner"`
	Address      string    `db:"address" json:"address"`
	PropertyType string    `db:"property_type" json:"property_type"`
	Furnished    bool      `db:"furnished" json:"furnished"`
	SurfaceArea  *float64  `db:"surface_area" json:"surface_area"`
	Rooms        *int      `db:"rooms" json:"rooms"`
	MaxOccupants int       `db:"max_occupants" json:"max_occupants"`
	Description  *string   `db:"description" json:"description"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Tenant is a renter record kept by a landlord. It is always directly
// owned by the user that created it.
type Tenant struct {
	ID         string     `db:"id" json:"id"`
	UserID     string     `db:"user_id" json:"user_id"`
	Name       string     `db:"name" json:"name"`
	Email      *string    `db:"email" json:"email"`
	Phone      *string    `db:"phone" json:"phone"`
	Address    *string    `db:"address" json:"address"`
	BirthDate  *time.Time `db:"birth_date" json:"birth_date"`
	BirthPlace *string    `db:"birth_place" json:"birth_place"`
	Notes      *string    `db:"notes" json:"notes"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at" json:"updated_at"`
}

type Lease struct {
	ID             string     `db:"id" json:"id"`
	PropertyID     string     `db:"property_id" json:"property_id"`
	TenantID       string     `db:"tenant_id" json:"tenant_id"`
	StartDate      time.Time  `db:"start_date" json:"start_date"`
	EndDate        *time.Time `db:"end_date" json:"end_date"`
	DurationMonths int        `db:"duration_months" json:"duration_months"`
	MonthlyRent    float64    `db:"monthly_rent" json:"monthly_rent"`
	Charges        float64    `db:"charges" json:"charges"`
	Deposit        float64    `db:"deposit" json:"deposit"`
	RentRevision   bool       `db:"rent_revision" json:"rent_revision"`
	InventoryDate  *time.Time `db:"inventory_date" json:"inventory_date"`
	Status         string     `db:"status" json:"status"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
}

type Receipt struct {
	ID          string     `db:"id" json:"id"`
	LeaseID     string     `db:"lease_id" json:"lease_id"`
	PeriodMonth int        `db:"period_month" json:"period_month"`
	PeriodYear  int        `db:"period_year" json:"period_year"`
	BaseRent    float64    `db:"base_rent" json:"base_rent"`
	Charges     float64    `db:"charges" json:"charges"`
	TotalAmount float64    `db:"total_amount" json:"total_amount"`
	PaymentDate time.Time  `db:"payment_date" json:"payment_date"`
	Status      string     `db:"status" json:"status"`
	EmailSentAt *time.Time `db:"email_sent_at" json:"email_sent_at"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}
