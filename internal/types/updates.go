// Copyright 2025 Quittance Labs
// SPDX-License-Identifier: AGPL-3.0

package types

import "time"

// Update payloads carry optional fields only. A nil field leaves the
// stored value untouched; a set field must still pass validation.

type OrganizationUpdate struct {
	Name      *string `json:"name" validate:"omitnil,min=1"`
	LegalForm *string `json:"legal_form" validate:"omitnil,min=1"`
	Siret     *string `json:"siret"`
	Address   *string `json:"address" validate:"omitnil,min=1"`
	Phone     *string `json:"phone"`
	Email     *string `json:"email" validate:"omitnil,email"`
}

type PropertyUpdate struct {
	Owner        *Owner   `json:"owner"`
	Address      *string  `json:"address" validate:"omitnil,min=1"`
	PropertyType *string  `json:"property_type" validate:"omitnil,min=1"`
	Furnished    *bool    `json:"furnished"`
	SurfaceArea  *float64 `json:"surface_area" validate:"omitnil,gt=0"`
	Rooms        *int     `json:"rooms" validate:"omitnil,gt=0"`
	MaxOccupants *int     `json:"max_occupants" validate:"omitnil,gt=0"`
	Description  *string  `json:"description"`
}

type TenantUpdate struct {
	Name       *string    `json:"name" validate:"omitnil,min=1"`
	Email      *string    `json:"email" validate:"omitnil,email"`
	Phone      *string    `json:"phone"`
	Address    *string    `json:"address"`
	BirthDate  *time.Time `json:"birth_date"`
	BirthPlace *string    `json:"birth_place"`
	Notes      *string    `json:"notes"`
}
