// Copyright 2025 Quittance Labs
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"encoding/json"
	"errors"
)

// OwnerKind discriminates the two ways a resource can be held.
type OwnerKind int

const (
	// OwnerDirect means a single user holds the resource.
	OwnerDirect OwnerKind = iota + 1
	// OwnerOrganization means an organization holds the resource and
	// access flows through its memberships.
	OwnerOrganization
)

var ErrInvalidOwner = errors.New("resource must have exactly one owner")

// Owner is a tagged union: a resource is held either by a user or by an
// organization, never both and never neither. The constructors are the
// only way to build a valid value.
type Owner struct {
	kind OwnerKind
	id   string
}

func DirectOwner(userID string) Owner {
	return Owner{kind: OwnerDirect, id: userID}
}

func OrganizationOwner(orgID string) Owner {
	return Owner{kind: OwnerOrganization, id: orgID}
}

func (o Owner) Kind() OwnerKind {
	return o.kind
}

func (o Owner) ID() string {
	return o.id
}

func (o Owner) IsZero() bool {
	return o.kind == 0
}

// Columns splits the owner into the nullable (user_id, organization_id)
// column pair the properties table stores.
func (o Owner) Columns() (userID, orgID *string) {
	switch o.kind {
	case OwnerDirect:
		return &o.id, nil
	case OwnerOrganization:
		return nil, &o.id
	}
	return nil, nil
}

// OwnerFromColumns rebuilds the union from the stored column pair,
// rejecting rows that violate the exactly-one-owner invariant.
func OwnerFromColumns(userID, orgID *string) (Owner, error) {
	switch {
	case userID != nil && orgID == nil:
		return DirectOwner(*userID), nil
	case userID == nil && orgID != nil:
		return OrganizationOwner(*orgID), nil
	}
	return Owner{}, ErrInvalidOwner
}

type ownerJSON struct {
	Kind string `json:"kind"`
	ID   string `json:"id"`
}

func (o Owner) MarshalJSON() ([]byte, error) {
	v := ownerJSON{ID: o.id}
	switch o.kind {
	case OwnerDirect:
		v.Kind = "user"
	case OwnerOrganization:
		v.Kind = "organization"
	default:
		return nil, ErrInvalidOwner
	}
	return json.Marshal(v)
}

func (o *Owner) UnmarshalJSON(data []byte) error {
	var v ownerJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch v.Kind {
	case "user":
		*o = DirectOwner(v.ID)
	case "organization":
		*o = OrganizationOwner(v.ID)
	default:
		return ErrInvalidOwner
	}
	return nil
}
