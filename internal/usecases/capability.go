package usecases

import (
	"kudichain.backend/internal/domain/entities"
)

// DropAction names an operation on a trash record.
type DropAction string

const (
	DropActionCreate        DropAction = "create"
	DropActionConfirm       DropAction = "confirm"
	DropActionShip          DropAction = "ship"
	DropActionReceive       DropAction = "receive"
	DropActionReleasePayout DropAction = "release_payout"
	DropActionCancel        DropAction = "cancel"
)

// dropCapabilities is the closed role-to-action table for the drop
// lifecycle, replacing per-handler role conditionals.
var dropCapabilities = map[DropAction][]entities.UserRole{
	DropActionCreate:        {entities.UserRoleCollector, entities.UserRoleVendor},
	DropActionConfirm:       {entities.UserRoleVendor},
	DropActionShip:          {entities.UserRoleVendor},
	DropActionReceive:       {entities.UserRoleFactory},
	DropActionReleasePayout: {entities.UserRoleFactory},
	DropActionCancel:        {entities.UserRoleVendor, entities.UserRoleFactory, entities.UserRoleAdmin},
}

// RoleCan reports whether the role may perform the drop action.
func RoleCan(role entities.UserRole, action DropAction) bool {
	for _, allowed := range dropCapabilities[action] {
		if role == allowed {
			return true
		}
	}
	return false
}
