package schema

import (
	"database/sql/driver"
	"fmt"
)

// Permission is a capability granted through roles. Its wire name is the
// value stored in permissions collections and bound for HasPermission.
type Permission int

const (
	PermCreateUser Permission = iota + 1
	PermViewUsers
	PermManageUsers
	PermDeleteUsers
	PermCreateReport
	PermViewOwnReports
	PermViewReports
	PermEditOwnReports
	PermEditReports
	PermReviewReports
	PermApproveReports
	PermRejectReports
	PermExportReports
	PermDeleteReports
	PermManageSystem
	PermViewAuditLogs
)

var permissionNames = map[Permission]string{
	PermCreateUser:     "create_user",
	PermViewUsers:      "view_users",
	PermManageUsers:    "manage_users",
	PermDeleteUsers:    "delete_users",
	PermCreateReport:   "create_report",
	PermViewOwnReports: "view_own_reports",
	PermViewReports:    "view_reports",
	PermEditOwnReports: "edit_own_reports",
	PermEditReports:    "edit_reports",
	PermReviewReports:  "review_reports",
	PermApproveReports: "approve_reports",
	PermRejectReports:  "reject_reports",
	PermExportReports:  "export_reports",
	PermDeleteReports:  "delete_reports",
	PermManageSystem:   "manage_system",
	PermViewAuditLogs:  "view_audit_logs",
}

func (p Permission) String() string { return permissionNames[p] }

// Value lets database/sql drivers bind the wire name.
func (p Permission) Value() (driver.Value, error) {
	name, ok := permissionNames[p]
	if !ok {
		return nil, fmt.Errorf("unknown permission %d", int(p))
	}
	return name, nil
}

// MarshalText encodes the wire name.
func (p Permission) MarshalText() ([]byte, error) {
	name, ok := permissionNames[p]
	if !ok {
		return nil, fmt.Errorf("unknown permission %d", int(p))
	}
	return []byte(name), nil
}

// ParsePermission resolves a wire name.
func ParsePermission(name string) (Permission, error) {
	for p, n := range permissionNames {
		if n == name {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown permission %q", name)
}

// Permissions returns every Permission in declaration order.
func Permissions() []Permission {
	out := make([]Permission, 0, len(permissionNames))
	for p := PermCreateUser; p <= PermViewAuditLogs; p++ {
		out = append(out, p)
	}
	return out
}

// ReportStatus is the lifecycle state of a report.
type ReportStatus int

const (
	StatusDraft ReportStatus = iota + 1
	StatusSubmitted
	StatusInReview
	StatusApproved
	StatusRejected
	StatusArchived
)

var reportStatusNames = map[ReportStatus]string{
	StatusDraft:     "draft",
	StatusSubmitted: "submitted",
	StatusInReview:  "in_review",
	StatusApproved:  "approved",
	StatusRejected:  "rejected",
	StatusArchived:  "archived",
}

func (s ReportStatus) String() string { return reportStatusNames[s] }

// Value lets database/sql drivers bind the wire name.
func (s ReportStatus) Value() (driver.Value, error) {
	name, ok := reportStatusNames[s]
	if !ok {
		return nil, fmt.Errorf("unknown report status %d", int(s))
	}
	return name, nil
}

// ReportStatuses returns every ReportStatus in declaration order.
func ReportStatuses() []ReportStatus {
	return []ReportStatus{StatusDraft, StatusSubmitted, StatusInReview,
		StatusApproved, StatusRejected, StatusArchived}
}
