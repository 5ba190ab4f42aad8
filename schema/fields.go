// Package schema declares the typed field vocabulary of the user, role and
// report tables, the chain builders for nested paths, and a DBML mirror of the
// relational layout.
//
// Every enumeration maps each variant to its wire name in exactly one table.
// Nested enumerations (profile, address, preferences, content, review
// comment) yield paths relative to their parent; use the chain builders to
// address them from the record root.
package schema

import (
	"github.com/zoobzio/surql/internal/types"
)

func segment(name string) types.FieldPath {
	return types.FieldPath{{Kind: types.SegmentField, Name: name}}
}

// UserField is a top-level field of the user table.
type UserField int

const (
	UserID UserField = iota + 1
	UserEmail
	UserUsername
	UserProfile
	UserRoles
	UserPermissions
	UserPreferences
	UserStatus
	UserEvents
)

var userFieldNames = map[UserField]string{
	UserID:          "id",
	UserEmail:       "email",
	UserUsername:    "username",
	UserProfile:     "profile",
	UserRoles:       "roles",
	UserPermissions: "permissions",
	UserPreferences: "preferences",
	UserStatus:      "status",
	UserEvents:      "events",
}

func (f UserField) String() string        { return userFieldNames[f] }
func (f UserField) Path() types.FieldPath { return segment(f.String()) }
func (f UserField) TableRef() types.Table { return types.TableUser }

// UserFields returns every UserField.
func UserFields() []UserField {
	return []UserField{UserID, UserEmail, UserUsername, UserProfile, UserRoles,
		UserPermissions, UserPreferences, UserStatus, UserEvents}
}

// UserProfileField is a field of user.profile.
type UserProfileField int

const (
	ProfileFirstName UserProfileField = iota + 1
	ProfileLastName
	ProfilePassword
	ProfileBio
	ProfilePhoneNumbers
	ProfileAvatarURL
	ProfileDateOfBirth
	ProfileAddresses
	ProfileWebsite
	ProfileIsDeleted
	ProfileCreatedAt
	ProfileUpdatedAt
)

var userProfileFieldNames = map[UserProfileField]string{
	ProfileFirstName:    "first_name",
	ProfileLastName:     "last_name",
	ProfilePassword:     "password",
	ProfileBio:          "bio",
	ProfilePhoneNumbers: "phone_numbers",
	ProfileAvatarURL:    "avatar_url",
	ProfileDateOfBirth:  "date_of_birth",
	ProfileAddresses:    "addresses",
	ProfileWebsite:      "website",
	ProfileIsDeleted:    "is_deleted",
	ProfileCreatedAt:    "created_at",
	ProfileUpdatedAt:    "updated_at",
}

func (f UserProfileField) String() string        { return userProfileFieldNames[f] }
func (f UserProfileField) Path() types.FieldPath { return segment(f.String()) }
func (f UserProfileField) TableRef() types.Table { return types.TableUser }

// UserProfileFields returns every UserProfileField.
func UserProfileFields() []UserProfileField {
	return []UserProfileField{ProfileFirstName, ProfileLastName, ProfilePassword,
		ProfileBio, ProfilePhoneNumbers, ProfileAvatarURL, ProfileDateOfBirth,
		ProfileAddresses, ProfileWebsite, ProfileIsDeleted, ProfileCreatedAt,
		ProfileUpdatedAt}
}

// AddressField is a field of one element of user.profile.addresses.
type AddressField int

const (
	AddressTitle AddressField = iota + 1
	AddressStreet
	AddressCity
	AddressState
	AddressPostalCode
	AddressCountry
)

var addressFieldNames = map[AddressField]string{
	AddressTitle:      "title",
	AddressStreet:     "street",
	AddressCity:       "city",
	AddressState:      "state",
	AddressPostalCode: "postal_code",
	AddressCountry:    "country",
}

func (f AddressField) String() string        { return addressFieldNames[f] }
func (f AddressField) Path() types.FieldPath { return segment(f.String()) }
func (f AddressField) TableRef() types.Table { return types.TableUser }

// AddressFields returns every AddressField.
func AddressFields() []AddressField {
	return []AddressField{AddressTitle, AddressStreet, AddressCity, AddressState,
		AddressPostalCode, AddressCountry}
}

// UserPreferencesField is a field of user.preferences.
type UserPreferencesField int

const (
	PreferenceEmailNotifications UserPreferencesField = iota + 1
	PreferencePushNotifications
	PreferenceTwoFactorAuth
	PreferenceLanguage
)

var userPreferencesFieldNames = map[UserPreferencesField]string{
	PreferenceEmailNotifications: "email_notifications",
	PreferencePushNotifications:  "push_notifications",
	PreferenceTwoFactorAuth:      "two_factor_auth",
	PreferenceLanguage:           "language",
}

func (f UserPreferencesField) String() string        { return userPreferencesFieldNames[f] }
func (f UserPreferencesField) Path() types.FieldPath { return segment(f.String()) }
func (f UserPreferencesField) TableRef() types.Table { return types.TableUser }

// UserPreferencesFields returns every UserPreferencesField.
func UserPreferencesFields() []UserPreferencesField {
	return []UserPreferencesField{PreferenceEmailNotifications,
		PreferencePushNotifications, PreferenceTwoFactorAuth, PreferenceLanguage}
}

// RoleField is a top-level field of the role table.
type RoleField int

const (
	RoleID RoleField = iota + 1
	RoleName
	RoleDescription
	RolePermissions
	RoleIsSystemRole
	RoleCreatedAt
	RoleEvents
)

var roleFieldNames = map[RoleField]string{
	RoleID:           "id",
	RoleName:         "name",
	RoleDescription:  "description",
	RolePermissions:  "permissions",
	RoleIsSystemRole: "is_system_role",
	RoleCreatedAt:    "created_at",
	RoleEvents:       "events",
}

func (f RoleField) String() string        { return roleFieldNames[f] }
func (f RoleField) Path() types.FieldPath { return segment(f.String()) }
func (f RoleField) TableRef() types.Table { return types.TableRole }

// RoleFields returns every RoleField.
func RoleFields() []RoleField {
	return []RoleField{RoleID, RoleName, RoleDescription, RolePermissions,
		RoleIsSystemRole, RoleCreatedAt, RoleEvents}
}

// ReportField is a top-level field of the report table.
type ReportField int

const (
	ReportID ReportField = iota + 1
	ReportTitle
	ReportContent
	ReportType
	ReportPermissions
	ReportStatusField
	ReportAuthorID
	ReportAssignedReviewerID
	ReportCreatedAt
	ReportUpdatedAt
	ReportDueDate
	ReportVersion
	ReportEvents
)

var reportFieldNames = map[ReportField]string{
	ReportID:                 "id",
	ReportTitle:              "title",
	ReportContent:            "content",
	ReportType:               "report_type",
	ReportPermissions:        "permissions",
	ReportStatusField:        "status",
	ReportAuthorID:           "author_id",
	ReportAssignedReviewerID: "assigned_reviewer_id",
	ReportCreatedAt:          "created_at",
	ReportUpdatedAt:          "updated_at",
	ReportDueDate:            "due_date",
	ReportVersion:            "version",
	ReportEvents:             "events",
}

func (f ReportField) String() string        { return reportFieldNames[f] }
func (f ReportField) Path() types.FieldPath { return segment(f.String()) }
func (f ReportField) TableRef() types.Table { return types.TableReport }

// ReportFields returns every ReportField.
func ReportFields() []ReportField {
	return []ReportField{ReportID, ReportTitle, ReportContent, ReportType,
		ReportPermissions, ReportStatusField, ReportAuthorID,
		ReportAssignedReviewerID, ReportCreatedAt, ReportUpdatedAt, ReportDueDate,
		ReportVersion, ReportEvents}
}

// ReportContentField is a field of report.content.
type ReportContentField int

const (
	ContentBody ReportContentField = iota + 1
	ContentAttachments
	ContentReviewComments
	ContentRejectionReason
)

var reportContentFieldNames = map[ReportContentField]string{
	ContentBody:            "body",
	ContentAttachments:     "attachments",
	ContentReviewComments:  "review_comments",
	ContentRejectionReason: "rejection_reason",
}

func (f ReportContentField) String() string        { return reportContentFieldNames[f] }
func (f ReportContentField) Path() types.FieldPath { return segment(f.String()) }
func (f ReportContentField) TableRef() types.Table { return types.TableReport }

// ReportContentFields returns every ReportContentField.
func ReportContentFields() []ReportContentField {
	return []ReportContentField{ContentBody, ContentAttachments,
		ContentReviewComments, ContentRejectionReason}
}

// ReviewCommentField is a field of one element of report.content.review_comments.
type ReviewCommentField int

const (
	CommentReviewerID ReviewCommentField = iota + 1
	CommentText
	CommentCreatedAt
)

var reviewCommentFieldNames = map[ReviewCommentField]string{
	CommentReviewerID: "reviewer_id",
	CommentText:       "comment",
	CommentCreatedAt:  "created_at",
}

func (f ReviewCommentField) String() string        { return reviewCommentFieldNames[f] }
func (f ReviewCommentField) Path() types.FieldPath { return segment(f.String()) }
func (f ReviewCommentField) TableRef() types.Table { return types.TableReport }

// ReviewCommentFields returns every ReviewCommentField.
func ReviewCommentFields() []ReviewCommentField {
	return []ReviewCommentField{CommentReviewerID, CommentText, CommentCreatedAt}
}
