package schema

import (
	"github.com/zoobzio/surql/internal/types"
)

func index(i int) types.PathSegment {
	return types.PathSegment{Kind: types.SegmentIndex, Index: i}
}

func wildcard() types.PathSegment {
	return types.PathSegment{Kind: types.SegmentWildcard}
}

// ProfilePath addresses user.profile.
type ProfilePath struct {
	base types.FieldPath
}

// Profile starts a chain at user.profile.
func Profile() ProfilePath {
	return ProfilePath{base: UserProfile.Path()}
}

func (p ProfilePath) Path() types.FieldPath { return p.base }
func (p ProfilePath) TableRef() types.Table { return types.TableUser }

// Field addresses profile.<f>.
func (p ProfilePath) Field(f UserProfileField) types.FieldPath {
	return p.base.Append(f.Path()...)
}

// Addresses addresses profile.addresses.
func (p ProfilePath) Addresses() AddressListPath {
	return AddressListPath{base: p.Field(ProfileAddresses)}
}

// AddressListPath addresses the profile.addresses collection.
type AddressListPath struct {
	base types.FieldPath
}

func (p AddressListPath) Path() types.FieldPath { return p.base }
func (p AddressListPath) TableRef() types.Table { return types.TableUser }

// Any addresses every element: profile.addresses.*.
func (p AddressListPath) Any() AddressItemPath {
	return AddressItemPath{base: p.base.Append(wildcard())}
}

// At addresses one element: profile.addresses[i].
func (p AddressListPath) At(i int) AddressItemPath {
	return AddressItemPath{base: p.base.Append(index(i))}
}

// AddressItemPath addresses an element, or every element, of
// profile.addresses.
type AddressItemPath struct {
	base types.FieldPath
}

func (p AddressItemPath) Path() types.FieldPath { return p.base }
func (p AddressItemPath) TableRef() types.Table { return types.TableUser }

// Field addresses a field of the element.
func (p AddressItemPath) Field(f AddressField) types.FieldPath {
	return p.base.Append(f.Path()...)
}

// City is shorthand for Field(AddressCity).
func (p AddressItemPath) City() types.FieldPath {
	return p.Field(AddressCity)
}

// PreferencesPath addresses user.preferences.
type PreferencesPath struct {
	base types.FieldPath
}

// Preferences starts a chain at user.preferences.
func Preferences() PreferencesPath {
	return PreferencesPath{base: UserPreferences.Path()}
}

func (p PreferencesPath) Path() types.FieldPath { return p.base }
func (p PreferencesPath) TableRef() types.Table { return types.TableUser }

// Field addresses preferences.<f>.
func (p PreferencesPath) Field(f UserPreferencesField) types.FieldPath {
	return p.base.Append(f.Path()...)
}

// ContentPath addresses report.content.
type ContentPath struct {
	base types.FieldPath
}

// Content starts a chain at report.content.
func Content() ContentPath {
	return ContentPath{base: ReportContent.Path()}
}

func (p ContentPath) Path() types.FieldPath { return p.base }
func (p ContentPath) TableRef() types.Table { return types.TableReport }

// Field addresses content.<f>.
func (p ContentPath) Field(f ReportContentField) types.FieldPath {
	return p.base.Append(f.Path()...)
}

// ReviewComments addresses content.review_comments.
func (p ContentPath) ReviewComments() ReviewCommentListPath {
	return ReviewCommentListPath{base: p.Field(ContentReviewComments)}
}

// ReviewCommentListPath addresses the content.review_comments collection.
type ReviewCommentListPath struct {
	base types.FieldPath
}

func (p ReviewCommentListPath) Path() types.FieldPath { return p.base }
func (p ReviewCommentListPath) TableRef() types.Table { return types.TableReport }

// Any addresses every comment: content.review_comments.*.
func (p ReviewCommentListPath) Any() ReviewCommentItemPath {
	return ReviewCommentItemPath{base: p.base.Append(wildcard())}
}

// At addresses one comment: content.review_comments[i].
func (p ReviewCommentListPath) At(i int) ReviewCommentItemPath {
	return ReviewCommentItemPath{base: p.base.Append(index(i))}
}

// ReviewCommentItemPath addresses a comment, or every comment.
type ReviewCommentItemPath struct {
	base types.FieldPath
}

func (p ReviewCommentItemPath) Path() types.FieldPath { return p.base }
func (p ReviewCommentItemPath) TableRef() types.Table { return types.TableReport }

// Field addresses a field of the comment.
func (p ReviewCommentItemPath) Field(f ReviewCommentField) types.FieldPath {
	return p.base.Append(f.Path()...)
}
