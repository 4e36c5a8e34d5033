package service

import "errors"

// ErrForbidden 在非作者尝试修改内容时返回
var ErrForbidden = errors.New("actor is not the author")

// AnonymousID 是未登录访客的哨兵用户ID。
const AnonymousID uint = 0

// Authored is implemented by content types whose mutation is reserved
// for their author.
type Authored interface {
	OwnerID() uint
}

// IsAuthor reports whether the actor owns the given item. The
// anonymous actor never owns anything.
func IsAuthor(actorID uint, item Authored) bool {
	if actorID == AnonymousID || item == nil {
		return false
	}
	return actorID == item.OwnerID()
}

// authorizeMutation is the single gate in front of every edit and
// delete, for posts and comments alike: a non-author gets
// ErrForbidden regardless of the item's visibility state.
func authorizeMutation(actorID uint, item Authored) error {
	if !IsAuthor(actorID, item) {
		return ErrForbidden
	}
	return nil
}
