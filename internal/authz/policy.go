// Package authz decides whether an actor may perform an action on an entity.
//
// Decisions are looked up in a static table keyed by (action, entity); each
// entry is a Requirement describing what the actor must satisfy.
package authz

import (
	"errors"
	"fmt"

	"github.com/mmynk/biblioteca/internal/models"
)

// Action is an operation on a record.
type Action string

const (
	Read   Action = "read"
	Create Action = "create"
	Update Action = "update"
	Delete Action = "delete"
)

// Entity is a record type.
type Entity string

const (
	Book     Entity = "book"
	Category Entity = "category"
	Author   Entity = "author"
	Loan     Entity = "loan"
	Account  Entity = "account"
)

// Requirement is a set of conditions, all of which must hold.
type Requirement uint8

const (
	// Anyone allows anonymous actors.
	Anyone Requirement = 0

	// Authenticated requires a logged-in actor.
	Authenticated Requirement = 1 << iota
	// Privileged requires a staff actor.
	Privileged
	// Owner requires the actor to be the resource owner.
	Owner
	// OwnerOrPrivileged requires the actor to be the owner or staff.
	OwnerOrPrivileged
)

// Decision is the outcome of Authorize.
type Decision bool

const (
	Allow Decision = true
	Deny  Decision = false
)

type key struct {
	action Action
	entity Entity
}

// policy maps every supported (action, entity) pair to its requirement.
// Pairs absent from the table are denied.
var policy = map[key]Requirement{
	{Read, Book}:   Anyone,
	{Create, Book}: Authenticated | Privileged,
	{Update, Book}: Owner | Privileged,
	{Delete, Book}: Owner | Privileged,

	{Read, Category}:   Anyone,
	{Create, Category}: Authenticated | Privileged,
	{Update, Category}: Privileged,
	{Delete, Category}: Privileged,

	{Read, Author}:   Anyone,
	{Create, Author}: Privileged,
	{Update, Author}: Privileged,
	{Delete, Author}: Privileged,

	{Read, Loan}:   Authenticated,
	{Create, Loan}: Authenticated,
	{Update, Loan}: Authenticated | OwnerOrPrivileged,
	{Delete, Loan}: Privileged,

	// Account is the actor's own staff account: the owner passed in is the
	// targeted account ID.
	{Read, Account}:   Privileged | Owner,
	{Create, Account}: Privileged,
	{Update, Account}: Privileged | Owner,
	{Delete, Account}: Privileged | Owner,
}

// RequirementFor returns the requirement of an (action, entity) pair and
// whether the pair is known.
func RequirementFor(action Action, entity Entity) (Requirement, bool) {
	req, ok := policy[key{action, entity}]
	return req, ok
}

// Authorize decides whether actor may perform action on entity. owner is the
// user ID owning the resource, or "" when ownership does not apply.
func Authorize(action Action, entity Entity, actor models.Actor, owner string) Decision {
	req, ok := RequirementFor(action, entity)
	if !ok {
		return Deny
	}
	return req.satisfiedBy(actor, owner)
}

func (r Requirement) satisfiedBy(actor models.Actor, owner string) Decision {
	isOwner := actor.Authenticated && actor.UserID != "" && actor.UserID == owner

	if r&Authenticated != 0 && !actor.Authenticated {
		return Deny
	}
	if r&Privileged != 0 && !(actor.Authenticated && actor.Privileged) {
		return Deny
	}
	if r&Owner != 0 && !isOwner {
		return Deny
	}
	if r&OwnerOrPrivileged != 0 && !isOwner && !(actor.Authenticated && actor.Privileged) {
		return Deny
	}
	return Allow
}

// withoutOwnership relaxes the ownership conditions to plain
// authentication, leaving what can be decided before the record is loaded.
func (r Requirement) withoutOwnership() Requirement {
	if r&(Owner|OwnerOrPrivileged) != 0 {
		r = r&^(Owner|OwnerOrPrivileged) | Authenticated
	}
	return r
}

// ErrDenied is matched by every *Denial via errors.Is.
var ErrDenied = errors.New("authorization denied")

// Denial explains a denied decision.
type Denial struct {
	Action    Action
	Entity    Entity
	Anonymous bool
}

func (d *Denial) Error() string {
	if d.Anonymous {
		return fmt.Sprintf("%s: authentication required to %s %s", ErrDenied, d.Action, d.Entity)
	}
	return fmt.Sprintf("%s: not allowed to %s %s", ErrDenied, d.Action, d.Entity)
}

func (d *Denial) Unwrap() error { return ErrDenied }

// Check is Authorize returning a *Denial error instead of Deny.
func Check(action Action, entity Entity, actor models.Actor, owner string) error {
	if Authorize(action, entity, actor, owner) == Allow {
		return nil
	}
	return &Denial{Action: action, Entity: entity, Anonymous: !actor.Authenticated}
}

// Precheck is Check for an owner not yet known: every condition except
// ownership must already hold. A nil result is not a grant; Check must still
// run once the owner is loaded.
func Precheck(action Action, entity Entity, actor models.Actor) error {
	req, ok := RequirementFor(action, entity)
	if ok && req.withoutOwnership().satisfiedBy(actor, "") == Allow {
		return nil
	}
	return &Denial{Action: action, Entity: entity, Anonymous: !actor.Authenticated}
}
