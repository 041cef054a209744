package fixture

import "time"

// User is a plain annotated type with a designated constructor, a setter,
// and a getter.
//
//bldgen:builder
type User struct {
	name    string
	age     int
	email   string
	nick    *string
	tags    []string
	addr    Address
	roles   map[string]struct{}
	created time.Time
}

func NewUser(name string, age int) *User {
	return &User{name: name, age: age}
}

func (u *User) SetEmail(email string) { u.email = email }

func (u *User) SetNick(nick *string) { u.nick = nick }

func (u *User) SetTags(tags []string) { u.tags = tags }

func (u *User) SetAddr(addr Address) { u.addr = addr }

func (u *User) SetRoles(roles map[string]struct{}) { u.roles = roles }

func (u *User) SetCreated(created time.Time) { u.created = created }

func (u *User) Email() string { return u.email }

// Settings is setter-shaped in name only and must not become a field.
func (u *User) Settings(m map[string]string) {}

// Address is annotated too, so User.addr qualifies for nested-builder
// construction.
//
//bldgen:builder
type Address struct {
	street string
	city   string
}

func NewAddress(street, city string) Address {
	return Address{street: street, city: city}
}

// Alias carries the directive on an ineligible declaration.
//
//bldgen:builder
type Alias = User

// Notifier is annotated but not a struct.
//
//bldgen:builder
type Notifier interface {
	Notify(msg string)
}

// Box exercises generic targets.
//
//bldgen:builder
type Box[T any] struct {
	value T
}

func NewBox[T any](value T) *Box[T] {
	return &Box[T]{value: value}
}

// Plain carries no directive and must be ignored, but still lands in the
// struct index.
type Plain struct {
	Note string
}
