// Package catalog holds the static rules data for the submarine game:
// teams, crew roles, weapon systems and their charge limits, and the
// engineering circuit board topology. Nothing in here is mutable.
package catalog

// Team identifies one of the two symmetric sides.
type Team string

const (
	TeamAlpha Team = "alpha"
	TeamBravo Team = "bravo"
)

func (t Team) Valid() bool {
	return t == TeamAlpha || t == TeamBravo
}

// Opponent returns the other side.
func (t Team) Opponent() Team {
	if t == TeamAlpha {
		return TeamBravo
	}
	return TeamAlpha
}

// Role is a named crew responsibility, fulfilled by a human or by automation.
type Role string

const (
	RoleCaptain       Role = "captain"
	RoleFirstMate     Role = "first-mate"
	RoleEngineer      Role = "engineer"
	RoleRadioOperator Role = "radio-operator"
)

func (r Role) Valid() bool {
	switch r {
	case RoleCaptain, RoleFirstMate, RoleEngineer, RoleRadioOperator:
		return true
	}
	return false
}

// RequiredRoles returns the mandatory non-captain roles whose confirmation
// closes a turn.
func RequiredRoles() []Role {
	return []Role{RoleFirstMate, RoleEngineer, RoleRadioOperator}
}

// System is a chargeable submarine system.
type System string

const (
	SystemTorpedo System = "torpedo"
	SystemMine    System = "mine"
	SystemDrone   System = "drone"
	SystemSonar   System = "sonar"
	SystemSilence System = "silence"
)

var systemMax = map[System]int{
	SystemTorpedo: 3,
	SystemMine:    3,
	SystemDrone:   4,
	SystemSonar:   3,
	SystemSilence: 6,
}

func (s System) Valid() bool {
	_, ok := systemMax[s]
	return ok
}

// Max returns the charge ceiling for the system, 0 for unknown systems.
func (s System) Max() int {
	return systemMax[s]
}

// Systems lists every system in catalog order.
func Systems() []System {
	return []System{SystemTorpedo, SystemMine, SystemDrone, SystemSonar, SystemSilence}
}

// DefaultPriority is the charge ordering used by first-mate automation when
// a team has not configured its own.
func DefaultPriority() []System {
	return []System{SystemTorpedo, SystemMine, SystemDrone, SystemSonar, SystemSilence}
}

// Direction is a cardinal heading.
type Direction string

const (
	North Direction = "N"
	South Direction = "S"
	East  Direction = "E"
	West  Direction = "W"
)

func (d Direction) Valid() bool {
	switch d {
	case North, South, East, West:
		return true
	}
	return false
}

// Delta returns the unit grid step for the heading. The y axis grows
// southward, matching the client map.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case North:
		return 0, -1
	case South:
		return 0, 1
	case East:
		return 1, 0
	case West:
		return -1, 0
	}
	return 0, 0
}
